package main

import "math"

type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	default:
		return "left"
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideRight:
		return SideLeft
	case SideBottom:
		return SideTop
	default:
		return SideRight
	}
}

// Anchor returns the midpoint of the given rectangle edge.
func (s Side) Anchor(r Rect) Point {
	switch s {
	case SideTop:
		return Point{r.X + r.W/2, r.Y}
	case SideRight:
		return Point{r.X + r.W, r.Y + r.H/2}
	case SideBottom:
		return Point{r.X + r.W/2, r.Y + r.H}
	default:
		return Point{r.X, r.Y + r.H/2}
	}
}

const (
	arrowLen   = 12.0 // screen units, rescaled by 1/zoom at draw time
	arrowAngle = math.Pi / 6
)

// EdgePath is the routed geometry of one connector: a cubic bezier from
// the exit port to the entry port.
type EdgePath struct {
	FromSide Side
	ToSide   Side
	From     Point
	To       Point
	Ctrl1    Point
	Ctrl2    Point
}

// RouteSides picks exit and entry ports from the center-to-center
// delta: the dominant axis wins, ties go horizontal.
func RouteSides(from, to Rect) (Side, Side) {
	dx := to.Center().X - from.Center().X
	dy := to.Center().Y - from.Center().Y
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return SideRight, SideLeft
		}
		return SideLeft, SideRight
	}
	if dy >= 0 {
		return SideBottom, SideTop
	}
	return SideTop, SideBottom
}

// RouteEdge routes between two node rectangles with automatic port
// selection. Pure and deterministic given the two rectangles.
func RouteEdge(from, to Rect) EdgePath {
	fs, ts := RouteSides(from, to)
	return RouteBetween(from, fs, to, ts)
}

// RouteBetween routes with fixed ports. Each control point sits half
// the axis delta out from its endpoint along that endpoint's axis, so
// the curve is tangent to the port axis at both ends regardless of
// routing direction. The target rectangle may be degenerate (a point),
// which the wiring preview uses.
func RouteBetween(from Rect, fromSide Side, to Rect, toSide Side) EdgePath {
	a := fromSide.Anchor(from)
	b := toSide.Anchor(to)
	return EdgePath{
		FromSide: fromSide,
		ToSide:   toSide,
		From:     a,
		To:       b,
		Ctrl1:    ctrlPoint(a, b, fromSide),
		Ctrl2:    ctrlPoint(b, a, toSide),
	}
}

func ctrlPoint(from, toward Point, side Side) Point {
	switch side {
	case SideLeft, SideRight:
		return Point{from.X + (toward.X-from.X)/2, from.Y}
	default:
		return Point{from.X, from.Y + (toward.Y-from.Y)/2}
	}
}

// PointAt evaluates the cubic at t in [0,1].
func (p EdgePath) PointAt(t float64) Point {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return Point{
		X: b0*p.From.X + b1*p.Ctrl1.X + b2*p.Ctrl2.X + b3*p.To.X,
		Y: b0*p.From.Y + b1*p.Ctrl1.Y + b2*p.Ctrl2.Y + b3*p.To.Y,
	}
}

// Arrowhead returns the two wing endpoints at the entry point, ±30° off
// the tangent between the second control point and the entry. Length is
// fixed in screen units and divided by zoom so the arrow keeps a
// constant apparent size at any zoom level.
func (p EdgePath) Arrowhead(zoom float64) (Point, Point) {
	if zoom <= zoomEps {
		zoom = zoomEps
	}
	ang := math.Atan2(p.To.Y-p.Ctrl2.Y, p.To.X-p.Ctrl2.X)
	l := arrowLen / zoom
	left := Point{
		X: p.To.X - l*math.Cos(ang-arrowAngle),
		Y: p.To.Y - l*math.Sin(ang-arrowAngle),
	}
	right := Point{
		X: p.To.X - l*math.Cos(ang+arrowAngle),
		Y: p.To.Y - l*math.Sin(ang+arrowAngle),
	}
	return left, right
}
