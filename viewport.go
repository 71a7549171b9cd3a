package main

import "math"

type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func (r Rect) Area() float64 {
	return r.W * r.H
}

func (r Rect) Union(o Rect) Rect {
	x1 := math.Min(r.X, o.X)
	y1 := math.Min(r.Y, o.Y)
	x2 := math.Max(r.X+r.W, o.X+o.W)
	y2 := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{x1, y1, x2 - x1, y2 - y1}
}

const (
	zoomMin   = 0.1
	zoomMax   = 4.0
	zoomEps   = 1e-4
	fitMargin = 40.0
)

// Viewport is the pan/zoom transform between world and screen space.
// worldToScreen(p) = p*zoom + offset, screenToWorld is its inverse.
type Viewport struct {
	Zoom   float64
	Offset Point
}

func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

func clampZoom(z float64) float64 {
	if z <= zoomEps {
		z = zoomEps
	}
	if z < zoomMin {
		z = zoomMin
	}
	if z > zoomMax {
		z = zoomMax
	}
	return z
}

func (v Viewport) WorldToScreen(p Point) Point {
	return Point{p.X*v.Zoom + v.Offset.X, p.Y*v.Zoom + v.Offset.Y}
}

func (v Viewport) ScreenToWorld(p Point) Point {
	z := v.Zoom
	if z <= zoomEps {
		z = zoomEps
	}
	return Point{(p.X - v.Offset.X) / z, (p.Y - v.Offset.Y) / z}
}

func (v Viewport) RectToScreen(r Rect) Rect {
	tl := v.WorldToScreen(Point{r.X, r.Y})
	return Rect{tl.X, tl.Y, r.W * v.Zoom, r.H * v.Zoom}
}

func (v *Viewport) SetZoom(z float64) {
	v.Zoom = clampZoom(z)
}

// ZoomAt rescales around a screen anchor so the world point under the
// anchor stays put.
func (v *Viewport) ZoomAt(factor float64, anchor Point) {
	w := v.ScreenToWorld(anchor)
	v.Zoom = clampZoom(v.Zoom * factor)
	v.Offset.X = anchor.X - w.X*v.Zoom
	v.Offset.Y = anchor.Y - w.Y*v.Zoom
}

func (v *Viewport) Pan(dx, dy float64) {
	v.Offset.X += dx
	v.Offset.Y += dy
}

func (v *Viewport) Reset() {
	*v = NewViewport()
}

// ZoomToFit frames every given rectangle inside a viewport of the given
// screen size, with a fixed margin. An empty set resets the transform.
func (v *Viewport) ZoomToFit(rects []Rect, viewW, viewH float64) {
	if len(rects) == 0 || viewW <= 0 || viewH <= 0 {
		v.Reset()
		return
	}
	bounds := rects[0]
	for _, r := range rects[1:] {
		bounds = bounds.Union(r)
	}
	bounds.X -= fitMargin
	bounds.Y -= fitMargin
	bounds.W += 2 * fitMargin
	bounds.H += 2 * fitMargin

	z := math.Min(viewW/bounds.W, viewH/bounds.H)
	if z > zoomMax {
		z = zoomMax
	}
	v.Zoom = clampZoom(z)

	c := bounds.Center()
	v.Offset.X = viewW/2 - c.X*v.Zoom
	v.Offset.Y = viewH/2 - c.Y*v.Zoom
}
