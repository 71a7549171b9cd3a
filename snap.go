package main

import "math"

// Snap threshold is a distance in world units, independent of zoom.
const snapThreshold = 5.0

type GuideOrientation int

const (
	GuideVertical GuideOrientation = iota
	GuideHorizontal
)

// SnapGuide is an ephemeral alignment line emitted for a single drag
// frame. Pos is the aligned coordinate, Start/End span the other axis.
type SnapGuide struct {
	Orientation GuideOrientation
	Pos         float64
	Start       float64
	End         float64
}

type snapMatch struct {
	ok    bool
	delta float64 // correction applied to the proposed coordinate
	pos   float64 // matched candidate line
	dist  float64
	node  *Node
}

// SnapPosition adjusts a proposed rectangle against every other node's
// edge and center lines, one axis at a time. The minimum-distance
// candidate within the threshold wins; equidistant candidates break the
// tie toward the lower node id. Returns the adjusted origin plus at
// most one guide per snapped axis.
func SnapPosition(proposed Rect, others []*Node, threshold float64) (Point, []SnapGuide) {
	if threshold <= 0 {
		threshold = snapThreshold
	}
	h := bestSnap(
		[3]float64{proposed.X, proposed.X + proposed.W/2, proposed.X + proposed.W},
		others, true, threshold,
	)
	v := bestSnap(
		[3]float64{proposed.Y, proposed.Y + proposed.H/2, proposed.Y + proposed.H},
		others, false, threshold,
	)

	pos := Point{proposed.X, proposed.Y}
	if h.ok {
		pos.X += h.delta
	}
	if v.ok {
		pos.Y += v.delta
	}

	var guides []SnapGuide
	if h.ok {
		guides = append(guides, SnapGuide{
			Orientation: GuideVertical,
			Pos:         h.pos,
			Start:       math.Min(pos.Y, h.node.Y),
			End:         math.Max(pos.Y+proposed.H, h.node.Y+h.node.Height),
		})
	}
	if v.ok {
		guides = append(guides, SnapGuide{
			Orientation: GuideHorizontal,
			Pos:         v.pos,
			Start:       math.Min(pos.X, v.node.X),
			End:         math.Max(pos.X+proposed.W, v.node.X+v.node.Width),
		})
	}
	return pos, guides
}

func bestSnap(anchors [3]float64, others []*Node, horizontal bool, threshold float64) snapMatch {
	var best snapMatch
	for _, n := range others {
		var cands [3]float64
		if horizontal {
			cands = [3]float64{n.X, n.X + n.Width/2, n.X + n.Width}
		} else {
			cands = [3]float64{n.Y, n.Y + n.Height/2, n.Y + n.Height}
		}
		for _, c := range cands {
			for _, a := range anchors {
				d := math.Abs(c - a)
				if d > threshold {
					continue
				}
				if !best.ok || d < best.dist || (d == best.dist && n.ID < best.node.ID) {
					best = snapMatch{ok: true, delta: c - a, pos: c, dist: d, node: n}
				}
			}
		}
	}
	return best
}
