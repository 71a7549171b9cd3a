package main

import "math"

// ScrollRegion is one interactive scrollable surface in screen space,
// typically the content area of an expanded node. Regions live in an
// incrementally maintained index rebuilt on layout change, never
// discovered by walking a view tree at event time.
type ScrollRegion struct {
	ID       int
	Bounds   Rect
	ContentW float64
	ContentH float64
	ScrollX  float64
	ScrollY  float64
	Z        int64 // stacking, higher is frontmost
}

// A region is scrollable on an axis only when its content extent
// exceeds its visible extent on that axis.
func (r *ScrollRegion) ScrollableX() bool {
	return r.ContentW > r.Bounds.W
}

func (r *ScrollRegion) ScrollableY() bool {
	return r.ContentH > r.Bounds.H
}

func (r *ScrollRegion) scrollableOn(vertical bool) bool {
	if vertical {
		return r.ScrollableY()
	}
	return r.ScrollableX()
}

// ApplyScroll moves the region's scroll offsets, saturating at the
// content limits. Scrolling a region at its limit is absorbed, not
// re-routed.
func (r *ScrollRegion) ApplyScroll(dx, dy float64) {
	r.ScrollX = clampScroll(r.ScrollX+dx, r.ContentW-r.Bounds.W)
	r.ScrollY = clampScroll(r.ScrollY+dy, r.ContentH-r.Bounds.H)
}

func clampScroll(v, limit float64) float64 {
	if limit < 0 {
		limit = 0
	}
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}

type ScrollRoute int

const (
	// RouteSwallow: the event is consumed and dispatched nowhere.
	RouteSwallow ScrollRoute = iota
	// RouteRegion: exactly one scroll region receives the event.
	RouteRegion
	// RouteCanvas: the canvas pan/zoom handler receives the event.
	RouteCanvas
)

// RouterContext arbitrates which consumer receives a pointer or scroll
// event. It is an explicit value threaded through event handling, so
// tests construct isolated instances; there is no package-level state.
type RouterContext struct {
	ModalActive bool
	regions     map[int]*ScrollRegion
	activeID    int
}

func NewRouterContext() *RouterContext {
	return &RouterContext{regions: make(map[int]*ScrollRegion), activeID: -1}
}

func (rc *RouterContext) SetModal(on bool) {
	rc.ModalActive = on
}

// UpsertRegion adds or replaces a region, preserving the scroll offsets
// of an existing entry so a layout refresh does not jump the content.
func (rc *RouterContext) UpsertRegion(r ScrollRegion) {
	if old := rc.regions[r.ID]; old != nil {
		r.ScrollX = clampScroll(old.ScrollX, r.ContentW-r.Bounds.W)
		r.ScrollY = clampScroll(old.ScrollY, r.ContentH-r.Bounds.H)
	}
	cp := r
	rc.regions[r.ID] = &cp
}

func (rc *RouterContext) RemoveRegion(id int) {
	delete(rc.regions, id)
	if rc.activeID == id {
		rc.activeID = -1
	}
}

// RetainRegions drops every region whose id the keep set does not
// contain. Called after a layout rebuild.
func (rc *RouterContext) RetainRegions(keep map[int]bool) {
	for id := range rc.regions {
		if !keep[id] {
			rc.RemoveRegion(id)
		}
	}
}

func (rc *RouterContext) Region(id int) *ScrollRegion {
	return rc.regions[id]
}

func (rc *RouterContext) ActiveID() int {
	return rc.activeID
}

// PointerDown marks the region under the point active for subsequent
// scroll events. Activation is sticky: clicking outside every region
// leaves the current activation in place, so crowded canvases do not
// flicker. At most one region is active at a time.
func (rc *RouterContext) PointerDown(p Point) {
	if rc.ModalActive {
		return
	}
	if r := rc.frontmostAt(p); r != nil {
		rc.activeID = r.ID
	}
}

func (rc *RouterContext) frontmostAt(p Point) *ScrollRegion {
	var best *ScrollRegion
	for _, r := range rc.regions {
		if !r.Bounds.Contains(p) {
			continue
		}
		if best == nil || r.Z > best.Z || (r.Z == best.Z && r.ID < best.ID) {
			best = r
		}
	}
	return best
}

// RouteScroll decides the single consumer of a scroll event at p with
// deltas (dx, dy):
//
//  1. an active modal swallows everything;
//  2. axis preference follows the dominant delta (|dy| >= |dx| is
//     vertical);
//  3. the frontmost region under the point wins if it can scroll on the
//     preferred axis, with the last-activated region counted as
//     frontmost;
//  4. otherwise the largest-area containing region scrollable on the
//     preferred axis, then the largest-area containing region
//     scrollable on either axis;
//  5. a point inside region bounds that nothing can absorb is swallowed
//     rather than panning the canvas underneath; only a point over bare
//     canvas routes to the pan handler.
//
// Exactly one consumer receives the event, never more.
func (rc *RouterContext) RouteScroll(p Point, dx, dy float64) (ScrollRoute, *ScrollRegion) {
	if rc.ModalActive {
		return RouteSwallow, nil
	}
	vertical := math.Abs(dy) >= math.Abs(dx)

	var under []*ScrollRegion
	for _, r := range rc.regions {
		if r.Bounds.Contains(p) {
			under = append(under, r)
		}
	}
	if len(under) == 0 {
		return RouteCanvas, nil
	}

	if f := rc.frontmostUnder(under); f != nil && f.scrollableOn(vertical) {
		return RouteRegion, f
	}
	if r := largestWhere(under, func(r *ScrollRegion) bool { return r.scrollableOn(vertical) }); r != nil {
		return RouteRegion, r
	}
	if r := largestWhere(under, func(r *ScrollRegion) bool { return r.ScrollableX() || r.ScrollableY() }); r != nil {
		return RouteRegion, r
	}
	return RouteSwallow, nil
}

func (rc *RouterContext) frontmostUnder(under []*ScrollRegion) *ScrollRegion {
	var best *ScrollRegion
	for _, r := range under {
		if r.ID == rc.activeID {
			return r
		}
		if best == nil || r.Z > best.Z || (r.Z == best.Z && r.ID < best.ID) {
			best = r
		}
	}
	return best
}

func largestWhere(regions []*ScrollRegion, pred func(*ScrollRegion) bool) *ScrollRegion {
	var best *ScrollRegion
	for _, r := range regions {
		if !pred(r) {
			continue
		}
		if best == nil || r.Bounds.Area() > best.Bounds.Area() ||
			(r.Bounds.Area() == best.Bounds.Area() && r.ID < best.ID) {
			best = r
		}
	}
	return best
}
