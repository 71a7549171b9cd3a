package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrollable(id int, bounds Rect, z int64) ScrollRegion {
	return ScrollRegion{ID: id, Bounds: bounds, ContentW: bounds.W, ContentH: bounds.H * 3, Z: z}
}

func TestModalSwallowsScroll(t *testing.T) {
	rc := NewRouterContext()
	rc.UpsertRegion(scrollable(1, Rect{0, 0, 100, 100}, 1))
	rc.SetModal(true)

	route, region := rc.RouteScroll(Point{50, 50}, 0, 10)
	assert.Equal(t, RouteSwallow, route)
	assert.Nil(t, region)

	rc.SetModal(false)
	route, region = rc.RouteScroll(Point{50, 50}, 0, 10)
	assert.Equal(t, RouteRegion, route)
	require.NotNil(t, region)
	assert.Equal(t, 1, region.ID)
}

func TestBareCanvasRoutesToPan(t *testing.T) {
	rc := NewRouterContext()
	rc.UpsertRegion(scrollable(1, Rect{0, 0, 100, 100}, 1))

	route, region := rc.RouteScroll(Point{500, 500}, 0, 10)
	assert.Equal(t, RouteCanvas, route)
	assert.Nil(t, region)
}

func TestFrontmostScrollableWins(t *testing.T) {
	rc := NewRouterContext()
	rc.UpsertRegion(scrollable(1, Rect{0, 0, 200, 200}, 1))
	rc.UpsertRegion(scrollable(2, Rect{50, 50, 100, 100}, 5))

	route, region := rc.RouteScroll(Point{100, 100}, 0, 10)
	require.Equal(t, RouteRegion, route)
	assert.Equal(t, 2, region.ID, "higher z wins")
}

func TestFallbackToLargestOnPreferredAxis(t *testing.T) {
	rc := NewRouterContext()
	// Frontmost region cannot scroll at all.
	rc.UpsertRegion(ScrollRegion{ID: 2, Bounds: Rect{50, 50, 100, 100}, ContentW: 10, ContentH: 10, Z: 5})
	rc.UpsertRegion(scrollable(1, Rect{0, 0, 200, 200}, 1))

	route, region := rc.RouteScroll(Point{100, 100}, 0, 10)
	require.Equal(t, RouteRegion, route)
	assert.Equal(t, 1, region.ID)
}

func TestFallbackToCrossAxisScrollable(t *testing.T) {
	rc := NewRouterContext()
	// Only horizontally scrollable, but the event is vertical.
	rc.UpsertRegion(ScrollRegion{ID: 1, Bounds: Rect{0, 0, 100, 100}, ContentW: 500, ContentH: 50, Z: 1})

	route, region := rc.RouteScroll(Point{50, 50}, 0, 10)
	require.Equal(t, RouteRegion, route)
	assert.Equal(t, 1, region.ID)
}

func TestContainedButUnscrollableSwallows(t *testing.T) {
	rc := NewRouterContext()
	rc.UpsertRegion(ScrollRegion{ID: 1, Bounds: Rect{0, 0, 100, 100}, ContentW: 10, ContentH: 10, Z: 1})

	route, region := rc.RouteScroll(Point{50, 50}, 0, 10)
	assert.Equal(t, RouteSwallow, route, "never pan the canvas under a region")
	assert.Nil(t, region)
}

func TestScrollAtLimitStaysAbsorbed(t *testing.T) {
	rc := NewRouterContext()
	r := ScrollRegion{ID: 1, Bounds: Rect{0, 0, 100, 100}, ContentW: 100, ContentH: 150, Z: 1}
	rc.UpsertRegion(r)

	region := rc.Region(1)
	region.ApplyScroll(0, 1000)
	assert.Equal(t, 50.0, region.ScrollY, "saturates at content limit")

	// Still scrollable by geometry, so the region keeps absorbing.
	route, got := rc.RouteScroll(Point{50, 50}, 0, 10)
	require.Equal(t, RouteRegion, route)
	assert.Equal(t, 1, got.ID)
	got.ApplyScroll(0, 10)
	assert.Equal(t, 50.0, got.ScrollY)

	got.ApplyScroll(0, -1000)
	assert.Equal(t, 0.0, got.ScrollY)
}

func TestAxisPreferenceFollowsDominantDelta(t *testing.T) {
	rc := NewRouterContext()
	// Vertically scrollable only.
	rc.UpsertRegion(ScrollRegion{ID: 1, Bounds: Rect{0, 0, 100, 100}, ContentW: 50, ContentH: 300, Z: 1})

	route, _ := rc.RouteScroll(Point{50, 50}, 2, 10)
	assert.Equal(t, RouteRegion, route, "|dy| >= |dx| reads as vertical")

	route, _ = rc.RouteScroll(Point{50, 50}, 10, 2)
	assert.Equal(t, RouteRegion, route, "horizontal falls back to the cross axis")
}

func TestPointerDownActivationIsSticky(t *testing.T) {
	rc := NewRouterContext()
	rc.UpsertRegion(scrollable(1, Rect{0, 0, 200, 200}, 9))
	rc.UpsertRegion(scrollable(2, Rect{50, 50, 100, 100}, 1))

	// Click inside the overlap activates the frontmost region.
	rc.PointerDown(Point{100, 100})
	assert.Equal(t, 1, rc.ActiveID())

	// An active region outranks z order for routing.
	rc.UpsertRegion(scrollable(3, Rect{60, 60, 80, 80}, 99))
	route, region := rc.RouteScroll(Point{100, 100}, 0, 10)
	require.Equal(t, RouteRegion, route)
	assert.Equal(t, 1, region.ID)

	// Clicking bare canvas leaves the activation alone.
	rc.PointerDown(Point{500, 500})
	assert.Equal(t, 1, rc.ActiveID())
}

func TestUpsertPreservesScrollOffsets(t *testing.T) {
	rc := NewRouterContext()
	rc.UpsertRegion(ScrollRegion{ID: 1, Bounds: Rect{0, 0, 100, 100}, ContentW: 100, ContentH: 400, Z: 1})
	rc.Region(1).ApplyScroll(0, 120)

	// Layout shrinks the content; the offset re-clamps instead of resetting.
	rc.UpsertRegion(ScrollRegion{ID: 1, Bounds: Rect{0, 0, 100, 100}, ContentW: 100, ContentH: 150, Z: 1})
	assert.Equal(t, 50.0, rc.Region(1).ScrollY)
}

func TestRetainRegionsDropsStaleEntries(t *testing.T) {
	rc := NewRouterContext()
	rc.UpsertRegion(scrollable(1, Rect{0, 0, 100, 100}, 1))
	rc.UpsertRegion(scrollable(2, Rect{200, 0, 100, 100}, 2))
	rc.PointerDown(Point{250, 50})
	require.Equal(t, 2, rc.ActiveID())

	rc.RetainRegions(map[int]bool{1: true})
	assert.Nil(t, rc.Region(2))
	assert.NotNil(t, rc.Region(1))
	assert.Equal(t, -1, rc.ActiveID(), "removing the active region clears activation")
}
