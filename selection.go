package main

import (
	"math"
	"sort"
)

// Pointer travel in screen units before a press becomes a drag.
const dragThreshold = 5.0

type GestureKind int

const (
	GestureNone GestureKind = iota
	GesturePressed // pointer down, movement still below the threshold
	GestureDrag
	GestureResize
)

// Selection tracks the primary node and the multi-select set.
type Selection struct {
	Primary int
	members map[int]bool
}

func NewSelection() Selection {
	return Selection{Primary: -1, members: make(map[int]bool)}
}

func (s *Selection) Has(id int) bool {
	return s.members[id]
}

func (s *Selection) Toggle(id int) {
	if s.members[id] {
		delete(s.members, id)
		if s.Primary == id {
			s.Primary = -1
		}
		return
	}
	s.members[id] = true
	if s.Primary == -1 {
		s.Primary = id
	}
}

func (s *Selection) Set(id int) {
	s.members = map[int]bool{id: true}
	s.Primary = id
}

func (s *Selection) Clear() {
	s.members = make(map[int]bool)
	s.Primary = -1
}

func (s *Selection) Len() int {
	return len(s.members)
}

func (s *Selection) IDs() []int {
	out := make([]int, 0, len(s.members))
	for id := range s.members {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// GestureCommit summarizes a finished gesture for undo recording.
type GestureCommit struct {
	Kind   GestureKind
	Moves  map[int]Point // id -> origin at drag start
	NodeID int
	OldW   float64
	OldH   float64
}

// DragController owns the drag and resize state machines: per node
// idle -> dragging -> idle and idle -> resizing -> idle, mutually
// exclusive, both refused while the node is the active wiring source.
type DragController struct {
	graph *Graph
	Sel   Selection

	kind        GestureKind
	resizeArmed bool
	targetID    int
	pressScreen Point
	startPos    map[int]Point
	startW      float64
	startH      float64

	// Guides holds the alignment lines of the current drag frame.
	Guides []SnapGuide

	SnapThreshold float64
}

func NewDragController(g *Graph) *DragController {
	return &DragController{
		graph:         g,
		Sel:           NewSelection(),
		targetID:      -1,
		SnapThreshold: snapThreshold,
	}
}

func (c *DragController) Kind() GestureKind {
	return c.kind
}

func (c *DragController) TargetID() int {
	return c.targetID
}

// PointerDown arms a drag on the node body. Returns false when the node
// is missing, another gesture is in flight, or the node is being wired.
func (c *DragController) PointerDown(nodeID int, screen Point, wiringSource int) bool {
	return c.arm(nodeID, screen, wiringSource, false)
}

// BeginResize arms a resize from the node's resize handle.
func (c *DragController) BeginResize(nodeID int, screen Point, wiringSource int) bool {
	return c.arm(nodeID, screen, wiringSource, true)
}

func (c *DragController) arm(nodeID int, screen Point, wiringSource int, resize bool) bool {
	if c.kind != GestureNone {
		return false
	}
	if nodeID == wiringSource {
		return false
	}
	if c.graph.Node(nodeID) == nil {
		return false
	}
	c.kind = GesturePressed
	c.resizeArmed = resize
	c.targetID = nodeID
	c.pressScreen = screen
	return true
}

// PointerMove advances an armed or active gesture. The proposed primary
// position passes through the snap engine; a multi-selected group moves
// rigidly by the primary's snapped translation.
func (c *DragController) PointerMove(screen Point, vp Viewport) {
	if c.kind == GestureNone {
		return
	}
	if c.ReleaseMissing() {
		return
	}
	if c.kind == GesturePressed {
		if math.Hypot(screen.X-c.pressScreen.X, screen.Y-c.pressScreen.Y) < dragThreshold {
			return
		}
		c.activate()
	}
	switch c.kind {
	case GestureDrag:
		c.updateDrag(screen, vp)
	case GestureResize:
		c.updateResize(screen, vp)
	}
}

func (c *DragController) activate() {
	n := c.graph.Node(c.targetID)
	if c.resizeArmed {
		c.kind = GestureResize
		c.startW = n.Width
		c.startH = n.Height
		return
	}
	c.kind = GestureDrag
	c.graph.BringToFront(c.targetID)
	c.startPos = map[int]Point{c.targetID: {n.X, n.Y}}
	if c.Sel.Has(c.targetID) {
		for _, id := range c.Sel.IDs() {
			if m := c.graph.Node(id); m != nil {
				c.startPos[id] = Point{m.X, m.Y}
			}
		}
	}
}

func (c *DragController) updateDrag(screen Point, vp Viewport) {
	n := c.graph.Node(c.targetID)
	z := vp.Zoom
	if z <= zoomEps {
		z = zoomEps
	}
	dw := Point{(screen.X - c.pressScreen.X) / z, (screen.Y - c.pressScreen.Y) / z}

	base := c.startPos[c.targetID]
	proposed := Rect{base.X + dw.X, base.Y + dw.Y, n.Width, n.Height}

	var others []*Node
	for _, o := range c.graph.Nodes() {
		if _, member := c.startPos[o.ID]; member {
			continue
		}
		others = append(others, o)
	}
	snapped, guides := SnapPosition(proposed, others, c.SnapThreshold)
	c.Guides = guides

	// The snapped delta of the primary is the rigid translation of the
	// whole group.
	applied := Point{snapped.X - base.X, snapped.Y - base.Y}
	for id, origin := range c.startPos {
		c.graph.SetNodePosition(id, origin.X+applied.X, origin.Y+applied.Y)
	}
}

func (c *DragController) updateResize(screen Point, vp Viewport) {
	z := vp.Zoom
	if z <= zoomEps {
		z = zoomEps
	}
	dw := (screen.X - c.pressScreen.X) / z
	dh := (screen.Y - c.pressScreen.Y) / z
	c.graph.SetNodeSize(c.targetID, c.startW+dw, c.startH+dh)
}

// PointerUp ends the gesture. Positions and sizes were committed
// through the graph on every frame, so this only reports what happened
// and clears transient state. A press that never crossed the movement
// threshold reports GesturePressed so the caller can treat it as a
// click.
func (c *DragController) PointerUp() (GestureCommit, bool) {
	if c.kind == GestureNone {
		return GestureCommit{}, false
	}
	commit := GestureCommit{Kind: c.kind, NodeID: c.targetID}
	if c.kind == GestureDrag {
		commit.Moves = c.startPos
	}
	if c.kind == GestureResize {
		commit.OldW = c.startW
		commit.OldH = c.startH
	}
	c.reset()
	return commit, true
}

// ReleaseMissing drops the gesture when its target vanished under an
// external mutation, with no further geometry updates. Vanished group
// members are pruned from an otherwise healthy drag. Returns true when
// the whole gesture was released.
func (c *DragController) ReleaseMissing() bool {
	if c.kind == GestureNone {
		return false
	}
	if c.graph.Node(c.targetID) == nil {
		c.reset()
		return true
	}
	for id := range c.startPos {
		if c.graph.Node(id) == nil {
			delete(c.startPos, id)
		}
	}
	return false
}

func (c *DragController) reset() {
	c.kind = GestureNone
	c.resizeArmed = false
	c.targetID = -1
	c.startPos = nil
	c.Guides = nil
}
