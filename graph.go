package main

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type NodeType int

const (
	NodeStandard NodeType = iota
	NodeTitle
	NodeTextLabel
	NodeShape
	NodeNote
	NodeImage
)

func (t NodeType) String() string {
	switch t {
	case NodeTitle:
		return "title"
	case NodeTextLabel:
		return "text-label"
	case NodeShape:
		return "shape"
	case NodeNote:
		return "note"
	case NodeImage:
		return "image"
	default:
		return "standard"
	}
}

type SizeBounds struct {
	MinW, MaxW float64
	MinH, MaxH float64
}

// SizeBounds returns the per-type size limits. Width limits are shared;
// height limits depend on the variant.
func (t NodeType) SizeBounds() SizeBounds {
	switch t {
	case NodeTitle:
		return SizeBounds{200, 2000, 60, 200}
	case NodeTextLabel:
		return SizeBounds{200, 2000, 40, 400}
	case NodeShape:
		return SizeBounds{200, 2000, 80, 800}
	case NodeNote:
		return SizeBounds{200, 2000, 80, 600}
	case NodeImage:
		return SizeBounds{200, 2000, 120, 1200}
	default:
		return SizeBounds{200, 2000, 100, 1600}
	}
}

func (t NodeType) DefaultSize() (float64, float64) {
	switch t {
	case NodeTitle:
		return 320, 80
	case NodeTextLabel:
		return 240, 60
	case NodeShape:
		return 240, 160
	case NodeNote:
		return 280, 160
	case NodeImage:
		return 320, 240
	default:
		return 240, 140
	}
}

type Node struct {
	ID       int
	X, Y     float64
	Width    float64
	Height   float64
	Type     NodeType
	Expanded bool
	Parent   int // -1 when the node has no parent
	Order    int64
	Created  time.Time
	Color    int
	Lines    []string

	// Text style, meaningful only for text-bearing variants.
	Bold       bool
	FontFamily string
	FontSize   float64

	// Advisory flags from external collaborators. They pick visual
	// affordances only and never alter geometry or gestures.
	Generating bool
	Errored    bool
	Unread     bool
}

func (n *Node) Rect() Rect {
	return Rect{n.X, n.Y, n.Width, n.Height}
}

func (n *Node) GetText() string {
	return strings.Join(n.Lines, "\n")
}

func (n *Node) SetText(text string) {
	n.Lines = strings.Split(text, "\n")
}

type Edge struct {
	ID       string
	FromID   int
	ToID     int
	FromSide Side
	ToSide   Side
	Color    int
}

// Graph is the canonical store of nodes and edges. It exclusively owns
// their lifetime; every mutation is synchronous within one event-loop
// turn.
type Graph struct {
	nodes    map[int]*Node
	edges    []Edge
	nextID   int
	maxOrder int64
}

func NewGraph() *Graph {
	return &Graph{nodes: make(map[int]*Node)}
}

func (g *Graph) nextOrder() int64 {
	o := time.Now().UnixMicro()
	if o <= g.maxOrder {
		o = g.maxOrder + 1
	}
	g.maxOrder = o
	return o
}

func (g *Graph) AddNode(x, y float64, typ NodeType) *Node {
	w, h := typ.DefaultSize()
	n := &Node{
		ID:      g.nextID,
		X:       x,
		Y:       y,
		Width:   w,
		Height:  h,
		Type:    typ,
		Parent:  -1,
		Order:   g.nextOrder(),
		Created: time.Now(),
		Lines:   []string{""},
	}
	g.nextID++
	g.nodes[n.ID] = n
	return n
}

// RestoreNode reinserts a previously deleted node, keeping its id and
// order key. Used by undo.
func (g *Graph) RestoreNode(n Node) {
	cp := n
	g.nodes[cp.ID] = &cp
	if cp.ID >= g.nextID {
		g.nextID = cp.ID + 1
	}
	if cp.Order > g.maxOrder {
		g.maxOrder = cp.Order
	}
}

func (g *Graph) Node(id int) *Node {
	return g.nodes[id]
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Nodes returns every node sorted by id. The stable order keeps snap
// candidate scans deterministic.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NodesByOrder returns nodes back-to-front (ascending order key).
func (g *Graph) NodesByOrder() []*Node {
	out := g.Nodes()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// DeleteNode removes the node and its incident edges. Children are
// spliced onto the deleted node's own parent so a subtree survives a
// single delete.
func (g *Graph) DeleteNode(id int) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	parent := n.Parent
	delete(g.nodes, id)
	for _, c := range g.nodes {
		if c.Parent == id {
			c.Parent = parent
		}
	}
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.FromID != id && e.ToID != id {
			kept = append(kept, e)
		}
	}
	g.edges = kept
	return true
}

func (g *Graph) SetNodePosition(id int, x, y float64) {
	if n := g.nodes[id]; n != nil {
		n.X = x
		n.Y = y
	}
}

func (g *Graph) MoveNode(id int, dx, dy float64) {
	if n := g.nodes[id]; n != nil {
		n.X += dx
		n.Y += dy
	}
}

// SetNodeSize clamps to the per-type bounds rather than rejecting, so
// a resize gesture saturates at the limit instead of failing.
func (g *Graph) SetNodeSize(id int, w, h float64) {
	n := g.nodes[id]
	if n == nil {
		return
	}
	b := n.Type.SizeBounds()
	if w < b.MinW {
		w = b.MinW
	}
	if w > b.MaxW {
		w = b.MaxW
	}
	if h < b.MinH {
		h = b.MinH
	}
	if h > b.MaxH {
		h = b.MaxH
	}
	n.Width = w
	n.Height = h
}

func (g *Graph) SetNodeParent(id, parent int) {
	if n := g.nodes[id]; n != nil {
		n.Parent = parent
	}
}

// BringToFront promotes the node above every other order key known at
// call time.
func (g *Graph) BringToFront(id int) {
	n := g.nodes[id]
	if n == nil {
		return
	}
	g.maxOrder++
	n.Order = g.maxOrder
}

// AddEdge creates a directed edge between two ports. Adding a triple
// that already exists, a self-edge, or an edge to a missing node is a
// no-op returning nil. Like every explicit edge mutation it also prunes
// edges left dangling by external deletes.
func (g *Graph) AddEdge(fromID, toID int, fromSide, toSide Side) *Edge {
	g.pruneDangling()
	if fromID == toID {
		return nil
	}
	if g.nodes[fromID] == nil || g.nodes[toID] == nil {
		return nil
	}
	for _, e := range g.edges {
		if e.FromID == fromID && e.ToID == toID && e.FromSide == fromSide && e.ToSide == toSide {
			return nil
		}
	}
	e := Edge{
		ID:       uuid.NewString(),
		FromID:   fromID,
		ToID:     toID,
		FromSide: fromSide,
		ToSide:   toSide,
	}
	g.edges = append(g.edges, e)
	return &g.edges[len(g.edges)-1]
}

func (g *Graph) RemoveEdge(id string) bool {
	g.pruneDangling()
	for i, e := range g.edges {
		if e.ID == id {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			return true
		}
	}
	return false
}

// RestoreEdge reinserts an edge verbatim. Used by undo.
func (g *Graph) RestoreEdge(e Edge) {
	g.edges = append(g.edges, e)
}

func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// EdgesInto returns the edges whose target is the given port, oldest
// first.
func (g *Graph) EdgesInto(nodeID int, side Side) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.ToID == nodeID && e.ToSide == side {
			out = append(out, e)
		}
	}
	return out
}

// EdgesAt returns every edge incident on the given port, as source or
// target, oldest first.
func (g *Graph) EdgesAt(nodeID int, side Side) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if (e.FromID == nodeID && e.FromSide == side) || (e.ToID == nodeID && e.ToSide == side) {
			out = append(out, e)
		}
	}
	return out
}

func (g *Graph) pruneDangling() {
	kept := g.edges[:0]
	for _, e := range g.edges {
		if g.nodes[e.FromID] != nil && g.nodes[e.ToID] != nil {
			kept = append(kept, e)
		}
	}
	g.edges = kept
}
