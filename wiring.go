package main

type WireState int

const (
	WireIdle WireState = iota
	WireActive
)

// WireController runs the click-to-connect interaction between ports.
// One click designates the pending source; a second click on a port of
// a different node creates the edge. Clicking a port that already
// receives an edge while idle disconnects instead: the most recently
// added incoming edge on that port is removed. Ports that only feed
// edges out re-enter wiring, so re-connecting an existing pair stays a
// no-op rather than tearing the edge down.
type WireController struct {
	graph  *Graph
	state  WireState
	source int
	side   Side
}

func NewWireController(g *Graph) *WireController {
	return &WireController{graph: g, source: -1}
}

func (w *WireController) State() WireState {
	return w.state
}

// SourceID returns the active wiring source node, -1 when idle. The
// drag controller uses it to refuse gestures on the wired node.
func (w *WireController) SourceID() int {
	if w.state != WireActive {
		return -1
	}
	return w.source
}

func (w *WireController) Source() (int, Side) {
	return w.source, w.side
}

// ClickPort drives the state machine. Returns the created edge when the
// click completed a connection, nil otherwise.
func (w *WireController) ClickPort(nodeID int, side Side) *Edge {
	if w.graph.Node(nodeID) == nil {
		return nil
	}
	if w.state == WireIdle {
		if in := w.graph.EdgesInto(nodeID, side); len(in) > 0 {
			w.graph.RemoveEdge(in[len(in)-1].ID)
			return nil
		}
		w.state = WireActive
		w.source = nodeID
		w.side = side
		return nil
	}
	if nodeID == w.source {
		// Second click on the source node, same port or not: cancel.
		w.reset()
		return nil
	}
	e := w.graph.AddEdge(w.source, nodeID, w.side, side)
	w.reset()
	return e
}

// Cancel exits wiring without creating an edge. Escape and clicks on
// empty canvas land here.
func (w *WireController) Cancel() {
	w.reset()
}

// ReleaseMissing transitions to idle when the source node disappeared
// under an external mutation. Returns true when the session was
// released.
func (w *WireController) ReleaseMissing() bool {
	if w.state != WireActive {
		return false
	}
	if w.graph.Node(w.source) != nil {
		return false
	}
	w.reset()
	return true
}

// Preview returns the live curve from the source port to the pointer,
// using the pointer's world position as a degenerate target rectangle.
func (w *WireController) Preview(pointer Point) (EdgePath, bool) {
	if w.state != WireActive {
		return EdgePath{}, false
	}
	n := w.graph.Node(w.source)
	if n == nil {
		w.reset()
		return EdgePath{}, false
	}
	target := Rect{pointer.X, pointer.Y, 0, 0}
	return RouteBetween(n.Rect(), w.side, target, w.side.Opposite()), true
}

func (w *WireController) reset() {
	w.state = WireIdle
	w.source = -1
}
