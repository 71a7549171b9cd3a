package main

type model struct {
	width  int
	height int

	graph  *Graph
	vp     Viewport
	router *RouterContext
	drag   *DragController
	wire   *WireController

	undoStack []Action
	redoStack []Action

	mode          Mode
	confirmAction ConfirmAction
	confirmNodeID int

	bg     BackgroundStyle
	config *Config

	pointer    Point // last pointer position in screen units
	pressShift bool

	editID     int
	editBuf    string
	editOrig   string
	editCursor int

	statusMessage string
	errorMessage  string
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type AddNodeData struct {
	Node Node
}

type DeleteNodeData struct {
	Node     Node
	Edges    []Edge
	ChildIDs []int
}

type MoveNodesData struct {
	Positions map[int]Point
}

type ResizeNodeData struct {
	ID int
	W  float64
	H  float64
}

type EditNodeData struct {
	ID   int
	Text string
}

type EdgeActionData struct {
	Edge Edge
}
