package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmDeleteNode ConfirmAction = iota
	ConfirmQuit
)

type BackgroundStyle int

const (
	BgDots BackgroundStyle = iota
	BgGrid
	BgBlank
)

type ActionType int

const (
	ActionAddNode ActionType = iota
	ActionDeleteNode
	ActionMoveNodes
	ActionResizeNode
	ActionEditNode
	ActionAddEdge
	ActionRemoveEdge
)

const (
	// Terminal cells are roughly twice as tall as wide; the renderer
	// maps one cell to cellW x cellH screen units.
	cellW = 1.0
	cellH = 2.0

	// World-unit text metrics used for content extents and export.
	charCellW = 10.0
	lineCellH = 20.0

	portHitCols = 2 // cell slop around a port anchor
	portHitRows = 1

	keyPanStep = 40.0 // screen units per arrow-key pan
	wheelStep  = 6.0  // screen units per wheel notch
	zoomStep   = 1.25

	defaultZoom = 0.15
)
