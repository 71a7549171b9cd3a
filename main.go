package main

import (
	"fmt"
	"log"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	p := tea.NewProgram(
		initialModel(),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
	modalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("94")).
			Bold(true)
)

func initialModel() model {
	cfg := loadConfig()
	g := NewGraph()
	drag := NewDragController(g)
	drag.SnapThreshold = cfg.SnapThreshold
	return model{
		graph:  g,
		vp:     Viewport{Zoom: defaultZoom},
		router: NewRouterContext(),
		drag:   drag,
		wire:   NewWireController(g),
		mode:   ModeNormal,
		bg:     cfg.backgroundStyle(),
		config: cfg,
		editID: -1,
	}
}

// External collaborator messages. Background work (generation,
// persistence restore, sync) delivers results back onto this event loop
// as discrete messages; the handlers below apply them to the graph
// without disturbing an in-progress gesture.

// modalPresentedMsg is the process-wide "modal presented" signal. While
// set, the canvas ignores every input event.
type modalPresentedMsg bool

// nodeContentMsg replaces a node's text content.
type nodeContentMsg struct {
	ID   int
	Text string
}

// nodeFlagsMsg updates the advisory flags of a node.
type nodeFlagsMsg struct {
	ID         int
	Generating bool
	Errored    bool
	Unread     bool
}

// externalDeleteMsg removes a node on behalf of an external
// collaborator. Any gesture targeting it is released on the same turn.
type externalDeleteMsg int

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildRegions()
		return m, nil
	case modalPresentedMsg:
		m.router.SetModal(bool(msg))
		return m, nil
	case nodeContentMsg:
		if n := m.graph.Node(msg.ID); n != nil {
			n.SetText(msg.Text)
			m.rebuildRegions()
		}
		return m, nil
	case nodeFlagsMsg:
		if n := m.graph.Node(msg.ID); n != nil {
			n.Generating = msg.Generating
			n.Errored = msg.Errored
			n.Unread = msg.Unread
		}
		return m, nil
	case externalDeleteMsg:
		m.graph.DeleteNode(int(msg))
		m.afterGraphChange()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// afterGraphChange releases gestures whose target vanished and
// refreshes the scroll-region index. Called after any mutation that did
// not come from an in-progress gesture.
func (m *model) afterGraphChange() {
	m.drag.ReleaseMissing()
	m.wire.ReleaseMissing()
	for _, id := range m.drag.Sel.IDs() {
		if m.graph.Node(id) == nil {
			m.drag.Sel.Toggle(id)
		}
	}
	m.rebuildRegions()
}

// rebuildRegions refreshes the scroll-region index from the expanded
// nodes. The index is rebuilt on layout change, never walked per event.
func (m *model) rebuildRegions() {
	keep := make(map[int]bool)
	for _, n := range m.graph.Nodes() {
		if !n.Expanded {
			continue
		}
		r := m.vp.RectToScreen(n.Rect())
		inner := Rect{r.X + cellW, r.Y + cellH, r.W - 2*cellW, r.H - 2*cellH}
		if inner.W <= 0 || inner.H <= 0 {
			continue
		}
		maxLine := 0
		for _, line := range n.Lines {
			if len(line) > maxLine {
				maxLine = len(line)
			}
		}
		keep[n.ID] = true
		m.router.UpsertRegion(ScrollRegion{
			ID:       n.ID,
			Bounds:   inner,
			ContentW: float64(maxLine) * charCellW * m.vp.Zoom,
			ContentH: float64(len(n.Lines)) * lineCellH * m.vp.Zoom,
			Z:        n.Order,
		})
	}
	m.router.RetainRegions(keep)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.router.ModalActive {
		// The modal owns input exclusively; only its own dismiss
		// control reaches the canvas.
		if s := msg.String(); s == "m" || s == "esc" {
			m.router.SetModal(false)
		}
		return m, nil
	}
	switch m.mode {
	case ModeEditing:
		return m.handleEditKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "esc":
		m.wire.Cancel()
		m.drag.Sel.Clear()
		return m, nil
	case "n":
		return m.createNodeAtPointer(NodeStandard), nil
	case "t":
		return m.createNodeAtPointer(NodeTitle), nil
	case "L":
		return m.createNodeAtPointer(NodeTextLabel), nil
	case "s":
		return m.createNodeAtPointer(NodeShape), nil
	case "o":
		return m.createNodeAtPointer(NodeNote), nil
	case "i":
		return m.createNodeAtPointer(NodeImage), nil
	case "enter":
		if n := m.graph.Node(m.drag.Sel.Primary); n != nil {
			n.Expanded = !n.Expanded
			m.rebuildRegions()
		}
		return m, nil
	case "e":
		if n := m.graph.Node(m.drag.Sel.Primary); n != nil {
			m.mode = ModeEditing
			m.editID = n.ID
			m.editOrig = n.GetText()
			m.editBuf = m.editOrig
			m.editCursor = len(m.editBuf)
		}
		return m, nil
	case "d", "backspace":
		if n := m.graph.Node(m.drag.Sel.Primary); n != nil {
			if m.config.Confirmations {
				m.mode = ModeConfirm
				m.confirmAction = ConfirmDeleteNode
				m.confirmNodeID = n.ID
			} else {
				m.deleteNode(n.ID)
			}
		}
		return m, nil
	case "u":
		m.undo()
		return m, nil
	case "ctrl+r":
		m.redo()
		return m, nil
	case "y":
		if n := m.graph.Node(m.drag.Sel.Primary); n != nil {
			if err := copyNodeText(n); err != nil {
				m.errorMessage = "clipboard unavailable"
			} else {
				m.statusMessage = "copied"
			}
		}
		return m, nil
	case "p":
		at := m.vp.ScreenToWorld(m.pointer)
		if n := pasteNoteAt(m.graph, at); n != nil {
			m.recordAction(ActionAddNode, AddNodeData{Node: *n}, nil)
			m.drag.Sel.Set(n.ID)
			m.rebuildRegions()
		} else {
			m.errorMessage = "clipboard empty"
		}
		return m, nil
	case "x":
		if err := exportPNG(m.graph, m.config.ExportFile, m.config.ExportPadding); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.statusMessage = "exported " + m.config.ExportFile
		}
		return m, nil
	case "f":
		var rects []Rect
		for _, n := range m.graph.Nodes() {
			rects = append(rects, n.Rect())
		}
		m.vp.ZoomToFit(rects, float64(m.width)*cellW, float64(m.height-1)*cellH)
		m.rebuildRegions()
		return m, nil
	case "0":
		m.vp = Viewport{Zoom: defaultZoom}
		m.rebuildRegions()
		return m, nil
	case "+", "=":
		m.vp.ZoomAt(zoomStep, m.screenCenter())
		m.rebuildRegions()
		return m, nil
	case "-":
		m.vp.ZoomAt(1/zoomStep, m.screenCenter())
		m.rebuildRegions()
		return m, nil
	case "g":
		m.bg = (m.bg + 1) % 3
		return m, nil
	case "m":
		m.router.SetModal(!m.router.ModalActive)
		return m, nil
	case "h", "left":
		m.vp.Pan(keyPanStep, 0)
		m.rebuildRegions()
		return m, nil
	case "l", "right":
		m.vp.Pan(-keyPanStep, 0)
		m.rebuildRegions()
		return m, nil
	case "k", "up":
		m.vp.Pan(0, keyPanStep)
		m.rebuildRegions()
		return m, nil
	case "j", "down":
		m.vp.Pan(0, -keyPanStep)
		m.rebuildRegions()
		return m, nil
	}
	return m, nil
}

func (m model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.graph.Node(m.editID)
	if n == nil {
		m.mode = ModeNormal
		m.editID = -1
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEscape:
		if m.editBuf != m.editOrig {
			m.recordAction(ActionEditNode,
				EditNodeData{ID: n.ID, Text: m.editBuf},
				EditNodeData{ID: n.ID, Text: m.editOrig})
		}
		n.SetText(m.editBuf)
		m.mode = ModeNormal
		m.editID = -1
		m.rebuildRegions()
	case tea.KeyCtrlX:
		n.SetText(m.editOrig)
		m.mode = ModeNormal
		m.editID = -1
		m.rebuildRegions()
	case tea.KeyEnter:
		m.editBuf = m.editBuf[:m.editCursor] + "\n" + m.editBuf[m.editCursor:]
		m.editCursor++
		n.SetText(m.editBuf)
	case tea.KeyBackspace:
		if m.editCursor > 0 {
			m.editBuf = m.editBuf[:m.editCursor-1] + m.editBuf[m.editCursor:]
			m.editCursor--
			n.SetText(m.editBuf)
		}
	case tea.KeyLeft:
		if m.editCursor > 0 {
			m.editCursor--
		}
	case tea.KeyRight:
		if m.editCursor < len(m.editBuf) {
			m.editCursor++
		}
	case tea.KeyRunes, tea.KeySpace:
		m.editBuf = m.editBuf[:m.editCursor] + string(msg.Runes) + m.editBuf[m.editCursor:]
		m.editCursor += len(string(msg.Runes))
		n.SetText(m.editBuf)
	}
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmDeleteNode:
			m.deleteNode(m.confirmNodeID)
		}
	case "n", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m *model) createNodeAtPointer(typ NodeType) model {
	at := m.vp.ScreenToWorld(m.pointer)
	n := m.graph.AddNode(at.X, at.Y, typ)
	m.recordAction(ActionAddNode, AddNodeData{Node: *n}, nil)
	m.drag.Sel.Set(n.ID)
	m.rebuildRegions()
	return *m
}

func (m *model) deleteNode(id int) {
	n := m.graph.Node(id)
	if n == nil {
		return
	}
	var incident []Edge
	for _, e := range m.graph.Edges() {
		if e.FromID == id || e.ToID == id {
			incident = append(incident, e)
		}
	}
	var childIDs []int
	for _, c := range m.graph.Nodes() {
		if c.Parent == id {
			childIDs = append(childIDs, c.ID)
		}
	}
	m.recordAction(ActionDeleteNode,
		DeleteNodeData{Node: *n, Edges: incident, ChildIDs: childIDs}, nil)
	m.graph.DeleteNode(id)
	m.drag.Sel.Clear()
	m.afterGraphChange()
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := Point{float64(msg.X) * cellW, float64(msg.Y) * cellH}
	m.pointer = p

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.routeScroll(p, 0, -wheelStep, msg.Ctrl)
		case tea.MouseButtonWheelDown:
			return m.routeScroll(p, 0, wheelStep, msg.Ctrl)
		case tea.MouseButtonWheelLeft:
			return m.routeScroll(p, -wheelStep, 0, msg.Ctrl)
		case tea.MouseButtonWheelRight:
			return m.routeScroll(p, wheelStep, 0, msg.Ctrl)
		case tea.MouseButtonLeft:
			return m.pressLeft(p, msg.Shift)
		}
	case tea.MouseActionMotion:
		if m.router.ModalActive {
			return m, nil
		}
		m.drag.PointerMove(p, m.vp)
		if m.drag.Kind() == GestureDrag || m.drag.Kind() == GestureResize {
			m.rebuildRegions()
		}
		return m, nil
	case tea.MouseActionRelease:
		return m.releaseLeft(p)
	}
	return m, nil
}

// routeScroll sends a scroll event to exactly one consumer: a scroll
// region, the canvas pan/zoom handler, or nowhere.
func (m model) routeScroll(p Point, dx, dy float64, ctrl bool) (tea.Model, tea.Cmd) {
	route, region := m.router.RouteScroll(p, dx, dy)
	switch route {
	case RouteRegion:
		region.ApplyScroll(dx, dy)
	case RouteCanvas:
		if ctrl {
			factor := zoomStep
			if dy > 0 {
				factor = 1 / zoomStep
			}
			m.vp.ZoomAt(factor, p)
		} else {
			m.vp.Pan(-dx, -dy)
		}
		m.rebuildRegions()
	}
	return m, nil
}

func (m model) pressLeft(p Point, shift bool) (tea.Model, tea.Cmd) {
	if m.router.ModalActive {
		return m, nil
	}
	if m.mode == ModeEditing {
		// Clicking away commits the edit in place.
		if n := m.graph.Node(m.editID); n != nil && m.editBuf != m.editOrig {
			m.recordAction(ActionEditNode,
				EditNodeData{ID: m.editID, Text: m.editBuf},
				EditNodeData{ID: m.editID, Text: m.editOrig})
		}
		m.mode = ModeNormal
		m.editID = -1
	}

	m.router.PointerDown(p)
	m.pressShift = shift
	m.statusMessage = ""

	if id, side, ok := m.portAt(p); ok {
		m.clickPort(id, side)
		return m, nil
	}

	if id, onHandle := m.nodeAt(p); id >= 0 {
		if onHandle {
			m.drag.BeginResize(id, p, m.wire.SourceID())
		} else {
			m.drag.PointerDown(id, p, m.wire.SourceID())
		}
		return m, nil
	}

	// Empty canvas: cancel wiring, clear the multi-selection.
	m.wire.Cancel()
	if !shift {
		m.drag.Sel.Clear()
	}
	return m, nil
}

func (m *model) clickPort(id int, side Side) {
	before := m.graph.EdgesInto(id, side)
	if e := m.wire.ClickPort(id, side); e != nil {
		m.recordAction(ActionAddEdge, EdgeActionData{Edge: *e}, nil)
		m.statusMessage = "connected"
		return
	}
	after := m.graph.EdgesInto(id, side)
	if len(after) < len(before) {
		removed := before[len(before)-1]
		m.recordAction(ActionRemoveEdge, EdgeActionData{Edge: removed}, nil)
		m.statusMessage = "disconnected"
	}
}

func (m model) releaseLeft(p Point) (tea.Model, tea.Cmd) {
	if m.router.ModalActive {
		return m, nil
	}
	commit, ok := m.drag.PointerUp()
	if !ok {
		return m, nil
	}
	switch commit.Kind {
	case GesturePressed:
		// A press that never crossed the drag threshold is a click.
		id := commit.NodeID
		if m.pressShift {
			m.drag.Sel.Toggle(id)
		} else {
			m.drag.Sel.Set(id)
		}
	case GestureDrag:
		from := commit.Moves
		to := make(map[int]Point, len(from))
		for id := range from {
			if n := m.graph.Node(id); n != nil {
				to[id] = Point{n.X, n.Y}
			}
		}
		m.recordAction(ActionMoveNodes, MoveNodesData{Positions: to}, MoveNodesData{Positions: from})
		m.rebuildRegions()
	case GestureResize:
		if n := m.graph.Node(commit.NodeID); n != nil {
			m.recordAction(ActionResizeNode,
				ResizeNodeData{ID: n.ID, W: n.Width, H: n.Height},
				ResizeNodeData{ID: n.ID, W: commit.OldW, H: commit.OldH})
		}
		m.rebuildRegions()
	}
	return m, nil
}

// portAt hit-tests the four port anchors of every node, frontmost
// first, with a small cell slop.
func (m *model) portAt(p Point) (int, Side, bool) {
	col := int(math.Floor(p.X / cellW))
	row := int(math.Floor(p.Y / cellH))
	nodes := m.graph.NodesByOrder()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		for _, side := range []Side{SideTop, SideRight, SideBottom, SideLeft} {
			ax, ay := cellAt(m.vp, side.Anchor(n.Rect()))
			if abs(col-ax) <= portHitCols && abs(row-ay) <= portHitRows {
				return n.ID, side, true
			}
		}
	}
	return -1, SideTop, false
}

// nodeAt returns the frontmost node whose screen rectangle contains the
// point, and whether the point sits on its resize handle.
func (m *model) nodeAt(p Point) (int, bool) {
	nodes := m.graph.NodesByOrder()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		r := m.vp.RectToScreen(n.Rect())
		if !r.Contains(p) {
			continue
		}
		col := int(math.Floor(p.X / cellW))
		row := int(math.Floor(p.Y / cellH))
		hx := int(math.Floor((r.X + r.W) / cellW))
		hy := int(math.Floor((r.Y + r.H) / cellH))
		onHandle := m.drag.Sel.Primary == n.ID && abs(col-hx) <= 1 && abs(row-hy) <= 1
		return n.ID, onHandle
	}
	return -1, false
}

func (m model) screenCenter() Point {
	return Point{float64(m.width) * cellW / 2, float64(m.height) * cellH / 2}
}

func (m model) View() string {
	renderHeight := m.height - 1
	if renderHeight < 1 {
		renderHeight = 1
	}

	opts := frameOpts{
		sel:        &m.drag.Sel,
		guides:     m.drag.Guides,
		bg:         m.bg,
		wireSource: m.wire.SourceID(),
		showPorts:  m.wire.State() == WireActive,
		scrollRows: m.scrollRows(),
	}
	if _, side := m.wire.Source(); m.wire.State() == WireActive {
		opts.wireSide = side
	}
	if path, ok := m.wire.Preview(m.vp.ScreenToWorld(m.pointer)); ok {
		opts.preview = &path
	}

	lines := renderFrame(m.graph, m.vp, m.width, renderHeight, opts)

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.statusLine())
	return b.String()
}

// scrollRows maps region scroll offsets to whole hidden text lines per
// node for the renderer.
func (m model) scrollRows() map[int]int {
	out := make(map[int]int)
	for _, n := range m.graph.Nodes() {
		r := m.router.Region(n.ID)
		if r == nil || r.ScrollY <= 0 {
			continue
		}
		lineH := lineCellH * m.vp.Zoom
		if lineH <= 0 {
			continue
		}
		out[n.ID] = int(r.ScrollY / lineH)
	}
	return out
}

func (m model) statusLine() string {
	if m.router.ModalActive {
		return modalStyle.Width(m.width).Render(" modal active: input captured ")
	}
	var left string
	switch m.mode {
	case ModeEditing:
		left = " EDIT  esc:done ctrl+x:discard"
	case ModeConfirm:
		switch m.confirmAction {
		case ConfirmQuit:
			left = " quit? y/n"
		case ConfirmDeleteNode:
			left = " delete node? y/n"
		}
	default:
		if m.wire.State() == WireActive {
			left = " WIRE  click a port to connect, esc to cancel"
		} else {
			left = fmt.Sprintf(" %d nodes · %d edges · zoom %.0f%%",
				m.graph.NodeCount(), len(m.graph.Edges()), m.vp.Zoom*100)
		}
	}
	if m.errorMessage != "" {
		left += "  " + errorStyle.Render(m.errorMessage)
	} else if m.statusMessage != "" {
		left += "  " + m.statusMessage
	}
	return statusBarStyle.Width(m.width).Render(left)
}
