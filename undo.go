package main

func (m *model) recordAction(actionType ActionType, data, inverse interface{}) {
	m.undoStack = append(m.undoStack, Action{Type: actionType, Data: data, Inverse: inverse})
	m.redoStack = m.redoStack[:0]
}

func (m *model) undo() {
	if len(m.undoStack) == 0 {
		return
	}
	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	m.undoStack = m.undoStack[:lastIndex]

	switch action.Type {
	case ActionAddNode:
		data := action.Data.(AddNodeData)
		m.graph.DeleteNode(data.Node.ID)
	case ActionDeleteNode:
		data := action.Data.(DeleteNodeData)
		m.graph.RestoreNode(data.Node)
		for _, e := range data.Edges {
			m.graph.RestoreEdge(e)
		}
		for _, childID := range data.ChildIDs {
			m.graph.SetNodeParent(childID, data.Node.ID)
		}
	case ActionMoveNodes:
		data := action.Inverse.(MoveNodesData)
		for id, p := range data.Positions {
			m.graph.SetNodePosition(id, p.X, p.Y)
		}
	case ActionResizeNode:
		data := action.Inverse.(ResizeNodeData)
		m.graph.SetNodeSize(data.ID, data.W, data.H)
	case ActionEditNode:
		data := action.Inverse.(EditNodeData)
		if n := m.graph.Node(data.ID); n != nil {
			n.SetText(data.Text)
		}
	case ActionAddEdge:
		data := action.Data.(EdgeActionData)
		m.graph.RemoveEdge(data.Edge.ID)
	case ActionRemoveEdge:
		data := action.Data.(EdgeActionData)
		m.graph.RestoreEdge(data.Edge)
	}

	m.redoStack = append(m.redoStack, action)
	m.afterGraphChange()
}

func (m *model) redo() {
	if len(m.redoStack) == 0 {
		return
	}
	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	m.redoStack = m.redoStack[:lastIndex]

	switch action.Type {
	case ActionAddNode:
		data := action.Data.(AddNodeData)
		m.graph.RestoreNode(data.Node)
	case ActionDeleteNode:
		data := action.Data.(DeleteNodeData)
		m.graph.DeleteNode(data.Node.ID)
	case ActionMoveNodes:
		data := action.Data.(MoveNodesData)
		for id, p := range data.Positions {
			m.graph.SetNodePosition(id, p.X, p.Y)
		}
	case ActionResizeNode:
		data := action.Data.(ResizeNodeData)
		m.graph.SetNodeSize(data.ID, data.W, data.H)
	case ActionEditNode:
		data := action.Data.(EditNodeData)
		if n := m.graph.Node(data.ID); n != nil {
			n.SetText(data.Text)
		}
	case ActionAddEdge:
		data := action.Data.(EdgeActionData)
		m.graph.RestoreEdge(data.Edge)
	case ActionRemoveEdge:
		data := action.Data.(EdgeActionData)
		m.graph.RemoveEdge(data.Edge.ID)
	}

	m.undoStack = append(m.undoStack, action)
	m.afterGraphChange()
}
