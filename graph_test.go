package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNodeDefaults(t *testing.T) {
	g := NewGraph()
	n := g.AddNode(10, 20, NodeStandard)
	require.NotNil(t, n)
	assert.Equal(t, 0, n.ID)
	assert.Equal(t, 240.0, n.Width)
	assert.Equal(t, 140.0, n.Height)
	assert.Equal(t, -1, n.Parent)
	assert.False(t, n.Created.IsZero())

	m := g.AddNode(0, 0, NodeTitle)
	assert.Equal(t, 1, m.ID)
	assert.Greater(t, m.Order, n.Order, "later nodes stack in front")
}

func TestSetNodeSizeClampsToTypeBounds(t *testing.T) {
	g := NewGraph()
	n := g.AddNode(0, 0, NodeTitle)

	g.SetNodeSize(n.ID, 10, 10)
	assert.Equal(t, 200.0, n.Width)
	assert.Equal(t, 60.0, n.Height)

	g.SetNodeSize(n.ID, 1e9, 1e9)
	assert.Equal(t, 2000.0, n.Width)
	assert.Equal(t, 200.0, n.Height)
}

func TestDeleteNodeSplicesChildrenToGrandparent(t *testing.T) {
	g := NewGraph()
	root := g.AddNode(0, 0, NodeStandard)
	mid := g.AddNode(0, 0, NodeStandard)
	leaf := g.AddNode(0, 0, NodeStandard)
	g.SetNodeParent(mid.ID, root.ID)
	g.SetNodeParent(leaf.ID, mid.ID)

	require.True(t, g.DeleteNode(mid.ID))
	assert.Nil(t, g.Node(mid.ID))
	assert.Equal(t, root.ID, g.Node(leaf.ID).Parent)

	// Deleting a root orphans its children.
	require.True(t, g.DeleteNode(root.ID))
	assert.Equal(t, -1, g.Node(leaf.ID).Parent)
}

func TestDeleteNodeRemovesIncidentEdges(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard)
	b := g.AddNode(300, 0, NodeStandard)
	c := g.AddNode(600, 0, NodeStandard)
	require.NotNil(t, g.AddEdge(a.ID, b.ID, SideRight, SideLeft))
	require.NotNil(t, g.AddEdge(b.ID, c.ID, SideRight, SideLeft))
	require.NotNil(t, g.AddEdge(a.ID, c.ID, SideBottom, SideTop))

	g.DeleteNode(b.ID)
	edges := g.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, a.ID, edges[0].FromID)
	assert.Equal(t, c.ID, edges[0].ToID)
}

func TestAddEdgeRejectsDuplicateAndSelf(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard)
	b := g.AddNode(300, 0, NodeStandard)

	require.NotNil(t, g.AddEdge(a.ID, b.ID, SideRight, SideLeft))
	assert.Nil(t, g.AddEdge(a.ID, b.ID, SideRight, SideLeft), "same triple is a no-op")
	assert.Len(t, g.Edges(), 1)

	// A different port pair between the same nodes is a distinct edge.
	assert.NotNil(t, g.AddEdge(a.ID, b.ID, SideBottom, SideTop))

	assert.Nil(t, g.AddEdge(a.ID, a.ID, SideRight, SideLeft), "self-edge")
	assert.Nil(t, g.AddEdge(a.ID, 999, SideRight, SideLeft), "missing target")
}

func TestEdgeMutationsPruneDangling(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard)
	b := g.AddNode(300, 0, NodeStandard)
	c := g.AddNode(600, 0, NodeStandard)
	g.AddEdge(a.ID, b.ID, SideRight, SideLeft)

	// Simulate a restore that references a node no longer present.
	g.RestoreEdge(Edge{ID: "ghost", FromID: 999, ToID: b.ID})
	require.Len(t, g.Edges(), 2)

	g.AddEdge(b.ID, c.ID, SideRight, SideLeft)
	for _, e := range g.Edges() {
		assert.NotEqual(t, "ghost", e.ID)
	}
}

func TestEdgesIntoFiltersByTargetPort(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard)
	b := g.AddNode(300, 0, NodeStandard)
	c := g.AddNode(600, 0, NodeStandard)
	g.AddEdge(a.ID, b.ID, SideRight, SideLeft)
	g.AddEdge(c.ID, b.ID, SideLeft, SideLeft)
	g.AddEdge(b.ID, c.ID, SideRight, SideLeft)

	into := g.EdgesInto(b.ID, SideLeft)
	require.Len(t, into, 2)
	assert.Equal(t, a.ID, into[0].FromID, "oldest first")
	assert.Empty(t, g.EdgesInto(b.ID, SideTop))
	assert.Len(t, g.EdgesAt(b.ID, SideLeft), 2)
	assert.Len(t, g.EdgesAt(c.ID, SideLeft), 2)
}

func TestBringToFrontPromotesAboveAll(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard)
	b := g.AddNode(0, 0, NodeStandard)
	c := g.AddNode(0, 0, NodeStandard)

	g.BringToFront(a.ID)
	byOrder := g.NodesByOrder()
	assert.Equal(t, a.ID, byOrder[len(byOrder)-1].ID)
	assert.Greater(t, a.Order, c.Order)
	assert.Greater(t, a.Order, b.Order)
}

func TestRestoreNodeKeepsIDAndOrder(t *testing.T) {
	g := NewGraph()
	n := g.AddNode(5, 5, NodeNote)
	snapshot := *n
	g.DeleteNode(n.ID)

	g.RestoreNode(snapshot)
	got := g.Node(snapshot.ID)
	require.NotNil(t, got)
	assert.Equal(t, snapshot.Order, got.Order)

	// New ids keep advancing past the restored one.
	fresh := g.AddNode(0, 0, NodeStandard)
	assert.Greater(t, fresh.ID, snapshot.ID)
}

func TestNodeTextRoundTrip(t *testing.T) {
	g := NewGraph()
	n := g.AddNode(0, 0, NodeStandard)
	n.SetText("first\nsecond")
	assert.Equal(t, []string{"first", "second"}, n.Lines)
	assert.Equal(t, "first\nsecond", n.GetText())
}
