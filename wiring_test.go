package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireConnectTwoPorts(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard)
	b := g.AddNode(300, 0, NodeStandard)
	w := NewWireController(g)

	assert.Nil(t, w.ClickPort(a.ID, SideRight))
	assert.Equal(t, WireActive, w.State())
	assert.Equal(t, a.ID, w.SourceID())

	e := w.ClickPort(b.ID, SideLeft)
	require.NotNil(t, e)
	assert.Equal(t, a.ID, e.FromID)
	assert.Equal(t, b.ID, e.ToID)
	assert.Equal(t, SideRight, e.FromSide)
	assert.Equal(t, WireIdle, w.State())
	assert.Equal(t, -1, w.SourceID())
}

func TestWireRepeatedConnectionIsIdempotent(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard)
	b := g.AddNode(300, 0, NodeStandard)
	w := NewWireController(g)

	w.ClickPort(a.ID, SideRight)
	require.NotNil(t, w.ClickPort(b.ID, SideLeft))

	// The same sequence again: the source port only feeds an edge out,
	// so the first click re-enters wiring, and the duplicate add is a
	// no-op.
	assert.Nil(t, w.ClickPort(a.ID, SideRight))
	assert.Equal(t, WireActive, w.State())
	assert.Nil(t, w.ClickPort(b.ID, SideLeft), "duplicate edge refused")
	assert.Equal(t, WireIdle, w.State())
	assert.Len(t, g.Edges(), 1)
}

func TestWireSecondClickOnSourceCancels(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard)
	w := NewWireController(g)

	w.ClickPort(a.ID, SideRight)
	assert.Nil(t, w.ClickPort(a.ID, SideBottom), "any port of the source cancels")
	assert.Equal(t, WireIdle, w.State())
	assert.Empty(t, g.Edges())
}

func TestWireCancel(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard)
	w := NewWireController(g)

	w.ClickPort(a.ID, SideRight)
	w.Cancel()
	assert.Equal(t, WireIdle, w.State())

	// Cancel while idle is harmless.
	w.Cancel()
	assert.Equal(t, WireIdle, w.State())
}

func TestWireClickConnectedPortDisconnects(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard)
	b := g.AddNode(300, 0, NodeStandard)
	w := NewWireController(g)

	w.ClickPort(a.ID, SideRight)
	require.NotNil(t, w.ClickPort(b.ID, SideLeft))
	require.Len(t, g.Edges(), 1)

	// Clicking the receiving port while idle removes the edge instead of
	// starting a new wiring session.
	assert.Nil(t, w.ClickPort(b.ID, SideLeft))
	assert.Equal(t, WireIdle, w.State())
	assert.Empty(t, g.Edges())
}

func TestWireDisconnectRemovesMostRecentIncoming(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard)
	b := g.AddNode(0, 300, NodeStandard)
	c := g.AddNode(300, 150, NodeStandard)
	first := g.AddEdge(a.ID, c.ID, SideRight, SideLeft)
	second := g.AddEdge(b.ID, c.ID, SideRight, SideLeft)
	require.NotNil(t, first)
	require.NotNil(t, second)
	firstID := first.ID

	w := NewWireController(g)
	w.ClickPort(c.ID, SideLeft)

	edges := g.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, firstID, edges[0].ID, "newest incoming edge removed first")
}

func TestWireSourceDeletedExternally(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard)
	b := g.AddNode(300, 0, NodeStandard)
	w := NewWireController(g)

	w.ClickPort(a.ID, SideRight)
	g.DeleteNode(a.ID)

	assert.True(t, w.ReleaseMissing())
	assert.Equal(t, WireIdle, w.State())

	// Completing against the survivor afterwards starts fresh.
	assert.Nil(t, w.ClickPort(b.ID, SideRight))
	assert.Equal(t, b.ID, w.SourceID())
}

func TestWirePreviewTracksPointer(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(0, 0, NodeStandard) // 240x140, right anchor (240, 70)
	w := NewWireController(g)

	_, ok := w.Preview(Point{500, 70})
	assert.False(t, ok, "no preview while idle")

	w.ClickPort(a.ID, SideRight)
	path, ok := w.Preview(Point{500, 70})
	require.True(t, ok)
	assert.Equal(t, Point{240, 70}, path.From)
	assert.Equal(t, Point{500, 70}, path.To)
	assert.Equal(t, SideRight, path.FromSide)
	assert.Equal(t, SideLeft, path.ToSide)
}

func TestWireClickMissingNodeIgnored(t *testing.T) {
	g := NewGraph()
	w := NewWireController(g)
	assert.Nil(t, w.ClickPort(42, SideTop))
	assert.Equal(t, WireIdle, w.State())
}
