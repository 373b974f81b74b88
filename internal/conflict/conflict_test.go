package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
)

func lineMap(t *testing.T, n int) *core.Map {
	t.Helper()
	b := core.NewMapBuilder()
	for i := 0; i < n; i++ {
		require.NoError(t, b.AddNode(core.NodeID(i), float64(i), 0))
	}
	for i := 0; i < n-1; i++ {
		require.NoError(t, b.AddEdge(core.NodeID(i), core.NodeID(i+1)))
	}
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestCheckPaths_HeadOnDetected(t *testing.T) {
	m := lineMap(t, 3)
	pA := &core.SinglePath{AgentID: 0, Cost: 2, Nodes: []core.PathStep{
		{Node: 0, Time: 0}, {Node: 1, Time: 1}, {Node: 2, Time: 2},
	}}
	pB := &core.SinglePath{AgentID: 1, Cost: 2, Nodes: []core.PathStep{
		{Node: 2, Time: 0}, {Node: 1, Time: 1}, {Node: 0, Time: 2},
	}}

	c := CheckPaths(m, pA, pB, 0.353, 1e-5)
	require.NotNil(t, c)
	assert.Equal(t, core.AgentID(0), c.AgentA)
	assert.Equal(t, core.AgentID(1), c.AgentB)
}

func TestCheckPaths_NoConflictWhenFarApart(t *testing.T) {
	m := lineMap(t, 10)
	pA := &core.SinglePath{AgentID: 0, Cost: 2, Nodes: []core.PathStep{
		{Node: 0, Time: 0}, {Node: 1, Time: 1}, {Node: 2, Time: 2},
	}}
	pB := &core.SinglePath{AgentID: 1, Cost: 2, Nodes: []core.PathStep{
		{Node: 8, Time: 0}, {Node: 9, Time: 1},
	}}

	c := CheckPaths(m, pA, pB, 0.353, 1e-5)
	assert.Nil(t, c)
}

func TestCheckPaths_GoalHoldExtendsComparison(t *testing.T) {
	m := lineMap(t, 3)
	// A reaches node 2 at t=2 and holds forever; B starts at node 2 at
	// t=3 heading to node 0 — A must still be occupying node 2.
	pA := &core.SinglePath{AgentID: 0, Cost: 2, Nodes: []core.PathStep{
		{Node: 0, Time: 0}, {Node: 1, Time: 1}, {Node: 2, Time: 2},
	}}
	pB := &core.SinglePath{AgentID: 1, Cost: 2, Nodes: []core.PathStep{
		{Node: 2, Time: 3}, {Node: 1, Time: 4}, {Node: 0, Time: 5},
	}}

	c := CheckPaths(m, pA, pB, 0.353, 1e-5)
	require.NotNil(t, c)
}
