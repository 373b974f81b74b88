package sipp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
	"github.com/elektrokombinacija/mapf-ct/internal/heuristic"
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

func TestPlan_NoConstraints(t *testing.T) {
	m := lineMap(t, 5)
	oracle := heuristic.Build(m, []core.NodeID{4})
	cfg := core.DefaultConfig()

	res := Plan(m, oracle, 0, 0, 4, nil, cfg)
	require.True(t, res.Found)
	assert.InDelta(t, 4.0, res.Path.Cost, 1e-6)
	assert.Equal(t, core.NodeID(0), res.Path.Nodes[0].Node)
	assert.Equal(t, core.NodeID(4), res.Path.Nodes[len(res.Path.Nodes)-1].Node)
}

func TestPlan_WaitConstraintForcesDelay(t *testing.T) {
	m := lineMap(t, 3)
	oracle := heuristic.Build(m, []core.NodeID{2})
	cfg := core.DefaultConfig()

	// Forbid agent 0 from occupying the intermediate node 1 during (0, 3):
	// since the unconstrained arrival at node 1 (t=1) falls inside the
	// excluded window, the agent must wait at node 0 so that it reaches
	// node 1 no earlier than t=3, when the window reopens.
	cs := []core.Constraint{{AgentID: 0, T1: 0, T2: 3, From: 1, To: 1}}
	res := Plan(m, oracle, 0, 0, 2, cs, cfg)
	require.True(t, res.Found)
	assert.GreaterOrEqual(t, res.Path.Nodes[0].Time, 0.0)

	moves := res.Path.Moves()
	require.NotEmpty(t, moves)
	var arrivedAtMiddle float64 = -1
	for _, mv := range moves {
		if mv.To == 1 {
			arrivedAtMiddle = mv.T2
		}
	}
	require.GreaterOrEqual(t, arrivedAtMiddle, 0.0)
	assert.GreaterOrEqual(t, arrivedAtMiddle, 3.0-1e-6)
}

func TestPlan_InfeasibleWhenGoalPermanentlyBlocked(t *testing.T) {
	m := lineMap(t, 2)
	oracle := heuristic.Build(m, []core.NodeID{1})
	cfg := core.DefaultConfig()

	cs := []core.Constraint{{AgentID: 0, T1: 0, T2: Inf, From: 1, To: 1}}
	res := Plan(m, oracle, 0, 0, 1, cs, cfg)
	assert.False(t, res.Found)
}

func TestPlan_PositiveConstraintForcesExactMove(t *testing.T) {
	m := lineMap(t, 3)
	oracle := heuristic.Build(m, []core.NodeID{2})
	cfg := core.DefaultConfig()

	cs := []core.Constraint{{AgentID: 0, T1: 0, T2: 1, From: 0, To: 1, Positive: true}}
	res := Plan(m, oracle, 0, 0, 2, cs, cfg)
	require.True(t, res.Found)
	moves := res.Path.Moves()
	require.NotEmpty(t, moves)
	assert.Equal(t, core.NodeID(0), moves[0].From)
	assert.Equal(t, core.NodeID(1), moves[0].To)
}
