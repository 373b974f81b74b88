package orchestrator

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

func TestSolve_SingleAgentSuccess(t *testing.T) {
	m := lineMap(t, 5)
	task := core.NewTask([]core.Agent{{ID: 0, Start: 0, Goal: 4}})

	sol, err := Solve(m, task, core.DefaultConfig(), nil)
	require.NoError(t, err)
	require.True(t, sol.Found)
	assert.InDelta(t, 4.0, sol.Cost, 1e-6)
	assert.InDelta(t, 4.0, sol.Makespan, 1e-6)
	assert.Len(t, sol.Paths, 1)
	assert.Greater(t, sol.Runtime, -1e-9)
}

func TestSolve_SharedGoalRejected(t *testing.T) {
	m := lineMap(t, 3)
	task := core.NewTask([]core.Agent{
		{ID: 0, Start: 0, Goal: 2},
		{ID: 1, Start: 1, Goal: 2},
	})

	sol, err := Solve(m, task, core.DefaultConfig(), nil)
	require.Error(t, err)
	assert.False(t, sol.Found)
	assert.ErrorIs(t, err, core.ErrSharedGoal)
}

func TestSolve_RootInfeasibleReported(t *testing.T) {
	b := core.NewMapBuilder()
	require.NoError(t, b.AddNode(0, 0, 0))
	require.NoError(t, b.AddNode(1, 10, 0)) // disconnected from node 0
	m, err := b.Build()
	require.NoError(t, err)

	task := core.NewTask([]core.Agent{{ID: 0, Start: 0, Goal: 1}})

	sol, err := Solve(m, task, core.DefaultConfig(), nil)
	require.Error(t, err)
	assert.False(t, sol.Found)
	assert.ErrorIs(t, err, core.ErrRootInfeasible)
}

func TestSolve_InvalidConfigNormalized(t *testing.T) {
	m := lineMap(t, 3)
	task := core.NewTask([]core.Agent{{ID: 0, Start: 0, Goal: 2}})
	cfg := core.DefaultConfig()
	cfg.Connectedness = 99
	cfg.AgentSize = -1

	sol, err := Solve(m, task, cfg, nil)
	require.NoError(t, err)
	assert.True(t, sol.Found)
}
