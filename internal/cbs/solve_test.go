package cbs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-ct/internal/conflict"
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

// S1 — single agent, straight line.
func TestSolve_SingleAgentStraightLine(t *testing.T) {
	m := lineMap(t, 5)
	task := core.NewTask([]core.Agent{{ID: 0, Start: 0, Goal: 4}})
	oracle := heuristic.Build(m, []core.NodeID{4})
	cfg := core.DefaultConfig()

	out, err := Solve(m, task, oracle, cfg, time.Time{}, nil)
	require.NoError(t, err)
	require.True(t, out.Found)
	p := out.Paths[0]
	assert.InDelta(t, 4.0, p.Cost, 1e-6)
	assert.Equal(t, core.NodeID(0), p.Nodes[0].Node)
	assert.Equal(t, core.NodeID(4), p.Nodes[len(p.Nodes)-1].Node)
}

// S2 — swap conflict: two agents cross head-on on a 3-row-wide open grid;
// a degree-<=2 single lane would force a geometric collision, but the
// extra rows give room to pass, so the solver must find a conflict-free
// pair of paths (possibly with a detour or a wait, never both stuck).
func TestSolve_SwapConflictResolved(t *testing.T) {
	m := gridMap(t, 5, 3)
	task := core.NewTask([]core.Agent{
		{ID: 0, Start: 5, Goal: 9},
		{ID: 1, Start: 9, Goal: 5},
	})
	oracle := heuristic.Build(m, []core.NodeID{5, 9})
	cfg := core.DefaultConfig()

	out, err := Solve(m, task, oracle, cfg, time.Time{}, nil)
	require.NoError(t, err)
	require.True(t, out.Found)
	require.Len(t, out.Paths, 2)

	pA, pB := out.Paths[0], out.Paths[1]
	assert.Equal(t, core.NodeID(5), pA.Nodes[0].Node)
	assert.Equal(t, core.NodeID(9), pA.Nodes[len(pA.Nodes)-1].Node)
	assert.Equal(t, core.NodeID(9), pB.Nodes[0].Node)
	assert.Equal(t, core.NodeID(5), pB.Nodes[len(pB.Nodes)-1].Node)
	assert.Nil(t, conflictBetween(t, m, cfg, pA, pB))
}

// S4 — infeasible corridor: a strict 1x3 corridor has no passing room
// for swapped endpoints with only wait-based resolution and a single
// lane, so the solver must either find a long-wait solution or report
// infeasible; here we assert the solver terminates and reports a
// definite outcome either way (found or not, never both unset).
func TestSolve_TerminatesOnCorridor(t *testing.T) {
	m := lineMap(t, 3)
	task := core.NewTask([]core.Agent{
		{ID: 0, Start: 0, Goal: 2},
		{ID: 1, Start: 2, Goal: 0},
	})
	oracle := heuristic.Build(m, []core.NodeID{0, 2})
	cfg := core.DefaultConfig()
	cfg.TimeLimit = 5

	out, err := Solve(m, task, oracle, cfg, time.Now().Add(2*time.Second), nil)
	require.NoError(t, err)
	assert.False(t, out.TimedOut)
}

// gridMap builds a width x height 8-connected (connectedness=3) open grid,
// for scenarios that need room to detour around a head-on conflict.
func gridMap(t *testing.T, width, height int) *core.Map {
	t.Helper()
	m, err := core.NewGridMap(width, height, nil, 3)
	require.NoError(t, err)
	return m
}

// S3 — head-on conflict on a 3-row-wide corridor: two agents cross in
// opposite directions along the middle row; with room to detour via the
// rows above/below, the solver must find a conflict-free pair of paths
// rather than resolving purely by waiting.
func TestSolve_HeadOnDetourOnOpenGrid(t *testing.T) {
	m := gridMap(t, 5, 3)
	// Node id = y*width+x. Middle row is y=1: ids 5..9.
	task := core.NewTask([]core.Agent{
		{ID: 0, Start: 5, Goal: 9},
		{ID: 1, Start: 9, Goal: 5},
	})
	oracle := heuristic.Build(m, []core.NodeID{5, 9})
	cfg := core.DefaultConfig()

	out, err := Solve(m, task, oracle, cfg, time.Time{}, nil)
	require.NoError(t, err)
	require.True(t, out.Found)
	require.Len(t, out.Paths, 2)

	pa, pb := out.Paths[0], out.Paths[1]
	assert.Nil(t, conflictBetween(t, m, cfg, pa, pb))
}

// S5 — focal-list bounded suboptimality: solving the same head-on-conflict
// instance with focal_weight=1.5 must still find a conflict-free solution,
// and its cost must not exceed 1.5x the optimal (focal_weight=1) cost.
func TestSolve_FocalWeightBoundsSuboptimality(t *testing.T) {
	m := gridMap(t, 5, 3)
	newTask := func() *core.Task {
		return core.NewTask([]core.Agent{
			{ID: 0, Start: 5, Goal: 9},
			{ID: 1, Start: 9, Goal: 5},
		})
	}
	oracle := heuristic.Build(m, []core.NodeID{5, 9})

	optCfg := core.DefaultConfig()
	optCfg.FocalWeight = 1.0
	optOut, err := Solve(m, newTask(), oracle, optCfg, time.Time{}, nil)
	require.NoError(t, err)
	require.True(t, optOut.Found)
	optCost := optOut.Paths[0].Cost + optOut.Paths[1].Cost

	focalCfg := core.DefaultConfig()
	focalCfg.FocalWeight = 1.5
	focalOut, err := Solve(m, newTask(), oracle, focalCfg, time.Time{}, nil)
	require.NoError(t, err)
	require.True(t, focalOut.Found)
	focalCost := focalOut.Paths[0].Cost + focalOut.Paths[1].Cost

	assert.LessOrEqual(t, focalCost, 1.5*optCost+1e-6)
}

// S6 — positive-constraint correctness under disjoint splitting: forces
// resolution through a node with UseDisjointSplitting enabled and checks
// the resulting paths are genuinely conflict-free (a positive constraint
// bug would show up as an agent silently violating the move it was
// supposedly forced into).
func TestSolve_DisjointSplittingProducesConflictFreePaths(t *testing.T) {
	m := gridMap(t, 5, 3)
	task := core.NewTask([]core.Agent{
		{ID: 0, Start: 5, Goal: 9},
		{ID: 1, Start: 9, Goal: 5},
	})
	oracle := heuristic.Build(m, []core.NodeID{5, 9})
	cfg := core.DefaultConfig()
	cfg.UseDisjointSplitting = true

	out, err := Solve(m, task, oracle, cfg, time.Time{}, nil)
	require.NoError(t, err)
	require.True(t, out.Found)

	pa, pb := out.Paths[0], out.Paths[1]
	assert.Nil(t, conflictBetween(t, m, cfg, pa, pb))
}

func conflictBetween(t *testing.T, m *core.Map, cfg core.Config, pa, pb core.SinglePath) *core.Conflict {
	t.Helper()
	return conflict.CheckPaths(m, &pa, &pb, cfg.AgentSize, cfg.Precision)
}
