// Package hlheuristic implements the high-level CBS heuristic (C7):
// an admissible lower bound on the additional sum-of-costs needed to
// resolve a node's outstanding cardinal conflicts, selected by
// Config.HLHType.
package hlheuristic

import (
	"math"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
)

// Compute returns h for a CBS node given its cardinal conflicts, per
// spec.md §4.7:
//
//   - 0: constant zero (plain CBS).
//   - 1: size of the matching augmentingMatch finds on the
//     cardinal-conflict graph. It is maximum when the graph has no odd
//     cycles; on graphs with odd cycles it is not guaranteed to be
//     maximum.
//   - 2: LP relaxation of the weighted vertex cover on that graph,
//     rounded up to an integer lower bound.
func Compute(cfg core.Config, cardinalConflicts []core.Conflict) float64 {
	switch cfg.HLHType {
	case 0:
		return 0
	case 1:
		return matchingHeuristic(cardinalConflicts)
	case 2:
		return vertexCoverHeuristic(cardinalConflicts)
	default:
		return 0
	}
}

// agentIndex assigns a dense [0,n) index to every agent id appearing in
// conflicts, so the matching/LP routines can work over small integer
// vertex sets regardless of the sparse AgentID space.
func agentIndex(conflicts []core.Conflict) (map[core.AgentID]int, int) {
	idx := make(map[core.AgentID]int)
	for _, c := range conflicts {
		if _, ok := idx[c.AgentA]; !ok {
			idx[c.AgentA] = len(idx)
		}
		if _, ok := idx[c.AgentB]; !ok {
			idx[c.AgentB] = len(idx)
		}
	}
	return idx, len(idx)
}

func matchingHeuristic(conflicts []core.Conflict) float64 {
	if len(conflicts) == 0 {
		return 0
	}
	idx, n := agentIndex(conflicts)
	edges := make([][2]int, 0, len(conflicts))
	for _, c := range conflicts {
		edges = append(edges, [2]int{idx[c.AgentA], idx[c.AgentB]})
	}
	if exact, err := blossomMatch(n, edges); err == nil {
		// Unreachable while blossomMatch is a placeholder; kept so a
		// future exact implementation is picked up automatically.
		return float64(len(exact))
	}
	pairs := augmentingMatch(n, edges)
	return float64(len(pairs))
}

func vertexCoverHeuristic(conflicts []core.Conflict) float64 {
	if len(conflicts) == 0 {
		return 0
	}
	idx, n := agentIndex(conflicts)

	a := make([][]float64, len(conflicts))
	b := make([]float64, len(conflicts))
	for i, c := range conflicts {
		row := make([]float64, n)
		row[idx[c.AgentA]] = 1
		row[idx[c.AgentB]] = 1
		weight := c.Overcost
		if weight <= 0 {
			weight = 1
		}
		a[i] = row
		b[i] = weight
	}

	obj, feasible := solveLP(a, b)
	if !feasible {
		return 0
	}
	return ceilPrecise(obj)
}

// ceilPrecise rounds v up to the nearest integer, tolerating the small
// floating-point slop simplex pivoting accumulates (e.g. 1.9999999997
// rounds to 2, and an overshoot such as 2.0000000001 rounds to 2, not 3).
func ceilPrecise(v float64) float64 {
	return math.Ceil(v - 1e-6)
}
