package sipp

import (
	"sort"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
	"github.com/elektrokombinacija/mapf-ct/internal/geom"
)

// edgeConstraints is the subset of an agent's negative constraints that
// restrict transitions rather than stationary occupancy.
func edgeConstraints(negative []core.Constraint) []core.Constraint {
	out := negative[:0:0]
	for _, c := range negative {
		if !c.IsWait() {
			out = append(out, c)
		}
	}
	return out
}

// earliestFeasibleArrival returns the smallest candidate t_v in
// [lowerBound, upperBound] such that the move (u -> v) departing at
// t_v-d and arriving at t_v does not geometrically conflict with any of
// the agent's edge constraints. Only these candidates are tested:
// lowerBound itself and each constraint's T1, T2, T1+d and T2+d; a
// feasible arrival strictly between two candidates is not found.
// Returns (0, false) if every candidate within the bound is blocked.
func earliestFeasibleArrival(u, v *core.Node, d, lowerBound, upperBound float64, edgeCs []core.Constraint, agentSize, precision float64) (float64, bool) {
	if lowerBound > upperBound {
		return 0, false
	}
	if len(edgeCs) == 0 {
		return lowerBound, true
	}

	blocked := func(tv float64) bool {
		candidate := core.Move{T1: tv - d, T2: tv, From: u.ID, To: v.ID}
		for _, c := range edgeCs {
			cFrom := nodeOf(u, v, c.From)
			cTo := nodeOf(u, v, c.To)
			if cFrom == nil || cTo == nil {
				continue
			}
			cMove := core.Move{T1: c.T1, T2: c.T2, From: c.From, To: c.To}
			if conflict, _, _ := geom.SegmentConflict(candidate, cMove, u, v, cFrom, cTo, agentSize, precision); conflict {
				return true
			}
		}
		return false
	}

	candidates := []float64{lowerBound}
	for _, c := range edgeCs {
		for _, t := range []float64{c.T1, c.T2, c.T1 + d, c.T2 + d} {
			if t >= lowerBound && t <= upperBound {
				candidates = append(candidates, t)
			}
		}
	}
	sort.Float64s(candidates)

	for _, tv := range candidates {
		if tv < lowerBound || tv > upperBound {
			continue
		}
		if !blocked(tv) {
			return tv, true
		}
	}
	return 0, false
}

// nodeOf resolves a NodeID referenced by a constraint to one of the two
// endpoints of the candidate move when possible, else looks it up
// structurally via the caller-provided endpoints (both candidate move
// endpoints are the only positions earliestFeasibleArrival has in hand;
// constraints referencing unrelated nodes can never geometrically
// conflict with this move and are skipped by returning nil).
func nodeOf(u, v *core.Node, id core.NodeID) *core.Node {
	switch id {
	case u.ID:
		return u
	case v.ID:
		return v
	default:
		return nil
	}
}
