// Package conflict implements pairwise move-vs-move conflict detection
// (C5): finding the earliest geometric conflict between two agents' paths
// and classifying it as cardinal/semi-cardinal/non-cardinal by replanning
// each side. internal/cbs classifies every detected conflict when it
// creates a node, not only the conflict it picks for resolution.
package conflict

import (
	"math"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
	"github.com/elektrokombinacija/mapf-ct/internal/geom"
)

// horizonMoves expands a path's move list, padding with an implicit
// "holds at goal forever" move truncated to `until`, so two paths of
// different lengths can still be compared move-by-move over their full
// overlap (spec.md §3's "last node held forever" semantics).
func horizonMoves(p *core.SinglePath, until float64) []core.Move {
	moves := p.Moves()
	end := p.EndTime()
	if until > end && len(p.Nodes) > 0 {
		goal := p.Nodes[len(p.Nodes)-1].Node
		moves = append(moves, core.Move{T1: end, T2: until, From: goal, To: goal})
	}
	return moves
}

// CheckPaths returns the earliest conflict between pA and pB (smallest
// min(t1_a, t1_b)), breaking ties by smallest overcost (minimum wait
// offset), or nil if the paths never conflict, per spec.md §4.5.
func CheckPaths(m *core.Map, pA, pB *core.SinglePath, agentSize, precision float64) *core.Conflict {
	horizon := math.Max(pA.EndTime(), pB.EndTime())
	movesA := horizonMoves(pA, horizon)
	movesB := horizonMoves(pB, horizon)

	var best *core.Conflict

	for _, ma := range movesA {
		for _, mb := range movesB {
			lo := math.Max(ma.T1, mb.T1)
			hi := math.Min(ma.T2, mb.T2)
			if lo > hi {
				continue
			}
			aFrom, aTo := m.NodeByID(ma.From), m.NodeByID(ma.To)
			bFrom, bTo := m.NodeByID(mb.From), m.NodeByID(mb.To)
			if aFrom == nil || aTo == nil || bFrom == nil || bTo == nil {
				continue
			}
			ok, _, waitOffset := geom.SegmentConflict(ma, mb, aFrom, aTo, bFrom, bTo, agentSize, precision)
			if !ok {
				continue
			}
			cand := &core.Conflict{
				AgentA:   pA.AgentID,
				AgentB:   pB.AgentID,
				MoveA:    ma,
				MoveB:    mb,
				Overcost: waitOffset,
			}
			if best == nil || earlier(ma, mb, cand, best) {
				best = cand
			}
		}
	}
	return best
}

// earlier reports whether candidate cand (arising from ma, mb) should
// replace best per the earliest-conflict, min-overcost tie-break rule.
func earlier(ma, mb core.Move, cand, best *core.Conflict) bool {
	candStart := math.Min(ma.T1, mb.T1)
	bestStart := math.Min(best.MoveA.T1, best.MoveB.T1)
	if candStart != bestStart {
		return candStart < bestStart
	}
	return cand.Overcost < best.Overcost
}
