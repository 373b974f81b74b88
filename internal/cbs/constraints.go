package cbs

import (
	"math"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
	"github.com/elektrokombinacija/mapf-ct/internal/geom"
)

// childSpec describes one child node to attempt: the agent to replan
// and the constraint delta it carries (negative, positive, or both —
// though in practice exactly one of the two is set per spec.md §3's
// CBS_Node, since a node either forces a move or forbids one).
type childSpec struct {
	agent         core.AgentID
	constraint    core.Constraint
	hasConstraint bool
	positive      core.Constraint
	hasPositive   bool
}

// buildChildren generates the two children for a chosen conflict, per
// spec.md §4.6 steps 3-4.
//
// Without disjoint splitting: the classic CBS pair — agent A forbidden
// from move_a, agent B forbidden from move_b.
//
// With disjoint splitting: split on agent A only (a documented
// simplification of the Open Question spec.md §9 leaves unresolved —
// see DESIGN.md). Child1 carries a positive constraint forcing A
// through move_a exactly (a no-op replan, since A's current path
// already does this); child2 carries the ordinary negative constraint
// forbidding A from move_a. Every OTHER agent automatically inherits
// the mirrored negative constraint from child1's positive the next time
// it is replanned anywhere in that subtree (internal/sipp's
// EffectiveConstraints), satisfying spec.md §3's "all other agents
// receive the symmetric negative constraint" without redundant
// bookkeeping here.
func buildChildren(m *core.Map, c *core.Conflict, cfg core.Config) []childSpec {
	negA := excludingConstraint(m, c.AgentA, c.MoveA, c.MoveB, cfg)
	negB := excludingConstraint(m, c.AgentB, c.MoveB, c.MoveA, cfg)

	if !cfg.UseDisjointSplitting {
		return []childSpec{
			{agent: c.AgentA, constraint: negA, hasConstraint: true},
			{agent: c.AgentB, constraint: negB, hasConstraint: true},
		}
	}

	positiveA := core.Constraint{AgentID: c.AgentA, T1: c.MoveA.T1, T2: c.MoveA.T2, From: c.MoveA.From, To: c.MoveA.To, Positive: true}
	return []childSpec{
		{agent: c.AgentA, positive: positiveA, hasPositive: true},
		{agent: c.AgentA, constraint: negA, hasConstraint: true},
	}
}

// excludingConstraint builds the negative constraint excluding `move`
// for its agent, given the conflicting `other` move, per spec.md §4.6
// step 3: a wait constraint over the overlap window for vertex/wait
// conflicts, or the original window extended by the minimum clearing
// offset for edge/motion conflicts.
func excludingConstraint(m *core.Map, agent core.AgentID, move, other core.Move, cfg core.Config) core.Constraint {
	if move.IsWait() && other.IsWait() {
		lo := math.Max(move.T1, other.T1)
		hi := math.Min(move.T2, other.T2)
		return core.Constraint{AgentID: agent, T1: lo, T2: hi, From: move.From, To: move.From}
	}

	aFrom, aTo := m.NodeByID(move.From), m.NodeByID(move.To)
	bFrom, bTo := m.NodeByID(other.From), m.NodeByID(other.To)
	_, _, offset := geom.SegmentConflict(move, other, aFrom, aTo, bFrom, bTo, cfg.AgentSize, cfg.Precision)
	return core.Constraint{AgentID: agent, T1: move.T1, T2: move.T2 + offset, From: move.From, To: move.To}
}

// validateConstraints reports whether a full ancestor-walked constraint
// set is internally consistent, per spec.md §4.6's "Validation of
// constraints" and §9's Open Question resolution: any overlap in time
// between two positive constraints on the same agent demanding distinct
// moves is treated as a contradiction, as is a positive constraint
// coinciding with a negative one covering the same move.
func validateConstraints(constraints []core.Constraint) bool {
	var positives []core.Constraint
	var negatives []core.Constraint
	for _, c := range constraints {
		if c.Positive {
			positives = append(positives, c)
		} else {
			negatives = append(negatives, c)
		}
	}

	for i := 0; i < len(positives); i++ {
		for j := i + 1; j < len(positives); j++ {
			p, q := positives[i], positives[j]
			if p.AgentID != q.AgentID {
				continue
			}
			if p.From == q.From && p.To == q.To {
				continue // same move, not a contradiction
			}
			if overlaps(p.T1, p.T2, q.T1, q.T2) {
				return false
			}
		}
	}

	for _, p := range positives {
		for _, n := range negatives {
			if p.AgentID != n.AgentID || p.From != n.From || p.To != n.To {
				continue
			}
			if overlaps(p.T1, p.T2, n.T1, n.T2) {
				return false
			}
		}
	}
	return true
}

func overlaps(a1, a2, b1, b2 float64) bool {
	return math.Max(a1, b1) <= math.Min(a2, b2)
}
