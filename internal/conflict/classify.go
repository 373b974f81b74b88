package conflict

import (
	"github.com/elektrokombinacija/mapf-ct/internal/core"
	"github.com/elektrokombinacija/mapf-ct/internal/heuristic"
	"github.com/elektrokombinacija/mapf-ct/internal/sipp"
)

// Classify determines a conflict's cardinality per spec.md §4.5: replan
// each agent with an added negative constraint excluding its half of the
// conflicting move, and compare the replanned cost to its current cost.
// Cardinal iff both costs strictly rise; semi-cardinal iff exactly one
// does; otherwise non-cardinal. Classification is expensive by design —
// callers gate it on Config.UseCardinal and cache the result on the
// owning CBS node.
func Classify(m *core.Map, oracle *heuristic.Oracle, cfg core.Config, ancestorConstraints []core.Constraint, c *core.Conflict, startA, goalA core.NodeID, costA float64, startB, goalB core.NodeID, costB float64) core.ConflictKind {
	excludeA := excludingConstraint(c.AgentA, c.MoveA)
	excludeB := excludingConstraint(c.AgentB, c.MoveB)

	risesA := costRises(m, oracle, cfg, ancestorConstraints, excludeA, c.AgentA, startA, goalA, costA)
	risesB := costRises(m, oracle, cfg, ancestorConstraints, excludeB, c.AgentB, startB, goalB, costB)

	switch {
	case risesA && risesB:
		return core.Cardinal
	case risesA || risesB:
		return core.SemiCardinal
	default:
		return core.NonCardinal
	}
}

func excludingConstraint(agent core.AgentID, move core.Move) core.Constraint {
	return core.Constraint{AgentID: agent, T1: move.T1, T2: move.T2, From: move.From, To: move.To, Positive: false}
}

// costRises replans the agent with the extra exclusion constraint and
// reports whether doing so is infeasible or strictly raises its cost
// beyond the configured precision (an infeasible replan is treated as an
// unbounded cost rise — certainly cardinal for that side).
func costRises(m *core.Map, oracle *heuristic.Oracle, cfg core.Config, ancestor []core.Constraint, extra core.Constraint, agent core.AgentID, start, goal core.NodeID, currentCost float64) bool {
	constraints := make([]core.Constraint, 0, len(ancestor)+1)
	constraints = append(constraints, ancestor...)
	constraints = append(constraints, extra)

	res := sipp.Plan(m, oracle, agent, start, goal, constraints, cfg)
	if !res.Found {
		return true
	}
	return res.Path.Cost > currentCost+cfg.Precision
}
