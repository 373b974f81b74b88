package sipp

import (
	"sort"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
)

// EffectiveConstraints splits the full constraint set (every ancestor's
// constraint, as collected by the high level walking to the root) into the
// two pieces a single agent's low-level search needs, per spec.md §3/§4.3:
//
//   - negative: this agent's own negative constraints, plus a synthesized
//     negative constraint for every OTHER agent's positive constraint
//     (the disjoint-splitting sibling rule: "all other agents receive the
//     symmetric negative constraint").
//   - positive: this agent's own positive (must-do) constraints.
func EffectiveConstraints(all []core.Constraint, agent core.AgentID) (negative, positive []core.Constraint) {
	for _, c := range all {
		switch {
		case c.AgentID == agent && c.Positive:
			positive = append(positive, c)
		case c.AgentID == agent && !c.Positive:
			negative = append(negative, c)
		case c.AgentID != agent && c.Positive:
			mirrored := c
			mirrored.AgentID = agent
			mirrored.Positive = false
			negative = append(negative, mirrored)
		}
	}
	return negative, positive
}

// BuildSafeIntervals computes, for every node in m, the sorted list of
// disjoint safe intervals induced by the agent's stationary (wait)
// negative constraints: start from [0, +Inf) and subtract each wait
// constraint's open exclusion window. Edge constraints are not applied
// here; they are checked during SIPP expansion (spec.md §4.3).
func BuildSafeIntervals(m *core.Map, negative []core.Constraint) map[core.NodeID][]Interval {
	table := make(map[core.NodeID][]Interval, m.Len())
	for _, id := range m.NodeIDs() {
		table[id] = []Interval{{A: 0, B: Inf}}
	}

	byNode := make(map[core.NodeID][]core.Constraint)
	for _, c := range negative {
		if !c.IsWait() {
			continue
		}
		byNode[c.From] = append(byNode[c.From], c)
	}

	for node, cs := range byNode {
		sort.Slice(cs, func(i, j int) bool { return cs[i].T1 < cs[j].T1 })
		ivs := table[node]
		for _, c := range cs {
			ivs = subtractOpen(ivs, c.T1, c.T2)
		}
		table[node] = ivs
	}

	return table
}

// intervalContaining returns the index of the interval in ivs that
// contains t, or -1 if none does.
func intervalContaining(ivs []Interval, t float64) int {
	for i, iv := range ivs {
		if iv.contains(t) {
			return i
		}
	}
	return -1
}
