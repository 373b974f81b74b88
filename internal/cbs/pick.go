package cbs

import (
	"math"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
)

// pickConflict selects which conflict to resolve at a node: cardinal
// over semi-cardinal over non-cardinal, earliest start time within a
// class, per spec.md §4.6 step 2.
func pickConflict(n *Node) *core.Conflict {
	if c := earliest(n.CardinalConflicts); c != nil {
		return c
	}
	if c := earliest(n.SemicardConflicts); c != nil {
		return c
	}
	return earliest(n.Conflicts)
}

func earliest(conflicts []core.Conflict) *core.Conflict {
	if len(conflicts) == 0 {
		return nil
	}
	best := &conflicts[0]
	bestStart := math.Min(best.MoveA.T1, best.MoveB.T1)
	for i := 1; i < len(conflicts); i++ {
		start := math.Min(conflicts[i].MoveA.T1, conflicts[i].MoveB.T1)
		if start < bestStart {
			bestStart = start
			best = &conflicts[i]
		}
	}
	return best
}
