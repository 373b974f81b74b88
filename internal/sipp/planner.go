package sipp

import (
	"container/heap"
	"math"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
	"github.com/elektrokombinacija/mapf-ct/internal/heuristic"
)

// Result is the outcome of a single-agent low-level search: either a
// feasible SinglePath (Found == true) or infeasibility under the given
// constraint set.
type Result struct {
	Found bool
	Path  core.SinglePath
	// Expanded counts the number of states popped from OPEN, for
	// Solution.LLExpanded bookkeeping.
	Expanded int
}

// state identifies a unique SIPP search node: the agent occupies `node`
// during `interval` (an index into that node's safe-interval list). The
// arrival time is held on the searchNode, not in the state.
type state struct {
	node     core.NodeID
	interval int
}

// searchNode is one entry in the SIPP search tree.
type searchNode struct {
	state     state
	arrival   float64
	g         float64
	h         float64
	parent    *searchNode
	parentDep float64 // time the agent departed the parent node for this move
}

func (n *searchNode) f() float64 { return n.g + n.h }

// Plan runs SIPP A* for a single agent from start to goal, subject to the
// full ancestor constraint set (as walked from the CBS root to the node
// being expanded). agentSize/precision/connectedness-derived safe
// intervals come from cfg; oracle supplies the admissible heuristic.
//
// Positive (must-do) constraints are enforced by restricting expansion
// from their `From` node, at their `T1`, to exactly their `To` node —
// branches that cannot depart `From` within the constrained window are
// pruned (spec.md §4.3's disjoint-splitting semantics).
func Plan(m *core.Map, oracle *heuristic.Oracle, agent core.AgentID, start, goal core.NodeID, allConstraints []core.Constraint, cfg core.Config) Result {
	negative, positive := EffectiveConstraints(allConstraints, agent)
	safeIntervals := BuildSafeIntervals(m, negative)
	edgeCs := edgeConstraints(negative)
	positiveByFrom := indexPositive(positive)

	startIvs := safeIntervals[start]
	startIdx := intervalContaining(startIvs, 0)
	if startIdx < 0 {
		return Result{Found: false}
	}

	open := &openQueue{}
	heap.Init(open)
	best := make(map[state]float64)

	root := &searchNode{
		state:   state{node: start, interval: startIdx},
		arrival: 0,
		g:       0,
		h:       oracle.H(start, goal),
	}
	heap.Push(open, root)
	best[root.state] = 0

	expanded := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*searchNode)
		expanded++

		if g, ok := best[cur.state]; ok && cur.g > g+1e-9 {
			continue // stale entry, superseded by a cheaper arrival
		}

		un := m.NodeByID(cur.state.node)
		curIvs := safeIntervals[cur.state.node]
		curInterval := curIvs[cur.state.interval]

		if cur.state.node == goal && curInterval.B == Inf && goalIsFinal(cur, positive) {
			return Result{Found: true, Path: reconstruct(cur, agent), Expanded: expanded}
		}

		for _, nb := range neighborsFor(un, cur.state.node, cur.arrival, positiveByFrom) {
			vn := m.NodeByID(nb)
			d := core.Dist(un, vn)

			depLower := cur.arrival
			depUpper := curInterval.B
			if forced, ok := positiveByFrom[forcedKey{from: cur.state.node, to: nb}]; ok {
				depLower = math.Max(depLower, forced.T1)
				depUpper = math.Min(depUpper, forced.T1)
			}
			if depLower > depUpper {
				continue
			}

			// Spec §4.4: "for each safe interval [a,b] of v" — a single
			// departure window can feed an arrival into more than one of
			// v's safe intervals, so every reachable interval of the
			// neighbor must be tried, not just the one the globally
			// earliest arrival happens to land in.
			nbIvs := safeIntervals[nb]
			for ivIdx, iv := range nbIvs {
				lower := math.Max(depLower+d, iv.A)
				upper := math.Min(depUpper+d, iv.B)
				if lower > upper {
					continue
				}

				tv, ok := earliestFeasibleArrival(un, vn, d, lower, upper, edgeCs, cfg.AgentSize, cfg.Precision)
				if !ok {
					continue
				}
				dep := tv - d
				if dep < depLower || dep > depUpper {
					continue
				}

				ns := state{node: nb, interval: ivIdx}
				g := tv
				if prev, ok := best[ns]; ok && g >= prev-1e-9 {
					continue
				}
				best[ns] = g
				heap.Push(open, &searchNode{
					state:     ns,
					arrival:   tv,
					g:         g,
					h:         oracle.H(nb, goal),
					parent:    cur,
					parentDep: dep,
				})
			}
		}
	}

	return Result{Found: false, Expanded: expanded}
}

// forcedKey identifies a positive constraint by the transition it forces.
type forcedKey struct {
	from, to core.NodeID
}

func indexPositive(positive []core.Constraint) map[forcedKey]core.Constraint {
	out := make(map[forcedKey]core.Constraint, len(positive))
	for _, c := range positive {
		out[forcedKey{from: c.From, to: c.To}] = c
	}
	return out
}

// neighborsFor returns the candidate next nodes from `from`: every graph
// neighbor, unless a positive constraint forces departure from `from` at
// a time compatible with `atTime`, in which case only the forced
// destination is offered (disjoint splitting must-do enforcement).
func neighborsFor(un *core.Node, from core.NodeID, atTime float64, positiveByFrom map[forcedKey]core.Constraint) []core.NodeID {
	for _, c := range positiveByFrom {
		if c.From == from && atTime <= c.T1+1e-9 {
			return []core.NodeID{c.To}
		}
	}
	return un.Neighbors
}

// goalIsFinal reports whether reaching the goal at this search node is a
// legitimate terminal state: the agent must not have any positive
// constraint still pending that requires it to leave the goal again
// later (a positive constraint on a later time window at the goal node
// would force departure, so arrival isn't final).
func goalIsFinal(n *searchNode, positive []core.Constraint) bool {
	for _, c := range positive {
		if c.From == n.state.node && c.T1 >= n.arrival-1e-9 {
			return false
		}
	}
	return true
}

func reconstruct(n *searchNode, agent core.AgentID) core.SinglePath {
	var steps []core.PathStep
	for cur := n; cur != nil; cur = cur.parent {
		if cur.parent != nil && cur.parentDep > cur.parent.arrival+1e-9 {
			// A wait occurred at the parent node before departing.
			steps = append(steps, core.PathStep{Node: cur.parent.state.node, Time: cur.parentDep})
		}
		steps = append(steps, core.PathStep{Node: cur.state.node, Time: cur.arrival})
	}
	// steps was built tail-first; reverse it.
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return core.SinglePath{AgentID: agent, Cost: n.g, Nodes: steps}
}

// openQueue is a binary-heap priority queue of searchNodes ordered by f,
// breaking ties toward larger g (a tighter bound, SIPP/A* convention).
type openQueue []*searchNode

func (q openQueue) Len() int { return len(q) }
func (q openQueue) Less(i, j int) bool {
	fi, fj := q[i].f(), q[j].f()
	if fi != fj {
		return fi < fj
	}
	return q[i].g > q[j].g
}
func (q openQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *openQueue) Push(x interface{}) { *q = append(*q, x.(*searchNode)) }
func (q *openQueue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
