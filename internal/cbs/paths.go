package cbs

import "github.com/elektrokombinacija/mapf-ct/internal/core"

// ancestorConstraints walks n to the root, collecting each ancestor's
// delta constraint (and positive constraint, if set), per spec.md §3's
// "a node's full constraint set is obtained by walking to root".
func (t *Tree) ancestorConstraints(n *Node) []core.Constraint {
	var out []core.Constraint
	for cur := n; cur != nil; cur = t.parentOf(cur) {
		if cur.HasConstraint {
			out = append(out, cur.Constraint)
		}
		if cur.HasPositive {
			out = append(out, cur.PositiveConstraint)
		}
	}
	return out
}

func (t *Tree) parentOf(n *Node) *Node {
	if !n.HasParent {
		return nil
	}
	return t.Get(n.ParentID)
}

// Paths reconstructs the full per-agent path set at n by walking to
// root, taking the most-recent (closest to n) NewPath per agent and
// falling back to the root's initial independent path for any agent
// never replanned along the chain.
func (t *Tree) Paths(n *Node, rootPaths map[core.AgentID]core.SinglePath) map[core.AgentID]core.SinglePath {
	out := make(map[core.AgentID]core.SinglePath, len(rootPaths))
	for agent, p := range rootPaths {
		out[agent] = p
	}
	// Walk root-to-n order so the closest-to-n assignment wins: collect
	// ancestors first, then apply in reverse (root-first) order so later
	// (closer to n) entries overwrite earlier ones.
	var chain []*Node
	for cur := n; cur != nil; cur = t.parentOf(cur) {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		cur := chain[i]
		if cur.HasNewPath {
			out[cur.NewPath.AgentID] = cur.NewPath
		}
	}
	return out
}
