// Package cbs implements the high-level Conflict-Based Search tree (C6):
// a best-first (optionally focal, bounded-suboptimal) search over
// constraint-set nodes, each refining its parent by one pair of
// constraints until a conflict-free node is found.
package cbs

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
)

// Node is one entry in the CBS tree: a delta against its parent, per
// spec.md §3's CBS_Node and §9's "tree of constraint deltas" design note.
type Node struct {
	ID       int
	ParentID int // -1 for the root
	HasParent bool

	Cost float64
	H    float64

	Constraint         core.Constraint
	HasConstraint      bool
	PositiveConstraint core.Constraint
	HasPositive        bool

	NewPath    core.SinglePath
	HasNewPath bool

	Conflicts         []core.Conflict
	SemicardConflicts []core.Conflict
	CardinalConflicts []core.Conflict
	ConflictsNum      int

	inFocal bool
	popped  bool
}

// Tree is the append-only arena of CBS nodes plus its OPEN and FOCAL
// priority queues, per spec.md §3/§9 ("arena + index over pointer
// graphs").
type Tree struct {
	nodes     []*Node
	open      openQueue
	focal     focalQueue
	rootPaths map[core.AgentID]core.SinglePath
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	t := &Tree{}
	heap.Init(&t.open)
	heap.Init(&t.focal)
	return t
}

// Add appends a node to the arena, assigning it the next integer id, and
// pushes it onto OPEN (and FOCAL membership is recomputed by the caller
// via RefreshFocal, since focal membership depends on the current best
// lower bound across all of OPEN).
func (t *Tree) Add(n *Node) *Node {
	n.ID = len(t.nodes)
	t.nodes = append(t.nodes, n)
	heap.Push(&t.open, n)
	return n
}

// Get returns the node with the given id.
func (t *Tree) Get(id int) *Node {
	return t.nodes[id]
}

// Len reports the number of nodes ever added to the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// PopBest pops the best node from FOCAL if focalWeight > 1 and FOCAL is
// non-empty, else from OPEN, mirroring spec.md §4.6 step "pop the best
// node N from OPEN (or FOCAL if focal_weight > 1)".
func (t *Tree) PopBest(focalWeight float64) (*Node, bool) {
	t.pruneStale()
	if focalWeight > 1 && t.focal.Len() > 0 {
		n := heap.Pop(&t.focal).(*Node)
		n.inFocal = false
		n.popped = true
		return n, true
	}
	if t.open.Len() == 0 {
		return nil, false
	}
	n := heap.Pop(&t.open).(*Node)
	n.popped = true
	if n.inFocal {
		t.focal.remove(n)
		n.inFocal = false
	}
	return n, true
}

// pruneStale drops already-popped entries that linger at the front of
// OPEN (lazy deletion: entries popped via FOCAL stay in OPEN's heap
// slice, marked popped, because marking and skipping them here is
// cheaper than splicing them out of OPEN's backing array).
func (t *Tree) pruneStale() {
	for t.open.Len() > 0 && t.open[0].popped {
		heap.Pop(&t.open)
	}
}

// RefreshFocal recomputes FOCAL membership: every OPEN node whose
// cost+h <= focalWeight * bestLB, where bestLB is OPEN's current minimum
// cost+h (spec.md §3's CBS_Tree definition).
func (t *Tree) RefreshFocal(focalWeight float64) {
	t.pruneStale()
	t.focal = focalQueue{}
	if focalWeight <= 1 || t.open.Len() == 0 {
		return
	}
	bestLB := t.open[0].Cost + t.open[0].H
	bound := focalWeight * bestLB
	for _, n := range t.open {
		if n.popped {
			continue
		}
		if n.Cost+n.H <= bound {
			n.inFocal = true
			t.focal = append(t.focal, n)
		}
	}
	heap.Init(&t.focal)
}

// BestLB returns OPEN's current minimum cost+h, or posInf (1e18) if
// OPEN is empty.
func (t *Tree) BestLB() float64 {
	t.pruneStale()
	if t.open.Len() == 0 {
		return posInf
	}
	return t.open[0].Cost + t.open[0].H
}

const posInf = 1e18

// Empty reports whether OPEN has no remaining live entries.
func (t *Tree) Empty() bool {
	t.pruneStale()
	return t.open.Len() == 0
}
