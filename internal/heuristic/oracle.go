// Package heuristic precomputes per-goal shortest-path distance tables
// over a core.Map, so the low-level SIPP planner can query an admissible
// h(node, goal) in O(1).
package heuristic

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
)

// Oracle is a read-only collection of single-source distance tables, one
// per distinct agent goal. It is immutable once built.
type Oracle struct {
	tables map[core.NodeID]map[core.NodeID]float64
}

// Build computes a Dijkstra table from every goal in goals to every other
// node in m, using Euclidean edge lengths. Duplicate goals are only solved
// once.
func Build(m *core.Map, goals []core.NodeID) *Oracle {
	o := &Oracle{tables: make(map[core.NodeID]map[core.NodeID]float64, len(goals))}
	for _, g := range goals {
		if _, ok := o.tables[g]; ok {
			continue
		}
		o.tables[g] = dijkstra(m, g)
	}
	return o
}

// H returns the precomputed shortest-path distance from `from` to `goal`.
// Callers must only query goals the Oracle was Build()'t with.
func (o *Oracle) H(from, goal core.NodeID) float64 {
	table, ok := o.tables[goal]
	if !ok {
		return 0
	}
	d, ok := table[from]
	if !ok {
		return 0
	}
	return d
}

// dijkstraRunner holds the mutable state of a single single-source
// shortest-path computation, in the worker-struct style of
// katalvlaran-lvlath/graph/algorithms.Dijkstra.
type dijkstraRunner struct {
	m       *core.Map
	dist    map[core.NodeID]float64
	visited map[core.NodeID]bool
	pq      nodePQ
}

func dijkstra(m *core.Map, start core.NodeID) map[core.NodeID]float64 {
	r := &dijkstraRunner{
		m:       m,
		dist:    make(map[core.NodeID]float64),
		visited: make(map[core.NodeID]bool),
	}
	r.init(start)
	r.processQueue()
	return r.dist
}

func (r *dijkstraRunner) init(start core.NodeID) {
	for _, id := range r.m.NodeIDs() {
		r.dist[id] = posInf
	}
	r.dist[start] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: start, dist: 0})
}

func (r *dijkstraRunner) processQueue() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue
		}
		r.visited[u] = true
		r.relaxEdges(u)
	}
}

func (r *dijkstraRunner) relaxEdges(u core.NodeID) {
	un := r.m.NodeByID(u)
	for _, v := range un.Neighbors {
		if r.visited[v] {
			continue
		}
		vn := r.m.NodeByID(v)
		newDist := r.dist[u] + core.Dist(un, vn)
		if newDist < r.dist[v] {
			r.dist[v] = newDist
			heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
		}
	}
}

const posInf = 1e18

// nodeItem is a priority-queue entry for Dijkstra.
type nodeItem struct {
	id   core.NodeID
	dist float64
}

// nodePQ implements heap.Interface ordered by ascending distance.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
