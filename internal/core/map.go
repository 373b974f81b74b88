package core

import (
	"sort"

	"github.com/pkg/errors"
)

// Sentinel errors for Map construction, in the same vein as
// katalvlaran-lvlath/gridgraph's package-level sentinels.
var (
	// ErrEmptyMap indicates a Map was built with zero nodes.
	ErrEmptyMap = errors.New("core: map must contain at least one node")
	// ErrDuplicateNode indicates the same NodeID was added twice.
	ErrDuplicateNode = errors.New("core: duplicate node id")
	// ErrUnknownNode indicates an edge referenced a node that was never added.
	ErrUnknownNode = errors.New("core: edge references unknown node id")
	// ErrInvalidConnectedness indicates a connectedness value outside {2,3,4,5}.
	ErrInvalidConnectedness = errors.New("core: connectedness must be one of 2, 3, 4, 5")
)

// Map is an immutable undirected graph with node coordinates and a
// precomputed adjacency set. It is only ever constructed through a
// MapBuilder; once built, no further mutation is possible.
type Map struct {
	nodes map[NodeID]*Node
}

// NodeByID returns the node with the given id, or nil if absent.
func (m *Map) NodeByID(id NodeID) *Node {
	return m.nodes[id]
}

// Len returns the number of nodes in the map.
func (m *Map) Len() int {
	return len(m.nodes)
}

// NodeIDs returns all node ids in ascending order, for deterministic
// iteration (e.g. heuristic table construction).
func (m *Map) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(m.nodes))
	for id := range m.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MapBuilder accumulates nodes and edges, then is consumed into an
// immutable Map via Build. Re-using a builder after Build is undefined;
// callers should discard it.
type MapBuilder struct {
	nodes map[NodeID]*Node
	edges map[NodeID]map[NodeID]struct{}
}

// NewMapBuilder creates an empty builder.
func NewMapBuilder() *MapBuilder {
	return &MapBuilder{
		nodes: make(map[NodeID]*Node),
		edges: make(map[NodeID]map[NodeID]struct{}),
	}
}

// AddNode registers a node at the given position. Returns ErrDuplicateNode
// if the id was already added.
func (b *MapBuilder) AddNode(id NodeID, x, y float64) error {
	if _, ok := b.nodes[id]; ok {
		return errors.Wrapf(ErrDuplicateNode, "id=%d", id)
	}
	b.nodes[id] = &Node{ID: id, X: x, Y: y}
	b.edges[id] = make(map[NodeID]struct{})
	return nil
}

// AddEdge connects two previously added nodes symmetrically. Self-loops
// and duplicate edges are no-ops.
func (b *MapBuilder) AddEdge(a, c NodeID) error {
	if _, ok := b.nodes[a]; !ok {
		return errors.Wrapf(ErrUnknownNode, "id=%d", a)
	}
	if _, ok := b.nodes[c]; !ok {
		return errors.Wrapf(ErrUnknownNode, "id=%d", c)
	}
	if a == c {
		return nil
	}
	b.edges[a][c] = struct{}{}
	b.edges[c][a] = struct{}{}
	return nil
}

// Build validates and freezes the accumulated nodes/edges into an
// immutable Map. The builder must not be reused afterwards.
func (b *MapBuilder) Build() (*Map, error) {
	if len(b.nodes) == 0 {
		return nil, ErrEmptyMap
	}
	for id, nbrs := range b.edges {
		n := b.nodes[id]
		n.Neighbors = make([]NodeID, 0, len(nbrs))
		for nb := range nbrs {
			n.Neighbors = append(n.Neighbors, nb)
		}
		sort.Slice(n.Neighbors, func(i, j int) bool { return n.Neighbors[i] < n.Neighbors[j] })
	}
	return &Map{nodes: b.nodes}, nil
}
