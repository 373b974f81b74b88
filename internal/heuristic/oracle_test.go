package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
)

func line(t *testing.T, n int) *core.Map {
	b := core.NewMapBuilder()
	for i := 0; i < n; i++ {
		require.NoError(t, b.AddNode(core.NodeID(i), float64(i), 0))
	}
	for i := 0; i < n-1; i++ {
		require.NoError(t, b.AddEdge(core.NodeID(i), core.NodeID(i+1)))
	}
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestOracle_StraightLine(t *testing.T) {
	m := line(t, 5)
	o := Build(m, []core.NodeID{4})

	assert.InDelta(t, 4.0, o.H(0, 4), 1e-9)
	assert.InDelta(t, 0.0, o.H(4, 4), 1e-9)
	assert.InDelta(t, 2.0, o.H(2, 4), 1e-9)
}

func TestOracle_MultipleGoals(t *testing.T) {
	m := line(t, 5)
	o := Build(m, []core.NodeID{0, 4})

	assert.InDelta(t, 4.0, o.H(0, 4), 1e-9)
	assert.InDelta(t, 4.0, o.H(4, 0), 1e-9)
}
