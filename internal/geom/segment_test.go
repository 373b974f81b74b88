package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
)

func node(id core.NodeID, x, y float64) *core.Node {
	return &core.Node{ID: id, X: x, Y: y}
}

func TestSegmentConflict_HeadOn(t *testing.T) {
	n0, n1, n2 := node(0, 0, 0), node(1, 1, 0), node(2, 2, 0)

	moveA := core.Move{T1: 0, T2: 1, From: 0, To: 1}
	moveB := core.Move{T1: 0, T2: 1, From: 2, To: 1}

	conflict, _, waitOffset := SegmentConflict(moveA, moveB, n0, n1, n2, n1, 0.353, 1e-5)
	assert.True(t, conflict)
	assert.Greater(t, waitOffset, 0.0)
}

func TestSegmentConflict_NoOverlap(t *testing.T) {
	n0, n1 := node(0, 0, 0), node(1, 1, 0)
	n2, n3 := node(2, 10, 10), node(3, 11, 10)

	moveA := core.Move{T1: 0, T2: 1, From: 0, To: 1}
	moveB := core.Move{T1: 0, T2: 1, From: 2, To: 3}

	conflict, _, _ := SegmentConflict(moveA, moveB, n0, n1, n2, n3, 0.353, 1e-5)
	assert.False(t, conflict)
}

func TestSegmentConflict_WaitsFarApart(t *testing.T) {
	n0 := node(0, 0, 0)
	n1 := node(1, 5, 0)

	waitA := core.Move{T1: 0, T2: 10, From: 0, To: 0}
	waitB := core.Move{T1: 0, T2: 10, From: 1, To: 1}

	conflict, _, _ := SegmentConflict(waitA, waitB, n0, n0, n1, n1, 0.353, 1e-5)
	assert.False(t, conflict)
}

func TestSegmentConflict_DisjointTimeWindows(t *testing.T) {
	n0, n1 := node(0, 0, 0), node(1, 1, 0)

	moveA := core.Move{T1: 0, T2: 1, From: 0, To: 1}
	moveB := core.Move{T1: 5, T2: 6, From: 1, To: 0}

	conflict, _, _ := SegmentConflict(moveA, moveB, n0, n1, n1, n0, 0.353, 1e-5)
	assert.False(t, conflict)
}
