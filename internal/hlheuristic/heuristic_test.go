package hlheuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
)

func TestCompute_ZeroType(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.HLHType = 0
	conflicts := []core.Conflict{{AgentA: 0, AgentB: 1, Overcost: 1}}
	assert.Equal(t, 0.0, Compute(cfg, conflicts))
}

func TestCompute_MatchingType(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.HLHType = 1
	conflicts := []core.Conflict{
		{AgentA: 0, AgentB: 1, Overcost: 1},
		{AgentA: 2, AgentB: 3, Overcost: 1},
	}
	assert.Equal(t, 2.0, Compute(cfg, conflicts))
}

func TestCompute_VertexCoverType(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.HLHType = 2
	// A triangle of unit-weight conflicts among 3 agents: any single
	// vertex cover needs at least 2 of the 3 agents to pick up weight,
	// so the LP relaxation lower bound is 1.5.
	conflicts := []core.Conflict{
		{AgentA: 0, AgentB: 1, Overcost: 1},
		{AgentA: 1, AgentB: 2, Overcost: 1},
		{AgentA: 0, AgentB: 2, Overcost: 1},
	}
	h := Compute(cfg, conflicts)
	assert.Equal(t, 2.0, h)
}

func TestCompute_NoConflicts(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.HLHType = 2
	assert.Equal(t, 0.0, Compute(cfg, nil))
}
