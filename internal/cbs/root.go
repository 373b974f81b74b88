package cbs

import (
	"github.com/pkg/errors"

	"github.com/elektrokombinacija/mapf-ct/internal/conflict"
	"github.com/elektrokombinacija/mapf-ct/internal/core"
	"github.com/elektrokombinacija/mapf-ct/internal/heuristic"
	"github.com/elektrokombinacija/mapf-ct/internal/hlheuristic"
	"github.com/elektrokombinacija/mapf-ct/internal/sipp"
)

// initRoot plans every agent independently with no constraints, per
// spec.md §4.6 "Initialization (root)". Returns ErrRootInfeasible
// (wrapped via core.ErrRootInfeasible) if any agent has no path.
func initRoot(m *core.Map, task *core.Task, oracle *heuristic.Oracle, cfg core.Config) (map[core.AgentID]core.SinglePath, int, error) {
	paths := make(map[core.AgentID]core.SinglePath, len(task.Agents))
	llExpanded := 0
	for _, a := range task.Agents {
		res := sipp.Plan(m, oracle, a.ID, a.Start, a.Goal, nil, cfg)
		llExpanded += res.Expanded
		if !res.Found {
			return nil, llExpanded, errors.Wrapf(core.ErrRootInfeasible, "agent %d", a.ID)
		}
		paths[a.ID] = res.Path
	}
	return paths, llExpanded, nil
}

// allConflicts finds the earliest conflict for every pair of agents
// currently present in paths.
func allConflicts(m *core.Map, paths map[core.AgentID]core.SinglePath, agentSize, precision float64) []core.Conflict {
	ids := make([]core.AgentID, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	var out []core.Conflict
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			pa := paths[ids[i]]
			pb := paths[ids[j]]
			if c := conflict.CheckPaths(m, &pa, &pb, agentSize, precision); c != nil {
				out = append(out, *c)
			}
		}
	}
	return out
}

// bucketConflicts partitions conflicts into cardinal/semi-cardinal
// buckets (classifying each, when enabled) alongside the full list, per
// spec.md §4.5 and §3's CBS_Node fields.
func bucketConflicts(m *core.Map, oracle *heuristic.Oracle, cfg core.Config, fullConstraints []core.Constraint, agents map[core.AgentID]core.Agent, paths map[core.AgentID]core.SinglePath, conflicts []core.Conflict) (all, semicard, cardinal []core.Conflict) {
	all = conflicts
	if !cfg.UseCardinal {
		return all, nil, nil
	}
	for i := range conflicts {
		c := conflicts[i]
		aAgent, bAgent := agents[c.AgentA], agents[c.AgentB]
		pa, pb := paths[c.AgentA], paths[c.AgentB]
		kind := conflict.Classify(m, oracle, cfg, fullConstraints, &c, aAgent.Start, aAgent.Goal, pa.Cost, bAgent.Start, bAgent.Goal, pb.Cost)
		conflicts[i].Kind = kind
		conflicts[i].Classified = true
		switch kind {
		case core.Cardinal:
			cardinal = append(cardinal, conflicts[i])
		case core.SemiCardinal:
			semicard = append(semicard, conflicts[i])
		}
	}
	return all, semicard, cardinal
}

// hlHeuristicFor computes a node's h value from its cardinal conflicts
// only (callers always pass CardinalConflicts, which is empty when
// UseCardinal is false, yielding h=0 for hlh_type in {1,2} as well:
// heuristics 1/2 are only meaningful alongside cardinal classification).
func hlHeuristicFor(cfg core.Config, cardinalConflicts []core.Conflict) float64 {
	return hlheuristic.Compute(cfg, cardinalConflicts)
}
