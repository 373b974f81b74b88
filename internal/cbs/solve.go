package cbs

import (
	"time"

	"go.uber.org/zap"

	"github.com/elektrokombinacija/mapf-ct/internal/conflict"
	"github.com/elektrokombinacija/mapf-ct/internal/core"
	"github.com/elektrokombinacija/mapf-ct/internal/heuristic"
	"github.com/elektrokombinacija/mapf-ct/internal/sipp"
)

// Outcome is the result of a Solve call: the found conflict-free paths
// (if any) plus the statistics spec.md §4.8/§6 requires from the
// orchestrator.
type Outcome struct {
	Paths        map[core.AgentID]core.SinglePath
	Found        bool
	TimedOut     bool
	HLExpansions int
	LLSearches   int
	LLExpanded   int
}

// Solve runs the high-level CBS main loop to termination: success (a
// conflict-free node), OPEN exhaustion (infeasible), or deadline
// (timeout), per spec.md §4.6 "Termination".
func Solve(m *core.Map, task *core.Task, oracle *heuristic.Oracle, cfg core.Config, deadline time.Time, logger *zap.Logger) (Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	agents := make(map[core.AgentID]core.Agent, len(task.Agents))
	for _, a := range task.Agents {
		agents[a.ID] = a
	}

	rootPaths, llExpanded, err := initRoot(m, task, oracle, cfg)
	if err != nil {
		logger.Warn("root infeasible")
		return Outcome{Found: false, LLSearches: len(task.Agents), LLExpanded: llExpanded}, err
	}

	tree := NewTree()
	tree.rootPaths = rootPaths

	rootConflicts := allConflicts(m, rootPaths, cfg.AgentSize, cfg.Precision)
	all, semicard, cardinal := bucketConflicts(m, oracle, cfg, nil, agents, rootPaths, rootConflicts)

	rootCost := 0.0
	for _, p := range rootPaths {
		rootCost += p.Cost
	}

	root := &Node{
		HasParent:         false,
		ParentID:          -1,
		Cost:              rootCost,
		Conflicts:         all,
		SemicardConflicts: semicard,
		CardinalConflicts: cardinal,
		ConflictsNum:      len(all),
	}
	root.H = hlHeuristicFor(cfg, root.CardinalConflicts)
	tree.Add(root)
	tree.RefreshFocal(cfg.FocalWeight)

	stats := Outcome{LLSearches: len(task.Agents), LLExpanded: llExpanded}

	for {
		if !deadline.IsZero() && time.Now().After(deadline) {
			logger.Warn("cbs timeout", zap.Int("hl_expansions", stats.HLExpansions))
			stats.TimedOut = true
			return stats, nil
		}

		node, ok := tree.PopBest(cfg.FocalWeight)
		if !ok {
			logger.Info("cbs infeasible: open exhausted", zap.Int("hl_expansions", stats.HLExpansions))
			return stats, nil
		}
		stats.HLExpansions++

		if node.ConflictsNum == 0 {
			paths := tree.Paths(node, rootPaths)
			stats.Found = true
			stats.Paths = paths
			logger.Info("cbs success", zap.Int("hl_expansions", stats.HLExpansions), zap.Int("ll_searches", stats.LLSearches))
			return stats, nil
		}

		c := pickConflict(node)
		ancestors := tree.ancestorConstraints(node)
		paths := tree.Paths(node, rootPaths)
		children := buildChildren(m, c, cfg)

		for _, spec := range children {
			fullConstraints := make([]core.Constraint, 0, len(ancestors)+1)
			fullConstraints = append(fullConstraints, ancestors...)
			if spec.hasConstraint {
				fullConstraints = append(fullConstraints, spec.constraint)
			}
			if spec.hasPositive {
				fullConstraints = append(fullConstraints, spec.positive)
			}
			if !validateConstraints(fullConstraints) {
				continue
			}

			ag := agents[spec.agent]
			res := sipp.Plan(m, oracle, spec.agent, ag.Start, ag.Goal, fullConstraints, cfg)
			stats.LLSearches++
			stats.LLExpanded += res.Expanded
			if !res.Found {
				continue // InfeasibleConstraint: child silently discarded
			}

			newPaths := make(map[core.AgentID]core.SinglePath, len(paths))
			for id, p := range paths {
				newPaths[id] = p
			}
			newPaths[spec.agent] = res.Path

			newCost := node.Cost - paths[spec.agent].Cost + res.Path.Cost

			kept := make([]core.Conflict, 0, len(node.Conflicts))
			for _, oc := range node.Conflicts {
				if oc.AgentA != spec.agent && oc.AgentB != spec.agent {
					kept = append(kept, oc)
				}
			}
			for otherID := range newPaths {
				if otherID == spec.agent {
					continue
				}
				pa, pb := newPaths[spec.agent], newPaths[otherID]
				if nc := conflict.CheckPaths(m, &pa, &pb, cfg.AgentSize, cfg.Precision); nc != nil {
					kept = append(kept, *nc)
				}
			}

			all, semicard, cardinal := bucketConflicts(m, oracle, cfg, fullConstraints, agents, newPaths, kept)

			child := &Node{
				HasParent:         true,
				ParentID:          node.ID,
				Cost:              newCost,
				Constraint:        spec.constraint,
				HasConstraint:     spec.hasConstraint,
				PositiveConstraint: spec.positive,
				HasPositive:       spec.hasPositive,
				NewPath:           res.Path,
				HasNewPath:        true,
				Conflicts:         all,
				SemicardConflicts: semicard,
				CardinalConflicts: cardinal,
				ConflictsNum:      len(all),
			}
			child.H = hlHeuristicFor(cfg, child.CardinalConflicts)
			tree.Add(child)
		}

		tree.RefreshFocal(cfg.FocalWeight)
	}
}
