// Package orchestrator wires together map/task validation, config
// normalization, the CBS/SIPP core and run statistics into a single
// entry point (C8), mirroring spec.md §4.8.
package orchestrator

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/mapf-ct/internal/cbs"
	"github.com/elektrokombinacija/mapf-ct/internal/core"
	"github.com/elektrokombinacija/mapf-ct/internal/heuristic"
)

// Solve validates the task against the map, normalizes cfg, builds the
// heuristic oracle, runs CBS to termination and assembles a Solution.
// The second return value carries ErrRootInfeasible (or a validation
// error) when no solution could be attempted at all; a timeout or an
// exhausted search both return (solution, nil) with Solution.Found set
// accordingly, per spec.md §7's error taxonomy.
func Solve(m *core.Map, task *core.Task, cfg core.Config, logger *zap.Logger) (*core.Solution, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.New().String()
	log := logger.With(zap.String("run_id", runID))

	cfg.Normalize(log)

	if err := task.Validate(m); err != nil {
		log.Warn("invalid task", zap.Error(err))
		return &core.Solution{Found: false}, err
	}

	goals := make([]core.NodeID, 0, len(task.Agents))
	for _, a := range task.Agents {
		goals = append(goals, a.Goal)
	}
	oracle := heuristic.Build(m, goals)

	var deadline time.Time
	if cfg.TimeLimit > 0 {
		deadline = time.Now().Add(time.Duration(cfg.TimeLimit * float64(time.Second)))
	}

	start := time.Now()
	out, err := cbs.Solve(m, task, oracle, cfg, deadline, log)
	runtime := time.Since(start).Seconds()

	sol := &core.Solution{
		Found:        out.Found,
		Runtime:      runtime,
		HLExpansions: out.HLExpansions,
		LLSearches:   out.LLSearches,
		LLExpanded:   out.LLExpanded,
	}

	if err != nil {
		log.Warn("root infeasible", zap.Error(err))
		return sol, err
	}

	if !out.Found {
		if out.TimedOut {
			log.Warn("timeout", zap.Int("hl_expansions", out.HLExpansions))
		}
		return sol, nil
	}

	sol.Paths = make([]core.SinglePath, 0, len(out.Paths))
	for _, a := range task.Agents {
		sol.Paths = append(sol.Paths, out.Paths[a.ID])
	}
	sol.ComputeAggregates()

	log.Info("solve complete",
		zap.Bool("found", sol.Found),
		zap.Float64("cost", sol.Cost),
		zap.Float64("makespan", sol.Makespan),
		zap.Float64("runtime", sol.Runtime),
		zap.Int("hl_expansions", sol.HLExpansions),
		zap.Int("ll_searches", sol.LLSearches),
		zap.Int("ll_expanded", sol.LLExpanded),
	)

	return sol, nil
}
