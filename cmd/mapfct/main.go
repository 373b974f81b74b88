// Command mapfct runs the continuous-time CBS/SIPP solver against a
// small in-code grid instance, exposing the tunable Config fields as
// flags. Map/task file parsing is out of scope (see internal/configio
// for the Config-only JSON adapter); this binary demonstrates the
// orchestrator end-to-end with a toy scenario.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
	"github.com/elektrokombinacija/mapf-ct/internal/orchestrator"
)

func main() {
	app := &cli.App{
		Name:  "mapfct",
		Usage: "solve a continuous-time multi-agent pathfinding instance",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "width", Value: 8, Usage: "grid width"},
			&cli.IntFlag{Name: "height", Value: 8, Usage: "grid height"},
			&cli.IntFlag{Name: "agents", Value: 4, Usage: "number of agents (corner-to-corner)"},
			&cli.Float64Flag{Name: "precision", Value: core.DefaultPrecision},
			&cli.BoolFlag{Name: "use-cardinal", Value: core.DefaultUseCardinal},
			&cli.BoolFlag{Name: "use-disjoint-splitting", Value: core.DefaultUseDisjointSplitting},
			&cli.IntFlag{Name: "connectedness", Value: core.DefaultConnectedness},
			&cli.Float64Flag{Name: "focal-weight", Value: core.DefaultFocalWeight},
			&cli.Float64Flag{Name: "agent-size", Value: core.DefaultAgentSize},
			&cli.IntFlag{Name: "hlh-type", Value: core.DefaultHLHType},
			&cli.Float64Flag{Name: "time-limit", Value: core.DefaultTimeLimit},
			&cli.BoolFlag{Name: "verbose", Usage: "emit structured solve logs to stderr"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	width := c.Int("width")
	height := c.Int("height")

	m, err := core.NewGridMap(width, height, nil, c.Int("connectedness"))
	if err != nil {
		return err
	}

	task := cornerTask(width, height, c.Int("agents"))

	cfg := core.Config{
		Precision:            c.Float64("precision"),
		UseCardinal:          c.Bool("use-cardinal"),
		UseDisjointSplitting: c.Bool("use-disjoint-splitting"),
		Connectedness:        c.Int("connectedness"),
		FocalWeight:          c.Float64("focal-weight"),
		AgentSize:            c.Float64("agent-size"),
		HLHType:              c.Int("hlh-type"),
		TimeLimit:            c.Float64("time-limit"),
	}

	var logger *zap.Logger
	if c.Bool("verbose") {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = l
		defer logger.Sync() //nolint:errcheck
	}

	sol, err := orchestrator.Solve(m, task, cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("found=%v cost=%.3f flowtime=%.3f makespan=%.3f runtime=%.3fs\n",
		sol.Found, sol.Cost, sol.Flowtime, sol.Makespan, sol.Runtime)
	fmt.Printf("hl_expansions=%d ll_searches=%d ll_expanded=%d\n",
		sol.HLExpansions, sol.LLSearches, sol.LLExpanded)

	for _, p := range sol.Paths {
		fmt.Printf("  agent %d: cost=%.3f steps=%d\n", p.AgentID, p.Cost, len(p.Nodes))
	}

	return nil
}

// cornerTask places up to 4 agents at the grid's corners, each routed to
// the diagonally opposite corner, so swap/head-on conflicts are common
// even for small grids.
func cornerTask(width, height, numAgents int) *core.Task {
	corners := []core.NodeID{
		0,
		core.NodeID(width - 1),
		core.NodeID((height - 1) * width),
		core.NodeID((height-1)*width + width - 1),
	}
	opposite := []int{3, 2, 1, 0}

	if numAgents > len(corners) {
		numAgents = len(corners)
	}

	agents := make([]core.Agent, 0, numAgents)
	for i := 0; i < numAgents; i++ {
		agents = append(agents, core.Agent{
			ID:    core.AgentID(i),
			Start: corners[i],
			Goal:  corners[opposite[i]],
		})
	}
	return core.NewTask(agents)
}
