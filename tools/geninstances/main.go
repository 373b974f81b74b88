// Command geninstances generates deterministic continuous-time MAPF
// instances (a grid map plus a set of agent start/goal pairs) as JSON,
// for consumption by tools/benchmark. Instance file format is owned by
// this tool, not by the core module (spec.md §1's file-parsing
// non-goal).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// Instance is the on-disk schema: a grid map description plus agent
// start/goal grid cells as [x, y]; a cell's node id is y*width+x
// (core.NewGridMap's node numbering).
type Instance struct {
	Name          string   `json:"name"`
	Seed          int64    `json:"seed"`
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	Connectedness int      `json:"connectedness"`
	Blocked       [][2]int `json:"blocked"`
	Agents        []Agent  `json:"agents"`
}

// Agent is one agent's start/goal pair, by grid cell.
type Agent struct {
	Start [2]int `json:"start"`
	Goal  [2]int `json:"goal"`
}

func generate(seed int64, width, height, numAgents int, obstacleDensity float64, connectedness int) Instance {
	rng := rand.New(rand.NewSource(seed))

	inst := Instance{
		Name:          fmt.Sprintf("mapfct_%dx%d_a%d_s%d", width, height, numAgents, seed),
		Seed:          seed,
		Width:         width,
		Height:        height,
		Connectedness: connectedness,
	}

	blocked := make(map[[2]int]bool)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if rng.Float64() < obstacleDensity {
				blocked[[2]int{x, y}] = true
				inst.Blocked = append(inst.Blocked, [2]int{x, y})
			}
		}
	}

	var free [][2]int
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !blocked[[2]int{x, y}] {
				free = append(free, [2]int{x, y})
			}
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	if numAgents*2 > len(free) {
		numAgents = len(free) / 2
	}
	for i := 0; i < numAgents; i++ {
		inst.Agents = append(inst.Agents, Agent{
			Start: free[2*i],
			Goal:  free[2*i+1],
		})
	}

	return inst
}

func main() {
	seed := flag.Int64("seed", 42, "random seed")
	width := flag.Int("width", 10, "grid width")
	height := flag.Int("height", 10, "grid height")
	numAgents := flag.Int("agents", 10, "number of agents")
	obstacleDensity := flag.Float64("obstacles", 0.1, "fraction of blocked cells")
	connectedness := flag.Int("connectedness", 2, "grid connectedness (2-5)")
	outputDir := flag.String("output", "testdata", "output directory")
	count := flag.Int("count", 1, "number of instances to generate (seed increments per instance)")

	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	for i := 0; i < *count; i++ {
		inst := generate(*seed+int64(i), *width, *height, *numAgents, *obstacleDensity, *connectedness)

		data, err := json.MarshalIndent(inst, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error marshaling instance: %v\n", err)
			os.Exit(1)
		}

		path := filepath.Join(*outputDir, inst.Name+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("generated: %s (%d agents, %dx%d grid)\n", path, len(inst.Agents), *width, *height)
	}
}
