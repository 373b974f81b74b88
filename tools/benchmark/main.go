// Command benchmark loads instances produced by tools/geninstances,
// solves each with the orchestrator under one or more hlh_type / focal
// weight configurations, and tabulates the resulting statistics to CSV.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
	"github.com/elektrokombinacija/mapf-ct/internal/orchestrator"
)

// instanceFile mirrors tools/geninstances's on-disk schema.
type instanceFile struct {
	Name          string   `json:"name"`
	Seed          int64    `json:"seed"`
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	Connectedness int      `json:"connectedness"`
	Blocked       [][2]int `json:"blocked"`
	Agents        []struct {
		Start [2]int `json:"start"`
		Goal  [2]int `json:"goal"`
	} `json:"agents"`
}

// result is one (instance, config) run's outcome, flattened for CSV.
type result struct {
	Timestamp    string
	GoVersion    string
	OS           string
	Arch         string
	Instance     string
	NumAgents    int
	GridSize     string
	HLHType      int
	FocalWeight  float64
	Found        bool
	Cost         float64
	Flowtime     float64
	Makespan     float64
	RuntimeMs    float64
	HLExpansions int
	LLSearches   int
	LLExpanded   int
}

func loadInstance(path string) (*core.Map, *core.Task, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, "", err
	}
	var inst instanceFile
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, nil, "", err
	}

	blocked := make(map[[2]int]bool, len(inst.Blocked))
	for _, b := range inst.Blocked {
		blocked[b] = true
	}

	m, err := core.NewGridMap(inst.Width, inst.Height, blocked, inst.Connectedness)
	if err != nil {
		return nil, nil, "", err
	}

	nodeOf := func(cell [2]int) core.NodeID {
		return core.NodeID(cell[1]*inst.Width + cell[0])
	}

	agents := make([]core.Agent, 0, len(inst.Agents))
	for i, a := range inst.Agents {
		agents = append(agents, core.Agent{
			ID:    core.AgentID(i),
			Start: nodeOf(a.Start),
			Goal:  nodeOf(a.Goal),
		})
	}

	gridSize := fmt.Sprintf("%dx%d", inst.Width, inst.Height)
	return m, core.NewTask(agents), gridSize, nil
}

func runOne(m *core.Map, task *core.Task, gridSize, instName string, hlhType int, focalWeight float64, timeLimit float64) result {
	cfg := core.DefaultConfig()
	cfg.HLHType = hlhType
	cfg.FocalWeight = focalWeight
	cfg.TimeLimit = timeLimit

	r := result{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		Instance:    instName,
		NumAgents:   len(task.Agents),
		GridSize:    gridSize,
		HLHType:     hlhType,
		FocalWeight: focalWeight,
	}

	start := time.Now()
	sol, err := orchestrator.Solve(m, task, cfg, nil)
	r.RuntimeMs = float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		return r
	}

	r.Found = sol.Found
	r.Cost = sol.Cost
	r.Flowtime = sol.Flowtime
	r.Makespan = sol.Makespan
	r.HLExpansions = sol.HLExpansions
	r.LLSearches = sol.LLSearches
	r.LLExpanded = sol.LLExpanded
	return r
}

func writeCSV(results []result, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{
		"timestamp", "go_version", "os", "arch",
		"instance", "num_agents", "grid_size", "hlh_type", "focal_weight",
		"found", "cost", "flowtime", "makespan", "runtime_ms",
		"hl_expansions", "ll_searches", "ll_expanded",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Timestamp, r.GoVersion, r.OS, r.Arch,
			r.Instance, fmt.Sprintf("%d", r.NumAgents), r.GridSize,
			fmt.Sprintf("%d", r.HLHType), fmt.Sprintf("%.2f", r.FocalWeight),
			fmt.Sprintf("%t", r.Found), fmt.Sprintf("%.3f", r.Cost),
			fmt.Sprintf("%.3f", r.Flowtime), fmt.Sprintf("%.3f", r.Makespan),
			fmt.Sprintf("%.3f", r.RuntimeMs),
			fmt.Sprintf("%d", r.HLExpansions), fmt.Sprintf("%d", r.LLSearches), fmt.Sprintf("%d", r.LLExpanded),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	inputDir := flag.String("input", "testdata", "directory containing instance JSON files")
	outputFile := flag.String("output", "evidence/benchmark_results.csv", "output CSV file")
	timeLimit := flag.Float64("time-limit", 30.0, "per-run time limit (seconds)")
	hlhTypes := flag.String("hlh-types", "0,1,2", "comma-separated hlh_type values to sweep")
	focalWeights := flag.String("focal-weights", "1.0", "comma-separated focal_weight values to sweep")
	verbose := flag.Bool("verbose", false, "print per-run progress")

	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*outputFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(*inputDir, "*.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error finding instance files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no instance files found in %s (run geninstances first)\n", *inputDir)
		os.Exit(1)
	}

	hlhList := parseIntList(*hlhTypes)
	focalList := parseFloatList(*focalWeights)

	var results []result
	for _, file := range files {
		m, task, gridSize, err := loadInstance(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading %s: %v\n", file, err)
			continue
		}
		instName := strings.TrimSuffix(filepath.Base(file), ".json")

		for _, hlhType := range hlhList {
			for _, fw := range focalList {
				if *verbose {
					fmt.Printf("%s hlh_type=%d focal_weight=%.2f ... ", instName, hlhType, fw)
				}
				r := runOne(m, task, gridSize, instName, hlhType, fw, *timeLimit)
				results = append(results, r)
				if *verbose {
					fmt.Printf("found=%v cost=%.2f runtime=%.1fms\n", r.Found, r.Cost, r.RuntimeMs)
				}
			}
		}
	}

	if err := writeCSV(results, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("results written to: %s (%d runs)\n", *outputFile, len(results))
}

func parseIntList(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		var v int
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%d", &v); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func parseFloatList(s string) []float64 {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		var v float64
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%f", &v); err == nil {
			out = append(out, v)
		}
	}
	return out
}
