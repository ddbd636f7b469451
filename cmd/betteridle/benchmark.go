package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/betteridle/cmd/betteridle/shared"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/profiling"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
	"github.com/lox/betteridle/sdk/solver"
)

// BenchmarkCmd repeats a solve across a range of seeds and reports
// node/tick/wall-time distributions via internal/profiling. Grounded on
// cmd/benchmark/main.go's repeat-and-summarize shape.
type BenchmarkCmd struct {
	Catalog string `kong:"required,help='Path to a JSON content pack'"`
	Goal    string `kong:"required,help='Path to a JSON goal document'"`
	State   string `kong:"required,help='Path to a JSON game state document'"`
	Runs    int    `kong:"default='20',help='Number of solves to run'"`
	Seed    int64  `kong:"default='1',help='First seed; each run increments it by one'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *BenchmarkCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	catalog, err := registry.LoadCatalog(c.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	goalData, err := os.ReadFile(c.Goal)
	if err != nil {
		return fmt.Errorf("read goal: %w", err)
	}
	g, err := goal.FromJSON(goalData)
	if err != nil {
		return fmt.Errorf("decode goal: %w", err)
	}
	stateData, err := os.ReadFile(c.State)
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	initial, err := state.FromJSON(stateData)
	if err != nil {
		return fmt.Errorf("decode state: %w", err)
	}

	var batch profiling.Batch
	for i := 0; i < c.Runs; i++ {
		opts := solver.DefaultOptions()
		opts.Seed = c.Seed + int64(i)

		start := time.Now()
		result := solver.Solve(catalog, initial, g, opts)
		wall := time.Since(start)

		batch.Add(profiling.Sample{
			ExpandedNodes:        result.Profile.ExpandedNodes,
			EnqueuedNodes:        result.Profile.EnqueuedNodes,
			TotalTicks:           totalTicks(result),
			WallTime:             wall,
			CandidateCacheHits:   result.Profile.CandidateCacheHits,
			CandidateCacheMisses: result.Profile.CandidateCacheMisses,
			VisitedSetRejections: result.Profile.VisitedSetRejections,
			DominanceEvictions:   result.Profile.DominanceEvictions,
			Succeeded:            result.Succeeded(),
		})
	}

	logger.Info("benchmark complete", "runs", c.Runs,
		"success_rate", batch.SuccessRate(),
		"nodes_per_sec", batch.NodesPerSecond(),
		"candidate_cache_hit_rate", batch.CandidateCacheHitRate())

	expanded := batch.ExpandedNodeStats()
	ticks := batch.TotalTicksStats()
	fmt.Printf("expanded nodes: mean=%.0f median=%.0f p95=%.0f\n", expanded.Mean(), expanded.Median(), expanded.Percentile(0.95))
	fmt.Printf("total ticks:    mean=%.0f median=%.0f p95=%.0f\n", ticks.Mean(), ticks.Median(), ticks.Percentile(0.95))
	fmt.Printf("visited-set rejections: %d, dominance evictions: %d\n", batch.VisitedSetRejections(), batch.DominanceEvictions())
	return nil
}

func totalTicks(result solver.SolverResult) float64 {
	if result.Plan == nil {
		return 0
	}
	return result.Plan.TotalTicks
}
