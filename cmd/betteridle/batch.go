package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/betteridle/cmd/betteridle/shared"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/plan"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
	"github.com/lox/betteridle/sdk/solver"
)

// BatchCmd solves several independent goals against the same initial state
// concurrently. Grounded on internal/evaluator/equity.go's errgroup worker
// pool (per-worker independent inputs, no shared mutable state, collected
// after g.Wait()) — every solve here is likewise independent: unlike that
// pool, there's no shared channel of partial results to merge, just N
// plans written to N files, so each worker writes its own output rather
// than feeding a collector.
type BatchCmd struct {
	Catalog     string   `kong:"required,help='Path to a JSON content pack'"`
	State       string   `kong:"required,help='Path to a JSON game state document, shared by every goal'"`
	Goals       []string `kong:"required,help='Paths to JSON goal documents to solve concurrently'"`
	OutDir      string   `kong:"required,help='Directory to write one plan file per goal'"`
	Concurrency int      `kong:"default='4',help='Maximum concurrent solves'"`
	Seed        int64    `kong:"default='1',help='Deterministic RNG seed, shared by every solve'"`
	Debug       bool     `kong:"help='Enable debug logging'"`
}

func (c *BatchCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	catalog, err := registry.LoadCatalog(c.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	stateData, err := os.ReadFile(c.State)
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	initial, err := state.FromJSON(stateData)
	if err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	g := new(errgroup.Group)
	g.SetLimit(c.Concurrency)

	for _, goalPath := range c.Goals {
		goalPath := goalPath
		g.Go(func() error {
			return c.solveOne(catalog, initial, goalPath, logger)
		})
	}

	return g.Wait()
}

func (c *BatchCmd) solveOne(catalog registry.Registries, initial state.GameState, goalPath string, logger *log.Logger) error {
	goalData, err := os.ReadFile(goalPath)
	if err != nil {
		return fmt.Errorf("read goal %s: %w", goalPath, err)
	}
	g, err := goal.FromJSON(goalData)
	if err != nil {
		return fmt.Errorf("decode goal %s: %w", goalPath, err)
	}

	opts := solver.DefaultOptions()
	opts.Seed = c.Seed

	result := solver.Solve(catalog, initial, g, opts)
	base := filepath.Base(goalPath)
	outPath := filepath.Join(c.OutDir, base+".plan.json")

	if !result.Succeeded() {
		logger.Error("solve failed", "goal", base, "reason", result.Failure)
		return fmt.Errorf("solve %s: %w", base, result.Failure)
	}
	if err := plan.Save(*result.Plan, outPath); err != nil {
		return fmt.Errorf("save plan for %s: %w", base, err)
	}
	logger.Info("solved", "goal", base, "steps", len(result.Plan.Steps), "out", outPath)
	return nil
}
