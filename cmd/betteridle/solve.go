package main

import (
	"fmt"
	"os"

	"github.com/lox/betteridle/cmd/betteridle/shared"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/plan"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
	"github.com/lox/betteridle/sdk/solver"
)

// SolveCmd solves one goal against one initial state and writes the plan.
// Grounded on cmd/pokerforbots/server.go's Cmd shape (kong struct tags,
// flat Run() error method); goal/state are read as the JSON wire shapes
// internal/goal and internal/state already define, not a bespoke CLI
// grammar, so the same files a cmd/serve SolveRequest carries can be fed
// straight to this subcommand.
type SolveCmd struct {
	Catalog string `kong:"required,help='Path to a JSON content pack (registry.LoadCatalog)'"`
	Goal    string `kong:"required,help='Path to a JSON goal document (goal.FromJSON)'"`
	State   string `kong:"required,help='Path to a JSON game state document (state.FromJSON)'"`
	Out     string `kong:"required,help='Path to write the resulting plan (plan.Save)'"`

	MaxExpandedNodes           int     `kong:"default='200000',help='Node expansion budget'"`
	MaxQueueSize               int     `kong:"default='500000',help='Frontier queue size budget'"`
	Seed                       int64   `kong:"default='1',help='Deterministic RNG seed'"`
	CandidateCacheSize         int     `kong:"default='4096',help='Candidate enumerator cache size'"`
	InventoryThresholdFraction float64 `kong:"default='0.8',help='Inventory fullness fraction that triggers a sell step'"`

	Debug bool `kong:"help='Enable debug logging'"`
}

func (c *SolveCmd) Run() error {
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

	opts := solver.SolverOptions{
		MaxExpandedNodes:           c.MaxExpandedNodes,
		MaxQueueSize:               c.MaxQueueSize,
		Seed:                       c.Seed,
		CandidateCacheSize:         c.CandidateCacheSize,
		InventoryThresholdFraction: c.InventoryThresholdFraction,
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	logger.Info("solving", "goal_file", c.Goal, "state_file", c.State)
	result := solver.Solve(catalog, initial, g, opts)
	if !result.Succeeded() {
		return fmt.Errorf("solve failed: %w", result.Failure)
	}

	if err := plan.Save(*result.Plan, c.Out); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	logger.Info("solved", "steps", len(result.Plan.Steps), "total_ticks", result.Plan.TotalTicks,
		"expanded_nodes", result.Profile.ExpandedNodes, "out", c.Out)
	return nil
}
