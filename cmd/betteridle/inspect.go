package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/betteridle/cmd/betteridle/shared"
	"github.com/lox/betteridle/internal/plan"
	"github.com/lox/betteridle/internal/tui"
)

// InspectCmd renders a persisted plan (written with plan.Save by SolveCmd
// or BatchCmd) step by step. Grounded on
// cmd/pokerforbots's pattern of one Cmd per terminal surface, here driving
// internal/tui.Model instead of the teacher's live-hand TUIModel.
type InspectCmd struct {
	Plan string `kong:"arg,required,help='Path to a plan file written by plan.Save'"`
}

func (c *InspectCmd) Run() error {
	steps, err := plan.LoadSteps(c.Plan)
	if err != nil {
		return fmt.Errorf("load plan steps: %w", err)
	}
	summary, err := plan.LoadSummary(c.Plan)
	if err != nil {
		return fmt.Errorf("load plan summary: %w", err)
	}

	cacheHitRate := 0.0
	// Cache hit counters aren't persisted with the plan file (they live on
	// the transient sdk/solver.Profile, not the diagnostic plan.Summary),
	// so the sidebar only shows what LoadSummary actually has on disk.
	sidebar := tui.Sidebar{
		ExpandedNodeCount: summary.ExpandedNodeCount,
		EnqueuedNodeCount: summary.EnqueuedNodeCount,
		TotalTicks:        summary.TotalTicks,
		CacheHitRate:      cacheHitRate,
	}

	logger := shared.QuietLogger()
	model := tui.New(steps, sidebar, logger)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
