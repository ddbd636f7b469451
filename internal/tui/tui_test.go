package tui_test

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/betteridle/internal/plan"
	"github.com/lox/betteridle/internal/tui"
)

func testSteps() []plan.StepView {
	return []plan.StepView{
		{Index: 0, Kind: "interaction", Description: "switch to wc:normal_logs"},
		{Index: 1, Kind: "wait", Description: "level >= 2"},
		{Index: 2, Kind: "interaction", Description: "sell all inventory"},
	}
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func TestModelStepsForwardAndBack(t *testing.T) {
	m := tui.New(testSteps(), tui.Sidebar{ExpandedNodeCount: 10, EnqueuedNodeCount: 20, TotalTicks: 42}, discardLogger())

	if got := m.CurrentStep().Index; got != 0 {
		t.Fatalf("expected to start at step 0, got %d", got)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(*tui.Model)
	if got := m.CurrentStep().Index; got != 1 {
		t.Fatalf("expected step 1 after advancing, got %d", got)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(*tui.Model)
	if got := m.CurrentStep().Index; got != 0 {
		t.Fatalf("expected step 0 after stepping back, got %d", got)
	}
}

func TestModelClampsAtBounds(t *testing.T) {
	m := tui.New(testSteps(), tui.Sidebar{}, discardLogger())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(*tui.Model)
	if got := m.CurrentStep().Index; got != 0 {
		t.Fatalf("expected clamp to step 0, got %d", got)
	}

	for i := 0; i < 10; i++ {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m = updated.(*tui.Model)
	}
	if got := m.CurrentStep().Index; got != 2 {
		t.Fatalf("expected clamp to last step (2), got %d", got)
	}
}

func TestModelRendersWithoutPanicking(t *testing.T) {
	m := tui.New(testSteps(), tui.Sidebar{ExpandedNodeCount: 5, EnqueuedNodeCount: 9, CacheHitRate: 0.5}, discardLogger())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(*tui.Model)
	if view := m.View(); view == "" {
		t.Fatalf("expected non-empty view after a window size message")
	}
}
