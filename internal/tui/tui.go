// Package tui renders a solved plan step by step for cmd/inspect. Grounded
// on internal/tui/tui.go's Bubble Tea Model/Update/View shape: a scrollable
// log viewport plus a bordered sidebar, both styled with internal/tui's
// named lipgloss.Style values. Where the teacher's TUIModel drives a live
// poker hand from player input, this Model walks a fixed, already-solved
// plan.StepView list (from plan.LoadSteps) one step at a time, either by
// keypress or on a timer, mirroring the solve/execute split of spec.md §5:
// the inspector never re-solves, it only replays what a prior solve wrote
// to disk.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/betteridle/internal/plan"
)

// Sidebar carries the aggregate counters the solver recorded for this
// plan, displayed alongside the step-by-step walk. CacheHitRate is
// optional (0 when the solver didn't report candidate cache stats).
type Sidebar struct {
	ExpandedNodeCount int
	EnqueuedNodeCount int
	TotalTicks        float64
	CacheHitRate      float64
}

// tickMsg advances the cursor automatically when auto-play is on.
type tickMsg time.Time

func autoAdvance() tea.Cmd {
	return tea.Tick(400*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the plan inspector's Bubble Tea model.
type Model struct {
	steps   []plan.StepView
	sidebar Sidebar
	logger  *log.Logger

	logViewport viewport.Model
	bar         progress.Model

	cursor   int
	autoPlay bool
	quitting bool

	width  int
	height int
}

// New builds a Model over steps, ready to walk from the first step.
func New(steps []plan.StepView, sidebar Sidebar, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	bar := progress.New(progress.WithDefaultGradient())
	return &Model{
		steps:       steps,
		sidebar:     sidebar,
		logger:      logger.WithPrefix("inspect"),
		logViewport: vp,
		bar:         bar,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = m.width - 4

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "right", "n", "l":
			m.step(1)
		case "left", "p", "h":
			m.step(-1)
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = m.lastIndex()
		case " ":
			m.autoPlay = !m.autoPlay
			if m.autoPlay {
				cmds = append(cmds, autoAdvance())
			}
		case "up", "k":
			m.logViewport.ScrollUp(1)
		case "down", "j":
			m.logViewport.ScrollDown(1)
		}

	case tickMsg:
		if m.autoPlay {
			if m.cursor < m.lastIndex() {
				m.step(1)
				cmds = append(cmds, autoAdvance())
			} else {
				m.autoPlay = false
			}
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) lastIndex() int {
	if len(m.steps) == 0 {
		return 0
	}
	return len(m.steps) - 1
}

func (m *Model) step(delta int) {
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next > m.lastIndex() {
		next = m.lastIndex()
	}
	m.cursor = next
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	sidebarContent := m.renderSidebar()
	sidebarWidth := 28

	logContent := m.renderSteps()
	m.logViewport.SetContent(logContent)
	m.logViewport.Width = m.width - sidebarWidth - 4
	m.logViewport.Height = m.height - 6

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(m.logViewport.Width).
		Height(m.logViewport.Height)
	logPane := logStyle.Render(m.logViewport.View())

	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(m.logViewport.Height)
	sidebarPane := sidebarStyle.Render(sidebarContent)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)

	progressPane := m.renderProgress()
	help := InfoStyle.Render("←/→ step  space auto-play  q quit")

	return lipgloss.JoinVertical(lipgloss.Top, topRow, progressPane, help)
}

func (m *Model) renderSteps() string {
	var b strings.Builder
	for i, s := range m.steps {
		line := fmt.Sprintf("%3d  %-11s %s", i, s.Kind, s.Description)
		switch {
		case i == m.cursor:
			b.WriteString(CurrentStepStyle.Render("▶ " + line))
		case s.Kind == "wait":
			b.WriteString("  " + WaitStyle.Render(line))
		case s.Kind == "macro":
			b.WriteString("  " + MacroStyle.Render(line))
		default:
			b.WriteString("  " + InteractionStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("plan stats"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("steps: %d\n", len(m.steps)))
	b.WriteString(fmt.Sprintf("ticks: %.0f\n", m.sidebar.TotalTicks))
	b.WriteString(fmt.Sprintf("expanded: %d\n", m.sidebar.ExpandedNodeCount))
	b.WriteString(fmt.Sprintf("enqueued: %d\n", m.sidebar.EnqueuedNodeCount))
	if m.sidebar.CacheHitRate > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("cache hit: %.0f%%", m.sidebar.CacheHitRate*100)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderProgress() string {
	if len(m.steps) == 0 {
		return ""
	}
	frac := float64(m.cursor) / float64(m.lastIndex())
	if m.lastIndex() == 0 {
		frac = 1
	}
	return m.bar.ViewAs(frac)
}

// CurrentStep returns the step under the cursor, for tests and for a host
// program driving the model headlessly.
func (m *Model) CurrentStep() plan.StepView {
	if len(m.steps) == 0 {
		return plan.StepView{}
	}
	return m.steps[m.cursor]
}
