// Package plan holds the A* search's output: an ordered list of steps, the
// segment sell-policy markers threaded through them, and the aggregate
// counters spec.md §4.10 requires (interaction count, total ticks,
// expanded/enqueued node counts). Kept separate from sdk/solver so the
// executor (internal/executor) and the plan inspector (internal/tui) can
// depend on the plan shape without pulling in the search itself.
package plan

import (
	"github.com/lox/betteridle/internal/macro"
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/registry"
)

// StepKind tags a Step's concrete payload.
type StepKind int

const (
	StepUnknown StepKind = iota
	StepInteraction
	StepWait
	StepMacro
)

func (k StepKind) String() string {
	switch k {
	case StepInteraction:
		return "interaction"
	case StepWait:
		return "wait"
	case StepMacro:
		return "macro"
	default:
		return "unknown"
	}
}

// Step is one edge of a reconstructed plan. Exactly one of Interaction,
// WaitFor, or Macro is populated, selected by Kind.
type Step struct {
	Kind StepKind

	// Interaction steps: a zero-tick interaction-edge (spec.md §4.9).
	Interaction state.Interaction

	// Wait steps: the predicate being waited on and the action expected
	// active while waiting (spec.md §4.12's WaitStep).
	WaitFor        waitfor.WaitFor
	ExpectedAction registry.ActionID

	// Macro steps: a macro from internal/macro, either a
	// prerequisite-resolution macro or a TrainConsumingSkillUntil loop.
	Macro macro.Macro

	// Ticks is this step's planned tick cost (0 for interaction steps).
	Ticks float64
}

// SellPolicyMarker records which sell policy governs execution from
// StepIndex onward, until superseded by a later marker (spec.md §4.11).
type SellPolicyMarker struct {
	StepIndex int
	Policy    sellpolicy.Policy
}

// Plan is the solver's reconstructed output.
type Plan struct {
	Steps              []Step
	SellPolicyMarkers  []SellPolicyMarker
	TotalTicks         float64
	InteractionCount   int
	ExpandedNodeCount  int
	EnqueuedNodeCount  int
}

// PolicyAt returns the sell policy in effect at stepIndex: the marker with
// the greatest StepIndex <= stepIndex. ok is false if no marker applies
// (a legacy plan with no markers at all), in which case callers should log
// a fallback to sellpolicy.SellAll{} rather than silently assume it.
func (p Plan) PolicyAt(stepIndex int) (sellpolicy.Policy, bool) {
	var best *SellPolicyMarker
	for i := range p.SellPolicyMarkers {
		m := &p.SellPolicyMarkers[i]
		if m.StepIndex <= stepIndex && (best == nil || m.StepIndex > best.StepIndex) {
			best = m
		}
	}
	if best == nil {
		return nil, false
	}
	return best.Policy, true
}
