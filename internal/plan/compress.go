package plan

import (
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// Compress merges consecutive wait steps and drops no-op switches (a
// SwitchActivity to the action already active) for display (spec.md
// §4.10). It is a display-only transform: SellPolicyMarkers keep their
// original step indices, so execution always runs the uncompressed plan;
// only the inspector (internal/tui) renders the compressed form.
func Compress(p Plan, initialActive registry.ActionID) Plan {
	out := make([]Step, 0, len(p.Steps))
	current := initialActive

	for _, step := range p.Steps {
		if step.Kind == StepInteraction {
			if sw, ok := step.Interaction.(state.SwitchActivity); ok {
				if sw.ActionID == current {
					continue
				}
				current = sw.ActionID
			}
		}

		if step.Kind == StepWait && len(out) > 0 && out[len(out)-1].Kind == StepWait {
			last := &out[len(out)-1]
			last.Ticks += step.Ticks
			last.WaitFor = step.WaitFor
			last.ExpectedAction = step.ExpectedAction
			continue
		}

		out = append(out, step)
	}

	compressed := p
	compressed.Steps = out
	return compressed
}
