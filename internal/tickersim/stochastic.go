// Package tickersim provides a reference implementation of the external
// tick-simulator contract (spec.md §1, §6). It is an explicitly replaceable
// collaborator: internal/state.Advancer and internal/executor depend only
// on state.Ticker, never on this package's concrete type, so a caller may
// swap in the Flutter app's own stochastic simulator without touching the
// core. Grounded on internal/bot/random, the teacher's own reference/test
// implementation of an interface the core only needs the contract of.
package tickersim

import (
	"math/rand"

	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// StochasticTicker simulates tick-by-tick using per-tick random trials. Its
// model is simpler than internal/rate's: each tick with an active skill
// action counts as one completion (MeanDuration is not applied), thieving
// success depends on mastery level only with no stun, and gold comes from
// the action's Currency, so its long-run totals can differ from what
// AdvanceExpected predicts.
type StochasticTicker struct {
	Catalog registry.Registries
}

// NewStochasticTicker builds a ticker over catalog.
func NewStochasticTicker(catalog registry.Registries) *StochasticTicker {
	return &StochasticTicker{Catalog: catalog}
}

// ConsumeTicks narrates dt ticks one at a time against b, stopping early on
// inputs depleted, inventory full, or death.
func (t *StochasticTicker) ConsumeTicks(b state.StateBuilder, dt int, rng *rand.Rand) state.StopReason {
	for i := 0; i < dt; i++ {
		id, hasActive := b.ActiveID()
		if !hasActive {
			continue
		}
		act, found := t.Catalog.ActionByID(id)
		if !found || !act.IsSkillAction {
			continue
		}

		for _, in := range act.Inputs {
			if b.ItemCount(in.Item) < in.Count {
				return state.OutOfInputs
			}
		}

		masteryXP := b.MasteryXP(act.ID)
		for _, in := range act.Inputs {
			b.AddItem(in.Item, -in.Count)
		}

		succeeded := true
		if act.Skill == registry.Thieving {
			successProb := clamp01((100 + float64(registry.LevelForXP(masteryXP))*0.5) / (100 + float64(act.Perception)))
			succeeded = rng.Float64() < successProb
			if !succeeded && act.MaxHit > 0 {
				hit := rng.Intn(act.MaxHit + 1)
				b.AddHP(-hit)
			}
		}

		if succeeded {
			b.AddXP(act.Skill, act.XP)
			b.AddMasteryXP(act.ID, act.MasteryXP)
			if act.Currency > 0 {
				b.AddCurrency("gp", int(act.Currency))
			}
			for _, out := range act.Outputs {
				if !b.AddItem(out.Item, out.Count) {
					return state.InventoryFull
				}
			}
		}

		if b.HP() <= 0 {
			return state.PlayerDied
		}
	}
	return state.StillRunning
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var _ state.Ticker = (*StochasticTicker)(nil)
