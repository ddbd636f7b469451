// Package rate computes expected per-tick flows for an active action,
// including thieving's stealth/success-probability model and the
// death-cycle adjustment that folds restart overhead into a sustainable
// long-run average (spec.md §4.1). It depends only on registry so that
// internal/state can depend on it without an import cycle.
package rate

import (
	"math"

	"github.com/lox/betteridle/registry"
)

// RestartOverheadTicks is the fixed cost assumed for recovering from a
// death (walking back, re-engaging) before the next attempt can start.
const RestartOverheadTicks = 50

// Inputs is the slice of game state the estimator needs, deliberately
// narrow (not the full GameState) to keep this package state-independent.
type Inputs struct {
	Action             registry.Action
	ThievingLevel      int // registry.LevelForXP(s.XPForSkill(registry.Thieving)); unused outside estimateThieving
	MasteryLevel       int
	DurationMultiplier float64 // aggregated shop modifier for Action.Skill
	HP                 int
	MaxHP              int
}

// Rates is the expected per-tick yield of the active action.
type Rates struct {
	ExpectedTicksPerCompletion float64
	CurrencyPerTick            float64
	XPPerTick                  float64
	MasteryXPPerTick           float64
	Produced                   map[registry.ItemID]float64
	Consumed                   map[registry.ItemID]float64
	HPLossPerTick              float64
	DistinctItemTypePerTick    float64
}

// Estimate computes the expected per-tick flows for in.Action. Non-skill
// actions (IsSkillAction false) yield the zero Rates.
func Estimate(in Inputs) Rates {
	if !in.Action.IsSkillAction {
		return Rates{}
	}

	if in.Action.Skill == registry.Thieving {
		return estimateThieving(in)
	}
	return estimateStandard(in)
}

func estimateStandard(in Inputs) Rates {
	ticksPerCompletion := float64(in.Action.MeanDuration) * (1 + in.DurationMultiplier)
	if ticksPerCompletion <= 0 {
		ticksPerCompletion = 1
	}

	r := Rates{
		ExpectedTicksPerCompletion: ticksPerCompletion,
		CurrencyPerTick:            in.Action.Currency / ticksPerCompletion,
		XPPerTick:                  in.Action.XP / ticksPerCompletion,
		MasteryXPPerTick:           in.Action.MasteryXP / ticksPerCompletion,
		Produced:                   perTick(in.Action.Outputs, ticksPerCompletion),
		Consumed:                   perTick(in.Action.Inputs, ticksPerCompletion),
	}
	r.DistinctItemTypePerTick = float64(len(in.Action.Outputs)) / ticksPerCompletion
	return applyDeathCycle(r, in)
}

// estimateThieving implements spec.md §4.1's stealth model: success
// probability from a stealth score vs perception, expected gold and HP
// loss per attempt, XP/mastery accruing only on success, and a stun
// penalty added to expected ticks on failure.
func estimateThieving(in Inputs) Rates {
	stealth := StealthScore(in.ThievingLevel, in.MasteryLevel)
	success := clamp01((100 + stealth) / (100 + float64(in.Action.Perception)))
	failure := 1 - success

	baseTicks := float64(in.Action.MeanDuration) * (1 + in.DurationMultiplier)
	if baseTicks <= 0 {
		baseTicks = 1
	}
	effectiveTicks := baseTicks + failure*float64(in.Action.StunTicks)
	if effectiveTicks <= 0 {
		effectiveTicks = 1
	}

	expectedGoldPerAttempt := success * (1 + float64(in.Action.MaxGold)) / 2
	expectedHPLossPerAttempt := failure * (1 + float64(in.Action.MaxHit)) / 2

	r := Rates{
		ExpectedTicksPerCompletion: effectiveTicks,
		CurrencyPerTick:            expectedGoldPerAttempt / effectiveTicks,
		XPPerTick:                  success * in.Action.XP / effectiveTicks,
		MasteryXPPerTick:           success * in.Action.MasteryXP / effectiveTicks,
		HPLossPerTick:              expectedHPLossPerAttempt / effectiveTicks,
	}
	return applyDeathCycle(r, in)
}

// applyDeathCycle multiplies every long-run rate by ticksToDeath /
// (ticksToDeath + RestartOverheadTicks) when the action costs HP, so
// planning never needs to model discrete death events (spec.md §4.1, §9).
func applyDeathCycle(r Rates, in Inputs) Rates {
	if r.HPLossPerTick <= 0 || in.HP <= 1 {
		return r
	}
	ticksToDeath := math.Floor(float64(in.HP-1) / r.HPLossPerTick)
	sustain := ticksToDeath / (ticksToDeath + RestartOverheadTicks)

	r.CurrencyPerTick *= sustain
	r.XPPerTick *= sustain
	r.MasteryXPPerTick *= sustain
	r.HPLossPerTick *= sustain
	for k, v := range r.Produced {
		r.Produced[k] = v * sustain
	}
	for k, v := range r.Consumed {
		r.Consumed[k] = v * sustain
	}
	r.DistinctItemTypePerTick *= sustain
	return r
}

// StealthScore derives a thieving stealth score from thieving level and
// mastery level (spec.md §4.1), thieving level weighted as the primary
// driver and mastery as a secondary bonus. The exact curve is a deliberate
// design choice (no canonical source survived distillation, see
// SPEC_FULL.md §4.15); it is linear and monotone increasing in both
// inputs, with no saturation, which is all spec.md's invariants require.
func StealthScore(thievingLevel, masteryLevel int) float64 {
	return float64(thievingLevel) + float64(masteryLevel)*0.5
}

func perTick(stacks []registry.ItemStack, ticksPerCompletion float64) map[registry.ItemID]float64 {
	if len(stacks) == 0 {
		return nil
	}
	out := make(map[registry.ItemID]float64, len(stacks))
	for _, s := range stacks {
		out[s.Item] = float64(s.Count) / ticksPerCompletion
	}
	return out
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
