package macro

import (
	"math"

	"github.com/lox/betteridle/internal/rate"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/registry"
)

// TrainSkillUntil switches to Action and advances until Stop holds, with
// WatchedStops carrying competitive-upgrade stop rules the candidate
// enumerator wants surfaced even though they aren't the primary reason to
// stop (spec.md §4.6).
type TrainSkillUntil struct {
	Skill   registry.SkillID
	Action  registry.ActionID
	Stop    StopRule
	Watched []StopRule
}

func (m TrainSkillUntil) Kind() Kind                    { return KindTrainSkillUntil }
func (m TrainSkillUntil) PrimaryStop() waitfor.WaitFor  { return m.Stop.ToWaitFor() }
func (m TrainSkillUntil) WatchedStops() []waitfor.WaitFor {
	out := make([]waitfor.WaitFor, len(m.Watched))
	for i, w := range m.Watched {
		out[i] = w.ToWaitFor()
	}
	return out
}
func (m TrainSkillUntil) Describe() string {
	return "train " + m.Skill.String() + " via " + m.Action.String()
}
func (TrainSkillUntil) macro() {}

// Expand switches to Action and advances s deterministically until the
// primary stop condition holds (or any watched stop fires first, since a
// competitive upgrade becoming affordable is itself worth stopping for),
// returning the resulting state and ticks consumed.
func (m TrainSkillUntil) Expand(adv *state.Advancer, catalog registry.Registries, s state.GameState) (state.GameState, int, StopReason) {
	out, err := adv.ApplyInteraction(s, state.SwitchActivity{ActionID: m.Action}, noSellPrice)
	if err != nil {
		return s, 0, StopNoProducer
	}

	stop := waitfor.AnyOf{List: append([]waitfor.WaitFor{m.PrimaryStop()}, m.WatchedStops()...)}
	totalTicks := 0
	for i := 0; i < 64; i++ {
		if stop.IsSatisfied(out, catalog) {
			return out, totalTicks, StopPrimaryConditionMet
		}
		act, ok := catalog.ActionByID(m.Action)
		if !ok {
			return out, totalTicks, StopNoProducer
		}
		rates := rate.Estimate(rate.Inputs{
			Action:             act,
			ThievingLevel:      registry.LevelForXP(out.XPForSkill(registry.Thieving)),
			MasteryLevel:       registry.LevelForXP(out.MasteryXPForAction(m.Action)),
			DurationMultiplier: out.Shop.DurationMultiplier(catalog, m.Skill),
			HP:                 out.HP,
			MaxHP:              out.MaxHP,
		})
		delta := stop.EstimateTicks(out, rates)
		if math.IsInf(delta, 1) {
			return out, totalTicks, StopNoProducer
		}
		ticks := int(math.Max(1, delta))
		out = adv.AdvanceDeterministic(out, ticks)
		totalTicks += ticks
	}
	return out, totalTicks, StopDepthLimitExceeded
}
