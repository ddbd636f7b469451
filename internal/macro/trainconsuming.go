package macro

import (
	"math"

	"github.com/lox/betteridle/internal/rate"
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/registry"
)

// TrainConsumingSkillUntil runs the coupled produce/consume loop spec.md
// §4.6 describes: ensure each input is stocked to BufferTarget via its
// immediate producer, then run the consumer action until inputs deplete or
// the primary stop condition holds, repeating until the stop fires.
type TrainConsumingSkillUntil struct {
	ConsumerAction   registry.ActionID
	ProducerForInput map[registry.ItemID]registry.ActionID
	BufferTarget     int
	SellSpec         sellpolicy.Spec
	Stop             StopRule
	Watched          []StopRule
}

func (m TrainConsumingSkillUntil) Kind() Kind                   { return KindTrainConsumingSkillUntil }
func (m TrainConsumingSkillUntil) PrimaryStop() waitfor.WaitFor { return m.Stop.ToWaitFor() }
func (m TrainConsumingSkillUntil) WatchedStops() []waitfor.WaitFor {
	out := make([]waitfor.WaitFor, len(m.Watched))
	for i, w := range m.Watched {
		out[i] = w.ToWaitFor()
	}
	return out
}
func (m TrainConsumingSkillUntil) Describe() string {
	return "train consuming via " + m.ConsumerAction.String()
}
func (TrainConsumingSkillUntil) macro() {}

// Expand runs the coupled loop against s, returning the final state, ticks
// consumed, and why it stopped. Only when the loop uses up its iteration
// budget (StopDepthLimitExceeded) does it switch to a producer from
// ProducerForInput (the first, in map order, whose switch succeeds); on
// every other stop the active action is left as the loop had it.
func (m TrainConsumingSkillUntil) Expand(adv *state.Advancer, catalog registry.Registries, s state.GameState) (state.GameState, int, StopReason) {
	consumerAct, ok := catalog.ActionByID(m.ConsumerAction)
	if !ok {
		return s, 0, StopNoProducer
	}

	stop := waitfor.AnyOf{List: append([]waitfor.WaitFor{m.PrimaryStop()}, m.WatchedStops()...)}
	out := s
	totalTicks := 0

	for iter := 0; iter < 32; iter++ {
		if stop.IsSatisfied(out, catalog) {
			return out, totalTicks, StopPrimaryConditionMet
		}

		for _, in := range consumerAct.Inputs {
			if out.Inventory.Count(in.Item) >= m.BufferTarget {
				continue
			}
			producerID, hasProducer := m.ProducerForInput[in.Item]
			if !hasProducer {
				return out, totalTicks, StopNoProducer
			}
			next, ticks, reason := ensureBuffer(adv, catalog, out, producerID, in.Item, m.BufferTarget, 0)
			out, totalTicks = next, totalTicks+ticks
			if reason == StopNoProducer || reason == StopPlayerDied || reason == StopDepthLimitExceeded {
				return out, totalTicks, reason
			}
		}

		next, err := adv.ApplyInteraction(out, state.SwitchActivity{ActionID: m.ConsumerAction}, noSellPrice)
		if err != nil {
			return out, totalTicks, StopNoProducer
		}
		out = next

		depleted := waitfor.InputsDepleted{Action: m.ConsumerAction}
		innerStop := waitfor.AnyOf{List: []waitfor.WaitFor{stop, depleted}}
		for j := 0; j < 32; j++ {
			if innerStop.IsSatisfied(out, catalog) {
				break
			}
			rates := rate.Estimate(rate.Inputs{
				Action:             consumerAct,
				ThievingLevel:      registry.LevelForXP(out.XPForSkill(registry.Thieving)),
				MasteryLevel:       registry.LevelForXP(out.MasteryXPForAction(m.ConsumerAction)),
				DurationMultiplier: out.Shop.DurationMultiplier(catalog, consumerAct.Skill),
				HP:                 out.HP,
				MaxHP:              out.MaxHP,
			})
			delta := innerStop.EstimateTicks(out, rates)
			if math.IsInf(delta, 1) {
				break
			}
			ticks := int(math.Max(1, delta))
			out = adv.AdvanceDeterministic(out, ticks)
			totalTicks += ticks
		}

		if stop.IsSatisfied(out, catalog) {
			return out, totalTicks, StopPrimaryConditionMet
		}
		// else inputs depleted: loop back around to restock.
	}

	for _, producerID := range m.ProducerForInput {
		if next, err := adv.ApplyInteraction(out, state.SwitchActivity{ActionID: producerID}, noSellPrice); err == nil {
			out = next
			break
		}
	}
	return out, totalTicks, StopDepthLimitExceeded
}

// ensureBuffer switches to producer and advances until item's inventory
// count reaches target. If producer itself requires inputs, this makes no
// attempt to restock them recursively (that chain is the prerequisite
// resolver's job ahead of planning, internal/prereq's ensureExecutable);
// it only refuses to proceed past depth to avoid an infinite loop.
func ensureBuffer(adv *state.Advancer, catalog registry.Registries, s state.GameState, producer registry.ActionID, item registry.ItemID, target, depth int) (state.GameState, int, StopReason) {
	if depth > maxRecursionDepth {
		return s, 0, StopDepthLimitExceeded
	}
	act, ok := catalog.ActionByID(producer)
	if !ok {
		return s, 0, StopNoProducer
	}
	for _, in := range act.Inputs {
		if s.Inventory.Count(in.Item) < in.Count {
			return s, 0, StopNoProducer
		}
	}

	out, err := adv.ApplyInteraction(s, state.SwitchActivity{ActionID: producer}, noSellPrice)
	if err != nil {
		return s, 0, StopNoProducer
	}

	wf := waitfor.InventoryOfItem{Item: item, Min: target}
	totalTicks := 0
	for i := 0; i < 32; i++ {
		if wf.IsSatisfied(out, catalog) {
			break
		}
		rates := rate.Estimate(rate.Inputs{
			Action:             act,
			ThievingLevel:      registry.LevelForXP(out.XPForSkill(registry.Thieving)),
			MasteryLevel:       registry.LevelForXP(out.MasteryXPForAction(producer)),
			DurationMultiplier: out.Shop.DurationMultiplier(catalog, act.Skill),
			HP:                 out.HP,
			MaxHP:              out.MaxHP,
		})
		delta := wf.EstimateTicks(out, rates)
		if math.IsInf(delta, 1) {
			return out, totalTicks, StopNoProducer
		}
		ticks := int(math.Max(1, delta))
		out = adv.AdvanceDeterministic(out, ticks)
		totalTicks += ticks
	}
	return out, totalTicks, StopPrimaryConditionMet
}
