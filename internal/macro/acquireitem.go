package macro

import (
	"math"

	"github.com/lox/betteridle/internal/rate"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/registry"
)

// AcquireItem switches to Producer and runs until Item's inventory count
// reaches Target.
type AcquireItem struct {
	Item     registry.ItemID
	Target   int
	Producer registry.ActionID
}

func (m AcquireItem) Kind() Kind { return KindAcquireItem }
func (m AcquireItem) PrimaryStop() waitfor.WaitFor {
	return waitfor.InventoryOfItem{Item: m.Item, Min: m.Target}
}
func (m AcquireItem) WatchedStops() []waitfor.WaitFor { return nil }
func (m AcquireItem) Describe() string {
	return "acquire " + m.Item.String() + " via " + m.Producer.String()
}
func (AcquireItem) macro() {}

// Expand switches to Producer and advances until PrimaryStop holds.
func (m AcquireItem) Expand(adv *state.Advancer, catalog registry.Registries, s state.GameState) (state.GameState, int, StopReason) {
	act, ok := catalog.ActionByID(m.Producer)
	if !ok {
		return s, 0, StopNoProducer
	}
	out, err := adv.ApplyInteraction(s, state.SwitchActivity{ActionID: m.Producer}, noSellPrice)
	if err != nil {
		return s, 0, StopNoProducer
	}

	stop := m.PrimaryStop()
	totalTicks := 0
	for i := 0; i < 64; i++ {
		if stop.IsSatisfied(out, catalog) {
			return out, totalTicks, StopPrimaryConditionMet
		}
		rates := rate.Estimate(rate.Inputs{
			Action:             act,
			ThievingLevel:      registry.LevelForXP(out.XPForSkill(registry.Thieving)),
			MasteryLevel:       registry.LevelForXP(out.MasteryXPForAction(m.Producer)),
			DurationMultiplier: out.Shop.DurationMultiplier(catalog, act.Skill),
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
