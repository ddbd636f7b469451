package macro

import (
	"math"

	"github.com/lox/betteridle/internal/rate"
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/registry"
)

// EnsureStock is AcquireItem plus inventory-pressure recovery: if the
// inventory fills before Target is reached, it sells per SellSpec (which
// is resolved with Item itself forced into the keep set) and keeps going,
// rather than stalling (spec.md §7: "the executor continues past expected
// boundaries when the step itself recovered, e.g. EnsureStock selling on
// inventory-full").
type EnsureStock struct {
	Item     registry.ItemID
	Target   int
	Producer registry.ActionID
	SellSpec sellpolicy.Spec
}

func (m EnsureStock) Kind() Kind { return KindEnsureStock }
func (m EnsureStock) PrimaryStop() waitfor.WaitFor {
	return waitfor.InventoryOfItem{Item: m.Item, Min: m.Target}
}
func (m EnsureStock) WatchedStops() []waitfor.WaitFor { return []waitfor.WaitFor{waitfor.InventoryFull{}} }
func (m EnsureStock) Describe() string {
	return "ensure stock of " + m.Item.String() + " via " + m.Producer.String()
}
func (EnsureStock) macro() {}

// Expand switches to Producer and advances until Target is reached,
// recovering from inventory-full by selling everything outside the
// resolved sell policy's keep set, with Item always kept.
func (m EnsureStock) Expand(adv *state.Advancer, catalog registry.Registries, s state.GameState) (state.GameState, int, StopReason) {
	act, ok := catalog.ActionByID(m.Producer)
	if !ok {
		return s, 0, StopNoProducer
	}
	out, err := adv.ApplyInteraction(s, state.SwitchActivity{ActionID: m.Producer}, noSellPrice)
	if err != nil {
		return s, 0, StopNoProducer
	}

	target := m.PrimaryStop()
	full := waitfor.InventoryFull{}
	priceOf := sellpolicy.SellPrice(catalog)
	totalTicks := 0

	for i := 0; i < 64; i++ {
		if target.IsSatisfied(out, catalog) {
			return out, totalTicks, StopPrimaryConditionMet
		}
		if full.IsSatisfied(out, catalog) {
			policy := m.resolvePolicy(out, catalog)
			keep := policy.KeepItems(out)
			if keep == nil {
				keep = map[registry.ItemID]bool{}
			}
			keep[m.Item] = true
			next, err := adv.ApplyInteraction(out, state.SellItems{Keep: keep}, priceOf)
			if err != nil {
				return out, totalTicks, StopInventoryFullUnrecovered
			}
			if full.IsSatisfied(next, catalog) {
				// Selling everything sellable still left it full (e.g.
				// only the kept item itself fills the inventory).
				return next, totalTicks, StopInventoryFullUnrecovered
			}
			out = next
			continue
		}

		rates := rate.Estimate(rate.Inputs{
			Action:             act,
			ThievingLevel:      registry.LevelForXP(out.XPForSkill(registry.Thieving)),
			MasteryLevel:       registry.LevelForXP(out.MasteryXPForAction(m.Producer)),
			DurationMultiplier: out.Shop.DurationMultiplier(catalog, act.Skill),
			HP:                 out.HP,
			MaxHP:              out.MaxHP,
		})
		stop := waitfor.AnyOf{List: []waitfor.WaitFor{target, full}}
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

func (m EnsureStock) resolvePolicy(s state.GameState, catalog registry.Registries) sellpolicy.Policy {
	if m.SellSpec == nil {
		return sellpolicy.SellAll{}
	}
	return m.SellSpec.Resolve(s, catalog, nil)
}
