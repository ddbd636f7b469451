package state

import (
	"math"
	mrand "math/rand"

	"github.com/coder/quartz"

	"github.com/lox/betteridle/internal/rate"
	"github.com/lox/betteridle/registry"
)

// Advancer moves a GameState forward in time. It is the sole place where
// the rate-modelable fast path and the external ticker meet (spec.md
// §4.2).
type Advancer struct {
	Catalog registry.Registries
	Ticker  Ticker
	Clock   quartz.Clock
}

// NewAdvancer builds an Advancer over catalog, using ticker for any
// non-rate-modelable advance. Clock defaults to quartz.NewReal(); pass a
// quartz.NewMock(t) in tests that need to control Touch's timestamps
// without sleeping (mirroring internal/testing's use of quartz).
func NewAdvancer(catalog registry.Registries, ticker Ticker) *Advancer {
	return &Advancer{Catalog: catalog, Ticker: ticker, Clock: quartz.NewReal()}
}

// Touch returns a copy of s with LastSeen stamped to the advancer's clock's
// current time. The solver never calls this; it exists for the surrounding
// application's welcome-back bookkeeping (spec.md §3), updated whenever a
// session actually ran against live state.
func (a *Advancer) Touch(s GameState) GameState {
	out := s.Clone()
	clock := a.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	out.LastSeen = clock.Now()
	return out
}

// IsRateModelable reports whether s's active action can be advanced in
// closed form: any skill action the catalog knows. Combat, other non-skill
// actions and unknown action ids always fall back to full simulation.
func (a *Advancer) IsRateModelable(s GameState) bool {
	if s.Active == nil {
		return true // no active action: nothing to simulate either way
	}
	act, ok := a.Catalog.ActionByID(s.Active.ID)
	return ok && act.IsSkillAction
}

// AdvanceExpected performs an O(1) closed-form advance of dt ticks using
// the rate estimator, rounding counts down. Precondition: dt >= 0.
// Postcondition: XP is non-decreasing for every skill.
func (a *Advancer) AdvanceExpected(s GameState, dt int) GameState {
	assertNonNegative(dt)
	if dt == 0 || s.Active == nil {
		return s
	}

	act, ok := a.Catalog.ActionByID(s.Active.ID)
	if !ok || !act.IsSkillAction {
		return s
	}

	r := rate.Estimate(rate.Inputs{
		Action:             act,
		ThievingLevel:      registry.LevelForXP(s.XPForSkill(registry.Thieving)),
		MasteryLevel:       registry.LevelForXP(s.MasteryXPForAction(act.ID)),
		DurationMultiplier: s.Shop.DurationMultiplier(a.Catalog, act.Skill),
		HP:                 s.HP,
		MaxHP:              s.MaxHP,
	})

	out := s.Clone()
	out.Currencies["gp"] += int(math.Floor(r.CurrencyPerTick * float64(dt)))

	sk := out.Skills[act.Skill]
	sk.XP += r.XPPerTick * float64(dt)
	out.Skills[act.Skill] = sk

	as := out.Actions[act.ID]
	as.MasteryXP += r.MasteryXPPerTick * float64(dt)
	out.Actions[act.ID] = as

	for item, perTick := range r.Produced {
		n := int(math.Floor(perTick * float64(dt)))
		if n <= 0 {
			continue
		}
		if inv, ok := out.Inventory.Add(item, n); ok {
			out.Inventory = inv
		}
	}
	for item, perTick := range r.Consumed {
		n := int(math.Floor(perTick * float64(dt)))
		if n <= 0 {
			continue
		}
		if inv, ok := out.Inventory.Add(item, -n); ok {
			out.Inventory = inv
		}
	}

	if r.HPLossPerTick > 0 {
		loss := int(math.Floor(r.HPLossPerTick * float64(dt)))
		out.HP -= loss
		// The rate already encodes the death-restart cycle as a
		// sustainable average (spec.md §4.1); expected-value integration
		// never actually lets HP reach 0, it just assumes the cycle
		// looped and the player is mid-cycle at the end of the window.
		if out.HP < 1 {
			out.HP = 1
		}
	}

	return out
}

// AdvanceFullSim delegates dt ticks to the external ticker, which may stop
// early (inputs depleted, inventory full, death). The ticker receives a
// StateBuilder seeded from s.
func (a *Advancer) AdvanceFullSim(s GameState, dt int, rng *mrand.Rand) (GameState, StopReason) {
	assertNonNegative(dt)
	if dt == 0 {
		return s, StillRunning
	}
	b := newBuilder(s)
	reason := a.Ticker.ConsumeTicks(b, dt, rng)
	return b.Finalize(), reason
}

// Advance chooses AdvanceExpected when the active action is rate-modelable,
// else falls back to AdvanceFullSim.
func (a *Advancer) Advance(s GameState, dt int, rng *mrand.Rand) (GameState, StopReason) {
	if a.IsRateModelable(s) {
		return a.AdvanceExpected(s, dt), StillRunning
	}
	return a.AdvanceFullSim(s, dt, rng)
}

// AdvanceDeterministic never falls back to stochastic simulation; used by
// the planner, which must be reproducible given a fixed seed (spec.md §5).
// Non-rate-modelable actions are treated as producing zero rates, which is
// sound for planning: the enumerator never proposes switching to them as a
// training activity, only macros may pass through them transiently and
// those are bounded by their own stop rules.
func (a *Advancer) AdvanceDeterministic(s GameState, dt int) GameState {
	return a.AdvanceExpected(s, dt)
}

// ApplyInteraction applies a zero-tick-cost Interaction, returning the new
// state or an error describing why it could not be applied (spec.md §7:
// CannotAfford / ActionUnavailable are "bugs or invalid plans" categories,
// surfaced here as typed errors rather than panics since a live executor
// must be able to recover from them).
func (a *Advancer) ApplyInteraction(s GameState, in Interaction, sellPrice func(registry.ItemID) int) (GameState, error) {
	switch v := in.(type) {
	case SwitchActivity:
		return a.applySwitch(s, v)
	case BuyUpgrade:
		return a.applyBuy(s, v)
	case SellItems:
		return a.applySell(s, v, sellPrice), nil
	default:
		return s, errUnknownInteraction
	}
}

func (a *Advancer) applySwitch(s GameState, v SwitchActivity) (GameState, error) {
	act, ok := a.Catalog.ActionByID(v.ActionID)
	if !ok {
		return s, newActionUnavailable(v.ActionID, "unknown action")
	}
	out := s.Clone()
	out.Active = &ActiveAction{ID: act.ID, RemainingTicks: act.MeanDuration, TotalTicks: act.MeanDuration}
	return out, nil
}

func (a *Advancer) applyBuy(s GameState, v BuyUpgrade) (GameState, error) {
	p, ok := a.Catalog.PurchaseByID(v.PurchaseID)
	if !ok {
		return s, newActionUnavailable(registry.ActionID(v.PurchaseID), "unknown purchase")
	}
	owned := s.Shop.Owned(p.ID)
	if !p.IsUnlimited && owned >= p.BuyLimit {
		return s, newActionUnavailable(registry.ActionID(v.PurchaseID), "buy limit reached")
	}
	cost := p.Cost.CostAt(owned)
	if s.Currency("gp") < cost {
		return s, newCannotAfford(v.PurchaseID, cost, s.Currency("gp"))
	}
	out := s.Clone()
	out.Currencies["gp"] -= cost
	out.Shop = out.Shop.WithPurchase(p.ID)
	return out, nil
}

func (a *Advancer) applySell(s GameState, v SellItems, sellPrice func(registry.ItemID) int) GameState {
	out := s.Clone()
	for _, stack := range s.Inventory.Stacks() {
		if v.Keep[stack.Item] {
			continue
		}
		inv, n := out.Inventory.RemoveAll(stack.Item)
		out.Inventory = inv
		out.Currencies["gp"] += n * sellPrice(stack.Item)
	}
	return out
}

func assertNonNegative(dt int) {
	if dt < 0 {
		panic("state: deltaTicks must be >= 0")
	}
}
