// Package waitdelta implements the soonest-interesting-moment selector
// (spec.md §4.7): given a state, goal, and the candidate enumerator's
// output, it picks the minimum positive tick delta at which something
// worth re-deciding over happens, or zero if something already has.
package waitdelta

import (
	"math"

	"github.com/lox/betteridle/internal/candidate"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/rate"
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/registry"
)

// Result pairs the chosen delta with the WaitFor whose satisfaction it
// estimates, so a solver edge or executor wait-step can reuse the same
// predicate it was measured against.
type Result struct {
	Ticks   float64
	WaitFor waitfor.WaitFor
}

// masteryBoundaryStep is the mastery-level interval spec.md §4.7 calls out
// ("every 10 mastery levels, up to 99").
const masteryBoundaryStep = 10

// Select computes the wait-delta for s under g, given the enumerator's
// candidates for the same state. It never returns a zero Ticks unless the
// goal is already satisfied, a buy candidate is already affordable, or the
// inventory-full sell candidate is live (spec.md §4.7 rule 1).
func Select(catalog registry.Registries, s state.GameState, g goal.Goal, cands candidate.Candidates) Result {
	if g.IsSatisfied(s, catalog) {
		return Result{Ticks: 0, WaitFor: waitfor.GoalReached{Goal: g}}
	}

	for _, pid := range cands.BuyCandidates {
		if p, ok := catalog.PurchaseByID(pid); ok && isAffordableNow(s, catalog, g, p) {
			return Result{Ticks: 0, WaitFor: waitfor.GoalReached{Goal: g}}
		}
	}

	if cands.EmitSellCandidate && (waitfor.InventoryFull{}).IsSatisfied(s, catalog) {
		return Result{Ticks: 0, WaitFor: waitfor.InventoryFull{}}
	}

	r, act, ok := activeRates(catalog, s)
	if !ok {
		return Result{Ticks: math.Inf(1), WaitFor: waitfor.AnyOf{}}
	}

	best := Result{Ticks: math.Inf(1)}
	consider := func(wf waitfor.WaitFor) {
		ticks := wf.EstimateTicks(s, r)
		if ticks > 0 && ticks < best.Ticks {
			best = Result{Ticks: ticks, WaitFor: wf}
		}
	}

	if progress := g.ActivityRate(act.Skill, r.CurrencyPerTick, r.XPPerTick); progress > 0 {
		if ticks := math.Ceil(g.Remaining(s, catalog) / progress); ticks > 0 && ticks < best.Ticks {
			best = Result{Ticks: ticks, WaitFor: waitfor.GoalReached{Goal: g}}
		}
	}

	for _, pid := range cands.BuyCandidates {
		p, ok := catalog.PurchaseByID(pid)
		if !ok {
			continue
		}
		policy := g.SellPolicySpec().Resolve(s, catalog, g.ConsumingSkills())
		consider(waitfor.InventoryValue{Policy: policy, Target: costOf(p)})
	}

	for _, aid := range cands.Watch.LockedActions {
		locked, ok := catalog.ActionByID(aid)
		if !ok {
			continue
		}
		consider(waitfor.SkillXP{Skill: locked.Skill, Target: registry.StartXPForLevel(locked.UnlockLevel)})
		if locked.Skill == act.Skill {
			nextLevel := registry.LevelForXP(s.XPForSkill(act.Skill)) + 1
			consider(waitfor.SkillXP{Skill: act.Skill, Target: registry.StartXPForLevel(nextLevel)})
		}
	}

	if cands.EmitSellCandidate {
		consider(waitfor.InventoryFull{})
	}

	if len(act.Inputs) > 0 {
		consider(waitfor.InputsDepleted{Action: act.ID})
	}

	for _, aid := range cands.SwitchCandidates {
		target, ok := catalog.ActionByID(aid)
		if !ok || len(target.Inputs) == 0 {
			continue
		}
		consider(waitfor.SufficientInputsForAction{Action: target.ID, Inputs: target.Inputs})
	}

	nextMastery := math.Ceil(float64(registry.LevelForXP(s.MasteryXPForAction(act.ID))+1)/masteryBoundaryStep) * masteryBoundaryStep
	consider(waitfor.MasteryXP{Action: act.ID, Target: registry.StartXPForLevel(int(nextMastery))})

	return best
}

// activeRates resolves the per-tick rates of the currently active action,
// mirroring internal/state.Advancer.AdvanceExpected's own derivation so
// the delta it computes matches what execution will actually observe.
func activeRates(catalog registry.Registries, s state.GameState) (rate.Rates, registry.Action, bool) {
	if s.Active == nil {
		return rate.Rates{}, registry.Action{}, false
	}
	act, ok := catalog.ActionByID(s.Active.ID)
	if !ok || !act.IsSkillAction {
		return rate.Rates{}, registry.Action{}, false
	}
	r := rate.Estimate(rate.Inputs{
		Action:             act,
		ThievingLevel:      registry.LevelForXP(s.XPForSkill(registry.Thieving)),
		MasteryLevel:       registry.LevelForXP(s.MasteryXPForAction(act.ID)),
		DurationMultiplier: s.Shop.DurationMultiplier(catalog, act.Skill),
		HP:                 s.HP,
		MaxHP:              s.MaxHP,
	})
	return r, act, true
}

func isAffordableNow(s state.GameState, catalog registry.Registries, g goal.Goal, p registry.ShopPurchase) bool {
	cost, fixed := p.Cost.SingleFixedCost()
	if !fixed {
		return false
	}
	policy := g.SellPolicySpec().Resolve(s, catalog, g.ConsumingSkills())
	priceOf := sellpolicy.SellPrice(catalog)
	return sellpolicy.EffectiveCredits(s, policy, priceOf) >= cost
}

func costOf(p registry.ShopPurchase) int {
	cost, _ := p.Cost.SingleFixedCost()
	return cost
}
