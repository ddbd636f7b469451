package candidate

import (
	"sort"

	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/rate"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

type upgradeCandidate struct {
	id      registry.PurchaseID
	payback float64
}

// rankUpgrades computes, for each eligible purchase affecting a relevant
// skill, the predicted rate if bought versus the best rank among all
// already-chosen switch candidates. Purchases are eligible only if their
// cost resolves to a single fixed currency amount (spec.md §9's open
// question on dynamic bank-slot pricing: those stay watch-only).
func rankUpgrades(catalog registry.Registries, s state.GameState, g goal.Goal, relevant []registry.SkillID, switches []registry.ActionID) (buys []registry.PurchaseID, watch []registry.PurchaseID) {
	bestRate := bestCurrentRate(catalog, s, g, switches)

	var candidates []upgradeCandidate
	for _, p := range catalog.AllPurchases() {
		affected := affectedRelevantSkill(p, relevant)
		if affected == registry.SkillUnknown {
			continue
		}
		if !p.IsUnlimited && s.Shop.Owned(p.ID) >= p.BuyLimit {
			continue
		}
		cost, ok := p.Cost.SingleFixedCost()
		if !ok {
			continue // dynamic/multi-component cost: watch-only per spec.md §9
		}

		newRate := predictedRate(catalog, s, g, affected, p)
		gain := newRate - bestRate

		if gain <= 0 {
			continue
		}
		watch = append(watch, p.ID)
		if newRate >= bestRate {
			candidates = append(candidates, upgradeCandidate{id: p.ID, payback: float64(cost) / gain})
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].payback < candidates[j].payback })
	for _, c := range candidates {
		buys = append(buys, c.id)
	}
	return buys, watch
}

func affectedRelevantSkill(p registry.ShopPurchase, relevant []registry.SkillID) registry.SkillID {
	for _, sk := range relevant {
		if p.AffectsSkill(sk) {
			return sk
		}
	}
	return registry.SkillUnknown
}

// bestCurrentRate is the best rank among the already-chosen switch
// candidates, used as the baseline an upgrade must not fall below.
func bestCurrentRate(catalog registry.Registries, s state.GameState, g goal.Goal, switches []registry.ActionID) float64 {
	var best float64
	for _, id := range switches {
		act, ok := catalog.ActionByID(id)
		if !ok {
			continue
		}
		r := estimate(catalog, s, act)
		if rank := g.ActivityRate(act.Skill, r.CurrencyPerTick, r.XPPerTick); rank > best {
			best = rank
		}
	}
	return best
}

// predictedRate estimates the best rank among skill's unlocked actions if
// purchase p were already owned.
func predictedRate(catalog registry.Registries, s state.GameState, g goal.Goal, skill registry.SkillID, p registry.ShopPurchase) float64 {
	hypothetical := s.Shop.WithPurchase(p.ID)
	var best float64
	level := skillLevel(s, skill)
	for _, act := range catalog.ActionsForSkill(skill) {
		if !act.IsSkillAction || act.UnlockLevel > level {
			continue
		}
		r := rate.Estimate(rate.Inputs{
			Action:             act,
			ThievingLevel:      registry.LevelForXP(s.XPForSkill(registry.Thieving)),
			MasteryLevel:       registry.LevelForXP(s.MasteryXPForAction(act.ID)),
			DurationMultiplier: hypothetical.DurationMultiplier(catalog, act.Skill),
			HP:                 s.HP,
			MaxHP:              s.MaxHP,
		})
		if rank := g.ActivityRate(skill, r.CurrencyPerTick, r.XPPerTick); rank > best {
			best = rank
		}
	}
	return best
}
