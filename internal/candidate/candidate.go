// Package candidate enumerates, per state, a bounded set of activity
// switches, competitive shop purchases, a sell decision, and a watch-list
// of events worth waiting for (spec.md §4.5). Results are cached by a
// capability-only key so repeated expansion of structurally identical
// states during search costs one map lookup instead of a full rescan of
// the catalog.
package candidate

import (
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/rate"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// topKActivities bounds non-consuming-goal activity ranking.
const topKActivities = 4

// topNConsumers bounds consuming-skill consumer-action ranking.
const topNConsumers = 2

// topNProducers is how many producer actions are unconditionally admitted
// per consuming skill, so the planner always has an escape action even if
// ranking would otherwise exclude every producer (spec.md §4.5).
const topNProducers = 2

// Watch is the set of not-yet-candidate events worth tracking while
// waiting: upgrades with a positive predicted gain (whether or not they are
// affordable yet) and locked actions whose unlock boundary hasn't been
// crossed.
type Watch struct {
	Upgrades      []registry.PurchaseID
	LockedActions []registry.ActionID
}

// Candidates is the enumerator's output for one state.
type Candidates struct {
	SwitchCandidates []registry.ActionID
	BuyCandidates    []registry.PurchaseID
	// EmitSellCandidate records whether a sell-items interaction should be
	// branched on at all. Kept separate from the sell policy itself
	// (spec.md §9): the policy is always available for effective-credits
	// math even when the solver chooses not to branch on selling.
	EmitSellCandidate bool
	Watch             Watch
}

// clone returns a deep copy so cached supersets can be filtered per state
// without mutating the cached value.
func (c Candidates) clone() Candidates {
	out := Candidates{
		SwitchCandidates:  append([]registry.ActionID(nil), c.SwitchCandidates...),
		BuyCandidates:     append([]registry.PurchaseID(nil), c.BuyCandidates...),
		EmitSellCandidate: c.EmitSellCandidate,
		Watch: Watch{
			Upgrades:      append([]registry.PurchaseID(nil), c.Watch.Upgrades...),
			LockedActions: append([]registry.ActionID(nil), c.Watch.LockedActions...),
		},
	}
	return out
}

// Enumerate computes the full candidate set for s under g, ignoring the
// cache. Enumerator.Enumerate is the cached entry point callers should
// normally use; this is exported so the cache's verification sampling can
// call it directly.
func Enumerate(catalog registry.Registries, s state.GameState, g goal.Goal) Candidates {
	relevant := g.RelevantSkills()
	consuming := g.ConsumingSkills()

	var switches []registry.ActionID
	var watchLocked []registry.ActionID

	if len(consuming) == 0 {
		switches, watchLocked = rankNonConsuming(catalog, s, g, relevant)
	} else {
		switches, watchLocked = rankConsuming(catalog, s, g, relevant, consuming)
	}

	buys, watchUpgrades := rankUpgrades(catalog, s, g, relevant, switches)

	return Candidates{
		SwitchCandidates: switches,
		BuyCandidates:    buys,
		// The solver (§4.7) decides live whether an inventory-full wait is
		// the active watched condition; the enumerator only reports that
		// selling is a live candidate when the goal tracks inventory at all.
		EmitSellCandidate: g.TracksInventory(),
		Watch: Watch{
			Upgrades:      watchUpgrades,
			LockedActions: watchLocked,
		},
	}
}

func skillLevel(s state.GameState, skill registry.SkillID) int {
	return registry.LevelForXP(s.XPForSkill(skill))
}

func estimate(catalog registry.Registries, s state.GameState, act registry.Action) rate.Rates {
	return rate.Estimate(rate.Inputs{
		Action:             act,
		ThievingLevel:      registry.LevelForXP(s.XPForSkill(registry.Thieving)),
		MasteryLevel:       registry.LevelForXP(s.MasteryXPForAction(act.ID)),
		DurationMultiplier: s.Shop.DurationMultiplier(catalog, act.Skill),
		HP:                 s.HP,
		MaxHP:              s.MaxHP,
	})
}
