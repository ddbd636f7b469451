// Package watchset builds, once per plan segment, the set of conditions
// that end that segment: the goal itself, plus whichever unlock
// boundaries, upgrade affordability, and input-depletion signals the
// segment is configured to watch (spec.md §4.8).
package watchset

import (
	"github.com/lox/betteridle/internal/candidate"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// Config is the segment configuration booleans from spec.md §4.8.
type Config struct {
	StopAtUpgradeAffordable bool
	StopAtUnlockBoundary    bool
	StopAtInputsDepleted    bool
}

// WatchSet is built once per segment from a goal, a Config, the watched
// upgrade purchases surfaced by the candidate enumerator, the per-skill
// unlock-level sets of its locked actions, and a snapshot of current skill
// levels for transition detection.
type WatchSet struct {
	Goal    goal.Goal
	Catalog registry.Registries
	Config  Config

	Skills       []registry.SkillID
	UnlockLevels map[registry.SkillID][]int
	Upgrades     []registry.PurchaseID

	// PreviousLevels snapshots each watched skill's level at the moment
	// the WatchSet was built, so DetectBoundary can tell a fresh
	// crossing from a level the plan started above.
	PreviousLevels map[registry.SkillID]int

	KeepItems map[registry.ItemID]bool
}

// New builds a WatchSet from the current state, goal, Config, and the
// enumerator's Watch list for that same state.
func New(catalog registry.Registries, s state.GameState, g goal.Goal, watch candidate.Watch, cfg Config) *WatchSet {
	skills := g.RelevantSkills()
	prev := make(map[registry.SkillID]int, len(skills))
	for _, sk := range skills {
		prev[sk] = registry.LevelForXP(s.XPForSkill(sk))
	}

	levels := map[registry.SkillID][]int{}
	for _, aid := range watch.LockedActions {
		act, ok := catalog.ActionByID(aid)
		if !ok {
			continue
		}
		levels[act.Skill] = append(levels[act.Skill], act.UnlockLevel)
	}

	policy := g.SellPolicySpec().Resolve(s, catalog, g.ConsumingSkills())

	return &WatchSet{
		Goal:           g,
		Catalog:        catalog,
		Config:         cfg,
		Skills:         skills,
		UnlockLevels:   levels,
		Upgrades:       watch.Upgrades,
		PreviousLevels: prev,
		KeepItems:      policy.KeepItems(s),
	}
}

// DetectBoundary reports whether s crosses the first material boundary:
// the goal itself, a now-affordable watched upgrade, a watched skill
// crossing an unlock level it was below when the WatchSet was built, or
// the active action's inputs running out (spec.md §4.8).
func (w *WatchSet) DetectBoundary(s state.GameState) bool {
	if w.Goal.IsSatisfied(s, w.Catalog) {
		return true
	}

	if w.Config.StopAtUpgradeAffordable && len(w.Upgrades) > 0 {
		priceOf := sellpolicy.SellPrice(w.Catalog)
		credits := sellpolicy.EffectiveCredits(s, sellpolicy.SellExcept{Keep: w.KeepItems}, priceOf)
		for _, pid := range w.Upgrades {
			p, ok := w.Catalog.PurchaseByID(pid)
			if !ok {
				continue
			}
			cost, fixed := p.Cost.SingleFixedCost()
			if fixed && credits >= cost {
				return true
			}
		}
	}

	if w.Config.StopAtUnlockBoundary {
		for _, sk := range w.Skills {
			prev, tracked := w.PreviousLevels[sk]
			if !tracked {
				continue
			}
			curLevel := registry.LevelForXP(s.XPForSkill(sk))
			for _, lvl := range w.UnlockLevels[sk] {
				if prev < lvl && lvl <= curLevel {
					return true
				}
			}
		}
	}

	if w.Config.StopAtInputsDepleted && s.Active != nil {
		if (waitfor.InputsDepleted{Action: s.Active.ID}).IsSatisfied(s, w.Catalog) {
			return true
		}
	}

	return false
}

var _ goal.BoundaryDetector = (*WatchSet)(nil)
