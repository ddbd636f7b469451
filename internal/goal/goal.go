// Package goal implements the four concrete goal variants (spec.md §4.3):
// reach-currency, reach-skill-level, multi-skill conjunction, and a
// segment-wrapper used only during execution. Each goal knows how to judge
// its own satisfaction and progress, which skills it cares about, and which
// sell-policy spec governs inventory decisions while pursuing it.
package goal

import (
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// Kind tags a Goal for JSON round-tripping. SegmentWrapper has no Kind of
// its own since it is never serialized (spec.md §9).
type Kind int

const (
	KindUnknown Kind = iota
	KindReachCurrency
	KindReachSkillLevel
	KindMultiSkill
)

// Goal is a closed tagged union: ReachCurrency, ReachSkillLevel, MultiSkill,
// or SegmentWrapper.
type Goal interface {
	// IsSatisfied reports whether s already meets this goal.
	IsSatisfied(s state.GameState, catalog registry.Registries) bool

	// Progress returns a goal-defined monotone measure of advancement:
	// effective credits for currency goals, current XP for skill goals.
	Progress(s state.GameState, catalog registry.Registries) float64

	// Remaining returns the outstanding distance to the goal in the same
	// units as Progress, or 0 if already satisfied.
	Remaining(s state.GameState, catalog registry.Registries) float64

	// RelevantSkills lists every skill whose level can affect this goal's
	// candidate enumeration or progress.
	RelevantSkills() []registry.SkillID

	// ConsumingSkills lists the subset of RelevantSkills that consume
	// inputs, used to drive sell-policy input reservation.
	ConsumingSkills() []registry.SkillID

	// SellPolicySpec returns the sell-policy spec this goal resolves
	// during planning (spec.md §4.4).
	SellPolicySpec() sellpolicy.Spec

	// ActivityRate ranks a candidate activity for this goal given its
	// gold and XP rates per tick (spec.md §4.5).
	ActivityRate(skill registry.SkillID, goldRate, xpRate float64) float64

	// TracksHP reports whether the watch set and candidate enumerator
	// must track HP (true iff a relevant skill is thieving).
	TracksHP() bool

	// TracksInventory reports whether inventory pressure is material to
	// this goal (true iff a relevant skill is consuming).
	TracksInventory() bool

	goal()
}

func tracksHP(skills []registry.SkillID) bool {
	for _, sk := range skills {
		if sk == registry.Thieving {
			return true
		}
	}
	return false
}

func tracksInventory(skills []registry.SkillID) bool {
	for _, sk := range skills {
		if sk.IsConsuming() {
			return true
		}
	}
	return false
}

func consumingSkillsOf(skills []registry.SkillID) []registry.SkillID {
	var out []registry.SkillID
	for _, sk := range skills {
		if sk.IsConsuming() {
			out = append(out, sk)
		}
	}
	return out
}
