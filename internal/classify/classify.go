// Package classify buckets Actions into coarse diagnostic categories for
// reporting: producing vs. consuming, and for thieving actions, a
// stealth-score-vs-perception tier. These classifications feed human-facing
// output only (the plan inspector, benchmark summaries) and never the
// solver's own numeric decisions, which stay continuous per spec.md §4.1.
// Grounded on sdk/classification's board.go: a small set of named
// categories derived from a numeric "wetness"-style score, the same texture
// applied here to a "stealth vs perception" gap instead of board wetness.
package classify

import (
	"github.com/lox/betteridle/internal/rate"
	"github.com/lox/betteridle/registry"
)

// Kind is the coarse activity category of an Action.
type Kind int

const (
	KindUnknown Kind = iota
	KindProducing
	KindConsuming
	KindThieving
	KindCombat
)

func (k Kind) String() string {
	switch k {
	case KindProducing:
		return "producing"
	case KindConsuming:
		return "consuming"
	case KindThieving:
		return "thieving"
	case KindCombat:
		return "combat"
	default:
		return "unknown"
	}
}

// Action classifies a as producing (a skill action with no inputs),
// consuming (a skill action with inputs), thieving, or combat (not a skill
// action at all).
func Action(a registry.Action) Kind {
	switch {
	case a.Skill == registry.Thieving:
		return KindThieving
	case !a.IsSkillAction:
		return KindCombat
	case a.HasInputs():
		return KindConsuming
	default:
		return KindProducing
	}
}

// StealthTier represents how favorably a thieving action's stealth score
// compares to its perception at a given mastery level, from very risky to
// very safe.
type StealthTier int

const (
	TierHopeless StealthTier = iota
	TierRisky
	TierEven
	TierFavorable
	TierSafe
)

func (t StealthTier) String() string {
	switch t {
	case TierHopeless:
		return "hopeless"
	case TierRisky:
		return "risky"
	case TierEven:
		return "even"
	case TierFavorable:
		return "favorable"
	case TierSafe:
		return "safe"
	default:
		return "unknown"
	}
}

// ThievingRisk buckets a's perception against the stealth score reached at
// thievingLevel and masteryLevel into a StealthTier, mirroring
// AnalyzeBoardTexture's accumulate-a-score-then-bucket-it shape. The gap is
// perception minus stealth score: negative means stealth comfortably clears
// perception.
func ThievingRisk(a registry.Action, thievingLevel, masteryLevel int) StealthTier {
	gap := float64(a.Perception) - rate.StealthScore(thievingLevel, masteryLevel)
	switch {
	case gap >= 60:
		return TierHopeless
	case gap >= 20:
		return TierRisky
	case gap >= -20:
		return TierEven
	case gap >= -60:
		return TierFavorable
	default:
		return TierSafe
	}
}
