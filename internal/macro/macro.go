// Package macro implements the macro primitives (spec.md §4.6): compound,
// multi-step plans of action the candidate enumerator can propose in place
// of a single activity switch — train a skill to a boundary, run a coupled
// produce/consume loop for a consuming skill, or acquire/maintain a target
// stock of an item. Each carries its own stop rules and, via Expand, the
// logic to execute itself against a state.Advancer.
//
// Grounded file-for-file on sdk/bot/{aggressive,callingstation,complex,
// random}/bot.go: each is a small, independent implementation of a shared
// interface (Agent there, Macro here) with its own internal state and
// stop-condition logic.
package macro

import (
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/registry"
)

// noSellPrice is passed to Advancer.ApplyInteraction for interactions that
// never look up a sell price (every macro only ever switches activities or
// buys upgrades directly; selling is handled by EnsureStock's own
// sell-policy recovery).
func noSellPrice(registry.ItemID) int { return 0 }

// Kind tags a Macro for diagnostics and plan display.
type Kind int

const (
	KindUnknown Kind = iota
	KindTrainSkillUntil
	KindTrainConsumingSkillUntil
	KindAcquireItem
	KindEnsureStock
)

func (k Kind) String() string {
	switch k {
	case KindTrainSkillUntil:
		return "train-skill-until"
	case KindTrainConsumingSkillUntil:
		return "train-consuming-skill-until"
	case KindAcquireItem:
		return "acquire-item"
	case KindEnsureStock:
		return "ensure-stock"
	default:
		return "unknown"
	}
}

// Macro is a closed tagged union: TrainSkillUntil, TrainConsumingSkillUntil,
// AcquireItem, EnsureStock.
type Macro interface {
	Kind() Kind
	PrimaryStop() waitfor.WaitFor
	WatchedStops() []waitfor.WaitFor
	Describe() string
	macro()
}

// StopReason describes why a macro's Expand call returned.
type StopReason int

const (
	StopUnknown StopReason = iota
	StopPrimaryConditionMet
	StopNoProducer
	StopInventoryFullUnrecovered
	StopPlayerDied
	StopDepthLimitExceeded
)

func (r StopReason) String() string {
	switch r {
	case StopPrimaryConditionMet:
		return "primary condition met"
	case StopNoProducer:
		return "no producer"
	case StopInventoryFullUnrecovered:
		return "inventory full, unrecovered"
	case StopPlayerDied:
		return "player died"
	case StopDepthLimitExceeded:
		return "depth limit exceeded"
	default:
		return "unknown"
	}
}

// maxRecursionDepth bounds producer-chain walks (spec.md §4.6's "recursively
// ensure those first ... up to a small depth").
const maxRecursionDepth = 8

var (
	_ Macro = TrainSkillUntil{}
	_ Macro = TrainConsumingSkillUntil{}
	_ Macro = AcquireItem{}
	_ Macro = EnsureStock{}
)
