package state

import (
	"math/rand"

	"github.com/lox/betteridle/registry"
)

// StopReason is why a Ticker stopped short of consuming every requested
// tick.
type StopReason uint8

const (
	StillRunning StopReason = iota
	OutOfInputs
	InventoryFull
	PlayerDied
)

func (r StopReason) String() string {
	switch r {
	case StillRunning:
		return "still_running"
	case OutOfInputs:
		return "out_of_inputs"
	case InventoryFull:
		return "inventory_full"
	case PlayerDied:
		return "player_died"
	default:
		return "unknown"
	}
}

// StateBuilder is the mutation surface a Ticker uses to narrate one
// tick-by-tick run without constructing a brand-new GameState per tick.
// Finalize() produces the immutable snapshot once the run stops.
type StateBuilder interface {
	SetActive(id registry.ActionID, totalTicks int)
	ClearActive()
	AddItem(item registry.ItemID, delta int) bool // false if inventory is full and item is new
	AddCurrency(currency string, delta int)
	AddXP(skill registry.SkillID, delta float64)
	AddMasteryXP(action registry.ActionID, delta float64)
	AddHP(delta int)
	Finalize() GameState

	// Read-back accessors a Ticker needs to decide what a tick does. These
	// are exported (unlike the mutators' simplicity might suggest) because
	// a Ticker implementation lives in a different package from the
	// concrete StateBuilder.
	ActiveID() (registry.ActionID, bool)
	ItemCount(item registry.ItemID) int
	MasteryXP(action registry.ActionID) float64
	HP() int
	MaxHP() int
}

// Ticker is the external, stochastic tick-simulator collaborator (spec.md
// §1, §6). advanceFullSim and the executor are the only callers; the
// planner itself never calls it directly except through Advancer.Advance
// for non-rate-modelable actions.
type Ticker interface {
	ConsumeTicks(b StateBuilder, deltaTicks int, rng *rand.Rand) StopReason
}
