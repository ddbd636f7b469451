// Package state holds the immutable game-state snapshot the solver plans
// over, and the advancer that produces new snapshots from it.
package state

import (
	"time"

	"github.com/lox/betteridle/registry"
)

// SkillState is per-skill progression: cumulative XP only. Level is always
// derived from XP via LevelForXP, never stored, so it can never drift out
// of sync.
type SkillState struct {
	XP float64
}

// ActionState is per-action progression and optional bookkeeping.
type ActionState struct {
	MasteryXP       float64
	RecipeSelection registry.ItemID // zero value means "no selection"
	ResourceCount   int             // remaining resource/respawn counter, if the action tracks one
}

// ActiveAction describes the action currently running, if any.
type ActiveAction struct {
	ID             registry.ActionID
	RemainingTicks int
	TotalTicks     int
	Stunned        bool
}

// GameState is an immutable snapshot. Every field is read-only from the
// caller's perspective; Advancer methods always return a new GameState
// rather than mutating this one.
type GameState struct {
	Currencies map[string]int
	Skills     map[registry.SkillID]SkillState
	Actions    map[registry.ActionID]ActionState
	Inventory  Inventory
	Shop       ShopState
	HP         int
	MaxHP      int
	Active     *ActiveAction

	// LastSeen is used only for welcome-back bookkeeping by the
	// surrounding application; the solver never reads it. Read through a
	// quartz.Clock so tests can control it without sleeping.
	LastSeen time.Time
}

// Clone returns a deep copy of s. Advancer methods start from Clone() and
// mutate the copy, preserving the "advance always returns a new state"
// contract even though maps are used internally for simplicity (spec.md §9:
// "copying full maps per advance is allowed but slower").
func (s GameState) Clone() GameState {
	out := s
	out.Currencies = cloneIntMap(s.Currencies)
	out.Skills = make(map[registry.SkillID]SkillState, len(s.Skills))
	for k, v := range s.Skills {
		out.Skills[k] = v
	}
	out.Actions = make(map[registry.ActionID]ActionState, len(s.Actions))
	for k, v := range s.Actions {
		out.Actions[k] = v
	}
	out.Inventory = s.Inventory.clone()
	out.Shop = s.Shop.clone()
	if s.Active != nil {
		active := *s.Active
		out.Active = &active
	}
	return out
}

func cloneIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Currency returns the balance of the named currency (0 if never set).
func (s GameState) Currency(name string) int {
	return s.Currencies[name]
}

// XPForSkill returns the cumulative XP for skill (0 if untouched).
func (s GameState) XPForSkill(skill registry.SkillID) float64 {
	return s.Skills[skill].XP
}

// MasteryXPForAction returns the cumulative mastery XP for an action.
func (s GameState) MasteryXPForAction(id registry.ActionID) float64 {
	return s.Actions[id].MasteryXP
}

// New constructs an empty GameState with the given inventory capacity and
// max HP; callers populate it by setting its fields directly.
func New(inventoryCapacity, maxHP int) GameState {
	return GameState{
		Currencies: map[string]int{},
		Skills:     map[registry.SkillID]SkillState{},
		Actions:    map[registry.ActionID]ActionState{},
		Inventory:  newInventory(inventoryCapacity),
		Shop:       newShopState(),
		HP:         maxHP,
		MaxHP:      maxHP,
	}
}
