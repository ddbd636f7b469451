// Package prereq resolves what must happen before an action can run:
// skill-level gates and missing input items, recursively, with cycle
// detection and a depth limit (spec.md §4.6's ensureExecutable).
package prereq

import (
	"fmt"

	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/macro"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// maxDepth bounds the recursive walk (spec.md §4.6: "depth-bounded,
// cycle-detected").
const maxDepth = 8

// Status is the outcome of ensureExecutable.
type Status int

const (
	StatusUnknown Status = iota
	Ready
	NeedsMacros
	Unknown
)

// Result is ensureExecutable's return value: a status plus, for
// NeedsMacros, the ordered macros to run first, or for Unknown, a reason.
type Result struct {
	Status Status
	Macros []macro.Macro
	Reason string
}

// EnsureExecutable checks whether action can run from s, recursively
// resolving skill-level and input-item prerequisites (spec.md §4.6).
func EnsureExecutable(catalog registry.Registries, s state.GameState, action registry.ActionID, g goal.Goal) Result {
	return ensure(catalog, s, action, g, map[registry.ActionID]bool{}, 0)
}

func ensure(catalog registry.Registries, s state.GameState, action registry.ActionID, g goal.Goal, visiting map[registry.ActionID]bool, depth int) Result {
	if depth > maxDepth {
		return Result{Status: Unknown, Reason: "depth limit"}
	}
	if visiting[action] {
		return Result{Status: Unknown, Reason: "cycle"}
	}
	visiting[action] = true
	defer delete(visiting, action)

	act, ok := catalog.ActionByID(action)
	if !ok {
		return Result{Status: Unknown, Reason: "unknown action"}
	}

	var macros []macro.Macro

	level := registry.LevelForXP(s.XPForSkill(act.Skill))
	if act.UnlockLevel > level {
		macros = append(macros, macro.TrainSkillUntil{
			Skill:  act.Skill,
			Action: bestUnlockedActionFor(catalog, s, act.Skill),
			Stop:   macro.StopAtLevel{Skill: act.Skill, Level: act.UnlockLevel},
		})
	}

	for _, in := range act.Inputs {
		if s.Inventory.Count(in.Item) >= in.Count {
			continue
		}
		producer, producerLevel, found := findProducer(catalog, s, in.Item, true)
		if found {
			sub := ensure(catalog, s, producer, g, visiting, depth+1)
			switch sub.Status {
			case Unknown:
				return Result{Status: Unknown, Reason: fmt.Sprintf("producer of %s: %s", in.Item, sub.Reason)}
			case NeedsMacros:
				macros = append(macros, sub.Macros...)
			}
			macros = append(macros, macro.AcquireItem{Item: in.Item, Target: in.Count, Producer: producer})
			continue
		}

		lockedProducer, lockedLevel, found := findProducer(catalog, s, in.Item, false)
		if found {
			macros = append(macros, macro.TrainSkillUntil{
				Skill:  mustSkillOf(catalog, lockedProducer),
				Action: lockedProducer,
				Stop:   macro.StopAtLevel{Skill: mustSkillOf(catalog, lockedProducer), Level: lockedLevel},
			})
			macros = append(macros, macro.AcquireItem{Item: in.Item, Target: in.Count, Producer: lockedProducer})
			continue
		}

		return Result{Status: Unknown, Reason: "no producer"}
	}

	if len(macros) == 0 {
		return Result{Status: Ready}
	}
	return Result{Status: NeedsMacros, Macros: macros}
}

// FindProducer returns the first skill action producing item: only actions
// already unlocked when unlockedOnly is true, only still-locked ones when it
// is false. Exported for sdk/solver's
// macro generation, which needs the same producer lookup when building a
// TrainConsumingSkillUntil macro's ProducerForInput map.
func FindProducer(catalog registry.Registries, s state.GameState, item registry.ItemID, unlockedOnly bool) (registry.ActionID, int, bool) {
	return findProducer(catalog, s, item, unlockedOnly)
}

// findProducer returns the first skill action producing item: only actions
// already unlocked when unlockedOnly is true, only still-locked ones when it
// is false.
func findProducer(catalog registry.Registries, s state.GameState, item registry.ItemID, unlockedOnly bool) (registry.ActionID, int, bool) {
	for _, act := range catalog.AllActions() {
		if !act.IsSkillAction {
			continue
		}
		produces := false
		for _, out := range act.Outputs {
			if out.Item == item {
				produces = true
				break
			}
		}
		if !produces {
			continue
		}
		level := registry.LevelForXP(s.XPForSkill(act.Skill))
		if unlockedOnly && act.UnlockLevel > level {
			continue
		}
		if !unlockedOnly && act.UnlockLevel <= level {
			continue
		}
		return act.ID, act.UnlockLevel, true
	}
	return registry.ActionID{}, 0, false
}

func bestUnlockedActionFor(catalog registry.Registries, s state.GameState, skill registry.SkillID) registry.ActionID {
	level := registry.LevelForXP(s.XPForSkill(skill))
	var best registry.ActionID
	bestLevel := -1
	for _, act := range catalog.ActionsForSkill(skill) {
		if act.IsSkillAction && act.UnlockLevel <= level && act.UnlockLevel > bestLevel {
			best = act.ID
			bestLevel = act.UnlockLevel
		}
	}
	return best
}

func mustSkillOf(catalog registry.Registries, action registry.ActionID) registry.SkillID {
	if act, ok := catalog.ActionByID(action); ok {
		return act.Skill
	}
	return registry.SkillUnknown
}
