package sellpolicy

import (
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// Spec is a tagged union describing how to build a concrete Policy once a
// goal's set of relevant consuming skills is known. Kept separate from
// Policy itself because a goal only knows its consuming skills, not the
// current catalog-derived keep-set, until Resolve runs.
type Spec interface {
	Resolve(s state.GameState, catalog registry.Registries, consumingSkills []registry.SkillID) Policy
	spec()
}

// SellAllSpec always resolves to SellAll regardless of consuming skills.
type SellAllSpec struct{}

func (SellAllSpec) Resolve(state.GameState, registry.Registries, []registry.SkillID) Policy {
	return SellAll{}
}
func (SellAllSpec) spec() {}

// ReserveConsumingInputsSpec resolves to a SellExcept policy that keeps the
// union of inputs of every unlocked action for the given consuming skills
// (spec.md §4.4).
type ReserveConsumingInputsSpec struct{}

func (ReserveConsumingInputsSpec) Resolve(s state.GameState, catalog registry.Registries, consumingSkills []registry.SkillID) Policy {
	keep := map[registry.ItemID]bool{}
	for _, skill := range consumingSkills {
		level := registry.LevelForXP(s.XPForSkill(skill))
		for _, act := range catalog.ActionsForSkill(skill) {
			if act.UnlockLevel > level {
				continue
			}
			for _, in := range act.Inputs {
				keep[in.Item] = true
			}
		}
	}
	return SellExcept{Keep: keep}
}

func (ReserveConsumingInputsSpec) spec() {}

var (
	_ Spec = SellAllSpec{}
	_ Spec = ReserveConsumingInputsSpec{}
)
