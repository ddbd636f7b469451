package goal

import (
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// ReachSkillLevel is satisfied once Skill's XP reaches the threshold for
// Level. Only Skill is relevant. If Skill is a consuming skill, the sell
// policy reserves inputs for its unlocked consuming actions instead of
// selling everything (spec.md §4.3).
type ReachSkillLevel struct {
	Skill registry.SkillID
	Level int
}

func (g ReachSkillLevel) targetXP() float64 {
	return registry.StartXPForLevel(g.Level)
}

func (g ReachSkillLevel) IsSatisfied(s state.GameState, catalog registry.Registries) bool {
	return s.XPForSkill(g.Skill) >= g.targetXP()
}

func (g ReachSkillLevel) Progress(s state.GameState, catalog registry.Registries) float64 {
	return s.XPForSkill(g.Skill)
}

func (g ReachSkillLevel) Remaining(s state.GameState, catalog registry.Registries) float64 {
	r := g.targetXP() - s.XPForSkill(g.Skill)
	if r < 0 {
		return 0
	}
	return r
}

func (g ReachSkillLevel) RelevantSkills() []registry.SkillID {
	return []registry.SkillID{g.Skill}
}

func (g ReachSkillLevel) ConsumingSkills() []registry.SkillID {
	return consumingSkillsOf(g.RelevantSkills())
}

func (g ReachSkillLevel) SellPolicySpec() sellpolicy.Spec {
	if g.Skill.IsConsuming() {
		return sellpolicy.ReserveConsumingInputsSpec{}
	}
	return sellpolicy.SellAllSpec{}
}

// ActivityRate only ranks activities of the target skill; cross-skill
// producer actions are surfaced separately by the candidate enumerator's
// unconditional producer inclusion (spec.md §4.5), not through ranking.
func (g ReachSkillLevel) ActivityRate(skill registry.SkillID, goldRate, xpRate float64) float64 {
	if skill != g.Skill {
		return 0
	}
	return xpRate
}

func (g ReachSkillLevel) TracksHP() bool        { return tracksHP(g.RelevantSkills()) }
func (g ReachSkillLevel) TracksInventory() bool { return tracksInventory(g.RelevantSkills()) }

func (ReachSkillLevel) goal() {}

var _ Goal = ReachSkillLevel{}
