package goal

import (
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// MultiSkill is a conjunction of ReachSkillLevel subgoals. Remaining is the
// sum of remaining XP over unfinished subgoals; relevant skills are the
// union (spec.md §4.3).
type MultiSkill struct {
	Subgoals []ReachSkillLevel
}

func (g MultiSkill) IsSatisfied(s state.GameState, catalog registry.Registries) bool {
	for _, sub := range g.Subgoals {
		if !sub.IsSatisfied(s, catalog) {
			return false
		}
	}
	return true
}

func (g MultiSkill) Progress(s state.GameState, catalog registry.Registries) float64 {
	var total float64
	for _, sub := range g.Subgoals {
		total += sub.Progress(s, catalog)
	}
	return total
}

func (g MultiSkill) Remaining(s state.GameState, catalog registry.Registries) float64 {
	var total float64
	for _, sub := range g.Subgoals {
		total += sub.Remaining(s, catalog)
	}
	return total
}

func (g MultiSkill) RelevantSkills() []registry.SkillID {
	seen := map[registry.SkillID]bool{}
	var out []registry.SkillID
	for _, sub := range g.Subgoals {
		for _, sk := range sub.RelevantSkills() {
			if !seen[sk] {
				seen[sk] = true
				out = append(out, sk)
			}
		}
	}
	return out
}

func (g MultiSkill) ConsumingSkills() []registry.SkillID {
	return consumingSkillsOf(g.RelevantSkills())
}

func (g MultiSkill) SellPolicySpec() sellpolicy.Spec {
	if len(g.ConsumingSkills()) > 0 {
		return sellpolicy.ReserveConsumingInputsSpec{}
	}
	return sellpolicy.SellAllSpec{}
}

func (g MultiSkill) ActivityRate(skill registry.SkillID, goldRate, xpRate float64) float64 {
	var total float64
	for _, sub := range g.Subgoals {
		total += sub.ActivityRate(skill, goldRate, xpRate)
	}
	return total
}

func (g MultiSkill) TracksHP() bool        { return tracksHP(g.RelevantSkills()) }
func (g MultiSkill) TracksInventory() bool { return tracksInventory(g.RelevantSkills()) }

func (MultiSkill) goal() {}

var _ Goal = MultiSkill{}
