package goal

import (
	"encoding/json"
	"fmt"

	"github.com/lox/betteridle/registry"
)

// jsonGoal is the on-disk shape shared by the three serializable goal
// kinds. SegmentWrapper is deliberately excluded (spec.md §9): it must be
// reconstructed from a persisted inner goal plus a rebuilt WatchSet.
type jsonGoal struct {
	Kind     Kind        `json:"kind"`
	Currency string      `json:"currency,omitempty"`
	Target   int         `json:"target,omitempty"`
	Skill    string      `json:"skill,omitempty"`
	Level    int         `json:"level,omitempty"`
	Subgoals []jsonGoal  `json:"subgoals,omitempty"`
}

// ToJSON marshals g. Passing a SegmentWrapper is a programmer error.
func ToJSON(g Goal) ([]byte, error) {
	jg, err := toJSONGoal(g)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jg)
}

func toJSONGoal(g Goal) (jsonGoal, error) {
	switch v := g.(type) {
	case ReachCurrency:
		return jsonGoal{Kind: KindReachCurrency, Currency: v.Currency, Target: v.Target}, nil
	case ReachSkillLevel:
		return jsonGoal{Kind: KindReachSkillLevel, Skill: v.Skill.String(), Level: v.Level}, nil
	case MultiSkill:
		subs := make([]jsonGoal, len(v.Subgoals))
		for i, sub := range v.Subgoals {
			jg, err := toJSONGoal(sub)
			if err != nil {
				return jsonGoal{}, err
			}
			subs[i] = jg
		}
		return jsonGoal{Kind: KindMultiSkill, Subgoals: subs}, nil
	default:
		return jsonGoal{}, fmt.Errorf("goal: %T is not serializable", g)
	}
}

// FromJSON reconstructs a goal previously written by ToJSON.
func FromJSON(data []byte) (Goal, error) {
	var jg jsonGoal
	if err := json.Unmarshal(data, &jg); err != nil {
		return nil, err
	}
	return fromJSONGoal(jg)
}

func fromJSONGoal(jg jsonGoal) (Goal, error) {
	switch jg.Kind {
	case KindReachCurrency:
		return ReachCurrency{Currency: jg.Currency, Target: jg.Target}, nil
	case KindReachSkillLevel:
		skill, err := skillByName(jg.Skill)
		if err != nil {
			return nil, err
		}
		return ReachSkillLevel{Skill: skill, Level: jg.Level}, nil
	case KindMultiSkill:
		subs := make([]ReachSkillLevel, len(jg.Subgoals))
		for i, sub := range jg.Subgoals {
			g, err := fromJSONGoal(sub)
			if err != nil {
				return nil, err
			}
			rs, ok := g.(ReachSkillLevel)
			if !ok {
				return nil, fmt.Errorf("goal: multi-skill subgoal %d is not reach-skill-level", i)
			}
			subs[i] = rs
		}
		return MultiSkill{Subgoals: subs}, nil
	default:
		return nil, fmt.Errorf("goal: unknown kind %d", jg.Kind)
	}
}

func skillByName(name string) (registry.SkillID, error) {
	for _, sk := range registry.AllSkills() {
		if sk.String() == name {
			return sk, nil
		}
	}
	return registry.SkillUnknown, fmt.Errorf("goal: unknown skill %q", name)
}
