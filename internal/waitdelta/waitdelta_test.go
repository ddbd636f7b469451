package waitdelta_test

import (
	"math"
	"testing"

	"github.com/lox/betteridle/internal/candidate"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/waitdelta"
	"github.com/lox/betteridle/registry"
)

func woodcuttingCatalog() registry.Registries {
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	action := registry.Action{
		ID: registry.ActionID{Namespace: "wc", Name: "normal_logs"}, Skill: registry.Woodcutting,
		IsSkillAction: true, MeanDuration: 2, XP: 10, Currency: 5,
		Outputs: []registry.ItemStack{{Item: logs, Count: 1}},
	}
	return registry.NewCatalog([]registry.Action{action}, nil, nil)
}

func TestSelectZeroWhenGoalSatisfied(t *testing.T) {
	catalog := woodcuttingCatalog()
	s := state.New(28, 10)
	g := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 1}
	res := waitdelta.Select(catalog, s, g, candidate.Candidates{})
	if res.Ticks != 0 {
		t.Fatalf("expected 0 ticks, got %v", res.Ticks)
	}
}

func TestSelectPositiveDeltaToGoal(t *testing.T) {
	catalog := woodcuttingCatalog()
	s := state.New(28, 10)
	s.Active = &state.ActiveAction{ID: registry.ActionID{Namespace: "wc", Name: "normal_logs"}}
	g := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 5}
	res := waitdelta.Select(catalog, s, g, candidate.Candidates{})
	if res.Ticks <= 0 || math.IsInf(res.Ticks, 1) {
		t.Fatalf("expected a finite positive delta, got %v", res.Ticks)
	}
}

func TestSelectInfiniteWithNoActiveAction(t *testing.T) {
	catalog := woodcuttingCatalog()
	s := state.New(28, 10)
	g := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 5}
	res := waitdelta.Select(catalog, s, g, candidate.Candidates{})
	if !math.IsInf(res.Ticks, 1) {
		t.Fatalf("expected infinite delta with no active action, got %v", res.Ticks)
	}
}
