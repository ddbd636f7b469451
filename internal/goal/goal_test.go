package goal_test

import (
	"testing"

	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

func TestReachCurrencySatisfaction(t *testing.T) {
	catalog := registry.NewCatalog(nil, nil, nil)
	g := goal.ReachCurrency{Currency: "gp", Target: 100}
	s := state.New(28, 10)
	if g.IsSatisfied(s, catalog) {
		t.Fatal("expected not satisfied at zero gp")
	}
	s.Currencies["gp"] = 100
	if !g.IsSatisfied(s, catalog) {
		t.Fatal("expected satisfied at target gp")
	}
}

func TestReachSkillLevelRemainingDecreases(t *testing.T) {
	catalog := registry.NewCatalog(nil, nil, nil)
	g := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 5}
	s := state.New(28, 10)
	r0 := g.Remaining(s, catalog)
	sk := s.Skills[registry.Woodcutting]
	sk.XP += 50
	s.Skills[registry.Woodcutting] = sk
	r1 := g.Remaining(s, catalog)
	if r1 >= r0 {
		t.Fatalf("expected remaining to decrease: r0=%v r1=%v", r0, r1)
	}
}

func TestReachSkillLevelConsumingUsesReserveSpec(t *testing.T) {
	g := goal.ReachSkillLevel{Skill: registry.Firemaking, Level: 5}
	if _, ok := g.SellPolicySpec().(sellpolicy.ReserveConsumingInputsSpec); !ok {
		t.Fatalf("expected reserve-consuming-inputs spec for a consuming skill goal")
	}
	g2 := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 5}
	if _, ok := g2.SellPolicySpec().(sellpolicy.SellAllSpec); !ok {
		t.Fatalf("expected sell-all spec for a non-consuming skill goal")
	}
}

func TestMultiSkillConjunction(t *testing.T) {
	catalog := registry.NewCatalog(nil, nil, nil)
	g := goal.MultiSkill{Subgoals: []goal.ReachSkillLevel{
		{Skill: registry.Woodcutting, Level: 5},
		{Skill: registry.Fishing, Level: 5},
	}}
	s := state.New(28, 10)
	if g.IsSatisfied(s, catalog) {
		t.Fatal("expected unsatisfied at zero xp")
	}
	skills := g.RelevantSkills()
	if len(skills) != 2 {
		t.Fatalf("expected 2 relevant skills, got %d", len(skills))
	}
}

func TestGoalJSONRoundTrip(t *testing.T) {
	g := goal.MultiSkill{Subgoals: []goal.ReachSkillLevel{
		{Skill: registry.Woodcutting, Level: 10},
		{Skill: registry.Firemaking, Level: 5},
	}}
	data, err := goal.ToJSON(g)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	back, err := goal.FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	ms, ok := back.(goal.MultiSkill)
	if !ok {
		t.Fatalf("expected MultiSkill, got %T", back)
	}
	if len(ms.Subgoals) != 2 || ms.Subgoals[0].Skill != registry.Woodcutting || ms.Subgoals[1].Level != 5 {
		t.Fatalf("round trip mismatch: %+v", ms)
	}
}

func TestSegmentWrapperDelegatesExceptSatisfaction(t *testing.T) {
	inner := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 10}
	wrapped := goal.SegmentWrapper{Inner: inner, Watch: alwaysBoundary{}}
	catalog := registry.NewCatalog(nil, nil, nil)
	s := state.New(28, 10)
	if !wrapped.IsSatisfied(s, catalog) {
		t.Fatal("expected segment wrapper to defer to the watch set")
	}
	if wrapped.Remaining(s, catalog) != inner.Remaining(s, catalog) {
		t.Fatal("expected Remaining to delegate to inner goal")
	}
}

type alwaysBoundary struct{}

func (alwaysBoundary) DetectBoundary(state.GameState) bool { return true }
