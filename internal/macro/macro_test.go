package macro_test

import (
	"testing"

	"github.com/lox/betteridle/internal/macro"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/tickersim"
	"github.com/lox/betteridle/registry"
)

func woodcuttingCatalog() (registry.Registries, registry.ItemID) {
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	action := registry.Action{
		ID: registry.ActionID{Namespace: "wc", Name: "normal_logs"}, Skill: registry.Woodcutting,
		IsSkillAction: true, MeanDuration: 2, XP: 10,
		Outputs: []registry.ItemStack{{Item: logs, Count: 1}},
	}
	return registry.NewCatalog([]registry.Action{action}, nil, nil), logs
}

func TestAcquireItemExpandReachesTarget(t *testing.T) {
	catalog, logs := woodcuttingCatalog()
	adv := state.NewAdvancer(catalog, tickersim.NewStochasticTicker(catalog))
	s := state.New(28, 10)

	m := macro.AcquireItem{Item: logs, Target: 5, Producer: registry.ActionID{Namespace: "wc", Name: "normal_logs"}}
	out, ticks, reason := m.Expand(adv, catalog, s)
	if reason != macro.StopPrimaryConditionMet {
		t.Fatalf("expected primary condition met, got %v", reason)
	}
	if out.Inventory.Count(logs) < 5 {
		t.Fatalf("expected at least 5 logs, got %d", out.Inventory.Count(logs))
	}
	if ticks <= 0 {
		t.Fatalf("expected positive ticks consumed, got %d", ticks)
	}
}

func TestTrainSkillUntilStopsAtLevel(t *testing.T) {
	catalog, _ := woodcuttingCatalog()
	adv := state.NewAdvancer(catalog, tickersim.NewStochasticTicker(catalog))
	s := state.New(28, 10)

	m := macro.TrainSkillUntil{
		Skill:  registry.Woodcutting,
		Action: registry.ActionID{Namespace: "wc", Name: "normal_logs"},
		Stop:   macro.StopAtLevel{Skill: registry.Woodcutting, Level: 3},
	}
	out, _, reason := m.Expand(adv, catalog, s)
	if reason != macro.StopPrimaryConditionMet {
		t.Fatalf("expected primary condition met, got %v", reason)
	}
	if registry.LevelForXP(out.XPForSkill(registry.Woodcutting)) < 3 {
		t.Fatalf("expected level >= 3, got xp=%v", out.XPForSkill(registry.Woodcutting))
	}
}
