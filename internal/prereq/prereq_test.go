package prereq_test

import (
	"testing"

	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/prereq"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

func firemakingCatalog() registry.Registries {
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	wc := registry.Action{
		ID: registry.ActionID{Namespace: "wc", Name: "normal_logs"}, Skill: registry.Woodcutting,
		IsSkillAction: true, UnlockLevel: 1, MeanDuration: 2, XP: 10,
		Outputs: []registry.ItemStack{{Item: logs, Count: 1}},
	}
	fm := registry.Action{
		ID: registry.ActionID{Namespace: "fm", Name: "burn_logs"}, Skill: registry.Firemaking,
		IsSkillAction: true, UnlockLevel: 1, MeanDuration: 2, XP: 15,
		Inputs: []registry.ItemStack{{Item: logs, Count: 1}},
	}
	return registry.NewCatalog([]registry.Action{wc, fm}, nil, nil)
}

func TestEnsureExecutableReadyWithInputsInHand(t *testing.T) {
	catalog := firemakingCatalog()
	s := state.New(28, 10)
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	inv, _ := s.Inventory.Add(logs, 5)
	s.Inventory = inv

	g := goal.ReachSkillLevel{Skill: registry.Firemaking, Level: 5}
	res := prereq.EnsureExecutable(catalog, s, registry.ActionID{Namespace: "fm", Name: "burn_logs"}, g)
	if res.Status != prereq.Ready {
		t.Fatalf("expected ready, got %v (%s)", res.Status, res.Reason)
	}
}

func TestEnsureExecutableNeedsMacrosWithoutInputs(t *testing.T) {
	catalog := firemakingCatalog()
	s := state.New(28, 10)
	g := goal.ReachSkillLevel{Skill: registry.Firemaking, Level: 5}
	res := prereq.EnsureExecutable(catalog, s, registry.ActionID{Namespace: "fm", Name: "burn_logs"}, g)
	if res.Status != prereq.NeedsMacros {
		t.Fatalf("expected needs-macros, got %v (%s)", res.Status, res.Reason)
	}
	if len(res.Macros) == 0 {
		t.Fatal("expected at least one macro to acquire logs")
	}
}

func TestEnsureExecutableUnknownWithNoProducer(t *testing.T) {
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	fm := registry.Action{
		ID: registry.ActionID{Namespace: "fm", Name: "burn_logs"}, Skill: registry.Firemaking,
		IsSkillAction: true, UnlockLevel: 1, MeanDuration: 2, XP: 15,
		Inputs: []registry.ItemStack{{Item: logs, Count: 1}},
	}
	catalog := registry.NewCatalog([]registry.Action{fm}, nil, nil)
	s := state.New(28, 10)
	g := goal.ReachSkillLevel{Skill: registry.Firemaking, Level: 5}
	res := prereq.EnsureExecutable(catalog, s, registry.ActionID{Namespace: "fm", Name: "burn_logs"}, g)
	if res.Status != prereq.Unknown {
		t.Fatalf("expected unknown, got %v", res.Status)
	}
}
