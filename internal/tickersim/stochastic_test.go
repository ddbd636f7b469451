package tickersim_test

import (
	"math/rand"
	"testing"

	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/tickersim"
	"github.com/lox/betteridle/registry"
)

func TestStochasticTickerProducesItemsOverManyTicks(t *testing.T) {
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	action := registry.Action{
		ID:            registry.ActionID{Namespace: "wc", Name: "normal_logs"},
		Skill:         registry.Woodcutting,
		IsSkillAction: true,
		MeanDuration:  1,
		XP:            10,
		Outputs:       []registry.ItemStack{{Item: logs, Count: 1}},
	}
	catalog := registry.NewCatalog([]registry.Action{action}, nil, nil)
	ticker := tickersim.NewStochasticTicker(catalog)
	adv := state.NewAdvancer(catalog, ticker)

	s := state.New(50, 10)
	s.Active = &state.ActiveAction{ID: action.ID, RemainingTicks: 1, TotalTicks: 1}

	out, reason := adv.AdvanceFullSim(s, 20, rand.New(rand.NewSource(1)))
	if reason != state.StillRunning {
		t.Fatalf("expected still running, got %v", reason)
	}
	if out.Inventory.Count(logs) != 20 {
		t.Fatalf("expected 20 logs, got %d", out.Inventory.Count(logs))
	}
	if out.XPForSkill(registry.Woodcutting) != 200 {
		t.Fatalf("expected 200 xp, got %v", out.XPForSkill(registry.Woodcutting))
	}
}

func TestStochasticTickerStopsOnInventoryFull(t *testing.T) {
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	ore := registry.ItemID{Namespace: "item", Name: "ore"}
	action := registry.Action{
		ID:            registry.ActionID{Namespace: "wc", Name: "normal_logs"},
		Skill:         registry.Woodcutting,
		IsSkillAction: true,
		MeanDuration:  1,
		Outputs:       []registry.ItemStack{{Item: logs, Count: 1}},
	}
	catalog := registry.NewCatalog([]registry.Action{action}, nil, nil)
	ticker := tickersim.NewStochasticTicker(catalog)
	adv := state.NewAdvancer(catalog, ticker)

	s := state.New(1, 10) // capacity 1
	inv, _ := s.Inventory.Add(ore, 1)
	s.Inventory = inv // already at capacity with a different item
	s.Active = &state.ActiveAction{ID: action.ID, RemainingTicks: 1, TotalTicks: 1}

	_, reason := adv.AdvanceFullSim(s, 5, rand.New(rand.NewSource(1)))
	if reason != state.InventoryFull {
		t.Fatalf("expected inventory full, got %v", reason)
	}
}
