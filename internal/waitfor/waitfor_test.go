package waitfor_test

import (
	"math"
	"testing"

	"github.com/lox/betteridle/internal/rate"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/registry"
)

func TestSkillXPSatisfactionAndEstimate(t *testing.T) {
	catalog := registry.NewCatalog(nil, nil, nil)
	w := waitfor.SkillXP{Skill: registry.Woodcutting, Target: 100}
	s := state.New(28, 10)
	if w.IsSatisfied(s, catalog) {
		t.Fatal("expected unsatisfied at zero xp")
	}
	ticks := w.EstimateTicks(s, rate.Rates{XPPerTick: 10})
	if ticks != 10 {
		t.Fatalf("expected 10 ticks, got %v", ticks)
	}
	if got := w.EstimateTicks(s, rate.Rates{XPPerTick: 0}); !math.IsInf(got, 1) {
		t.Fatalf("expected infinity with zero rate, got %v", got)
	}
}

func TestInventoryFullSatisfaction(t *testing.T) {
	catalog := registry.NewCatalog(nil, nil, nil)
	w := waitfor.InventoryFull{}
	s := state.New(1, 10)
	ore := registry.ItemID{Namespace: "item", Name: "ore"}
	inv, _ := s.Inventory.Add(ore, 1)
	s.Inventory = inv
	if !w.IsSatisfied(s, catalog) {
		t.Fatal("expected inventory full at capacity 1 with one stack")
	}
}

func TestAnyOfTakesMinimumEstimate(t *testing.T) {
	w := waitfor.AnyOf{List: []waitfor.WaitFor{
		waitfor.SkillXP{Skill: registry.Woodcutting, Target: 100},
		waitfor.MasteryXP{Action: registry.ActionID{Namespace: "wc", Name: "logs"}, Target: 10},
	}}
	s := state.New(28, 10)
	got := w.EstimateTicks(s, rate.Rates{XPPerTick: 10, MasteryXPPerTick: 5})
	if got != 2 {
		t.Fatalf("expected 2 (mastery path), got %v", got)
	}
}

func TestInputsAvailableEstimatesFromRequiredQuantity(t *testing.T) {
	ore := registry.ItemID{Namespace: "item", Name: "ore"}
	action := registry.ActionID{Namespace: "smithing", Name: "bar"}
	s := state.New(28, 10)
	inv, _ := s.Inventory.Add(ore, 4)
	s.Inventory = inv

	w := waitfor.InputsAvailable{Action: action, Inputs: []registry.ItemStack{{Item: ore, Count: 10}}}
	ticks := w.EstimateTicks(s, rate.Rates{Produced: map[registry.ItemID]float64{ore: 2}})
	if ticks != 3 {
		t.Fatalf("expected 3 ticks to gain the missing 6 ore at 2/tick, got %v", ticks)
	}

	sufficient := waitfor.SufficientInputsForAction(w)
	if got := sufficient.EstimateTicks(s, rate.Rates{Produced: map[registry.ItemID]float64{ore: 2}}); got != ticks {
		t.Fatalf("expected SufficientInputsForAction to match InputsAvailable, got %v want %v", got, ticks)
	}
}

func TestDeltaToAcquireUsesSnapshot(t *testing.T) {
	catalog := registry.NewCatalog(nil, nil, nil)
	item := registry.ItemID{Namespace: "item", Name: "logs"}
	s := state.New(28, 10)
	inv, _ := s.Inventory.Add(item, 5)
	s.Inventory = inv
	w := waitfor.DeltaToAcquire{Item: item, Quantity: 10, SnapshotCount: 5}
	if w.IsSatisfied(s, catalog) {
		t.Fatal("expected unsatisfied: only 0 gained so far")
	}
	inv2, _ := s.Inventory.Add(item, 10)
	s.Inventory = inv2
	if !w.IsSatisfied(s, catalog) {
		t.Fatal("expected satisfied after gaining 10 more")
	}
}
