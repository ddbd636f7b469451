package state_test

import (
	"testing"
	"time"

	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

func TestGameStateJSONRoundTrips(t *testing.T) {
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	axe := registry.PurchaseID{Namespace: "shop", Name: "bronze_axe"}
	chop := registry.ActionID{Namespace: "action", Name: "chop_normal_tree"}

	s := state.New(28, 100)
	s.Currencies["gold"] = 500
	s.Skills[registry.Woodcutting] = state.SkillState{XP: 1234.5}
	s.Actions[chop] = state.ActionState{MasteryXP: 42, ResourceCount: 3}
	s.LastSeen = time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)

	inv, ok := s.Inventory.Add(logs, 10)
	if !ok {
		t.Fatalf("expected inventory add to succeed")
	}
	s.Inventory = inv
	s.Shop = s.Shop.WithPurchase(axe).WithPurchase(axe)
	s.Active = &state.ActiveAction{ID: chop, RemainingTicks: 5, TotalTicks: 20}

	data, err := state.ToJSON(s)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := state.FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if got.Currency("gold") != 500 {
		t.Fatalf("expected gold 500, got %d", got.Currency("gold"))
	}
	if got.XPForSkill(registry.Woodcutting) != 1234.5 {
		t.Fatalf("expected woodcutting XP 1234.5, got %v", got.XPForSkill(registry.Woodcutting))
	}
	if got.MasteryXPForAction(chop) != 42 {
		t.Fatalf("expected mastery XP 42, got %v", got.MasteryXPForAction(chop))
	}
	if got.Inventory.Count(logs) != 10 {
		t.Fatalf("expected 10 logs, got %d", got.Inventory.Count(logs))
	}
	if got.Shop.Owned(axe) != 2 {
		t.Fatalf("expected 2 axes owned, got %d", got.Shop.Owned(axe))
	}
	if got.Active == nil || got.Active.ID != chop || got.Active.RemainingTicks != 5 {
		t.Fatalf("expected active action to round-trip, got %+v", got.Active)
	}
	if !got.LastSeen.Equal(s.LastSeen) {
		t.Fatalf("expected last seen to round-trip, got %v", got.LastSeen)
	}
}

func TestGameStateFromJSONUnknownSkillErrors(t *testing.T) {
	data := []byte(`{"currencies":{},"skills":[{"skill":"not_a_skill","xp":1}],"inventory_capacity":0,"hp":0,"max_hp":0,"last_seen":"2026-07-30T00:00:00Z"}`)
	if _, err := state.FromJSON(data); err == nil {
		t.Fatalf("expected error for unknown skill name")
	}
}
