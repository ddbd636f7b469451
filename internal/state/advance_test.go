package state

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/betteridle/registry"
)

func testCatalog() *registry.Catalog {
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	wc := registry.Action{
		ID:            registry.ActionID{Namespace: "wc", Name: "normal_logs"},
		Skill:         registry.Woodcutting,
		IsSkillAction: true,
		MeanDuration:  4,
		XP:            10,
		Outputs:       []registry.ItemStack{{Item: logs, Count: 1}},
	}
	return registry.NewCatalog([]registry.Action{wc}, nil, nil)
}

func TestAdvanceExpectedMonotoneXP(t *testing.T) {
	catalog := testCatalog()
	adv := NewAdvancer(catalog, nil)

	s := New(10, 10)
	s.Active = &ActiveAction{ID: registry.ActionID{Namespace: "wc", Name: "normal_logs"}, RemainingTicks: 4, TotalTicks: 4}

	for dt := 0; dt <= 20; dt++ {
		before := s
		after := adv.AdvanceExpected(s, dt)
		for skill := range after.Skills {
			if after.XPForSkill(skill) < before.XPForSkill(skill) {
				t.Fatalf("xp decreased for dt=%d: %v -> %v", dt, before.XPForSkill(skill), after.XPForSkill(skill))
			}
		}
		if err := CheckInvariants(after, catalog); err != nil {
			t.Fatalf("dt=%d: %v", dt, err)
		}
	}
}

func TestAdvanceExpectedProducesItems(t *testing.T) {
	catalog := testCatalog()
	adv := NewAdvancer(catalog, nil)
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}

	s := New(10, 10)
	s.Active = &ActiveAction{ID: registry.ActionID{Namespace: "wc", Name: "normal_logs"}, RemainingTicks: 4, TotalTicks: 4}

	after := adv.AdvanceExpected(s, 40)
	if got := after.Inventory.Count(logs); got != 10 {
		t.Fatalf("expected 10 logs after 40 ticks at 4 ticks/log, got %d", got)
	}
}

func TestAdvanceExpectedNegativeDeltaPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on negative delta")
		}
	}()
	adv := NewAdvancer(testCatalog(), nil)
	adv.AdvanceExpected(New(10, 10), -1)
}

func TestApplyBuyRejectsWhenUnaffordable(t *testing.T) {
	purchase := registry.ShopPurchase{
		ID:       registry.PurchaseID{Namespace: "shop", Name: "iron_axe"},
		Cost:     registry.CostDescriptor{Fixed: []registry.CurrencyCost{{Currency: "gp", Amount: 500}}},
		BuyLimit: 1,
	}
	catalog := registry.NewCatalog(nil, nil, []registry.ShopPurchase{purchase})
	adv := NewAdvancer(catalog, nil)

	s := New(10, 10)
	_, err := adv.ApplyInteraction(s, BuyUpgrade{PurchaseID: purchase.ID}, func(registry.ItemID) int { return 0 })
	if err == nil {
		t.Fatalf("expected CannotAffordError")
	}
	var cannotAfford *CannotAffordError
	if _, ok := err.(*CannotAffordError); !ok {
		t.Fatalf("expected *CannotAffordError, got %T (%v)", err, cannotAfford)
	}
}

func TestApplySellLiquidatesNonKeptItems(t *testing.T) {
	catalog := registry.NewCatalog(nil, nil, nil)
	adv := NewAdvancer(catalog, nil)
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	ore := registry.ItemID{Namespace: "item", Name: "copper_ore"}

	s := New(10, 10)
	inv, _ := s.Inventory.Add(logs, 5)
	s.Inventory = inv
	inv, _ = s.Inventory.Add(ore, 3)
	s.Inventory = inv

	keep := map[registry.ItemID]bool{ore: true}
	price := func(id registry.ItemID) int {
		if id == logs {
			return 2
		}
		return 0
	}

	out, err := adv.ApplyInteraction(s, SellItems{Keep: keep}, price)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Inventory.Count(logs) != 0 {
		t.Fatalf("expected logs sold off")
	}
	if out.Inventory.Count(ore) != 3 {
		t.Fatalf("expected ore kept")
	}
	if out.Currency("gp") != 10 {
		t.Fatalf("expected 10 gp from selling 5 logs at 2gp, got %d", out.Currency("gp"))
	}
}

func TestTouchStampsLastSeenFromClock(t *testing.T) {
	mockClock := quartz.NewMock(t)
	adv := NewAdvancer(testCatalog(), nil)
	adv.Clock = mockClock

	s := New(10, 10)
	if !s.LastSeen.IsZero() {
		t.Fatalf("expected zero LastSeen before Touch")
	}

	out := adv.Touch(s)
	if !out.LastSeen.Equal(mockClock.Now()) {
		t.Fatalf("expected LastSeen to match mock clock, got %v want %v", out.LastSeen, mockClock.Now())
	}

	mockClock.Advance(time.Hour).MustWait(context.Background())
	out2 := adv.Touch(out)
	if !out2.LastSeen.After(out.LastSeen) {
		t.Fatalf("expected LastSeen to advance with clock, got %v then %v", out.LastSeen, out2.LastSeen)
	}
}
