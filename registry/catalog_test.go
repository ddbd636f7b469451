package registry

import "testing"

func TestCatalogLookups(t *testing.T) {
	logs := Action{ID: ActionID{Namespace: "wc", Name: "normal_logs"}, Skill: Woodcutting, MeanDuration: 3}
	axe := ShopPurchase{ID: PurchaseID{Namespace: "shop", Name: "iron_axe"}, AffectedSkills: []SkillID{Woodcutting}}

	c := NewCatalog([]Action{logs}, nil, []ShopPurchase{axe})

	got, ok := c.ActionByID(logs.ID)
	if !ok || got.ID != logs.ID {
		t.Fatalf("ActionByID: got %v, %v", got, ok)
	}

	forSkill := c.ActionsForSkill(Woodcutting)
	if len(forSkill) != 1 || forSkill[0].ID != logs.ID {
		t.Fatalf("ActionsForSkill: got %v", forSkill)
	}

	if len(c.ActionsForSkill(Fishing)) != 0 {
		t.Fatalf("expected no fishing actions")
	}

	p, ok := c.PurchaseByID(axe.ID)
	if !ok || !p.AffectsSkill(Woodcutting) {
		t.Fatalf("PurchaseByID/AffectsSkill: got %v, %v", p, ok)
	}
}

func TestCostDescriptor(t *testing.T) {
	fixed := CostDescriptor{Fixed: []CurrencyCost{{Currency: "gp", Amount: 500}}}
	if amt, ok := fixed.SingleFixedCost(); !ok || amt != 500 {
		t.Fatalf("SingleFixedCost: got %d, %v", amt, ok)
	}

	dyn := CostDescriptor{Dynamic: true, DynamicCost: func(owned int) int { return 1000 * (owned + 1) }}
	if _, ok := dyn.SingleFixedCost(); ok {
		t.Fatalf("expected dynamic cost to not be a single fixed cost")
	}
	if got := dyn.CostAt(2); got != 3000 {
		t.Fatalf("CostAt(2): got %d", got)
	}
}
