package watchset_test

import (
	"testing"

	"github.com/lox/betteridle/internal/candidate"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/watchset"
	"github.com/lox/betteridle/registry"
)

func woodcuttingCatalog() registry.Registries {
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	oak := registry.ItemID{Namespace: "item", Name: "oak_logs"}
	normal := registry.Action{
		ID: registry.ActionID{Namespace: "wc", Name: "normal_logs"}, Skill: registry.Woodcutting,
		IsSkillAction: true, UnlockLevel: 1, MeanDuration: 2, XP: 10,
		Outputs: []registry.ItemStack{{Item: logs, Count: 1}},
	}
	oakAction := registry.Action{
		ID: registry.ActionID{Namespace: "wc", Name: "oak_logs"}, Skill: registry.Woodcutting,
		IsSkillAction: true, UnlockLevel: 15, MeanDuration: 3, XP: 20,
		Outputs: []registry.ItemStack{{Item: oak, Count: 1}},
	}
	axe := registry.ShopPurchase{
		ID: registry.PurchaseID{Namespace: "shop", Name: "bronze_axe"}, BuyLimit: 1,
		Cost: registry.CostDescriptor{Fixed: []registry.CurrencyCost{{Currency: "gp", Amount: 100}}},
		AffectedSkills: []registry.SkillID{registry.Woodcutting},
	}
	return registry.NewCatalog([]registry.Action{normal, oakAction}, nil, []registry.ShopPurchase{axe})
}

func TestDetectBoundaryGoalReached(t *testing.T) {
	catalog := woodcuttingCatalog()
	s := state.New(28, 10)
	g := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 1}
	ws := watchset.New(catalog, s, g, candidate.Watch{}, watchset.Config{})
	if !ws.DetectBoundary(s) {
		t.Fatal("expected goal already satisfied at level 1 to be a boundary")
	}
}

func TestDetectBoundaryUnlockTransition(t *testing.T) {
	catalog := woodcuttingCatalog()
	s := state.New(28, 10)
	g := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 50}
	watch := candidate.Watch{LockedActions: []registry.ActionID{{Namespace: "wc", Name: "oak_logs"}}}
	ws := watchset.New(catalog, s, g, watch, watchset.Config{StopAtUnlockBoundary: true})

	if ws.DetectBoundary(s) {
		t.Fatal("expected no boundary before crossing level 15")
	}

	leveled := s
	leveled.Skills = map[registry.SkillID]state.SkillState{
		registry.Woodcutting: {XP: float64(registry.StartXPForLevel(15))},
	}
	if !ws.DetectBoundary(leveled) {
		t.Fatal("expected unlock transition at level 15 to be a boundary")
	}
}

func TestDetectBoundaryUpgradeAffordable(t *testing.T) {
	catalog := woodcuttingCatalog()
	s := state.New(28, 10)
	g := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 50}
	watch := candidate.Watch{Upgrades: []registry.PurchaseID{{Namespace: "shop", Name: "bronze_axe"}}}
	ws := watchset.New(catalog, s, g, watch, watchset.Config{StopAtUpgradeAffordable: true})
	if ws.DetectBoundary(s) {
		t.Fatal("expected no boundary with zero gp")
	}

	rich := s
	rich.Currencies = map[string]int{"gp": 100}
	if !ws.DetectBoundary(rich) {
		t.Fatal("expected affordability boundary with 100 gp")
	}
}
