package unlocks_test

import (
	"path/filepath"
	"testing"

	"github.com/lox/betteridle/internal/unlocks"
	"github.com/lox/betteridle/registry"
)

func testCatalog() *registry.Catalog {
	actions := []registry.Action{
		{ID: registry.ActionID{Namespace: "action", Name: "chop_normal"}, Skill: registry.Woodcutting, UnlockLevel: 1},
		{ID: registry.ActionID{Namespace: "action", Name: "chop_oak"}, Skill: registry.Woodcutting, UnlockLevel: 15},
		{ID: registry.ActionID{Namespace: "action", Name: "chop_willow"}, Skill: registry.Woodcutting, UnlockLevel: 30},
	}
	purchases := []registry.ShopPurchase{
		{
			ID:                 registry.PurchaseID{Namespace: "shop", Name: "steel_axe"},
			UnlockRequirements: []registry.SkillRequirement{{Skill: registry.Woodcutting, Level: 20}},
		},
	}
	return registry.NewCatalog(actions, nil, purchases)
}

func TestComputeSortsAndDedupesLevels(t *testing.T) {
	table := unlocks.Compute(testCatalog())
	levels := table[registry.Woodcutting]
	want := []int{1, 15, 20, 30}
	if len(levels) != len(want) {
		t.Fatalf("expected %v, got %v", want, levels)
	}
	for i, lvl := range want {
		if levels[i] != lvl {
			t.Fatalf("expected %v, got %v", want, levels)
		}
	}
}

func TestNextBoundary(t *testing.T) {
	table := unlocks.Compute(testCatalog())
	lvl, ok := table.NextBoundary(registry.Woodcutting, 10)
	if !ok || lvl != 15 {
		t.Fatalf("expected next boundary 15, got %d ok=%v", lvl, ok)
	}
	if _, ok := table.NextBoundary(registry.Woodcutting, 30); ok {
		t.Fatalf("expected no boundary above max level")
	}
}

func TestSaveLoadRoundTrips(t *testing.T) {
	table := unlocks.Compute(testCatalog())
	path := filepath.Join(t.TempDir(), "unlocks.json")
	if err := unlocks.Save(table, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := unlocks.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got[registry.Woodcutting]) != len(table[registry.Woodcutting]) {
		t.Fatalf("expected round-tripped levels to match, got %v want %v", got[registry.Woodcutting], table[registry.Woodcutting])
	}
}
