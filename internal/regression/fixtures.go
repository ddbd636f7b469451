package regression

import "github.com/lox/betteridle/registry"

// BuildCatalog returns a small multi-skill content pack covering every
// end-to-end scenario spec.md §8 lists: a non-consuming skill
// (woodcutting), a consuming skill fed by it (firemaking), a second
// independent non-consuming skill (fishing, for the multi-skill
// conjunction scenario), and thieving (death-cycle rates). One shop
// purchase (an axe upgrade) gives the payback scenario something to buy.
func BuildCatalog() registry.Registries {
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	rawFish := registry.ItemID{Namespace: "item", Name: "raw_shrimp"}

	actions := []registry.Action{
		{
			ID: registry.ActionID{Namespace: "wc", Name: "normal_logs"}, Skill: registry.Woodcutting,
			IsSkillAction: true, UnlockLevel: 1, MeanDuration: 2, XP: 10,
			Outputs: []registry.ItemStack{{Item: logs, Count: 1}},
		},
		{
			ID: registry.ActionID{Namespace: "fm", Name: "burn_logs"}, Skill: registry.Firemaking,
			IsSkillAction: true, UnlockLevel: 1, MeanDuration: 3, XP: 15,
			Inputs: []registry.ItemStack{{Item: logs, Count: 1}},
		},
		{
			ID: registry.ActionID{Namespace: "fish", Name: "shrimp"}, Skill: registry.Fishing,
			IsSkillAction: true, UnlockLevel: 1, MeanDuration: 2, XP: 10, Currency: 4,
			Outputs: []registry.ItemStack{{Item: rawFish, Count: 1}},
		},
		{
			ID: registry.ActionID{Namespace: "thief", Name: "mug_novice"}, Skill: registry.Thieving,
			IsSkillAction: true, UnlockLevel: 1, MeanDuration: 3, XP: 8, Currency: 25,
			Perception: 50, MaxGold: 40, MaxHit: 6, StunTicks: 3,
		},
	}

	items := []registry.Item{
		{ID: logs, Name: "Normal logs", SellPrice: 2},
		{ID: rawFish, Name: "Raw shrimp", SellPrice: 3},
	}

	purchases := []registry.ShopPurchase{
		{
			ID:                 registry.PurchaseID{Namespace: "shop", Name: "iron_axe"},
			Name:               "Iron axe",
			BuyLimit:           1,
			Cost:               registry.CostDescriptor{Fixed: []registry.CurrencyCost{{Currency: "gp", Amount: 200}}},
			DurationMultiplier: -0.25,
			AffectedSkills:     []registry.SkillID{registry.Woodcutting},
		},
	}

	return registry.NewCatalog(actions, items, purchases)
}
