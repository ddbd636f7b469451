package registry

// CurrencyCost is a single flat currency cost component (e.g. "500 gp").
type CurrencyCost struct {
	Currency string
	Amount   int
}

// CostDescriptor distinguishes the two pricing shapes a ShopPurchase can
// have. Exactly one of the two is meaningful for a given purchase, selected
// by Dynamic.
type CostDescriptor struct {
	// Fixed is used when Dynamic is false: a flat list of currency costs.
	// The open question in spec.md §9 restricts buy-candidates to
	// purchases priced with exactly one Fixed component.
	Fixed []CurrencyCost

	// Dynamic is true for bank-slot-style pricing, where the cost of the
	// Nth purchase depends on how many have already been bought.
	Dynamic bool

	// DynamicCost returns the cost of buying the (ownedCount+1)th unit.
	// Only valid when Dynamic is true.
	DynamicCost func(ownedCount int) int
}

// SingleFixedCost returns (amount, true) iff the descriptor has exactly one
// fixed currency component, per the watch-only rule for dynamic purchases.
func (c CostDescriptor) SingleFixedCost() (int, bool) {
	if c.Dynamic || len(c.Fixed) != 1 {
		return 0, false
	}
	return c.Fixed[0].Amount, true
}

// CostAt returns the currency cost of buying the (ownedCount+1)th unit,
// whichever pricing shape is in effect.
func (c CostDescriptor) CostAt(ownedCount int) int {
	if c.Dynamic {
		if c.DynamicCost == nil {
			return 0
		}
		return c.DynamicCost(ownedCount)
	}
	total := 0
	for _, fc := range c.Fixed {
		total += fc.Amount
	}
	return total
}

// SkillRequirement is a (skill, minimum level) prerequisite.
type SkillRequirement struct {
	Skill SkillID
	Level int
}

// ShopPurchase describes one buyable upgrade.
type ShopPurchase struct {
	ID                  PurchaseID
	Name                string
	UnlockRequirements  []SkillRequirement
	PurchaseRequirements []SkillRequirement
	BuyLimit            int // ignored when IsUnlimited
	IsUnlimited         bool
	Cost                CostDescriptor

	// DurationMultiplier, when non-zero, scales the mean duration of
	// actions for every skill in AffectedSkills: 1 + sum(owned *
	// DurationMultiplier) as spec.md §4.1 describes. Negative values
	// shorten durations (faster tools); this is additive per unit owned.
	DurationMultiplier float64
	AffectedSkills     []SkillID
}

// AffectsSkill reports whether owning this purchase changes the duration
// modifier for skill.
func (p ShopPurchase) AffectsSkill(skill SkillID) bool {
	for _, s := range p.AffectedSkills {
		if s == skill {
			return true
		}
	}
	return false
}
