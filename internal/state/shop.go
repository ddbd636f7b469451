package state

import "github.com/lox/betteridle/registry"

// ShopState is the multiset of purchase counts owned so far.
type ShopState struct {
	counts map[registry.PurchaseID]int
}

func newShopState() ShopState {
	return ShopState{counts: map[registry.PurchaseID]int{}}
}

func (s ShopState) clone() ShopState {
	out := ShopState{counts: make(map[registry.PurchaseID]int, len(s.counts))}
	for k, v := range s.counts {
		out.counts[k] = v
	}
	return out
}

// Owned returns how many units of purchase are owned.
func (s ShopState) Owned(id registry.PurchaseID) int {
	return s.counts[id]
}

// WithPurchase returns a ShopState with one more unit of id owned. The
// caller is responsible for checking buy-limits beforehand; this is a pure
// data update.
func (s ShopState) WithPurchase(id registry.PurchaseID) ShopState {
	out := s.clone()
	out.counts[id]++
	return out
}

type shopPurchaseCount struct {
	id    registry.PurchaseID
	owned int
}

// purchases returns every owned purchase and its count, for serialization.
func (s ShopState) purchases() []shopPurchaseCount {
	out := make([]shopPurchaseCount, 0, len(s.counts))
	for id, owned := range s.counts {
		out = append(out, shopPurchaseCount{id: id, owned: owned})
	}
	return out
}

// DurationMultiplier aggregates the owned purchases' duration modifiers for
// skill, per spec.md §4.1: meanDuration * (1 + sum(owned * multiplier)).
func (s ShopState) DurationMultiplier(catalog registry.Registries, skill registry.SkillID) float64 {
	total := 0.0
	for _, p := range catalog.AllPurchases() {
		if !p.AffectsSkill(skill) {
			continue
		}
		owned := s.counts[p.ID]
		if owned == 0 {
			continue
		}
		total += float64(owned) * p.DurationMultiplier
	}
	return total
}
