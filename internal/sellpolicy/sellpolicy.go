// Package sellpolicy decides which inventory items to sell versus reserve
// as inputs for consuming skills (spec.md §4.4).
package sellpolicy

import (
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// Policy is a closed tagged union: SellAll or SellExcept.
type Policy interface {
	// KeepItems returns the set of item ids this policy reserves (never
	// sells) for the given state. SellAll always returns the empty set.
	KeepItems(s state.GameState) map[registry.ItemID]bool
	policy()
}

// SellAll liquidates every inventory stack.
type SellAll struct{}

func (SellAll) KeepItems(state.GameState) map[registry.ItemID]bool { return nil }
func (SellAll) policy()                                            {}

// SellExcept reserves a fixed set of item ids, selling everything else.
type SellExcept struct {
	Keep map[registry.ItemID]bool
}

func (p SellExcept) KeepItems(state.GameState) map[registry.ItemID]bool { return p.Keep }
func (SellExcept) policy()                                              {}

// SellPrice looks up a catalog-backed sell price function for a Policy's
// effective-credits computation.
func SellPrice(catalog registry.Registries) func(registry.ItemID) int {
	return func(id registry.ItemID) int {
		if it, ok := catalog.ItemByID(id); ok {
			return it.SellPrice
		}
		return 0
	}
}

// EffectiveCredits returns s's primary currency plus the sell value of every
// inventory stack the policy does not keep — spec.md §4.4's "effective
// credits".
func EffectiveCredits(s state.GameState, p Policy, priceOf func(registry.ItemID) int) int {
	keep := p.KeepItems(s)
	total := s.Currency("gp")
	for _, stack := range s.Inventory.Stacks() {
		if keep[stack.Item] {
			continue
		}
		total += stack.Count * priceOf(stack.Item)
	}
	return total
}

var (
	_ Policy = SellAll{}
	_ Policy = SellExcept{}
)
