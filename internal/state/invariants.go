package state

import (
	"fmt"

	"github.com/lox/betteridle/registry"
)

// CheckInvariants validates every invariant spec.md §3 lists. It is a debug
// aid used by tests, never called on the hot path and never relied upon for
// correctness (spec.md §7): production code must not need it to behave
// correctly.
func CheckInvariants(s GameState, catalog registry.Registries) error {
	if s.Currency("gp") < 0 {
		return fmt.Errorf("state: currency went negative: %d", s.Currency("gp"))
	}
	if s.HP < 0 || s.HP > s.MaxHP {
		return fmt.Errorf("state: hp %d out of [0, %d]", s.HP, s.MaxHP)
	}
	for skill, sk := range s.Skills {
		if sk.XP < 0 {
			return fmt.Errorf("state: skill %s has negative xp", skill)
		}
	}
	for _, st := range s.Inventory.Stacks() {
		if st.Count < 1 {
			return fmt.Errorf("state: inventory stack %s has count %d", st.Item, st.Count)
		}
	}
	if s.Inventory.Capacity > 0 && s.Inventory.DistinctStacks() > s.Inventory.Capacity {
		return fmt.Errorf("state: inventory has %d distinct stacks over capacity %d", s.Inventory.DistinctStacks(), s.Inventory.Capacity)
	}
	for _, p := range catalog.AllPurchases() {
		if p.IsUnlimited {
			continue
		}
		if owned := s.Shop.Owned(p.ID); owned > p.BuyLimit {
			return fmt.Errorf("state: purchase %s owned %d exceeds buy limit %d", p.ID, owned, p.BuyLimit)
		}
	}
	if s.Active != nil && s.Active.RemainingTicks > s.Active.TotalTicks {
		return fmt.Errorf("state: active action remaining ticks %d exceeds total %d", s.Active.RemainingTicks, s.Active.TotalTicks)
	}
	return nil
}
