package state

import "github.com/lox/betteridle/registry"

// Inventory is an ordered sequence of (item, count) stacks bounded by a
// declared capacity. Order matters only for display; the solver treats it
// as a multiset.
type Inventory struct {
	Capacity int
	stacks   []registry.ItemStack
	index    map[registry.ItemID]int // item -> position in stacks
}

func newInventory(capacity int) Inventory {
	return Inventory{Capacity: capacity, index: map[registry.ItemID]int{}}
}

func (inv Inventory) clone() Inventory {
	out := Inventory{
		Capacity: inv.Capacity,
		stacks:   append([]registry.ItemStack(nil), inv.stacks...),
		index:    make(map[registry.ItemID]int, len(inv.index)),
	}
	for k, v := range inv.index {
		out.index[k] = v
	}
	return out
}

// Count returns how many units of item are held (0 if none).
func (inv Inventory) Count(item registry.ItemID) int {
	if pos, ok := inv.index[item]; ok {
		return inv.stacks[pos].Count
	}
	return 0
}

// Stacks returns the ordered stack list. Callers must not mutate it.
func (inv Inventory) Stacks() []registry.ItemStack {
	return inv.stacks
}

// DistinctStacks returns how many distinct item types are held.
func (inv Inventory) DistinctStacks() int {
	return len(inv.stacks)
}

// IsFull reports whether distinct stacks have reached capacity.
func (inv Inventory) IsFull() bool {
	return inv.Capacity > 0 && len(inv.stacks) >= inv.Capacity
}

// Fraction returns distinct-stacks / capacity, in [0, 1]. Returns 0 if
// capacity is 0 (unbounded inventory).
func (inv Inventory) Fraction() float64 {
	if inv.Capacity <= 0 {
		return 0
	}
	return float64(len(inv.stacks)) / float64(inv.Capacity)
}

// Add increases item's count by delta (delta may be negative to remove).
// A stack whose count drops to or below zero is removed entirely, since
// every invariant-respecting stack count is >= 1. Adding a brand-new item
// when the inventory is already at capacity is a caller error reported via
// ok=false; the inventory is left unchanged.
func (inv Inventory) Add(item registry.ItemID, delta int) (Inventory, bool) {
	out := inv.clone()
	if pos, ok := out.index[item]; ok {
		newCount := out.stacks[pos].Count + delta
		if newCount <= 0 {
			out.removeAt(pos)
		} else {
			out.stacks[pos].Count = newCount
		}
		return out, true
	}
	if delta <= 0 {
		return inv, true // removing an item we don't have is a no-op
	}
	if out.IsFull() {
		return inv, false
	}
	out.index[item] = len(out.stacks)
	out.stacks = append(out.stacks, registry.ItemStack{Item: item, Count: delta})
	return out, true
}

func (inv *Inventory) removeAt(pos int) {
	removed := inv.stacks[pos].Item
	last := len(inv.stacks) - 1
	inv.stacks[pos] = inv.stacks[last]
	inv.stacks = inv.stacks[:last]
	delete(inv.index, removed)
	if pos != last {
		inv.index[inv.stacks[pos].Item] = pos
	}
}

// RemoveAll clears the stack for item entirely, returning how many units
// were removed (used by sell-all style policies).
func (inv Inventory) RemoveAll(item registry.ItemID) (Inventory, int) {
	out := inv.clone()
	pos, ok := out.index[item]
	if !ok {
		return inv, 0
	}
	n := out.stacks[pos].Count
	out.removeAt(pos)
	return out, n
}
