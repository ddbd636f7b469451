package state

import "github.com/lox/betteridle/registry"

// builder is the default StateBuilder: it narrates tick-by-tick mutation
// over a plain GameState value, which is cheap enough given Go's map
// semantics (spec.md §9 explicitly allows "copying full maps per advance").
type builder struct {
	s GameState
}

func newBuilder(s GameState) *builder {
	return &builder{s: s.Clone()}
}

func (b *builder) SetActive(id registry.ActionID, totalTicks int) {
	b.s.Active = &ActiveAction{ID: id, RemainingTicks: totalTicks, TotalTicks: totalTicks}
}

func (b *builder) ClearActive() {
	b.s.Active = nil
}

func (b *builder) AddItem(item registry.ItemID, delta int) bool {
	inv, ok := b.s.Inventory.Add(item, delta)
	if !ok {
		return false
	}
	b.s.Inventory = inv
	return true
}

func (b *builder) AddCurrency(currency string, delta int) {
	b.s.Currencies[currency] += delta
	if b.s.Currencies[currency] < 0 {
		b.s.Currencies[currency] = 0
	}
}

func (b *builder) AddXP(skill registry.SkillID, delta float64) {
	if delta < 0 {
		return // XP is monotone non-decreasing (spec.md §3 invariant)
	}
	sk := b.s.Skills[skill]
	sk.XP += delta
	b.s.Skills[skill] = sk
}

func (b *builder) AddMasteryXP(action registry.ActionID, delta float64) {
	if delta < 0 {
		return
	}
	as := b.s.Actions[action]
	as.MasteryXP += delta
	b.s.Actions[action] = as
}

func (b *builder) AddHP(delta int) {
	b.s.HP += delta
	if b.s.HP < 0 {
		b.s.HP = 0
	}
	if b.s.MaxHP > 0 && b.s.HP > b.s.MaxHP {
		b.s.HP = b.s.MaxHP
	}
}

func (b *builder) Finalize() GameState {
	return b.s
}

func (b *builder) ActiveID() (registry.ActionID, bool) {
	if b.s.Active == nil {
		return registry.ActionID{}, false
	}
	return b.s.Active.ID, true
}

func (b *builder) ItemCount(item registry.ItemID) int {
	return b.s.Inventory.Count(item)
}

func (b *builder) MasteryXP(action registry.ActionID) float64 {
	return b.s.MasteryXPForAction(action)
}

func (b *builder) HP() int {
	return b.s.HP
}

func (b *builder) MaxHP() int {
	return b.s.MaxHP
}

var _ StateBuilder = (*builder)(nil)
