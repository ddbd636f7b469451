package registry

// Catalog is the process-wide, immutable read-only content pack built once
// at startup and shared by every solve run. It is never mutated after
// NewCatalog returns.
type Catalog struct {
	actions      map[ActionID]Action
	actionsBySkl map[SkillID][]Action
	items        map[ItemID]Item
	purchases    map[PurchaseID]ShopPurchase
	allActions   []Action
	allPurchases []ShopPurchase
}

// NewCatalog builds an immutable Catalog from loaded content. Actions are
// grouped into skill-indexed slices once, so ActionsForSkill is a single
// map lookup returning the stored slice.
func NewCatalog(actions []Action, items []Item, purchases []ShopPurchase) *Catalog {
	c := &Catalog{
		actions:      make(map[ActionID]Action, len(actions)),
		actionsBySkl: make(map[SkillID][]Action),
		items:        make(map[ItemID]Item, len(items)),
		purchases:    make(map[PurchaseID]ShopPurchase, len(purchases)),
		allActions:   append([]Action(nil), actions...),
		allPurchases: append([]ShopPurchase(nil), purchases...),
	}
	for _, a := range actions {
		c.actions[a.ID] = a
		c.actionsBySkl[a.Skill] = append(c.actionsBySkl[a.Skill], a)
	}
	for _, it := range items {
		c.items[it.ID] = it
	}
	for _, p := range purchases {
		c.purchases[p.ID] = p
	}
	return c
}

// ActionByID looks up a single action.
func (c *Catalog) ActionByID(id ActionID) (Action, bool) {
	a, ok := c.actions[id]
	return a, ok
}

// ActionsForSkill returns every action belonging to skill, unlock order not
// guaranteed.
func (c *Catalog) ActionsForSkill(skill SkillID) []Action {
	return c.actionsBySkl[skill]
}

// AllActions returns every action in the catalog.
func (c *Catalog) AllActions() []Action {
	return c.allActions
}

// ItemByID looks up a single item.
func (c *Catalog) ItemByID(id ItemID) (Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// PurchaseByID looks up a single shop purchase.
func (c *Catalog) PurchaseByID(id PurchaseID) (ShopPurchase, bool) {
	p, ok := c.purchases[id]
	return p, ok
}

// AllPurchases returns every shop purchase in the catalog.
func (c *Catalog) AllPurchases() []ShopPurchase {
	return c.allPurchases
}

var _ Registries = (*Catalog)(nil)
