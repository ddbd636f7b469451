package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonPack mirrors the on-disk shape of a content pack. It is the reference
// loader's format; a real game client's own JSON game-data format is an
// external collaborator per spec.md §1 and may differ entirely as long as it
// is adapted into the same Action/Item/ShopPurchase values before NewCatalog
// is called.
type jsonPack struct {
	Actions   []jsonAction   `json:"actions"`
	Items     []Item         `json:"items"`
	Purchases []jsonPurchase `json:"purchases"`
}

type jsonAction struct {
	Action
	DurationMultiplierUnused struct{} `json:"-"`
}

type jsonPurchase struct {
	ShopPurchase
}

// LoadCatalog reads a JSON content pack from path and builds an immutable
// Catalog. Unknown fields in the file are ignored; items referenced by an
// action's Inputs/Outputs but absent from the Items list are kept as bare
// ids. The state advancer adds and removes such items in inventory like
// any other item; it does not filter out flows for items the registry
// doesn't recognise.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read catalog %q: %w", path, err)
	}

	var pack jsonPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("registry: decode catalog %q: %w", path, err)
	}

	actions := make([]Action, 0, len(pack.Actions))
	for _, a := range pack.Actions {
		actions = append(actions, a.Action)
	}
	purchases := make([]ShopPurchase, 0, len(pack.Purchases))
	for _, p := range pack.Purchases {
		purchases = append(purchases, p.ShopPurchase)
	}

	return NewCatalog(actions, pack.Items, purchases), nil
}

// SaveCatalog writes pack back to disk for tooling that generates or edits
// a content pack; no code in this repository calls it.
func SaveCatalog(path string, c *Catalog) error {
	pack := jsonPack{
		Items: make([]Item, 0, len(c.items)),
	}
	for _, a := range c.allActions {
		pack.Actions = append(pack.Actions, jsonAction{Action: a})
	}
	for _, it := range c.items {
		pack.Items = append(pack.Items, it)
	}
	for _, p := range c.allPurchases {
		pack.Purchases = append(pack.Purchases, jsonPurchase{ShopPurchase: p})
	}

	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return fmt.Errorf("registry: encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("registry: write catalog %q: %w", path, err)
	}
	return nil
}
