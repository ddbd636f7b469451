package state

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/betteridle/registry"
)

// jsonGameState is the wire shape for a GameState snapshot, used by
// internal/protocol to carry a solve request's starting state.
// Maps keyed by registry ID types are flattened to slices of (namespace,
// name, value) records, mirroring internal/goal/json.go's tagged-struct
// approach to serializing identifiers that don't marshal as JSON object
// keys on their own.
type jsonGameState struct {
	Currencies        map[string]int      `json:"currencies"`
	Skills            []jsonSkillState    `json:"skills,omitempty"`
	Actions           []jsonActionState   `json:"actions,omitempty"`
	InventoryCapacity int                 `json:"inventory_capacity"`
	Inventory         []jsonItemStack     `json:"inventory,omitempty"`
	Shop              []jsonPurchaseCount `json:"shop,omitempty"`
	HP                int                 `json:"hp"`
	MaxHP             int                 `json:"max_hp"`
	Active            *jsonActiveAction   `json:"active,omitempty"`
	LastSeen          time.Time           `json:"last_seen"`
}

type jsonSkillState struct {
	Skill string  `json:"skill"`
	XP    float64 `json:"xp"`
}

type jsonActionState struct {
	Namespace       string  `json:"namespace"`
	Name            string  `json:"name"`
	MasteryXP       float64 `json:"mastery_xp"`
	RecipeNamespace string  `json:"recipe_namespace,omitempty"`
	RecipeName      string  `json:"recipe_name,omitempty"`
	ResourceCount   int     `json:"resource_count,omitempty"`
}

type jsonItemStack struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

type jsonPurchaseCount struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Owned     int    `json:"owned"`
}

type jsonActiveAction struct {
	Namespace      string `json:"namespace"`
	Name           string `json:"name"`
	RemainingTicks int    `json:"remaining_ticks"`
	TotalTicks     int    `json:"total_ticks"`
	Stunned        bool   `json:"stunned"`
}

// ToJSON marshals s into the wire shape internal/protocol carries.
func ToJSON(s GameState) ([]byte, error) {
	out := jsonGameState{
		Currencies:        s.Currencies,
		InventoryCapacity: s.Inventory.Capacity,
		HP:                s.HP,
		MaxHP:             s.MaxHP,
		LastSeen:          s.LastSeen,
	}
	for skill, st := range s.Skills {
		out.Skills = append(out.Skills, jsonSkillState{Skill: skill.String(), XP: st.XP})
	}
	for id, as := range s.Actions {
		jas := jsonActionState{
			Namespace:     id.Namespace,
			Name:          id.Name,
			MasteryXP:     as.MasteryXP,
			ResourceCount: as.ResourceCount,
		}
		if !as.RecipeSelection.IsZero() {
			jas.RecipeNamespace = as.RecipeSelection.Namespace
			jas.RecipeName = as.RecipeSelection.Name
		}
		out.Actions = append(out.Actions, jas)
	}
	for _, stack := range s.Inventory.Stacks() {
		out.Inventory = append(out.Inventory, jsonItemStack{
			Namespace: stack.Item.Namespace,
			Name:      stack.Item.Name,
			Count:     stack.Count,
		})
	}
	for _, p := range s.Shop.purchases() {
		out.Shop = append(out.Shop, jsonPurchaseCount{
			Namespace: p.id.Namespace,
			Name:      p.id.Name,
			Owned:     p.owned,
		})
	}
	if s.Active != nil {
		out.Active = &jsonActiveAction{
			Namespace:      s.Active.ID.Namespace,
			Name:           s.Active.ID.Name,
			RemainingTicks: s.Active.RemainingTicks,
			TotalTicks:     s.Active.TotalTicks,
			Stunned:        s.Active.Stunned,
		}
	}
	return json.Marshal(out)
}

// FromJSON reconstructs a GameState previously written by ToJSON, looking
// up skill names against registry.AllSkills. It does not validate item,
// action, or purchase ids against a catalog: that's the caller's job once
// the state is handed to a solve, which will simply never match those ids
// against any candidate if they're unknown.
func FromJSON(data []byte) (GameState, error) {
	var jg jsonGameState
	if err := json.Unmarshal(data, &jg); err != nil {
		return GameState{}, err
	}

	s := New(jg.InventoryCapacity, jg.MaxHP)
	s.HP = jg.HP
	s.LastSeen = jg.LastSeen
	for k, v := range jg.Currencies {
		s.Currencies[k] = v
	}

	for _, js := range jg.Skills {
		skill, err := skillByName(js.Skill)
		if err != nil {
			return GameState{}, err
		}
		s.Skills[skill] = SkillState{XP: js.XP}
	}

	for _, ja := range jg.Actions {
		id := registry.ActionID{Namespace: ja.Namespace, Name: ja.Name}
		as := ActionState{MasteryXP: ja.MasteryXP, ResourceCount: ja.ResourceCount}
		if ja.RecipeNamespace != "" || ja.RecipeName != "" {
			as.RecipeSelection = registry.ItemID{Namespace: ja.RecipeNamespace, Name: ja.RecipeName}
		}
		s.Actions[id] = as
	}

	for _, ji := range jg.Inventory {
		item := registry.ItemID{Namespace: ji.Namespace, Name: ji.Name}
		inv, ok := s.Inventory.Add(item, ji.Count)
		if !ok {
			return GameState{}, fmt.Errorf("state: inventory capacity exceeded reconstructing %s", item)
		}
		s.Inventory = inv
	}

	for _, jp := range jg.Shop {
		id := registry.PurchaseID{Namespace: jp.Namespace, Name: jp.Name}
		for i := 0; i < jp.Owned; i++ {
			s.Shop = s.Shop.WithPurchase(id)
		}
	}

	if jg.Active != nil {
		s.Active = &ActiveAction{
			ID:             registry.ActionID{Namespace: jg.Active.Namespace, Name: jg.Active.Name},
			RemainingTicks: jg.Active.RemainingTicks,
			TotalTicks:     jg.Active.TotalTicks,
			Stunned:        jg.Active.Stunned,
		}
	}

	return s, nil
}

func skillByName(name string) (registry.SkillID, error) {
	for _, sk := range registry.AllSkills() {
		if sk.String() == name {
			return sk, nil
		}
	}
	return registry.SkillUnknown, fmt.Errorf("state: unknown skill %q", name)
}
