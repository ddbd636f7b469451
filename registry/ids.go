// Package registry holds the read-only catalogs of skills, actions, items,
// and shop purchases that the solver plans against. Values here are pure
// data: no solver logic lives in this package, and nothing in it is ever
// mutated after a Catalog is built.
package registry

import "fmt"

// SkillID is a closed enumeration of progression skills.
type SkillID uint8

const (
	SkillUnknown SkillID = iota
	Woodcutting
	Fishing
	Mining
	Thieving
	Firemaking
	Cooking
	Smithing
	Farming
	Fletching
	skillCount
)

var skillNames = [skillCount]string{
	SkillUnknown: "unknown",
	Woodcutting:  "woodcutting",
	Fishing:      "fishing",
	Mining:       "mining",
	Thieving:     "thieving",
	Firemaking:   "firemaking",
	Cooking:      "cooking",
	Smithing:     "smithing",
	Farming:      "farming",
	Fletching:    "fletching",
}

func (s SkillID) String() string {
	if s < skillCount {
		return skillNames[s]
	}
	return fmt.Sprintf("skill(%d)", uint8(s))
}

// IsConsuming reports whether actions of this skill typically require item
// inputs. This is a static property of the skill used for defaults; an
// individual Action's own Inputs map is authoritative.
func (s SkillID) IsConsuming() bool {
	switch s {
	case Firemaking, Cooking, Smithing, Fletching:
		return true
	default:
		return false
	}
}

// AllSkills returns every concrete skill (excluding SkillUnknown).
func AllSkills() []SkillID {
	out := make([]SkillID, 0, skillCount-1)
	for s := Woodcutting; s < skillCount; s++ {
		out = append(out, s)
	}
	return out
}

// ID is a two-part, globally unique identifier: a namespace (the content
// pack that defines it) plus a local name. Action, Item, and Purchase ids
// all share this shape.
type ID struct {
	Namespace string
	Name      string
}

func (id ID) String() string {
	return id.Namespace + ":" + id.Name
}

// IsZero reports whether id is the empty identifier.
func (id ID) IsZero() bool {
	return id.Namespace == "" && id.Name == ""
}

// ActionID identifies a player activity.
type ActionID ID

func (id ActionID) String() string { return ID(id).String() }
func (id ActionID) IsZero() bool   { return ID(id).IsZero() }

// ItemID identifies an inventory item.
type ItemID ID

func (id ItemID) String() string { return ID(id).String() }
func (id ItemID) IsZero() bool   { return ID(id).IsZero() }

// PurchaseID identifies a shop purchase.
type PurchaseID ID

func (id PurchaseID) String() string { return ID(id).String() }
func (id PurchaseID) IsZero() bool   { return ID(id).IsZero() }
