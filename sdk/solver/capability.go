package solver

import (
	"sort"

	"github.com/lox/betteridle/internal/capability"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// Bit widths for the packed bucket/visited keys. Grounded on
// sdk/solver/bucket.go's BucketMapper: fold several bounded integer
// dimensions into one deterministic key, clamping defensively at each step
// (internal/capability.Builder already does the clamping).
const (
	actionIndexBits = 13 // up to 8191 distinct actions
	skillLevelBits  = 7  // MaxLevel is 99
	ownedCountBits  = 6
	hpBucketWidth   = 10
	hpBucketCount   = 11
	masteryBucketWidth = 10
	masteryBucketCount = 10
)

// actionIndex assigns a stable, deterministic integer to every catalog
// action (sorted by id) so "active action" can be packed into a bounded
// bit-field instead of carried as a string. Built once per solve.
type actionIndex struct {
	byID map[registry.ActionID]int
}

func newActionIndex(catalog registry.Registries) *actionIndex {
	actions := append([]registry.Action(nil), catalog.AllActions()...)
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].ID.Namespace != actions[j].ID.Namespace {
			return actions[i].ID.Namespace < actions[j].ID.Namespace
		}
		return actions[i].ID.Name < actions[j].ID.Name
	})
	idx := &actionIndex{byID: make(map[registry.ActionID]int, len(actions))}
	for i, act := range actions {
		idx.byID[act.ID] = i + 1 // 0 means "no active action"
	}
	return idx
}

func (idx *actionIndex) of(id registry.ActionID) int {
	if id.IsZero() {
		return 0
	}
	return idx.byID[id]
}

// bucketKeyer builds the two packed keys search.go needs per node: the
// dominance-frontier bucket key (spec.md §4.9's bucket key) and the
// visited-set key. Both share most of their packed fields, so one type
// builds both rather than duplicating the field list.
type bucketKeyer struct {
	catalog   registry.Registries
	actions   *actionIndex
	relevant  []registry.SkillID
	ownedOver []registry.ShopPurchase // purchases affecting a relevant skill, stable order
	trackHP   bool
	trackInv  bool
}

func newBucketKeyer(catalog registry.Registries, g goal.Goal) *bucketKeyer {
	relevant := append([]registry.SkillID(nil), g.RelevantSkills()...)
	sort.Slice(relevant, func(i, j int) bool { return relevant[i] < relevant[j] })

	var owned []registry.ShopPurchase
	for _, p := range catalog.AllPurchases() {
		for _, sk := range relevant {
			if p.AffectsSkill(sk) {
				owned = append(owned, p)
				break
			}
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].ID.Namespace != owned[j].ID.Namespace {
			return owned[i].ID.Namespace < owned[j].ID.Namespace
		}
		return owned[i].ID.Name < owned[j].ID.Name
	})

	return &bucketKeyer{
		catalog:   catalog,
		actions:   newActionIndex(catalog),
		relevant:  relevant,
		ownedOver: owned,
		trackHP:   g.TracksHP(),
		trackInv:  g.TracksInventory(),
	}
}

// domBucket packs the dominance-frontier bucket key: active action id,
// relevant skill levels, tool tiers (owned counts of relevant purchases),
// HP bucket if tracking HP, mastery bucket if tracking inventory (mastery
// mainly drives consuming-skill throughput, so it's coupled to the same
// "tracking" condition as the input-mix bits below), inventory bucket if
// tracking inventory.
func (k *bucketKeyer) domBucket(s state.GameState) capability.Key {
	b := capability.NewBuilder()
	b.Pack(k.actions.of(activeActionID(s)), actionIndexBits)
	for _, sk := range k.relevant {
		b.Pack(registry.LevelForXP(s.XPForSkill(sk)), skillLevelBits)
	}
	for _, p := range k.ownedOver {
		b.Pack(s.Shop.Owned(p.ID), ownedCountBits)
	}
	if k.trackHP {
		b.Pack(capability.LinearBucket(s.HP, hpBucketWidth, hpBucketCount), 4)
	}
	if k.trackInv {
		mastery := 0
		if act := activeActionID(s); !act.IsZero() {
			mastery = registry.LevelForXP(s.MasteryXPForAction(act))
		}
		b.Pack(capability.LinearBucket(mastery, masteryBucketWidth, masteryBucketCount), 4)
		b.Pack(capability.InventoryBucket(s.Inventory.Fraction()), 3)
	}
	return b.Key()
}

// visitedKey packs a coarser key used only for visited-set de-duplication
// (spec.md §4.9): currency bucketed at size 50, active action, HP bucket if
// tracking, mastery bucket if relevant, all tool levels, relevant skill
// levels, and an inventory bucket if tracking. A plain uint64 (not a
// string, per spec.md §9's "either is conformant") since the same packer
// already produces one.
func (k *bucketKeyer) visitedKey(s state.GameState) capability.Key {
	b := capability.NewBuilder()
	b.Pack(capability.LinearBucket(s.Currency("gp"), 50, 1<<14), 14)
	b.Pack(k.actions.of(activeActionID(s)), actionIndexBits)
	if k.trackHP {
		b.Pack(capability.LinearBucket(s.HP, hpBucketWidth, hpBucketCount), 4)
	}
	for _, sk := range k.relevant {
		b.Pack(registry.LevelForXP(s.XPForSkill(sk)), skillLevelBits)
	}
	for _, p := range k.ownedOver {
		b.Pack(s.Shop.Owned(p.ID), ownedCountBits)
	}
	if k.trackInv {
		mastery := 0
		if act := activeActionID(s); !act.IsZero() {
			mastery = registry.LevelForXP(s.MasteryXPForAction(act))
		}
		b.Pack(capability.LinearBucket(mastery, masteryBucketWidth, masteryBucketCount), 4)
		b.Pack(capability.InventoryBucket(s.Inventory.Fraction()), 3)
	}
	return b.Key()
}

func activeActionID(s state.GameState) registry.ActionID {
	if s.Active == nil {
		return registry.ActionID{}
	}
	return s.Active.ID
}
