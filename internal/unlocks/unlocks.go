// Package unlocks precomputes, once per content pack, the distinct skill
// levels at which something new becomes available: an action unlocking or
// a shop purchase's skill requirement being met. spec.md §2 references such
// a table without detailing it; this is its home. Grounded on
// cmd/gen-preflop's shape: walk the full catalog once, bucket and sort,
// write a cached JSON table. The gen-unlocks subcommand builds and writes
// the table; no other package in this repository reads it.
package unlocks

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/lox/betteridle/registry"
)

// Table maps each skill to its sorted, deduplicated unlock levels.
type Table map[registry.SkillID][]int

// Compute walks catalog once and returns every skill's sorted unlock
// levels: an action's UnlockLevel, and any SkillRequirement named by a
// purchase's UnlockRequirements or PurchaseRequirements.
func Compute(catalog registry.Registries) Table {
	levels := map[registry.SkillID]map[int]struct{}{}
	add := func(skill registry.SkillID, level int) {
		if level <= 0 {
			return
		}
		if levels[skill] == nil {
			levels[skill] = map[int]struct{}{}
		}
		levels[skill][level] = struct{}{}
	}

	for _, act := range catalog.AllActions() {
		add(act.Skill, act.UnlockLevel)
	}
	for _, p := range catalog.AllPurchases() {
		for _, req := range p.UnlockRequirements {
			add(req.Skill, req.Level)
		}
		for _, req := range p.PurchaseRequirements {
			add(req.Skill, req.Level)
		}
	}

	out := make(Table, len(levels))
	for skill, set := range levels {
		sorted := make([]int, 0, len(set))
		for lvl := range set {
			sorted = append(sorted, lvl)
		}
		sort.Ints(sorted)
		out[skill] = sorted
	}
	return out
}

// NextBoundary returns the smallest unlock level for skill strictly above
// currentLevel, and whether one exists.
func (t Table) NextBoundary(skill registry.SkillID, currentLevel int) (int, bool) {
	for _, lvl := range t[skill] {
		if lvl > currentLevel {
			return lvl, true
		}
	}
	return 0, false
}

type jsonTable struct {
	Skill  string `json:"skill"`
	Levels []int  `json:"levels"`
}

// Save writes t as JSON to path, sorted by skill name for a stable diff.
func Save(t Table, path string) error {
	entries := make([]jsonTable, 0, len(t))
	for skill, levels := range t {
		entries = append(entries, jsonTable{Skill: skill.String(), Levels: levels})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Skill < entries[j].Skill })

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("unlocks: encode: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads back a table written by Save.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []jsonTable
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unlocks: decode: %w", err)
	}

	out := make(Table, len(entries))
	for _, e := range entries {
		skill, err := skillByName(e.Skill)
		if err != nil {
			return nil, err
		}
		out[skill] = e.Levels
	}
	return out, nil
}

func skillByName(name string) (registry.SkillID, error) {
	for _, sk := range registry.AllSkills() {
		if sk.String() == name {
			return sk, nil
		}
	}
	return registry.SkillUnknown, fmt.Errorf("unlocks: unknown skill %q", name)
}
