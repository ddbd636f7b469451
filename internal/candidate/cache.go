package candidate

import (
	"math/rand"

	lru "github.com/opencoff/golang-lru"

	"github.com/lox/betteridle/internal/capability"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// DefaultCacheSize bounds the enumerator's per-solve LRU (spec.md §9's
// "rate/candidate caches ... cleared per solve").
const DefaultCacheSize = 4096

// levelBits is wide enough for MaxLevel (99) plus headroom.
const levelBits = 7

// ownedBits bounds tracked purchase-owned-counts; buy limits in practice
// stay well under this.
const ownedBits = 6

// Enumerator wraps Enumerate with a capability-keyed cache and optional
// verification sampling to catch cache-key bugs (spec.md §4.5, §8).
type Enumerator struct {
	Catalog registry.Registries
	cache   *lru.Cache
	rng     *rand.Rand

	hits, misses int
}

// NewEnumerator builds an Enumerator over catalog with the given cache
// capacity. rng drives the 1% verification sample; pass a seeded *rand.Rand
// for deterministic tests.
func NewEnumerator(catalog registry.Registries, cacheSize int, rng *rand.Rand) *Enumerator {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	c, err := lru.New(cacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size, already guarded above
	}
	return &Enumerator{Catalog: catalog, cache: c, rng: rng}
}

// Enumerate returns the candidate set for s under g, via the cache. On a
// cache hit, the current active action is filtered out of the returned
// switch-candidates (the cached value is a superset computed without
// regard to which action happens to be active).
func (e *Enumerator) Enumerate(s state.GameState, g goal.Goal) Candidates {
	key := e.capabilityKey(s, g)

	if cached, ok := e.cache.Get(key); ok {
		e.hits++
		result := cached.(Candidates)
		if e.rng != nil && e.rng.Float64() < 0.01 {
			fresh := Enumerate(e.Catalog, s, g)
			if !sameCandidateSet(result, fresh) {
				// A mismatch means the capability key is missing a
				// dimension the enumerator's output actually depends on.
				// Self-heal by trusting the fresh computation and
				// re-caching it; callers relying on determinism should
				// treat repeated mismatches as a bug report.
				e.cache.Add(key, fresh)
				result = fresh
			}
		}
		return filterActive(result, s)
	}

	e.misses++
	computed := Enumerate(e.Catalog, s, g)
	e.cache.Add(key, computed)
	return filterActive(computed, s)
}

// Stats reports cumulative hit/miss counts for internal/profiling.
func (e *Enumerator) Stats() (hits, misses int) { return e.hits, e.misses }

func filterActive(c Candidates, s state.GameState) Candidates {
	if s.Active == nil {
		return c
	}
	out := c.clone()
	filtered := out.SwitchCandidates[:0]
	for _, id := range out.SwitchCandidates {
		if id != s.Active.ID {
			filtered = append(filtered, id)
		}
	}
	out.SwitchCandidates = filtered
	return out
}

func sameCandidateSet(a, b Candidates) bool {
	if len(a.SwitchCandidates) != len(b.SwitchCandidates) || len(a.BuyCandidates) != len(b.BuyCandidates) {
		return false
	}
	for i := range a.SwitchCandidates {
		if a.SwitchCandidates[i] != b.SwitchCandidates[i] {
			return false
		}
	}
	for i := range a.BuyCandidates {
		if a.BuyCandidates[i] != b.BuyCandidates[i] {
			return false
		}
	}
	return true
}

// capabilityKey packs every goal-relevant skill level, the owned counts of
// purchases affecting those skills, and the inventory-fullness bucket
// (spec.md §4.5's cache key definition).
func (e *Enumerator) capabilityKey(s state.GameState, g goal.Goal) capability.Key {
	b := capability.NewBuilder()
	for _, sk := range g.RelevantSkills() {
		b.Pack(skillLevel(s, sk), levelBits)
	}
	for _, p := range e.Catalog.AllPurchases() {
		if affectedRelevantSkill(p, g.RelevantSkills()) != registry.SkillUnknown {
			b.Pack(s.Shop.Owned(p.ID), ownedBits)
		}
	}
	b.Pack(capability.InventoryBucket(s.Inventory.Fraction()), 3)
	return b.Key()
}
