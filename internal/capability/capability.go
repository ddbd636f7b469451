// Package capability packs the subset of state that affects which
// candidates are possible — skill levels, tool tiers, HP/mastery/inventory
// buckets — into a single deterministic key (spec.md §9's "capability
// key"). Both internal/candidate's cache and sdk/solver's dominance/
// visited-set bucket keys build on this packer, so the bit layout lives in
// its own package rather than inside either consumer; putting it in
// sdk/solver (as a first sketch suggested) would have made
// internal/candidate, which sdk/solver imports for enumeration, depend on
// its own importer.
package capability

// InventoryBucketCount is the number of coarse inventory-fullness buckets
// spec.md §4.5 calls for (0..4).
const InventoryBucketCount = 5

// maxBits is the packer's total capacity. A single uint64 isn't wide
// enough: goal.ReachCurrency's RelevantSkills() packs all nine skills at
// levelBits(7) = 63 bits before the inventory/HP buckets are even added,
// and sdk/solver's dominance key adds actionIndexBits(13) on top of that.
// Two words gives every existing caller and any catalog with a handful
// more shop purchases comfortable headroom.
const maxBits = 128

// Key is a packed capability key spanning up to maxBits bits. It is a
// plain comparable struct, usable as a map key or LRU cache key exactly
// like the uint64 it replaces.
type Key struct {
	Lo, Hi uint64
}

// Builder packs a sequence of bounded integer fields into a Key, clamping
// every field defensively to its declared width so a caller passing an
// out-of-range value (e.g. a level above MaxLevel) degrades to the nearest
// valid bucket instead of corrupting unrelated fields.
type Builder struct {
	lo, hi uint64
	offset uint
}

// NewBuilder returns an empty packer.
func NewBuilder() *Builder {
	return &Builder{}
}

// Pack appends value into the key using width bits, most-recently-packed
// field occupying the lowest unused bits. value is clamped to
// [0, 2^width-1]. Fields are packed low word first, spilling into the high
// word once the low word fills; a field may straddle the two words.
func (b *Builder) Pack(value int, width uint) *Builder {
	if width == 0 || width > 64 {
		panic("capability: invalid field width")
	}
	if b.offset+width > maxBits {
		panic("capability: packed fields exceed 128 bits")
	}

	max := int(uint64(1)<<width) - 1
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	v := uint64(value)

	switch {
	case b.offset >= 64:
		b.hi |= v << (b.offset - 64)
	case b.offset+width <= 64:
		b.lo |= v << b.offset
	default:
		// v straddles the two words: shifting left by offset naturally
		// keeps only v's low (64-offset) bits in lo (the rest fall off
		// the top of the word), and shifting right by that same amount
		// recovers exactly the remaining high bits for hi.
		loBits := 64 - b.offset
		b.lo |= v << b.offset
		b.hi |= v >> loBits
	}
	b.offset += width
	return b
}

// Key returns the packed value so far.
func (b *Builder) Key() Key {
	return Key{Lo: b.lo, Hi: b.hi}
}

// InventoryBucket maps a 0..1 fullness fraction to one of InventoryBucketCount
// coarse buckets, clamped at both ends.
func InventoryBucket(fraction float64) int {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	bucket := int(fraction * float64(InventoryBucketCount))
	if bucket >= InventoryBucketCount {
		bucket = InventoryBucketCount - 1
	}
	return bucket
}

// LinearBucket maps value into one of count buckets of the given width,
// starting at zero (e.g. currency bucket size 50, HP bucket size 10).
func LinearBucket(value, width, count int) int {
	if width <= 0 {
		width = 1
	}
	bucket := value / width
	if bucket < 0 {
		bucket = 0
	}
	if bucket >= count {
		bucket = count - 1
	}
	return bucket
}
