package solver

import "github.com/lox/betteridle/internal/capability"

// frontierPoint is one kept (ticks, progress) pair within a dominance
// bucket.
type frontierPoint struct {
	ticks    float64
	progress float64
}

// frontier holds the per-bucket Pareto frontier of undominated (ticks,
// progress) points (spec.md §4.9). Structurally it plays the role the
// teacher's regret.go plays for traversal.go: a small mutable per-key
// accumulator consulted and updated during every node expansion. Buckets
// stay narrow in practice (spec.md §9: "a few dozen points"), so a linear
// scan per bucket is the conformant choice; a kd-tree on (ticks, progress)
// would only pay for itself on far larger buckets than this planner sees.
type frontier struct {
	buckets   map[capability.Key][]frontierPoint
	evictions int
}

func newFrontier() *frontier {
	return &frontier{buckets: make(map[capability.Key][]frontierPoint)}
}

// Offer reports whether (ticks, progress) survives dominance pruning within
// bucket. A point is dominated iff some kept point (t', p') has t' <= ticks
// && p' >= progress. A surviving point is inserted and evicts every point
// it in turn dominates.
func (f *frontier) Offer(bucket capability.Key, ticks, progress float64) bool {
	points := f.buckets[bucket]
	for _, p := range points {
		if p.ticks <= ticks && p.progress >= progress {
			return false
		}
	}

	kept := points[:0]
	for _, p := range points {
		if !(ticks <= p.ticks && progress >= p.progress) {
			kept = append(kept, p)
		} else {
			f.evictions++
		}
	}
	f.buckets[bucket] = append(kept, frontierPoint{ticks: ticks, progress: progress})
	return true
}
