// Package profiling aggregates sdk/solver.Profile across a batch of solves
// into distributions a caller can report (cmd/benchmark's "nodes/sec, cache
// hit rate, frontier size distribution"). Grounded on
// internal/statistics/statistics.go's mean/variance/percentile helpers,
// repurposed here for node-count and tick-count samples instead of poker
// hand results.
package profiling

import (
	"math"
	"sort"
	"time"
)

// Sample is one solve's outcome, independent of whether it succeeded.
type Sample struct {
	ExpandedNodes        int
	EnqueuedNodes        int
	TotalTicks           float64
	WallTime             time.Duration
	CandidateCacheHits   int
	CandidateCacheMisses int
	VisitedSetRejections int
	DominanceEvictions   int
	Succeeded            bool
}

// Batch accumulates Samples from repeated solves (e.g. the same goal solved
// from many scripted starting states) and reports aggregate statistics.
type Batch struct {
	Solves    int
	Successes int

	expandedNodes []float64
	enqueuedNodes []float64
	totalTicks    []float64
	wallTimes     []float64

	candidateHits, candidateMisses int
	visitedRejections              int
	dominanceEvictions             int
}

// Add incorporates one sample into the batch.
func (b *Batch) Add(s Sample) {
	b.Solves++
	if s.Succeeded {
		b.Successes++
	}
	b.expandedNodes = append(b.expandedNodes, float64(s.ExpandedNodes))
	b.enqueuedNodes = append(b.enqueuedNodes, float64(s.EnqueuedNodes))
	b.totalTicks = append(b.totalTicks, s.TotalTicks)
	b.wallTimes = append(b.wallTimes, float64(s.WallTime))
	b.candidateHits += s.CandidateCacheHits
	b.candidateMisses += s.CandidateCacheMisses
	b.visitedRejections += s.VisitedSetRejections
	b.dominanceEvictions += s.DominanceEvictions
}

// SuccessRate is the fraction of solves that reached their goal.
func (b *Batch) SuccessRate() float64 {
	if b.Solves == 0 {
		return 0
	}
	return float64(b.Successes) / float64(b.Solves)
}

// CandidateCacheHitRate is the batch-wide candidate-enumeration cache hit
// fraction across every solve, not an average of per-solve rates, since
// solves with more expansions should weigh more heavily.
func (b *Batch) CandidateCacheHitRate() float64 {
	total := b.candidateHits + b.candidateMisses
	if total == 0 {
		return 0
	}
	return float64(b.candidateHits) / float64(total)
}

// VisitedSetRejections is the total count of successors discarded by the
// visited-set de-duplication check across the batch.
func (b *Batch) VisitedSetRejections() int { return b.visitedRejections }

// DominanceEvictions is the total count of frontier points displaced by a
// strictly better point across the batch.
func (b *Batch) DominanceEvictions() int { return b.dominanceEvictions }

// NodesPerSecond reports the throughput of expanded nodes across the whole
// batch's wall time, the headline figure cmd/benchmark prints.
func (b *Batch) NodesPerSecond() float64 {
	var totalNodes, totalSeconds float64
	for i := range b.expandedNodes {
		totalNodes += b.expandedNodes[i]
		totalSeconds += b.wallTimes[i] / float64(time.Second)
	}
	if totalSeconds == 0 {
		return 0
	}
	return totalNodes / totalSeconds
}

// ExpandedNodeStats summarizes the per-solve expanded-node-count
// distribution.
func (b *Batch) ExpandedNodeStats() Distribution { return newDistribution(b.expandedNodes) }

// EnqueuedNodeStats summarizes the per-solve enqueued-node-count
// distribution.
func (b *Batch) EnqueuedNodeStats() Distribution { return newDistribution(b.enqueuedNodes) }

// TotalTicksStats summarizes the per-solve plan-length (ticks) distribution,
// the "frontier size" proxy cmd/benchmark reports: wider spread here means
// goal difficulty varies a lot across the scripted batch.
func (b *Batch) TotalTicksStats() Distribution { return newDistribution(b.totalTicks) }

// WallTimeStats summarizes the per-solve wall-clock distribution.
func (b *Batch) WallTimeStats() Distribution { return newDistribution(b.wallTimes) }

// Distribution is a read-only view over a set of samples: mean, variance,
// standard deviation, median, and arbitrary percentiles.
type Distribution struct {
	values []float64 // sorted ascending
	sum    float64
	sum2   float64
}

func newDistribution(values []float64) Distribution {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum, sum2 float64
	for _, v := range sorted {
		sum += v
		sum2 += v * v
	}
	return Distribution{values: sorted, sum: sum, sum2: sum2}
}

// Count is the number of samples in the distribution.
func (d Distribution) Count() int { return len(d.values) }

// Mean is the arithmetic mean of the samples.
func (d Distribution) Mean() float64 {
	if len(d.values) == 0 {
		return 0
	}
	return d.sum / float64(len(d.values))
}

// Variance is the sample variance (Bessel-corrected).
func (d Distribution) Variance() float64 {
	n := len(d.values)
	if n < 2 {
		return 0
	}
	mean := d.Mean()
	return (d.sum2 - float64(n)*mean*mean) / float64(n-1)
}

// StdDev is the sample standard deviation.
func (d Distribution) StdDev() float64 {
	return math.Sqrt(d.Variance())
}

// Median is the middle value, averaging the two central values for an even
// count.
func (d Distribution) Median() float64 {
	n := len(d.values)
	if n == 0 {
		return 0
	}
	if n%2 == 0 {
		return (d.values[n/2-1] + d.values[n/2]) / 2
	}
	return d.values[n/2]
}

// Percentile returns the linearly interpolated value at p (0.0 to 1.0).
func (d Distribution) Percentile(p float64) float64 {
	n := len(d.values)
	if n == 0 {
		return 0
	}
	index := p * float64(n-1)
	lower := int(index)
	upper := lower + 1
	if upper >= n {
		return d.values[n-1]
	}
	weight := index - float64(lower)
	return d.values[lower]*(1-weight) + d.values[upper]*weight
}
