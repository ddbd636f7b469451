package profiling_test

import (
	"testing"
	"time"

	"github.com/lox/betteridle/internal/profiling"
)

func TestBatchAggregatesSamples(t *testing.T) {
	var b profiling.Batch
	b.Add(profiling.Sample{ExpandedNodes: 10, EnqueuedNodes: 20, TotalTicks: 100, WallTime: time.Millisecond, CandidateCacheHits: 8, CandidateCacheMisses: 2, Succeeded: true})
	b.Add(profiling.Sample{ExpandedNodes: 30, EnqueuedNodes: 60, TotalTicks: 300, WallTime: 3 * time.Millisecond, CandidateCacheHits: 9, CandidateCacheMisses: 1, Succeeded: false})

	if b.Solves != 2 {
		t.Fatalf("expected 2 solves, got %d", b.Solves)
	}
	if b.Successes != 1 {
		t.Fatalf("expected 1 success, got %d", b.Successes)
	}
	if got := b.SuccessRate(); got != 0.5 {
		t.Fatalf("expected success rate 0.5, got %v", got)
	}

	wantHitRate := 17.0 / 20.0
	if got := b.CandidateCacheHitRate(); got != wantHitRate {
		t.Fatalf("expected cache hit rate %v, got %v", wantHitRate, got)
	}

	stats := b.ExpandedNodeStats()
	if stats.Count() != 2 {
		t.Fatalf("expected 2 samples, got %d", stats.Count())
	}
	if stats.Mean() != 20 {
		t.Fatalf("expected mean 20, got %v", stats.Mean())
	}
	if stats.Median() != 20 {
		t.Fatalf("expected median 20, got %v", stats.Median())
	}
}

func TestDistributionPercentileMatchesEndpoints(t *testing.T) {
	var b profiling.Batch
	for _, v := range []float64{10, 20, 30, 40, 50} {
		b.Add(profiling.Sample{TotalTicks: v, Succeeded: true})
	}
	stats := b.TotalTicksStats()
	if got := stats.Percentile(0); got != 10 {
		t.Fatalf("expected p0 = 10, got %v", got)
	}
	if got := stats.Percentile(1); got != 50 {
		t.Fatalf("expected p100 = 50, got %v", got)
	}
	if got := stats.Median(); got != 30 {
		t.Fatalf("expected median 30, got %v", got)
	}
}

func TestNodesPerSecondZeroWallTime(t *testing.T) {
	var b profiling.Batch
	b.Add(profiling.Sample{ExpandedNodes: 100, Succeeded: true})
	if got := b.NodesPerSecond(); got != 0 {
		t.Fatalf("expected 0 nodes/sec with zero wall time, got %v", got)
	}
}
