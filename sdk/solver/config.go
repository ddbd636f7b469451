// Package solver implements the A* planner (spec.md §4.9): priority-queue
// expansion over (state, ticksSoFar, interactionCount) nodes with an
// admissible capability-based heuristic, a bucketed Pareto frontier for
// dominance pruning, and a coarse visited-set key for de-duplication.
//
// This is the structural analog of the teacher's CFR trainer
// (sdk/solver/{trainer,traversal,regret,bucket,config,fastrng}.go),
// repurposed from regret-matching over an info-set tree to A* over a
// Pareto-pruned search tree: config.go plays config.go's role, capability.go
// plays bucket.go's role, frontier.go plays regret.go's role (both are "a
// small mutable per-key accumulator visited during tree expansion"),
// fastrng.go is reused near-verbatim, and search.go replaces traversal.go.
package solver

import (
	"errors"

	"github.com/lox/betteridle/internal/sellpolicy"
)

// DefaultMaxExpandedNodes bounds a solve when the caller does not set one.
const DefaultMaxExpandedNodes = 200_000

// DefaultMaxQueueSize bounds the priority queue's size.
const DefaultMaxQueueSize = 500_000

// DefaultCandidateCacheSize sizes the candidate enumerator's per-solve LRU.
const DefaultCandidateCacheSize = 4096

// SolverOptions configures one solve (spec.md §6's solve(initialState, goal,
// options)). Every count here is a pruning width, not a correctness
// requirement: larger values explore more of the tree at the cost of time.
type SolverOptions struct {
	// MaxExpandedNodes stops the search with a failure once this many nodes
	// have been popped off the frontier and expanded.
	MaxExpandedNodes int

	// MaxQueueSize stops the search with a failure once the priority queue
	// would grow past this size.
	MaxQueueSize int

	// Seed drives every source of randomness used during planning (the
	// candidate enumerator's cache-verification sampling): spec.md §5
	// requires planning be reproducible given a fixed seed.
	Seed int64

	// CandidateCacheSize sizes the enumerator's per-solve LRU. Zero uses
	// DefaultCandidateCacheSize.
	CandidateCacheSize int

	// InventoryThresholdFraction is the fullness fraction (0..1) at which
	// the candidate enumerator and watch set treat inventory as under
	// pressure. Zero uses candidate's own default.
	InventoryThresholdFraction float64

	// SellPolicyOverride, if non-nil, replaces the goal's own
	// SellPolicySpec for this solve (spec.md §6: "optional overridden sell
	// policy").
	SellPolicyOverride sellpolicy.Spec
}

// Validate ensures options are well-formed before a solve begins, grounded
// on sdk/solver/config.go's TrainingConfig.Validate.
func (o SolverOptions) Validate() error {
	if o.MaxExpandedNodes <= 0 {
		return errors.New("solver: max expanded nodes must be > 0")
	}
	if o.MaxQueueSize <= 0 {
		return errors.New("solver: max queue size must be > 0")
	}
	if o.InventoryThresholdFraction < 0 || o.InventoryThresholdFraction > 1 {
		return errors.New("solver: inventory threshold fraction must be in [0, 1]")
	}
	return nil
}

// DefaultOptions returns a conservative configuration suitable for a single
// interactive solve.
func DefaultOptions() SolverOptions {
	return SolverOptions{
		MaxExpandedNodes:   DefaultMaxExpandedNodes,
		MaxQueueSize:       DefaultMaxQueueSize,
		Seed:               1,
		CandidateCacheSize: DefaultCandidateCacheSize,
	}
}
