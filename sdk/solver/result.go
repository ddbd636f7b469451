package solver

import "github.com/lox/betteridle/internal/plan"

// FailureReason tags why a solve did not produce a plan (spec.md §7's
// "domain failures"): expected, non-bug conditions.
type FailureReason int

const (
	FailureUnknown FailureReason = iota
	FailureNoPathToGoal
	FailureExceededBudget
	FailurePrerequisiteUnresolvable
)

func (r FailureReason) String() string {
	switch r {
	case FailureNoPathToGoal:
		return "no path to goal"
	case FailureExceededBudget:
		return "exceeded max expanded / queue size"
	case FailurePrerequisiteUnresolvable:
		return "prerequisite unresolvable"
	default:
		return "unknown failure"
	}
}

// SolverFailure is returned when a solve exhausts its search space or
// budget without reaching the goal. BestProgress and the node counts let a
// caller present "reached X% of goal in N nodes" or retry with a larger
// budget (spec.md §7).
type SolverFailure struct {
	Reason            FailureReason
	ExpandedNodes     int
	EnqueuedNodes     int
	BestProgress      float64
	Detail            string
}

func (f *SolverFailure) Error() string {
	if f.Detail == "" {
		return "solver: " + f.Reason.String()
	}
	return "solver: " + f.Reason.String() + ": " + f.Detail
}

// SolverResult is solve's return value: exactly one of Plan or Failure is
// set (spec.md §6: SolverResult = success(plan, profile) | failure(reason,
// diagnostics, profile)).
type SolverResult struct {
	Plan    *plan.Plan
	Failure *SolverFailure
	Profile Profile
}

// Succeeded reports whether the solve produced a plan.
func (r SolverResult) Succeeded() bool { return r.Failure == nil }
