// Package runtime loads a previously persisted plan summary for reporting,
// the way sdk/solver/runtime/policy.go loads a blueprint for live bot
// sampling. A solved Plan is only ever persisted as diagnostic JSON
// (internal/plan's Save/LoadSummary: see that package's doc comment for
// why), so this loader's surface is correspondingly smaller than the
// teacher's — it hands back a Summary for display, not something an
// executor can run.
package runtime

import "github.com/lox/betteridle/internal/plan"

// Report wraps a loaded plan summary. Unlike the teacher's Policy, it
// carries no sampling method: there is nothing to sample from a tick-count
// summary, only to display.
type Report struct {
	path    string
	summary plan.Summary
}

// Load reads the diagnostic plan JSON at path.
func Load(path string) (*Report, error) {
	summary, err := plan.LoadSummary(path)
	if err != nil {
		return nil, err
	}
	return &Report{path: path, summary: summary}, nil
}

// Summary returns the loaded plan's counters.
func (r *Report) Summary() plan.Summary {
	if r == nil {
		return plan.Summary{}
	}
	return r.summary
}

// Path returns the file this report was loaded from.
func (r *Report) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}
