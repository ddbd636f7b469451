package goal

import (
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// BoundaryDetector is satisfied by internal/watchset.WatchSet. Declared here
// rather than imported directly so goal need not depend on watchset, which
// in turn is built from a Goal (spec.md §4.8) — importing it here would
// create a cycle.
type BoundaryDetector interface {
	DetectBoundary(s state.GameState) bool
}

// SegmentWrapper is an execution-time construct around an inner goal and a
// WatchSet: it is intentionally non-serializable (spec.md §9), reconstructed
// at execution time from the plain inner goal plus a freshly built watch
// set. Every method except IsSatisfied delegates to Inner; IsSatisfied asks
// Watch for any material boundary instead of re-checking Inner directly,
// since a segment can end on an unlock transition or upgrade affordability
// that has nothing to do with Inner's own target.
type SegmentWrapper struct {
	Inner Goal
	Watch BoundaryDetector
}

func (g SegmentWrapper) IsSatisfied(s state.GameState, catalog registry.Registries) bool {
	return g.Watch.DetectBoundary(s)
}

func (g SegmentWrapper) Progress(s state.GameState, catalog registry.Registries) float64 {
	return g.Inner.Progress(s, catalog)
}

func (g SegmentWrapper) Remaining(s state.GameState, catalog registry.Registries) float64 {
	return g.Inner.Remaining(s, catalog)
}

func (g SegmentWrapper) RelevantSkills() []registry.SkillID { return g.Inner.RelevantSkills() }
func (g SegmentWrapper) ConsumingSkills() []registry.SkillID { return g.Inner.ConsumingSkills() }
func (g SegmentWrapper) SellPolicySpec() sellpolicy.Spec     { return g.Inner.SellPolicySpec() }

func (g SegmentWrapper) ActivityRate(skill registry.SkillID, goldRate, xpRate float64) float64 {
	return g.Inner.ActivityRate(skill, goldRate, xpRate)
}

func (g SegmentWrapper) TracksHP() bool        { return g.Inner.TracksHP() }
func (g SegmentWrapper) TracksInventory() bool { return g.Inner.TracksInventory() }

func (SegmentWrapper) goal() {}

var _ Goal = SegmentWrapper{}
