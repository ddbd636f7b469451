package macro

import (
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/registry"
)

// StopRule is a tagged union of macro stop conditions, each convertible to
// a waitfor.WaitFor (spec.md §3).
type StopRule interface {
	ToWaitFor() waitfor.WaitFor
	stopRule()
}

// StopAtNextBoundary stops at Skill's next unlock-level transition.
type StopAtNextBoundary struct {
	Skill       registry.SkillID
	UnlockLevel int
}

func (r StopAtNextBoundary) ToWaitFor() waitfor.WaitFor {
	return waitfor.SkillXP{Skill: r.Skill, Target: registry.StartXPForLevel(r.UnlockLevel)}
}
func (StopAtNextBoundary) stopRule() {}

// StopAtGoal stops once Goal is satisfied.
type StopAtGoal struct {
	Goal goal.Goal
}

func (r StopAtGoal) ToWaitFor() waitfor.WaitFor { return waitfor.GoalReached{Goal: r.Goal} }
func (StopAtGoal) stopRule()                    {}

// StopAtLevel stops once Skill's XP reaches Level's threshold.
type StopAtLevel struct {
	Skill registry.SkillID
	Level int
}

func (r StopAtLevel) ToWaitFor() waitfor.WaitFor {
	return waitfor.SkillXP{Skill: r.Skill, Target: registry.StartXPForLevel(r.Level)}
}
func (StopAtLevel) stopRule() {}

// StopWhenUpgradeAffordable stops once Purchase's cost is reachable under
// Policy's effective credits.
type StopWhenUpgradeAffordable struct {
	Purchase registry.PurchaseID
	Cost     int
	Policy   sellpolicy.Policy
}

func (r StopWhenUpgradeAffordable) ToWaitFor() waitfor.WaitFor {
	return waitfor.InventoryValue{Policy: r.Policy, Target: r.Cost}
}
func (StopWhenUpgradeAffordable) stopRule() {}

// StopWhenInputsDepleted stops once Action can no longer run.
type StopWhenInputsDepleted struct {
	Action registry.ActionID
}

func (r StopWhenInputsDepleted) ToWaitFor() waitfor.WaitFor {
	return waitfor.InputsDepleted{Action: r.Action}
}
func (StopWhenInputsDepleted) stopRule() {}

var (
	_ StopRule = StopAtNextBoundary{}
	_ StopRule = StopAtGoal{}
	_ StopRule = StopAtLevel{}
	_ StopRule = StopWhenUpgradeAffordable{}
	_ StopRule = StopWhenInputsDepleted{}
)
