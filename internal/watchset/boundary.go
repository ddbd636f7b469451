package watchset

import (
	"fmt"

	"github.com/lox/betteridle/registry"
)

// ReplanBoundary is the tagged union of raw signals the executor can
// observe mid-execution (spec.md §4.12, §7's "execution boundaries").
// CannotAfford/ActionUnavailable/NoProgressPossible are a separate "bugs or
// invalid plans" category surfaced as typed errors from internal/state,
// not as a ReplanBoundary.
type ReplanBoundary interface {
	Kind() BoundaryKind
	String() string
	boundary()
}

type BoundaryKind int

const (
	BoundaryUnknown BoundaryKind = iota
	BoundaryGoalReached
	BoundaryInputsDepleted
	BoundaryInventoryFull
	BoundaryDeath
	BoundaryWaitConditionSatisfied
	BoundaryUpgradeAffordableEarly
	BoundaryUnexpectedUnlock
)

type GoalReached struct{}

func (GoalReached) Kind() BoundaryKind { return BoundaryGoalReached }
func (GoalReached) String() string     { return "goal reached" }
func (GoalReached) boundary()          {}

type InputsDepleted struct {
	Action      registry.ActionID
	MissingItem registry.ItemID
}

func (b InputsDepleted) Kind() BoundaryKind { return BoundaryInputsDepleted }
func (b InputsDepleted) String() string {
	return fmt.Sprintf("%s inputs depleted (missing %s)", b.Action, b.MissingItem)
}
func (InputsDepleted) boundary() {}

type InventoryFull struct{}

func (InventoryFull) Kind() BoundaryKind { return BoundaryInventoryFull }
func (InventoryFull) String() string     { return "inventory full" }
func (InventoryFull) boundary()          {}

// Death is never material (spec.md §4.8): deaths are handled by restart,
// never trigger a replan on their own.
type Death struct{}

func (Death) Kind() BoundaryKind { return BoundaryDeath }
func (Death) String() string     { return "death" }
func (Death) boundary()          {}

type WaitConditionSatisfied struct {
	Description string
}

func (b WaitConditionSatisfied) Kind() BoundaryKind { return BoundaryWaitConditionSatisfied }
func (b WaitConditionSatisfied) String() string     { return "wait satisfied: " + b.Description }
func (WaitConditionSatisfied) boundary()            {}

type UpgradeAffordableEarly struct {
	Purchase registry.PurchaseID
	Cost     int
}

func (b UpgradeAffordableEarly) Kind() BoundaryKind { return BoundaryUpgradeAffordableEarly }
func (b UpgradeAffordableEarly) String() string {
	return fmt.Sprintf("%s affordable early (cost %d)", b.Purchase, b.Cost)
}
func (UpgradeAffordableEarly) boundary() {}

type UnexpectedUnlock struct {
	Action registry.ActionID
}

func (b UnexpectedUnlock) Kind() BoundaryKind { return BoundaryUnexpectedUnlock }
func (b UnexpectedUnlock) String() string     { return b.Action.String() + " unlocked unexpectedly" }
func (UnexpectedUnlock) boundary()            {}

// IsMaterial filters a raw ReplanBoundary down to those the segment's
// Config allows to trigger a replan. Death is never material; goal and
// inventory-full boundaries are always material regardless of config.
func IsMaterial(b ReplanBoundary, cfg Config) bool {
	switch b.Kind() {
	case BoundaryDeath:
		return false
	case BoundaryGoalReached, BoundaryInventoryFull:
		return true
	case BoundaryUpgradeAffordableEarly:
		return cfg.StopAtUpgradeAffordable
	case BoundaryUnexpectedUnlock:
		return cfg.StopAtUnlockBoundary
	case BoundaryInputsDepleted:
		return cfg.StopAtInputsDepleted
	case BoundaryWaitConditionSatisfied:
		return true
	default:
		return false
	}
}

var (
	_ ReplanBoundary = GoalReached{}
	_ ReplanBoundary = InputsDepleted{}
	_ ReplanBoundary = InventoryFull{}
	_ ReplanBoundary = Death{}
	_ ReplanBoundary = WaitConditionSatisfied{}
	_ ReplanBoundary = UpgradeAffordableEarly{}
	_ ReplanBoundary = UnexpectedUnlock{}
)
