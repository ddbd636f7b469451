package state

import (
	"errors"
	"fmt"

	"github.com/lox/betteridle/registry"
)

var errUnknownInteraction = errors.New("state: unknown interaction variant")

// CannotAffordError is the "bugs or invalid plans" condition from spec.md
// §7: a BuyUpgrade interaction was applied without enough currency.
type CannotAffordError struct {
	Purchase  registry.PurchaseID
	Cost      int
	Available int
}

func (e *CannotAffordError) Error() string {
	return fmt.Sprintf("state: cannot afford %s: need %d, have %d", e.Purchase, e.Cost, e.Available)
}

func newCannotAfford(p registry.PurchaseID, cost, available int) error {
	return &CannotAffordError{Purchase: p, Cost: cost, Available: available}
}

// ActionUnavailableError is raised when an interaction references an
// unknown action/purchase or one that cannot currently be applied (e.g. a
// buy-limit already reached).
type ActionUnavailableError struct {
	Action registry.ActionID
	Reason string
}

func (e *ActionUnavailableError) Error() string {
	return fmt.Sprintf("state: action %s unavailable: %s", e.Action, e.Reason)
}

func newActionUnavailable(id registry.ActionID, reason string) error {
	return &ActionUnavailableError{Action: id, Reason: reason}
}
