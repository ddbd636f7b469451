package state

import "github.com/lox/betteridle/registry"

// Interaction is a zero-tick-cost player decision: switch activity, buy an
// upgrade, or sell inventory. It is a closed tagged union; switch on Kind()
// or type-switch on the concrete type.
type Interaction interface {
	Kind() InteractionKind
	interaction()
}

// InteractionKind names the concrete Interaction variant, useful for
// logging and profiling without a type switch.
type InteractionKind uint8

const (
	InteractionSwitchActivity InteractionKind = iota
	InteractionBuyUpgrade
	InteractionSellItems
)

func (k InteractionKind) String() string {
	switch k {
	case InteractionSwitchActivity:
		return "switch_activity"
	case InteractionBuyUpgrade:
		return "buy_upgrade"
	case InteractionSellItems:
		return "sell_items"
	default:
		return "unknown"
	}
}

// SwitchActivity starts ActionID as the player's active action.
type SwitchActivity struct {
	ActionID registry.ActionID
}

func (SwitchActivity) Kind() InteractionKind { return InteractionSwitchActivity }
func (SwitchActivity) interaction()          {}

// BuyUpgrade purchases one unit of PurchaseID.
type BuyUpgrade struct {
	PurchaseID registry.PurchaseID
}

func (BuyUpgrade) Kind() InteractionKind { return InteractionBuyUpgrade }
func (BuyUpgrade) interaction()          {}

// SellItems sells inventory according to Keep: every stack not in Keep is
// liquidated for its sell price.
type SellItems struct {
	Keep map[registry.ItemID]bool
}

func (SellItems) Kind() InteractionKind { return InteractionSellItems }
func (SellItems) interaction()          {}
