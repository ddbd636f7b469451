package goal

import (
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// ReachCurrency is satisfied once effective credits under sell-all reach
// Target. All skills are relevant since any skill can feed the sell-all
// total (spec.md §4.3).
type ReachCurrency struct {
	Currency string
	Target   int
}

func (g ReachCurrency) priceOf(catalog registry.Registries) func(registry.ItemID) int {
	return sellpolicy.SellPrice(catalog)
}

func (g ReachCurrency) Progress(s state.GameState, catalog registry.Registries) float64 {
	return float64(sellpolicy.EffectiveCredits(s, sellpolicy.SellAll{}, g.priceOf(catalog)))
}

func (g ReachCurrency) Remaining(s state.GameState, catalog registry.Registries) float64 {
	r := float64(g.Target) - g.Progress(s, catalog)
	if r < 0 {
		return 0
	}
	return r
}

func (g ReachCurrency) IsSatisfied(s state.GameState, catalog registry.Registries) bool {
	return g.Progress(s, catalog) >= float64(g.Target)
}

func (g ReachCurrency) RelevantSkills() []registry.SkillID { return registry.AllSkills() }

func (g ReachCurrency) ConsumingSkills() []registry.SkillID {
	return consumingSkillsOf(g.RelevantSkills())
}

func (g ReachCurrency) SellPolicySpec() sellpolicy.Spec { return sellpolicy.SellAllSpec{} }

func (g ReachCurrency) ActivityRate(skill registry.SkillID, goldRate, xpRate float64) float64 {
	return goldRate
}

func (g ReachCurrency) TracksHP() bool        { return tracksHP(g.RelevantSkills()) }
func (g ReachCurrency) TracksInventory() bool { return tracksInventory(g.RelevantSkills()) }

func (ReachCurrency) goal() {}

var _ Goal = ReachCurrency{}
