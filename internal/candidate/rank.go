package candidate

import (
	"sort"

	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

type ranked struct {
	id   registry.ActionID
	rank float64
}

// rankNonConsuming ranks every unlocked action across relevant skills by
// goal.ActivityRate, keeping the top-K positive entries (spec.md §4.5).
func rankNonConsuming(catalog registry.Registries, s state.GameState, g goal.Goal, relevant []registry.SkillID) (switches []registry.ActionID, watchLocked []registry.ActionID) {
	var scored []ranked
	for _, skill := range relevant {
		level := skillLevel(s, skill)
		for _, act := range catalog.ActionsForSkill(skill) {
			if !act.IsSkillAction {
				continue
			}
			if act.UnlockLevel > level {
				watchLocked = append(watchLocked, act.ID)
				continue
			}
			r := estimate(catalog, s, act)
			rank := g.ActivityRate(skill, r.CurrencyPerTick, r.XPPerTick)
			if rank > 0 {
				scored = append(scored, ranked{id: act.ID, rank: rank})
			}
		}
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].rank > scored[j].rank })
	if len(scored) > topKActivities {
		scored = scored[:topKActivities]
	}
	for _, sc := range scored {
		switches = append(switches, sc.id)
	}
	return switches, watchLocked
}

// rankConsuming ranks consumer actions for each consuming skill by
// sustainable XP per tick (accounting for the time spent producing their
// inputs) and unconditionally includes the skill's best producer actions
// so the planner is never stuck without an escape action (spec.md §4.5).
func rankConsuming(catalog registry.Registries, s state.GameState, g goal.Goal, relevant, consuming []registry.SkillID) (switches []registry.ActionID, watchLocked []registry.ActionID) {
	consumingSet := map[registry.SkillID]bool{}
	for _, sk := range consuming {
		consumingSet[sk] = true
	}

	for _, skill := range relevant {
		if consumingSet[skill] {
			cswitches, clocked := rankConsumingSkill(catalog, s, skill)
			switches = append(switches, cswitches...)
			watchLocked = append(watchLocked, clocked...)
			continue
		}
		// Non-consuming relevant skill in a mixed goal: fall back to
		// straightforward rate ranking.
		nswitches, nlocked := rankNonConsuming(catalog, s, g, []registry.SkillID{skill})
		switches = append(switches, nswitches...)
		watchLocked = append(watchLocked, nlocked...)
	}
	return switches, watchLocked
}

func rankConsumingSkill(catalog registry.Registries, s state.GameState, skill registry.SkillID) (switches []registry.ActionID, watchLocked []registry.ActionID) {
	level := skillLevel(s, skill)

	var consumers []ranked
	producerScore := map[registry.ActionID]float64{}

	for _, act := range catalog.ActionsForSkill(skill) {
		if !act.IsSkillAction {
			continue
		}
		if act.UnlockLevel > level {
			watchLocked = append(watchLocked, act.ID)
			continue
		}
		if !act.HasInputs() {
			continue
		}
		consumerRates := estimate(catalog, s, act)
		consumerTicks := consumerRates.ExpectedTicksPerCompletion
		if consumerTicks <= 0 {
			continue
		}

		var producerTicks float64
		for _, in := range act.Inputs {
			producer, producerRate := bestProducer(catalog, s, in.Item)
			if producer.IsZero() {
				// No unlocked producer for this input: the action cannot
				// sustain production, so it is skipped as a consumer
				// candidate. The prerequisite resolver (internal/prereq)
				// is responsible for training the missing producer.
				producerTicks = -1
				break
			}
			producerScore[producer] = producerRate
			if producerRate <= 0 {
				producerTicks = -1
				break
			}
			producerTicks += float64(in.Count) / producerRate
		}
		if producerTicks < 0 {
			continue
		}

		sustainableXpPerTick := act.XP / (producerTicks + consumerTicks)
		if sustainableXpPerTick > 0 {
			consumers = append(consumers, ranked{id: act.ID, rank: sustainableXpPerTick})
		}
	}

	sort.Slice(consumers, func(i, j int) bool {
		if consumers[i].rank != consumers[j].rank {
			return consumers[i].rank > consumers[j].rank
		}
		return tieBreakPreferStocked(s, consumers[i].id, consumers[j].id, catalog)
	})
	if len(consumers) > topNConsumers {
		consumers = consumers[:topNConsumers]
	}
	for _, c := range consumers {
		switches = append(switches, c.id)
	}

	switches = append(switches, topProducers(producerScore)...)
	return switches, watchLocked
}

// bestProducer finds the unlocked action producing the most of item per
// tick, across every skill (a producer for a consuming skill's input is
// frequently a different skill entirely, e.g. woodcutting feeding
// firemaking).
func bestProducer(catalog registry.Registries, s state.GameState, item registry.ItemID) (registry.ActionID, float64) {
	var best registry.ActionID
	var bestRate float64
	for _, act := range catalog.AllActions() {
		if !act.IsSkillAction {
			continue
		}
		if act.UnlockLevel > skillLevel(s, act.Skill) {
			continue
		}
		for _, out := range act.Outputs {
			if out.Item != item {
				continue
			}
			r := estimate(catalog, s, act)
			if r.ExpectedTicksPerCompletion <= 0 {
				continue
			}
			rate := float64(out.Count) / r.ExpectedTicksPerCompletion
			if rate > bestRate {
				bestRate = rate
				best = act.ID
			}
		}
	}
	return best, bestRate
}

func topProducers(scores map[registry.ActionID]float64) []registry.ActionID {
	var scored []ranked
	for id, rate := range scores {
		scored = append(scored, ranked{id: id, rank: rate})
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].rank > scored[j].rank })
	if len(scored) > topNProducers {
		scored = scored[:topNProducers]
	}
	out := make([]registry.ActionID, len(scored))
	for i, sc := range scored {
		out[i] = sc.id
	}
	return out
}

// tieBreakPreferStocked implements spec.md §4.5's tie-break order: prefer
// already having inputs in inventory, then longer duration (fewer
// switches).
func tieBreakPreferStocked(s state.GameState, a, b registry.ActionID, catalog registry.Registries) bool {
	actA, okA := catalog.ActionByID(a)
	actB, okB := catalog.ActionByID(b)
	if !okA || !okB {
		return false
	}
	stockedA := hasAllInputs(s, actA)
	stockedB := hasAllInputs(s, actB)
	if stockedA != stockedB {
		return stockedA
	}
	return actA.MeanDuration > actB.MeanDuration
}

func hasAllInputs(s state.GameState, act registry.Action) bool {
	for _, in := range act.Inputs {
		if s.Inventory.Count(in.Item) < in.Count {
			return false
		}
	}
	return true
}
