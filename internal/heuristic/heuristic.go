// Package heuristic computes the A* search's admissible lower bound on
// remaining ticks: goal.remaining divided by the best per-tick progress
// rate achievable from unlocked actions at the current state (spec.md
// §4.9). Per-skill rates are sampled in parallel the way
// internal/evaluator's Monte Carlo equity estimator parallelizes over
// independent workers, generalized from random sampling to one goroutine
// per goal-relevant skill.
package heuristic

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/rate"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

// Estimate returns an admissible lower bound on the ticks remaining to
// satisfy g from s: ceil(g.Remaining / bestUnlockedProgressPerTick).
// It returns 0 if remaining progress is already zero, and +Inf if no
// unlocked action can make any.
func Estimate(catalog registry.Registries, s state.GameState, g goal.Goal) float64 {
	remaining := g.Remaining(s, catalog)
	if remaining <= 0 {
		return 0
	}
	best := bestUnlockedProgressPerTick(catalog, s, g)
	if best <= 0 {
		return math.Inf(1)
	}
	return math.Ceil(remaining / best)
}

// bestUnlockedProgressPerTick computes, per goal-relevant skill in
// parallel, the best rate any currently unlocked action of that skill
// could contribute toward g, then sums across skills (a MultiSkill goal's
// remaining work can be chipped away at concurrently on separate skills).
func bestUnlockedProgressPerTick(catalog registry.Registries, s state.GameState, g goal.Goal) float64 {
	skills := g.RelevantSkills()
	rates := make([]float64, len(skills))

	grp, _ := errgroup.WithContext(context.Background())
	for i, skill := range skills {
		i, skill := i, skill
		grp.Go(func() error {
			rates[i] = bestSkillRate(catalog, s, g, skill)
			return nil
		})
	}
	_ = grp.Wait() // workers never return an error

	total := 0.0
	for _, r := range rates {
		total += r
	}
	return total
}

// bestSkillRate is the best per-tick rate skill can contribute to g from
// any currently unlocked action, capped by producer throughput for
// consuming skills so the estimate never assumes inputs appear for free.
func bestSkillRate(catalog registry.Registries, s state.GameState, g goal.Goal, skill registry.SkillID) float64 {
	level := registry.LevelForXP(s.XPForSkill(skill))

	best := 0.0
	for _, act := range catalog.ActionsForSkill(skill) {
		if !act.IsSkillAction || act.UnlockLevel > level {
			continue
		}
		r := rate.Estimate(rate.Inputs{
			Action:             act,
			ThievingLevel:      registry.LevelForXP(s.XPForSkill(registry.Thieving)),
			MasteryLevel:       registry.LevelForXP(s.MasteryXPForAction(act.ID)),
			DurationMultiplier: s.Shop.DurationMultiplier(catalog, skill),
			HP:                 s.HP,
			MaxHP:              s.MaxHP,
		})
		rr := g.ActivityRate(skill, r.CurrencyPerTick, r.XPPerTick)
		if len(act.Inputs) > 0 {
			rr = math.Min(rr, producerCap(catalog, s, act, r))
		}
		if rr > best {
			best = rr
		}
	}
	return best
}

// producerCap bounds a consuming action's XP-per-tick rate by how fast its
// scarcest input can be produced by the best unlocked producer of that
// item, so the heuristic never assumes an unowned stockpile.
func producerCap(catalog registry.Registries, s state.GameState, act registry.Action, r rate.Rates) float64 {
	limit := math.Inf(1)
	for _, in := range act.Inputs {
		producerRate := bestProducerRate(catalog, s, in.Item)
		if producerRate <= 0 {
			return 0
		}
		completionsPerTick := producerRate / float64(in.Count)
		supported := completionsPerTick * act.XP
		limit = math.Min(limit, supported)
	}
	if math.IsInf(limit, 1) {
		return r.XPPerTick
	}
	return limit
}

// bestProducerRate returns the best unlocked output-per-tick rate for
// item across every skill action that produces it.
func bestProducerRate(catalog registry.Registries, s state.GameState, item registry.ItemID) float64 {
	best := 0.0
	for _, act := range catalog.AllActions() {
		if !act.IsSkillAction {
			continue
		}
		level := registry.LevelForXP(s.XPForSkill(act.Skill))
		if act.UnlockLevel > level {
			continue
		}
		for _, out := range act.Outputs {
			if out.Item != item {
				continue
			}
			r := rate.Estimate(rate.Inputs{
				Action:             act,
				ThievingLevel:      registry.LevelForXP(s.XPForSkill(registry.Thieving)),
				MasteryLevel:       registry.LevelForXP(s.MasteryXPForAction(act.ID)),
				DurationMultiplier: s.Shop.DurationMultiplier(catalog, act.Skill),
				HP:                 s.HP,
				MaxHP:              s.MaxHP,
			})
			perTick := r.Produced[out.Item]
			if perTick > best {
				best = perTick
			}
		}
	}
	return best
}
