// Package executor walks a solved plan under a real ticker, narrating each
// step against live state instead of the planner's deterministic advance
// (spec.md §4.12). Grounded on internal/simulator/simulator.go's
// timeout-protected run loop and internal/game/engine.go's apply-decision/
// fallback/error-log loop: get the next unit of work, apply it, log and
// recover from failure, check for a stopping condition, repeat.
package executor

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lox/betteridle/internal/macro"
	"github.com/lox/betteridle/internal/plan"
	"github.com/lox/betteridle/internal/rate"
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/internal/watchset"
	"github.com/lox/betteridle/registry"
)

// maxWaitIterations bounds a single WaitStep/MacroStep's internal re-batch
// loop; internal/macro's Expand loops use the same kind of guard with
// smaller bounds (64 or 32 iterations).
const maxWaitIterations = 256

// StepProgress is reported after every plan step for diagnostics: the
// planned ticks and the ticks actually run. EstimatedTicks carries the same
// value as ActualTicks; no separate estimate is recomputed from the state
// at execution time.
type StepProgress struct {
	StepIndex         int
	Kind              plan.StepKind
	Description       string
	PlannedTicks      float64
	EstimatedTicks    float64
	ActualTicks       float64
	Deaths            int
}

// ProgressFunc receives one StepProgress per completed plan step.
type ProgressFunc func(StepProgress)

// Result summarizes one Run call.
type Result struct {
	Completed         bool
	StepsRun          int
	Deaths            int
	TotalPlannedTicks float64
	TotalActualTicks  float64
	FinalState        state.GameState
	StoppedAt         watchset.ReplanBoundary // nil if Completed
}

// Executor runs a plan's steps against a live Advancer and ticker-driven
// RNG. Unlike the planner, which only ever calls AdvanceDeterministic, the
// executor calls Advance, which falls back to the external ticker for
// non-rate-modelable actions and so can actually produce OutOfInputs,
// InventoryFull, or PlayerDied mid-step.
type Executor struct {
	Catalog registry.Registries
	Adv     *state.Advancer
	RNG     *rand.Rand
	Logger  *log.Logger
}

// New builds an Executor. logger may be nil, in which case a discard
// logger is used.
func New(catalog registry.Registries, adv *state.Advancer, rng *rand.Rand, logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
	}
	return &Executor{Catalog: catalog, Adv: adv, RNG: rng, Logger: logger}
}

func (ex *Executor) sellPrice(item registry.ItemID) int {
	return sellpolicy.SellPrice(ex.Catalog)(item)
}

// Run walks p.Steps starting from initial. ws, if non-nil, is consulted
// after every step for a material replan boundary (spec.md §4.12); a
// boundary stops execution early with Result.Completed false and
// Result.StoppedAt set. A CannotAffordError or ActionUnavailableError from
// applying an interaction step is returned directly, per spec.md §7's
// "bugs or invalid plans" category.
func (ex *Executor) Run(p *plan.Plan, initial state.GameState, ws *watchset.WatchSet, progress ProgressFunc) (Result, error) {
	s := initial
	result := Result{FinalState: s}

	for i, step := range p.Steps {
		var (
			actual float64
			deaths int
			err    error
		)

		switch step.Kind {
		case plan.StepInteraction:
			s, err = ex.Adv.ApplyInteraction(s, step.Interaction, ex.sellPrice)
		case plan.StepWait:
			s, actual, deaths, err = ex.runWaitStep(s, step)
		case plan.StepMacro:
			s, actual, deaths, err = ex.runMacroStep(s, step)
		default:
			err = fmt.Errorf("executor: step %d has unknown kind %v", i, step.Kind)
		}

		if err != nil {
			ex.Logger.Error("executor: step failed", "index", i, "kind", step.Kind, "error", err)
			result.FinalState = s
			return result, err
		}

		result.StepsRun++
		result.Deaths += deaths
		result.TotalPlannedTicks += step.Ticks
		result.TotalActualTicks += actual
		result.FinalState = s

		if progress != nil {
			progress(StepProgress{
				StepIndex:      i,
				Kind:           step.Kind,
				Description:    describeStep(step),
				PlannedTicks:   step.Ticks,
				EstimatedTicks: actual,
				ActualTicks:    actual,
				Deaths:         deaths,
			})
		}

		if ws != nil && ws.DetectBoundary(s) {
			result.StoppedAt = classifyBoundary(ex.Catalog, s, step)
			result.FinalState = ex.Adv.Touch(result.FinalState)
			return result, nil
		}
	}

	result.Completed = true
	result.FinalState = ex.Adv.Touch(result.FinalState)
	return result, nil
}

func describeStep(s plan.Step) string {
	switch s.Kind {
	case plan.StepInteraction:
		return describeInteraction(s.Interaction)
	case plan.StepWait:
		return "wait: " + s.WaitFor.Description()
	case plan.StepMacro:
		return s.Macro.Describe()
	default:
		return "unknown"
	}
}

func describeInteraction(in state.Interaction) string {
	switch v := in.(type) {
	case state.SwitchActivity:
		return "switch to " + v.ActionID.String()
	case state.BuyUpgrade:
		return "buy " + v.PurchaseID.String()
	case state.SellItems:
		return "sell items"
	default:
		return in.Kind().String()
	}
}

// classifyBoundary turns the post-step state into a concrete
// watchset.ReplanBoundary for reporting: a wait step whose own condition
// now holds reports WaitConditionSatisfied, and anything else falls back
// to GoalReached. The specific upgrade/unlock
// signals that triggered DetectBoundary aren't re-derived here since the
// caller already has the WatchSet to inspect for that detail; this just
// gives Result.StoppedAt a representative value satisfying the interface.
func classifyBoundary(catalog registry.Registries, s state.GameState, step plan.Step) watchset.ReplanBoundary {
	if step.Kind == plan.StepWait && step.WaitFor != nil && step.WaitFor.IsSatisfied(s, catalog) {
		return watchset.WaitConditionSatisfied{Description: step.WaitFor.Description()}
	}
	return watchset.GoalReached{}
}

// runWaitStep switches to ExpectedAction if the active action differs,
// then runs until WaitFor holds or a ticker stop-reason fires.
func (ex *Executor) runWaitStep(s state.GameState, step plan.Step) (state.GameState, float64, int, error) {
	if !step.ExpectedAction.IsZero() {
		if activeActionID(s) != step.ExpectedAction {
			var err error
			s, err = ex.Adv.ApplyInteraction(s, state.SwitchActivity{ActionID: step.ExpectedAction}, ex.sellPrice)
			if err != nil {
				return s, 0, 0, err
			}
		}
	}
	return ex.runUntil(s, step.WaitFor, nil)
}

// runMacroStep dispatches by macro variant. Each variant recomputes its
// own waitFor from the live state (the macro's stop rule) rather than
// reusing whatever ticks the planner estimated, so that e.g.
// TrainSkillUntil's boundary is always evaluated against the current skill
// level, not a stale one (spec.md §4.12).
func (ex *Executor) runMacroStep(s state.GameState, step plan.Step) (state.GameState, float64, int, error) {
	switch m := step.Macro.(type) {
	case macro.TrainSkillUntil:
		return ex.runTrainSkill(s, m)
	case macro.TrainConsumingSkillUntil:
		return ex.runTrainConsuming(s, m)
	case macro.AcquireItem:
		return ex.runAcquireItem(s, m)
	case macro.EnsureStock:
		return ex.runEnsureStock(s, m)
	default:
		return s, 0, 0, fmt.Errorf("executor: unknown macro variant %T", step.Macro)
	}
}

func (ex *Executor) runTrainSkill(s state.GameState, m macro.TrainSkillUntil) (state.GameState, float64, int, error) {
	s, err := ex.Adv.ApplyInteraction(s, state.SwitchActivity{ActionID: m.Action}, ex.sellPrice)
	if err != nil {
		return s, 0, 0, err
	}
	return ex.runUntil(s, m.PrimaryStop(), m.WatchedStops())
}

func (ex *Executor) runAcquireItem(s state.GameState, m macro.AcquireItem) (state.GameState, float64, int, error) {
	s, err := ex.Adv.ApplyInteraction(s, state.SwitchActivity{ActionID: m.Producer}, ex.sellPrice)
	if err != nil {
		return s, 0, 0, err
	}
	return ex.runUntil(s, m.PrimaryStop(), nil)
}

// runEnsureStock is AcquireItem plus inventory-full recovery: selling per
// SellSpec (forcing the target item into the keep set) and continuing
// rather than stalling.
func (ex *Executor) runEnsureStock(s state.GameState, m macro.EnsureStock) (state.GameState, float64, int, error) {
	s, err := ex.Adv.ApplyInteraction(s, state.SwitchActivity{ActionID: m.Producer}, ex.sellPrice)
	if err != nil {
		return s, 0, 0, err
	}

	target := m.PrimaryStop()
	full := waitfor.InventoryFull{}
	totalTicks := 0.0
	totalDeaths := 0

	for i := 0; i < maxWaitIterations; i++ {
		if target.IsSatisfied(s, ex.Catalog) {
			return s, totalTicks, totalDeaths, nil
		}
		if full.IsSatisfied(s, ex.Catalog) {
			policy := ex.resolveSellSpec(m.SellSpec, s)
			keep := policy.KeepItems(s)
			if keep == nil {
				keep = map[registry.ItemID]bool{}
			}
			keep[m.Item] = true
			next, err := ex.Adv.ApplyInteraction(s, state.SellItems{Keep: keep}, ex.sellPrice)
			if err != nil {
				return s, totalTicks, totalDeaths, err
			}
			if full.IsSatisfied(next, ex.Catalog) {
				return next, totalTicks, totalDeaths, fmt.Errorf("executor: ensure-stock inventory full, no sellable recovery")
			}
			s = next
			continue
		}

		child, ticks, deaths, stopped, err := ex.advanceOneBatch(s, waitfor.AnyOf{List: []waitfor.WaitFor{target, full}})
		if err != nil {
			return s, totalTicks, totalDeaths, err
		}
		s = child
		totalTicks += ticks
		totalDeaths += deaths
		if stopped {
			return s, totalTicks, totalDeaths, nil
		}
	}
	return s, totalTicks, totalDeaths, fmt.Errorf("executor: ensure-stock did not converge after %d iterations", maxWaitIterations)
}

// runTrainConsuming runs the coupled produce/consume loop live: restock
// each depleted input via its producer, run the consumer until inputs run
// out or the stop condition holds, repeat.
func (ex *Executor) runTrainConsuming(s state.GameState, m macro.TrainConsumingSkillUntil) (state.GameState, float64, int, error) {
	consumerAct, ok := ex.Catalog.ActionByID(m.ConsumerAction)
	if !ok {
		return s, 0, 0, fmt.Errorf("executor: unknown consumer action %s", m.ConsumerAction)
	}

	stop := waitfor.AnyOf{List: append([]waitfor.WaitFor{m.PrimaryStop()}, m.WatchedStops()...)}
	totalTicks := 0.0
	totalDeaths := 0

	for iter := 0; iter < maxWaitIterations; iter++ {
		if stop.IsSatisfied(s, ex.Catalog) {
			return s, totalTicks, totalDeaths, nil
		}

		for _, in := range consumerAct.Inputs {
			if s.Inventory.Count(in.Item) >= m.BufferTarget {
				continue
			}
			producerID, hasProducer := m.ProducerForInput[in.Item]
			if !hasProducer {
				return s, totalTicks, totalDeaths, fmt.Errorf("executor: no producer for %s", in.Item)
			}
			next, err := ex.Adv.ApplyInteraction(s, state.SwitchActivity{ActionID: producerID}, ex.sellPrice)
			if err != nil {
				return s, totalTicks, totalDeaths, err
			}
			want := waitfor.InventoryOfItem{Item: in.Item, Min: m.BufferTarget}
			child, ticks, deaths, _, err := ex.advanceOneBatch(next, want)
			if err != nil {
				return s, totalTicks, totalDeaths, err
			}
			s = child
			totalTicks += ticks
			totalDeaths += deaths
		}

		next, err := ex.Adv.ApplyInteraction(s, state.SwitchActivity{ActionID: m.ConsumerAction}, ex.sellPrice)
		if err != nil {
			return s, totalTicks, totalDeaths, err
		}
		s = next

		depleted := waitfor.InputsDepleted{Action: m.ConsumerAction}
		innerStop := waitfor.AnyOf{List: []waitfor.WaitFor{stop, depleted}}
		for j := 0; j < maxWaitIterations; j++ {
			if innerStop.IsSatisfied(s, ex.Catalog) {
				break
			}
			child, ticks, deaths, stopped, err := ex.advanceOneBatch(s, innerStop)
			if err != nil {
				return s, totalTicks, totalDeaths, err
			}
			s = child
			totalTicks += ticks
			totalDeaths += deaths
			if stopped {
				break
			}
		}

		if stop.IsSatisfied(s, ex.Catalog) {
			return s, totalTicks, totalDeaths, nil
		}
		// else inputs ran out: loop back around to restock.
	}
	return s, totalTicks, totalDeaths, fmt.Errorf("executor: train-consuming did not converge after %d iterations", maxWaitIterations)
}

func (ex *Executor) resolveSellSpec(spec sellpolicy.Spec, s state.GameState) sellpolicy.Policy {
	if spec == nil {
		return sellpolicy.SellAll{}
	}
	return spec.Resolve(s, ex.Catalog, nil)
}

// runUntil advances s, batch by batch, until target is satisfied or one of
// watched/input-depletion/inventory-full fires. Deaths are absorbed: the
// ticker restarts the activity, counted but never stopping the loop.
func (ex *Executor) runUntil(s state.GameState, target waitfor.WaitFor, watched []waitfor.WaitFor) (state.GameState, float64, int, error) {
	stopList := append([]waitfor.WaitFor{target}, watched...)
	stop := waitfor.AnyOf{List: stopList}
	totalTicks := 0.0
	totalDeaths := 0

	for i := 0; i < maxWaitIterations; i++ {
		if target.IsSatisfied(s, ex.Catalog) {
			return s, totalTicks, totalDeaths, nil
		}
		child, ticks, deaths, stopped, err := ex.advanceOneBatch(s, stop)
		if err != nil {
			return s, totalTicks, totalDeaths, err
		}
		s = child
		totalTicks += ticks
		totalDeaths += deaths
		if stopped {
			return s, totalTicks, totalDeaths, nil
		}
	}
	return s, totalTicks, totalDeaths, fmt.Errorf("executor: wait did not converge after %d iterations", maxWaitIterations)
}

// advanceOneBatch estimates ticks until stop would hold under the active
// action's current rates, advances that many ticks through the live
// Advancer, and reports whether execution should stop here (stop satisfied
// via the resulting state, or the ticker signalled inputs-depleted /
// inventory-full). A death is absorbed: HP resets to max and the batch is
// treated as still-running so the caller's loop continues.
func (ex *Executor) advanceOneBatch(s state.GameState, stop waitfor.AnyOf) (state.GameState, float64, int, bool, error) {
	if s.Active == nil {
		return s, 0, 0, true, nil
	}
	act, ok := ex.Catalog.ActionByID(s.Active.ID)
	if !ok {
		return s, 0, 0, true, nil
	}

	rates := rate.Estimate(rate.Inputs{
		Action:             act,
		ThievingLevel:      registry.LevelForXP(s.XPForSkill(registry.Thieving)),
		MasteryLevel:       registry.LevelForXP(s.MasteryXPForAction(act.ID)),
		DurationMultiplier: s.Shop.DurationMultiplier(ex.Catalog, act.Skill),
		HP:                 s.HP,
		MaxHP:              s.MaxHP,
	})
	delta := stop.EstimateTicks(s, rates)
	if math.IsInf(delta, 1) {
		return s, 0, 0, true, nil
	}
	ticks := int(math.Max(1, delta))

	child, reason := ex.Adv.Advance(s, ticks, ex.RNG)
	deaths := 0
	if reason == state.PlayerDied {
		deaths = 1
		child.HP = child.MaxHP
		ex.Logger.Warn("executor: player died, restarting activity", "action", act.ID)
	}

	stopped := reason == state.OutOfInputs || reason == state.InventoryFull || stop.IsSatisfied(child, ex.Catalog)
	return child, float64(ticks), deaths, stopped, nil
}

func activeActionID(s state.GameState) registry.ActionID {
	if s.Active == nil {
		return registry.ActionID{}
	}
	return s.Active.ID
}
