// Package regression runs the six end-to-end scenarios spec.md §8 seeds the
// test suite with as scripted checks: solve a goal against a fixed initial
// state, execute the resulting plan, and assert the scenario's expected
// shape on the result. Grounded on internal/regression's Config/Reporter
// split and cmd/regression-tester's batch-then-report flow, narrowed from
// the teacher's bot-vs-bot statistical comparison (effect sizes,
// significance tests, health-monitored subprocess bots) to a fixed,
// deterministic scenario list: there is no second bot to compare against
// here, no subprocess pool to supervise, just one solver checked against
// scripted expectations.
package regression

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lox/betteridle/internal/executor"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/tickersim"
	"github.com/lox/betteridle/registry"
	"github.com/lox/betteridle/sdk/solver"
)

// Scenario is one scripted end-to-end check (spec.md §8's numbered list).
type Scenario struct {
	Name    string
	Initial state.GameState
	Goal    goal.Goal
	Check   func(catalog registry.Registries, solveResult solver.SolverResult, execResult executor.Result) error
}

// Result is the outcome of running one Scenario.
type Result struct {
	Name     string
	Passed   bool
	Detail   string
	Duration time.Duration
}

// Run executes every scenario in order against catalog, using seed for
// both the solver (spec.md §8's determinism property) and the live
// executor's rng (which only governs which of several equally-planned-for
// outcomes occurs during replay, e.g. thieving stuns).
func Run(catalog registry.Registries, scenarios []Scenario, seed int64) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		start := time.Now()
		res := runOne(catalog, sc, seed)
		res.Duration = time.Since(start)
		results = append(results, res)
	}
	return results
}

func runOne(catalog registry.Registries, sc Scenario, seed int64) Result {
	opts := solver.DefaultOptions()
	opts.Seed = seed

	solveResult := solver.Solve(catalog, sc.Initial, sc.Goal, opts)
	if !solveResult.Succeeded() {
		return Result{Name: sc.Name, Passed: false, Detail: fmt.Sprintf("solve failed: %v", solveResult.Failure)}
	}

	adv := state.NewAdvancer(catalog, tickersim.NewStochasticTicker(catalog))
	rng := rand.New(rand.NewSource(seed))
	ex := executor.New(catalog, adv, rng, nil)

	execResult, err := ex.Run(solveResult.Plan, sc.Initial, nil, nil)
	if err != nil {
		return Result{Name: sc.Name, Passed: false, Detail: fmt.Sprintf("execute failed: %v", err)}
	}

	if sc.Check != nil {
		if err := sc.Check(catalog, solveResult, execResult); err != nil {
			return Result{Name: sc.Name, Passed: false, Detail: err.Error()}
		}
	}
	return Result{Name: sc.Name, Passed: true, Detail: "ok"}
}
