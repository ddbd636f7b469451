package solver

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lox/betteridle/internal/capability"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/heuristic"
	"github.com/lox/betteridle/internal/plan"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
)

func woodcuttingCatalog() registry.Registries {
	wc := registry.Action{
		ID: registry.ActionID{Namespace: "wc", Name: "normal_logs"}, Skill: registry.Woodcutting,
		IsSkillAction: true, UnlockLevel: 1, MeanDuration: 2, XP: 10,
		Outputs: []registry.ItemStack{{Item: registry.ItemID{Namespace: "item", Name: "normal_logs"}, Count: 1}},
	}
	return registry.NewCatalog([]registry.Action{wc}, nil, nil)
}

func TestSolveReachesSkillLevelGoal(t *testing.T) {
	catalog := woodcuttingCatalog()
	s := state.New(28, 10)
	g := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 5}

	opts := DefaultOptions()
	result := Solve(catalog, s, g, opts)
	if !result.Succeeded() {
		t.Fatalf("expected success, got failure: %v", result.Failure)
	}
	if result.Plan.TotalTicks <= 0 {
		t.Fatalf("expected positive total ticks, got %v", result.Plan.TotalTicks)
	}
	if len(result.Plan.Steps) == 0 {
		t.Fatal("expected at least one step")
	}
}

func TestSolveHeuristicIsAdmissible(t *testing.T) {
	catalog := woodcuttingCatalog()
	s := state.New(28, 10)
	g := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 10}

	h0 := heuristic.Estimate(catalog, s, g)
	result := Solve(catalog, s, g, DefaultOptions())
	if !result.Succeeded() {
		t.Fatalf("expected success, got failure: %v", result.Failure)
	}
	if h0 > result.Plan.TotalTicks {
		t.Fatalf("heuristic %v overestimates true cost %v", h0, result.Plan.TotalTicks)
	}
}

func TestSolveFailsWhenGoalUnreachable(t *testing.T) {
	catalog := woodcuttingCatalog()
	s := state.New(28, 10)
	// Firemaking has no actions in this catalog at all, so it can never
	// be reached: no switch candidate, no wait-delta progress.
	g := goal.ReachSkillLevel{Skill: registry.Firemaking, Level: 5}

	opts := DefaultOptions()
	opts.MaxExpandedNodes = 50
	result := Solve(catalog, s, g, opts)
	if result.Succeeded() {
		t.Fatal("expected failure for an unreachable goal")
	}
}

func TestOfferBypassesVisitedSetForGoalReachingNode(t *testing.T) {
	catalog := woodcuttingCatalog()
	g := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 1}

	se := &searcher{
		catalog:  catalog,
		goal:     g,
		opts:     DefaultOptions(),
		adv:      state.NewAdvancer(catalog, nil),
		keyer:    newBucketKeyer(catalog, g),
		frontier: newFrontier(),
		visited:  make(map[capability.Key]float64),
	}
	root := node{parent: -1, state: state.New(28, 10)}
	se.nodes = append(se.nodes, root)

	goalState := state.New(28, 10)
	goalState.Skills[registry.Woodcutting] = state.SkillState{XP: registry.StartXPForLevel(1) + 100}

	// Force a coarse visited-set key collision: record a much smaller
	// ticksSoFar under the same key a goal-reaching node would use, as if
	// a prior non-terminal node had already claimed it.
	key := se.keyer.visitedKey(goalState)
	se.visited[key] = 0

	pq := &priorityQueue{}
	enqueued := 0
	se.offer(pq, &enqueued, 0, goalState, 500, edge{kind: 0})

	if pq.Len() != 1 {
		t.Fatalf("expected the goal-reaching node to survive the visited-set collision, got queue len %d", pq.Len())
	}
}

func TestSolveDeterministicAcrossRepeatedRuns(t *testing.T) {
	catalog := woodcuttingCatalog()
	g := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 8}

	r1 := Solve(catalog, state.New(28, 10), g, DefaultOptions())
	r2 := Solve(catalog, state.New(28, 10), g, DefaultOptions())
	if !r1.Succeeded() || !r2.Succeeded() {
		t.Fatalf("expected both solves to succeed")
	}
	if r1.Plan.TotalTicks != r2.Plan.TotalTicks {
		t.Fatalf("expected deterministic total ticks, got %v vs %v", r1.Plan.TotalTicks, r2.Plan.TotalTicks)
	}
	if len(r1.Plan.Steps) != len(r2.Plan.Steps) {
		t.Fatalf("expected deterministic step count, got %d vs %d", len(r1.Plan.Steps), len(r2.Plan.Steps))
	}
	if math.IsInf(r1.Plan.TotalTicks, 1) {
		t.Fatal("total ticks should be finite")
	}

	// Diff the persisted, read-back step descriptions rather than the
	// in-memory Plan (whose Step.Interaction/WaitFor/Macro fields are
	// interfaces cmp can't compare without bespoke options) — this is
	// exactly what plan.StepView exists for.
	dir := t.TempDir()
	p1, p2 := filepath.Join(dir, "r1.json"), filepath.Join(dir, "r2.json")
	if err := plan.Save(*r1.Plan, p1); err != nil {
		t.Fatalf("save r1: %v", err)
	}
	if err := plan.Save(*r2.Plan, p2); err != nil {
		t.Fatalf("save r2: %v", err)
	}
	steps1, err := plan.LoadSteps(p1)
	if err != nil {
		t.Fatalf("load steps r1: %v", err)
	}
	steps2, err := plan.LoadSteps(p2)
	if err != nil {
		t.Fatalf("load steps r2: %v", err)
	}
	if diff := cmp.Diff(steps1, steps2); diff != "" {
		t.Fatalf("expected identical plans across repeated solves (-r1 +r2):\n%s", diff)
	}
}
