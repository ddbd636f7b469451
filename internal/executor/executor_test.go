package executor_test

import (
	"math/rand"
	"testing"

	"github.com/lox/betteridle/internal/candidate"
	"github.com/lox/betteridle/internal/executor"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/macro"
	"github.com/lox/betteridle/internal/plan"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/tickersim"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/internal/watchset"
	"github.com/lox/betteridle/registry"
)

func woodcuttingCatalog() (registry.Registries, registry.ActionID, registry.ItemID) {
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	actionID := registry.ActionID{Namespace: "wc", Name: "normal_logs"}
	action := registry.Action{
		ID: actionID, Skill: registry.Woodcutting,
		IsSkillAction: true, UnlockLevel: 1, MeanDuration: 2, XP: 10,
		Outputs: []registry.ItemStack{{Item: logs, Count: 1}},
	}
	return registry.NewCatalog([]registry.Action{action}, nil, nil), actionID, logs
}

func newExecutor(catalog registry.Registries, seed int64) *executor.Executor {
	adv := state.NewAdvancer(catalog, tickersim.NewStochasticTicker(catalog))
	return executor.New(catalog, adv, rand.New(rand.NewSource(seed)), nil)
}

func TestRunInteractionStepSwitchesActivity(t *testing.T) {
	catalog, actionID, _ := woodcuttingCatalog()
	ex := newExecutor(catalog, 1)
	s := state.New(28, 10)

	p := &plan.Plan{Steps: []plan.Step{
		{Kind: plan.StepInteraction, Interaction: state.SwitchActivity{ActionID: actionID}},
	}}

	result, err := ex.Run(p, s, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Completed {
		t.Fatal("expected the plan to complete")
	}
	if result.FinalState.Active == nil || result.FinalState.Active.ID != actionID {
		t.Fatalf("expected active action %s, got %+v", actionID, result.FinalState.Active)
	}
}

func TestRunWaitStepAdvancesUntilSatisfied(t *testing.T) {
	catalog, actionID, _ := woodcuttingCatalog()
	ex := newExecutor(catalog, 2)
	s := state.New(28, 10)

	p := &plan.Plan{Steps: []plan.Step{
		{Kind: plan.StepInteraction, Interaction: state.SwitchActivity{ActionID: actionID}},
		{
			Kind:           plan.StepWait,
			WaitFor:        waitfor.SkillXP{Skill: registry.Woodcutting, Target: registry.StartXPForLevel(3)},
			ExpectedAction: actionID,
		},
	}}

	result, err := ex.Run(p, s, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Completed {
		t.Fatal("expected the plan to complete")
	}
	if registry.LevelForXP(result.FinalState.XPForSkill(registry.Woodcutting)) < 3 {
		t.Fatalf("expected level >= 3, got xp=%v", result.FinalState.XPForSkill(registry.Woodcutting))
	}
	if result.TotalActualTicks <= 0 {
		t.Fatal("expected positive actual ticks")
	}
}

func TestRunStopsAtWatchSetBoundary(t *testing.T) {
	catalog, actionID, _ := woodcuttingCatalog()
	ex := newExecutor(catalog, 3)
	s := state.New(28, 10)
	g := goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 2}

	ws := watchset.New(catalog, s, g, candidate.Watch{}, watchset.Config{})

	p := &plan.Plan{Steps: []plan.Step{
		{Kind: plan.StepInteraction, Interaction: state.SwitchActivity{ActionID: actionID}},
		{
			Kind:           plan.StepWait,
			WaitFor:        waitfor.SkillXP{Skill: registry.Woodcutting, Target: registry.StartXPForLevel(10)},
			ExpectedAction: actionID,
		},
	}}

	result, err := ex.Run(p, s, ws, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Completed {
		t.Fatal("expected execution to stop at the goal boundary before the wait step finished")
	}
	if result.StoppedAt == nil {
		t.Fatal("expected a boundary to be recorded")
	}
	if registry.LevelForXP(result.FinalState.XPForSkill(registry.Woodcutting)) < 2 {
		t.Fatalf("expected level >= 2 at the boundary, got xp=%v", result.FinalState.XPForSkill(registry.Woodcutting))
	}
}

func TestRunInteractionFailureReturnsTypedError(t *testing.T) {
	catalog, _, _ := woodcuttingCatalog()
	ex := newExecutor(catalog, 4)
	s := state.New(28, 10)

	unknown := registry.ActionID{Namespace: "wc", Name: "does_not_exist"}
	p := &plan.Plan{Steps: []plan.Step{
		{Kind: plan.StepInteraction, Interaction: state.SwitchActivity{ActionID: unknown}},
	}}

	_, err := ex.Run(p, s, nil, nil)
	if err == nil {
		t.Fatal("expected an error for an unavailable action")
	}
	var unavailable *state.ActionUnavailableError
	if !asActionUnavailable(err, &unavailable) {
		t.Fatalf("expected *state.ActionUnavailableError, got %T: %v", err, err)
	}
}

func TestRunMacroTrainSkillUntilStopsAtLevel(t *testing.T) {
	catalog, actionID, _ := woodcuttingCatalog()
	ex := newExecutor(catalog, 5)
	s := state.New(28, 10)

	m := macro.TrainSkillUntil{
		Skill:  registry.Woodcutting,
		Action: actionID,
		Stop:   macro.StopAtLevel{Skill: registry.Woodcutting, Level: 4},
	}
	p := &plan.Plan{Steps: []plan.Step{
		{Kind: plan.StepMacro, Macro: m},
	}}

	result, err := ex.Run(p, s, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Completed {
		t.Fatal("expected the plan to complete")
	}
	if registry.LevelForXP(result.FinalState.XPForSkill(registry.Woodcutting)) < 4 {
		t.Fatalf("expected level >= 4, got xp=%v", result.FinalState.XPForSkill(registry.Woodcutting))
	}
}

func TestRunMacroAcquireItemReachesTarget(t *testing.T) {
	catalog, actionID, logs := woodcuttingCatalog()
	ex := newExecutor(catalog, 6)
	s := state.New(28, 10)

	m := macro.AcquireItem{Item: logs, Target: 5, Producer: actionID}
	p := &plan.Plan{Steps: []plan.Step{
		{Kind: plan.StepMacro, Macro: m},
	}}

	result, err := ex.Run(p, s, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FinalState.Inventory.Count(logs) < 5 {
		t.Fatalf("expected at least 5 logs, got %d", result.FinalState.Inventory.Count(logs))
	}
}

func TestRunProgressCallbackReceivesOneReportPerStep(t *testing.T) {
	catalog, actionID, _ := woodcuttingCatalog()
	ex := newExecutor(catalog, 7)
	s := state.New(28, 10)

	p := &plan.Plan{Steps: []plan.Step{
		{Kind: plan.StepInteraction, Interaction: state.SwitchActivity{ActionID: actionID}},
		{
			Kind:           plan.StepWait,
			WaitFor:        waitfor.SkillXP{Skill: registry.Woodcutting, Target: registry.StartXPForLevel(2)},
			ExpectedAction: actionID,
		},
	}}

	var reports []executor.StepProgress
	_, err := ex.Run(p, s, nil, func(sp executor.StepProgress) {
		reports = append(reports, sp)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != len(p.Steps) {
		t.Fatalf("expected %d progress reports, got %d", len(p.Steps), len(reports))
	}
}

func asActionUnavailable(err error, target **state.ActionUnavailableError) bool {
	v, ok := err.(*state.ActionUnavailableError)
	if !ok {
		return false
	}
	*target = v
	return true
}
