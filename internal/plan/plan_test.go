package plan_test

import (
	"path/filepath"
	"testing"

	"github.com/lox/betteridle/internal/plan"
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/registry"
)

func TestPolicyAtPicksGreatestStepIndexNotExceeding(t *testing.T) {
	p := plan.Plan{
		SellPolicyMarkers: []plan.SellPolicyMarker{
			{StepIndex: 0, Policy: sellpolicy.SellAll{}},
			{StepIndex: 5, Policy: sellpolicy.SellExcept{}},
		},
	}
	if _, ok := p.PolicyAt(2); !ok {
		t.Fatal("expected a marker at step 2")
	}
	policy, _ := p.PolicyAt(2)
	if _, ok := policy.(sellpolicy.SellAll); !ok {
		t.Fatalf("expected SellAll at step 2, got %T", policy)
	}
	policy, _ = p.PolicyAt(10)
	if _, ok := policy.(sellpolicy.SellExcept); !ok {
		t.Fatalf("expected SellExcept at step 10, got %T", policy)
	}
}

func TestPolicyAtNoMarkersIsLegacyFallback(t *testing.T) {
	p := plan.Plan{}
	if _, ok := p.PolicyAt(0); ok {
		t.Fatal("expected no marker to apply")
	}
}

func TestCompressDropsNoOpSwitchAndMergesWaits(t *testing.T) {
	wc := registry.ActionID{Namespace: "wc", Name: "normal_logs"}
	p := plan.Plan{
		Steps: []plan.Step{
			{Kind: plan.StepInteraction, Interaction: state.SwitchActivity{ActionID: wc}},
			{Kind: plan.StepWait, WaitFor: waitfor.SkillXP{Skill: registry.Woodcutting, Target: 10}, Ticks: 5},
			{Kind: plan.StepWait, WaitFor: waitfor.SkillXP{Skill: registry.Woodcutting, Target: 20}, Ticks: 7},
			{Kind: plan.StepInteraction, Interaction: state.SwitchActivity{ActionID: wc}},
		},
	}
	out := plan.Compress(p, registry.ActionID{})
	if len(out.Steps) != 2 {
		t.Fatalf("expected 2 steps after compression, got %d", len(out.Steps))
	}
	if out.Steps[0].Kind != plan.StepInteraction {
		t.Fatalf("expected first step to be the switch, got %v", out.Steps[0].Kind)
	}
	if out.Steps[1].Kind != plan.StepWait || out.Steps[1].Ticks != 12 {
		t.Fatalf("expected merged wait of 12 ticks, got %v/%v", out.Steps[1].Kind, out.Steps[1].Ticks)
	}
}

func TestSaveAndLoadSummaryRoundTrips(t *testing.T) {
	wc := registry.ActionID{Namespace: "wc", Name: "normal_logs"}
	p := plan.Plan{
		Steps: []plan.Step{
			{Kind: plan.StepInteraction, Interaction: state.SwitchActivity{ActionID: wc}},
			{Kind: plan.StepWait, WaitFor: waitfor.SkillXP{Skill: registry.Woodcutting, Target: 10}, Ticks: 5, ExpectedAction: wc},
		},
		TotalTicks:        5,
		InteractionCount:  1,
		ExpandedNodeCount: 3,
		EnqueuedNodeCount: 4,
	}
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := plan.Save(p, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	summary, err := plan.LoadSummary(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if summary.StepCount != 2 || summary.TotalTicks != 5 || summary.InteractionCount != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	steps, err := plan.LoadSteps(path)
	if err != nil {
		t.Fatalf("load steps: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].Kind != "interaction" || steps[0].Description != "switch to wc:normal_logs" {
		t.Fatalf("unexpected step 0: %+v", steps[0])
	}
	if steps[1].Kind != "wait" || steps[1].Description == "" {
		t.Fatalf("unexpected step 1: %+v", steps[1])
	}
}
