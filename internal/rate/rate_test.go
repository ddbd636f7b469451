package rate

import (
	"testing"

	"github.com/lox/betteridle/registry"
)

func TestEstimateStandardAction(t *testing.T) {
	logs := registry.ItemID{Namespace: "item", Name: "normal_logs"}
	action := registry.Action{
		ID:            registry.ActionID{Namespace: "wc", Name: "normal_logs"},
		Skill:         registry.Woodcutting,
		IsSkillAction: true,
		MeanDuration:  4,
		XP:            10,
		Outputs:       []registry.ItemStack{{Item: logs, Count: 1}},
	}

	r := Estimate(Inputs{Action: action, HP: 10, MaxHP: 10})
	if r.ExpectedTicksPerCompletion != 4 {
		t.Fatalf("expected 4 ticks, got %v", r.ExpectedTicksPerCompletion)
	}
	if r.XPPerTick != 2.5 {
		t.Fatalf("expected 2.5 xp/tick, got %v", r.XPPerTick)
	}
	if r.Produced[logs] != 0.25 {
		t.Fatalf("expected 0.25 logs/tick, got %v", r.Produced[logs])
	}
	if r.HPLossPerTick != 0 {
		t.Fatalf("expected no hp loss for woodcutting")
	}
}

func TestEstimateStandardActionWithDurationModifier(t *testing.T) {
	action := registry.Action{Skill: registry.Woodcutting, IsSkillAction: true, MeanDuration: 10, XP: 10}
	r := Estimate(Inputs{Action: action, DurationMultiplier: 1.0, HP: 10, MaxHP: 10})
	if r.ExpectedTicksPerCompletion != 20 {
		t.Fatalf("expected doubled duration, got %v", r.ExpectedTicksPerCompletion)
	}
}

func TestEstimateThievingAppliesDeathCycle(t *testing.T) {
	action := registry.Action{
		Skill:         registry.Thieving,
		IsSkillAction: true,
		MeanDuration:  2,
		XP:            5,
		Perception:    50,
		MaxGold:       10,
		MaxHit:        20,
		StunTicks:     5,
	}

	withoutDeath := Estimate(Inputs{Action: action, HP: 1000000, MaxHP: 1000000})
	withDeath := Estimate(Inputs{Action: action, HP: 20, MaxHP: 100})

	if withDeath.HPLossPerTick <= 0 {
		t.Fatalf("expected positive hp loss for thieving")
	}
	if withDeath.XPPerTick >= withoutDeath.XPPerTick {
		t.Fatalf("expected death-cycle-adjusted xp rate (%v) to be lower than undamped rate (%v)", withDeath.XPPerTick, withoutDeath.XPPerTick)
	}
}

func TestEstimateThievingUsesThievingLevelForStealth(t *testing.T) {
	action := registry.Action{
		Skill:         registry.Thieving,
		IsSkillAction: true,
		MeanDuration:  2,
		XP:            5,
		Perception:    50,
		MaxGold:       10,
		MaxHit:        20,
		StunTicks:     5,
	}

	lowSkill := Estimate(Inputs{Action: action, ThievingLevel: 1, HP: 1000000, MaxHP: 1000000})
	highSkill := Estimate(Inputs{Action: action, ThievingLevel: 99, HP: 1000000, MaxHP: 1000000})

	if highSkill.XPPerTick <= lowSkill.XPPerTick {
		t.Fatalf("expected higher thieving level to raise success rate and xp/tick: low=%v high=%v", lowSkill.XPPerTick, highSkill.XPPerTick)
	}
}

func TestStealthScoreMonotoneInBothInputs(t *testing.T) {
	if StealthScore(1, 50) >= StealthScore(99, 50) {
		t.Fatal("expected stealth score to increase with thieving level")
	}
	if StealthScore(50, 1) >= StealthScore(50, 99) {
		t.Fatal("expected stealth score to increase with mastery level")
	}
}

func TestEstimateNonSkillActionIsZero(t *testing.T) {
	r := Estimate(Inputs{Action: registry.Action{IsSkillAction: false}})
	if r.XPPerTick != 0 || r.CurrencyPerTick != 0 {
		t.Fatalf("expected zero rates for non-skill action, got %+v", r)
	}
}
