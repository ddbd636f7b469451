package classify_test

import (
	"testing"

	"github.com/lox/betteridle/internal/classify"
	"github.com/lox/betteridle/registry"
)

func TestActionClassifiesByInputsAndSkill(t *testing.T) {
	producing := registry.Action{Skill: registry.Woodcutting, IsSkillAction: true}
	if got := classify.Action(producing); got != classify.KindProducing {
		t.Fatalf("expected producing, got %v", got)
	}

	consuming := registry.Action{
		Skill: registry.Cooking, IsSkillAction: true,
		Inputs: []registry.ItemStack{{Item: registry.ItemID{Namespace: "item", Name: "raw_fish"}, Count: 1}},
	}
	if got := classify.Action(consuming); got != classify.KindConsuming {
		t.Fatalf("expected consuming, got %v", got)
	}

	thieving := registry.Action{Skill: registry.Thieving, IsSkillAction: true}
	if got := classify.Action(thieving); got != classify.KindThieving {
		t.Fatalf("expected thieving, got %v", got)
	}

	combat := registry.Action{Skill: registry.SkillUnknown, IsSkillAction: false}
	if got := classify.Action(combat); got != classify.KindCombat {
		t.Fatalf("expected combat, got %v", got)
	}
}

func TestThievingRiskMonotoneInMastery(t *testing.T) {
	act := registry.Action{Skill: registry.Thieving, Perception: 80}

	low := classify.ThievingRisk(act, 1, 1)
	high := classify.ThievingRisk(act, 1, 99)
	if high < low {
		t.Fatalf("expected higher mastery to never be riskier: low=%v high=%v", low, high)
	}
}

func TestThievingRiskZeroPerceptionIsSafe(t *testing.T) {
	act := registry.Action{Skill: registry.Thieving, Perception: 0}
	if got := classify.ThievingRisk(act, 50, 50); got != classify.TierSafe {
		t.Fatalf("expected safe tier for zero perception, got %v", got)
	}
}
