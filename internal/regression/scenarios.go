package regression

import (
	"fmt"

	"github.com/lox/betteridle/internal/executor"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/plan"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/registry"
	"github.com/lox/betteridle/sdk/solver"
)

// Scenarios returns the six literal-input end-to-end checks spec.md §8
// lists, built against BuildCatalog.
func Scenarios() []Scenario {
	return []Scenario{
		idleWoodcuttingToLevel10(),
		buyAxeWhenItPaysBack(),
		consumingSkillFiremakingTo5(),
		gpGoalWithInventoryCap(),
		thievingWithDeathCycles(),
		multiSkillConjunction(),
	}
}

func idleWoodcuttingToLevel10() Scenario {
	return Scenario{
		Name:    "idle woodcutting to level 10",
		Initial: state.New(28, 10),
		Goal:    goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 10},
		Check: func(catalog registry.Registries, sr solver.SolverResult, er executor.Result) error {
			interactions := 0
			for _, s := range sr.Plan.Steps {
				if s.Kind == plan.StepInteraction {
					interactions++
				}
			}
			if interactions != 1 {
				return fmt.Errorf("expected exactly one interaction (the initial switch), got %d", interactions)
			}
			if er.Deaths != 0 {
				return fmt.Errorf("expected zero deaths, got %d", er.Deaths)
			}
			if !er.Completed {
				return fmt.Errorf("expected execution to complete the goal")
			}
			return nil
		},
	}
}

func buyAxeWhenItPaysBack() Scenario {
	return Scenario{
		Name:    "buy an axe when it first pays back",
		Initial: state.New(28, 10),
		Goal:    goal.ReachSkillLevel{Skill: registry.Woodcutting, Level: 15},
		Check: func(catalog registry.Registries, sr solver.SolverResult, er executor.Result) error {
			buys := 0
			for _, s := range sr.Plan.Steps {
				if s.Kind == plan.StepInteraction {
					if _, ok := s.Interaction.(state.BuyUpgrade); ok {
						buys++
					}
				}
			}
			if buys != 1 {
				return fmt.Errorf("expected exactly one BuyUpgrade step, got %d", buys)
			}
			finalXP := er.FinalState.XPForSkill(registry.Woodcutting)
			if finalXP < registry.StartXPForLevel(15) {
				return fmt.Errorf("expected final woodcutting XP >= level 15 threshold, got %v", finalXP)
			}
			return nil
		},
	}
}

func consumingSkillFiremakingTo5() Scenario {
	return Scenario{
		Name:    "consuming skill: firemaking to 5",
		Initial: state.New(28, 10),
		Goal:    goal.ReachSkillLevel{Skill: registry.Firemaking, Level: 5},
		Check: func(catalog registry.Registries, sr solver.SolverResult, er executor.Result) error {
			if !er.Completed {
				return fmt.Errorf("expected execution to complete the goal")
			}
			if er.FinalState.XPForSkill(registry.Firemaking) < registry.StartXPForLevel(5) {
				return fmt.Errorf("expected firemaking XP >= level 5 threshold")
			}
			return nil
		},
	}
}

func gpGoalWithInventoryCap() Scenario {
	return Scenario{
		Name:    "GP goal with inventory cap",
		Initial: state.New(5, 10),
		Goal:    goal.ReachCurrency{Currency: "gp", Target: 10000},
		Check: func(catalog registry.Registries, sr solver.SolverResult, er executor.Result) error {
			sawSell := false
			for _, s := range sr.Plan.Steps {
				if s.Kind == plan.StepInteraction {
					if _, ok := s.Interaction.(state.SellItems); ok {
						sawSell = true
					}
				}
			}
			if !sawSell {
				return fmt.Errorf("expected at least one SellItems step before hitting the inventory cap")
			}
			if er.FinalState.Currency("gp") < 10000 {
				return fmt.Errorf("expected final gp >= 10000, got %d", er.FinalState.Currency("gp"))
			}
			return nil
		},
	}
}

func thievingWithDeathCycles() Scenario {
	s := state.New(28, 10)
	s.Skills[registry.Thieving] = state.SkillState{XP: registry.StartXPForLevel(10)}
	return Scenario{
		Name:    "thieving with death cycles",
		Initial: s,
		Goal:    goal.ReachCurrency{Currency: "gp", Target: 1000},
		Check: func(catalog registry.Registries, sr solver.SolverResult, er executor.Result) error {
			if er.FinalState.Currency("gp") < 1000 {
				return fmt.Errorf("expected final gp >= 1000, got %d", er.FinalState.Currency("gp"))
			}
			if er.Deaths < 1 {
				return fmt.Errorf("expected at least one death cycle during thieving, got %d", er.Deaths)
			}
			ratio := er.TotalActualTicks / sr.Plan.TotalTicks
			if ratio > 1.3 {
				return fmt.Errorf("expected actual ticks within 30%% of planned, got ratio %.2f", ratio)
			}
			return nil
		},
	}
}

func multiSkillConjunction() Scenario {
	return Scenario{
		Name:    "multi-skill conjunction",
		Initial: state.New(28, 10),
		Goal: goal.MultiSkill{Subgoals: []goal.ReachSkillLevel{
			{Skill: registry.Woodcutting, Level: 5},
			{Skill: registry.Fishing, Level: 5},
		}},
		Check: func(catalog registry.Registries, sr solver.SolverResult, er executor.Result) error {
			if !er.Completed {
				return fmt.Errorf("expected execution to complete both subgoals")
			}
			if er.FinalState.XPForSkill(registry.Woodcutting) < registry.StartXPForLevel(5) {
				return fmt.Errorf("expected woodcutting XP >= level 5 threshold")
			}
			if er.FinalState.XPForSkill(registry.Fishing) < registry.StartXPForLevel(5) {
				return fmt.Errorf("expected fishing XP >= level 5 threshold")
			}
			return nil
		},
	}
}
