package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
)

// fileVersion guards against loading a plan file written by an
// incompatible future format.
const fileVersion = 1

// jsonStep is a diagnostic-oriented mirror of Step. Interaction steps
// round-trip structurally (they're plain data); wait and macro steps are
// flattened to their description and planned ticks, since a persisted
// plan is read by the regression harness and plan inspector for display
// and replay bookkeeping, never deserialized back into a live, directly
// executable Step — the executor always consumes the in-process Plan a
// solve just produced (spec.md §5: single process, single solve).
type jsonStep struct {
	Kind           string              `json:"kind"`
	SwitchAction   *jsonActionRef      `json:"switch_action,omitempty"`
	BuyPurchase    *jsonPurchaseRef    `json:"buy_purchase,omitempty"`
	SellKeep       []jsonItemRef       `json:"sell_keep,omitempty"`
	WaitDescription string             `json:"wait_description,omitempty"`
	ExpectedAction *jsonActionRef      `json:"expected_action,omitempty"`
	MacroDescription string            `json:"macro_description,omitempty"`
	Ticks          float64             `json:"ticks"`
}

type jsonActionRef struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

type jsonPurchaseRef struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

type jsonItemRef struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

type jsonMarker struct {
	StepIndex  int    `json:"step_index"`
	PolicyDesc string `json:"policy_description"`
}

type jsonPlan struct {
	Version           int          `json:"version"`
	Steps             []jsonStep   `json:"steps"`
	SellPolicyMarkers []jsonMarker `json:"sell_policy_markers"`
	TotalTicks        float64      `json:"total_ticks"`
	InteractionCount  int          `json:"interaction_count"`
	ExpandedNodeCount int          `json:"expanded_node_count"`
	EnqueuedNodeCount int          `json:"enqueued_node_count"`
}

func toJSONStep(s Step) jsonStep {
	js := jsonStep{Kind: s.Kind.String(), Ticks: s.Ticks}
	switch s.Kind {
	case StepInteraction:
		switch in := s.Interaction.(type) {
		case state.SwitchActivity:
			js.SwitchAction = &jsonActionRef{Namespace: in.ActionID.Namespace, Name: in.ActionID.Name}
		case state.BuyUpgrade:
			js.BuyPurchase = &jsonPurchaseRef{Namespace: in.PurchaseID.Namespace, Name: in.PurchaseID.Name}
		case state.SellItems:
			for item := range in.Keep {
				js.SellKeep = append(js.SellKeep, jsonItemRef{Namespace: item.Namespace, Name: item.Name})
			}
		}
	case StepWait:
		if s.WaitFor != nil {
			js.WaitDescription = s.WaitFor.Description()
		}
		js.ExpectedAction = &jsonActionRef{Namespace: s.ExpectedAction.Namespace, Name: s.ExpectedAction.Name}
	case StepMacro:
		if s.Macro != nil {
			js.MacroDescription = s.Macro.Describe()
		}
	}
	return js
}

// Save writes p to path as diagnostic JSON, via a temp-file-then-rename so
// a crash mid-write never leaves a truncated plan file (checkpoint.go's
// atomic-write pattern).
func Save(p Plan, path string) error {
	out := jsonPlan{
		Version:           fileVersion,
		TotalTicks:        p.TotalTicks,
		InteractionCount:  p.InteractionCount,
		ExpandedNodeCount: p.ExpandedNodeCount,
		EnqueuedNodeCount: p.EnqueuedNodeCount,
	}
	for _, s := range p.Steps {
		out.Steps = append(out.Steps, toJSONStep(s))
	}
	for _, m := range p.SellPolicyMarkers {
		desc := "sell all"
		if _, ok := m.Policy.(sellpolicy.SellExcept); ok {
			desc = "sell except reserved inputs"
		}
		out.SellPolicyMarkers = append(out.SellPolicyMarkers, jsonMarker{StepIndex: m.StepIndex, PolicyDesc: desc})
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create plan dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create plan temp: %w", err)
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode plan: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close plan temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persist plan: %w", err)
	}
	return nil
}

// LoadSummary reads back the diagnostic JSON written by Save. It does not
// reconstruct a live, executable Plan (see jsonStep's doc comment); it is
// for the plan inspector and regression harness to report on a prior run.
func LoadSummary(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()

	var jp jsonPlan
	if err := json.NewDecoder(f).Decode(&jp); err != nil {
		return Summary{}, fmt.Errorf("decode plan: %w", err)
	}
	if jp.Version != fileVersion {
		return Summary{}, fmt.Errorf("unsupported plan file version %d", jp.Version)
	}
	return Summary{
		StepCount:         len(jp.Steps),
		TotalTicks:        jp.TotalTicks,
		InteractionCount:  jp.InteractionCount,
		ExpandedNodeCount: jp.ExpandedNodeCount,
		EnqueuedNodeCount: jp.EnqueuedNodeCount,
	}, nil
}

// Summary is the read-back shape LoadSummary returns.
type Summary struct {
	StepCount         int
	TotalTicks        float64
	InteractionCount  int
	ExpandedNodeCount int
	EnqueuedNodeCount int
}

// StepView is the read-back shape of one step, for the plan inspector to
// walk and render. It carries the same description text jsonStep stores,
// never a reconstructed Step — see jsonStep's doc comment.
type StepView struct {
	Index       int
	Kind        string
	Description string
	Ticks       float64
}

func describeJSONStep(js jsonStep) string {
	switch js.Kind {
	case "interaction":
		switch {
		case js.SwitchAction != nil:
			return "switch to " + js.SwitchAction.Namespace + ":" + js.SwitchAction.Name
		case js.BuyPurchase != nil:
			return "buy " + js.BuyPurchase.Namespace + ":" + js.BuyPurchase.Name
		case len(js.SellKeep) > 0:
			return "sell inventory, reserving inputs"
		default:
			return "sell all inventory"
		}
	case "wait":
		if js.WaitDescription != "" {
			return js.WaitDescription
		}
		return "wait"
	case "macro":
		if js.MacroDescription != "" {
			return js.MacroDescription
		}
		return "macro"
	default:
		return js.Kind
	}
}

// LoadSteps reads back the per-step description list the plan inspector
// walks, alongside LoadSummary's aggregate counters.
func LoadSteps(path string) ([]StepView, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var jp jsonPlan
	if err := json.NewDecoder(f).Decode(&jp); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if jp.Version != fileVersion {
		return nil, fmt.Errorf("unsupported plan file version %d", jp.Version)
	}

	views := make([]StepView, len(jp.Steps))
	for i, js := range jp.Steps {
		views[i] = StepView{Index: i, Kind: js.Kind, Description: describeJSONStep(js), Ticks: js.Ticks}
	}
	return views, nil
}
