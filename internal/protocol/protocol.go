// Package protocol defines the JSON message envelopes internal/server and
// its clients (websocket clients of the serve subcommand, and
// internal/server's own tests) exchange over a
// gorilla/websocket connection. Grounded on the teacher's internal/protocol
// package: a Type-discriminated, flat struct per message kind, plus a
// Marshal/Unmarshal pair that switches on concrete type. The teacher codes
// its wire format with tinylib/msgp (a generated msgpack codec); that
// dependency isn't part of this port's stack, so messages here marshal
// with encoding/json instead, the same shape translated to a different
// codec rather than reinvented.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/watchset"
	"github.com/lox/betteridle/sdk/solver"
)

// Message type discriminators, carried in every envelope's Type field.
const (
	TypeSolveRequest    = "solve_request"
	TypeSolveResponse   = "solve_response"
	TypeExecuteRequest  = "execute_request"
	TypeExecuteProgress = "execute_progress"
	TypeExecuteResult   = "execute_result"
	TypeError           = "error"
)

// SolveRequest asks a session to solve for a goal from a given state
// (spec.md §6's solve(initialState, goal, options)). Goal and State are
// carried pre-serialized via goal.ToJSON/state.ToJSON rather than embedded
// as nested objects, so this package never re-implements either's
// tagged-union marshaling.
type SolveRequest struct {
	Type          string              `json:"type"`
	Goal          json.RawMessage     `json:"goal"`
	State         json.RawMessage     `json:"state"`
	Options       SolverOptionsWire   `json:"options"`
	Watch         WatchWire           `json:"watch,omitempty"`
	WatchSetConfig watchset.Config    `json:"watch_set_config,omitempty"`
}

// SolverOptionsWire mirrors the scalar fields of sdk/solver.SolverOptions.
// SellPolicyOverride is omitted, matching internal/config.SolverSettings:
// it is an interface value chosen per goal, not a wire scalar.
type SolverOptionsWire struct {
	MaxExpandedNodes           int     `json:"max_expanded_nodes"`
	MaxQueueSize               int     `json:"max_queue_size"`
	Seed                       int64   `json:"seed"`
	CandidateCacheSize         int     `json:"candidate_cache_size"`
	InventoryThresholdFraction float64 `json:"inventory_threshold_fraction"`
}

// ToSolverOptions converts the wire representation into the solver's
// native options, leaving SellPolicyOverride for the caller to attach.
func (w SolverOptionsWire) ToSolverOptions() solver.SolverOptions {
	return solver.SolverOptions{
		MaxExpandedNodes:           w.MaxExpandedNodes,
		MaxQueueSize:               w.MaxQueueSize,
		Seed:                       w.Seed,
		CandidateCacheSize:         w.CandidateCacheSize,
		InventoryThresholdFraction: w.InventoryThresholdFraction,
	}
}

// WatchWire mirrors internal/candidate.Watch's namespace/name identifiers,
// flattened the same way jsonActionState flattens registry.ActionID.
type WatchWire struct {
	Upgrades      []IDWire `json:"upgrades,omitempty"`
	LockedActions []IDWire `json:"locked_actions,omitempty"`
}

// IDWire is a (namespace, name) pair, the wire shape shared by every
// registry identifier this package carries.
type IDWire struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// DecodeGoal reconstructs the request's goal via goal.FromJSON.
func (r SolveRequest) DecodeGoal() (goal.Goal, error) {
	return goal.FromJSON(r.Goal)
}

// DecodeState reconstructs the request's starting state via
// state.FromJSON.
func (r SolveRequest) DecodeState() (state.GameState, error) {
	return state.FromJSON(r.State)
}

// SolveResponse reports a completed solve (spec.md §6's success(plan,
// profile) | failure(reason, diagnostics, profile) result shape). Exactly
// one of Plan or Failure is set. RunID identifies the session-held Plan so
// a later ExecuteRequest can reference it without re-transmitting it: a
// Plan is not itself JSON round-trippable into a live executable value
// (internal/plan/json.go's jsonStep is diagnostic-only), so it is carried
// as an in-memory reference on the server, not serialized here.
type SolveResponse struct {
	Type    string       `json:"type"`
	RunID   string       `json:"run_id"`
	Plan    *PlanSummary `json:"plan,omitempty"`
	Failure *FailureWire `json:"failure,omitempty"`
	Profile ProfileWire  `json:"profile"`
}

// PlanSummary mirrors plan.Summary: enough detail to render without
// carrying the full step list over the wire. A client that wants the full
// step list fetches it separately (cmd/inspect reads the Plan's persisted
// JSON file directly via plan.LoadSummary).
type PlanSummary struct {
	StepCount         int     `json:"step_count"`
	TotalTicks        float64 `json:"total_ticks"`
	InteractionCount  int     `json:"interaction_count"`
	ExpandedNodeCount int     `json:"expanded_node_count"`
	EnqueuedNodeCount int     `json:"enqueued_node_count"`
}

// FailureWire mirrors sdk/solver.SolverFailure.
type FailureWire struct {
	Reason        string  `json:"reason"`
	ExpandedNodes int     `json:"expanded_nodes"`
	EnqueuedNodes int     `json:"enqueued_nodes"`
	BestProgress  float64 `json:"best_progress"`
	Detail        string  `json:"detail,omitempty"`
}

// ProfileWire mirrors sdk/solver.Profile.
type ProfileWire struct {
	ExpandedNodes        int     `json:"expanded_nodes"`
	EnqueuedNodes        int     `json:"enqueued_nodes"`
	CandidateCacheHits   int     `json:"candidate_cache_hits"`
	CandidateCacheMisses int     `json:"candidate_cache_misses"`
	VisitedSetRejections int     `json:"visited_set_rejections"`
	DominanceEvictions   int     `json:"dominance_evictions"`
	WallTimeMillis       float64 `json:"wall_time_millis"`
}

// NewSolveResponse builds a SolveResponse from a solver.SolverResult.
func NewSolveResponse(runID string, result solver.SolverResult) SolveResponse {
	resp := SolveResponse{
		Type:    TypeSolveResponse,
		RunID:   runID,
		Profile: toProfileWire(result.Profile),
	}
	if result.Succeeded() {
		resp.Plan = &PlanSummary{
			StepCount:         len(result.Plan.Steps),
			TotalTicks:        result.Plan.TotalTicks,
			InteractionCount:  result.Plan.InteractionCount,
			ExpandedNodeCount: result.Plan.ExpandedNodeCount,
			EnqueuedNodeCount: result.Plan.EnqueuedNodeCount,
		}
	} else {
		resp.Failure = &FailureWire{
			Reason:        result.Failure.Reason.String(),
			ExpandedNodes: result.Failure.ExpandedNodes,
			EnqueuedNodes: result.Failure.EnqueuedNodes,
			BestProgress:  result.Failure.BestProgress,
			Detail:        result.Failure.Detail,
		}
	}
	return resp
}

func toProfileWire(p solver.Profile) ProfileWire {
	return ProfileWire{
		ExpandedNodes:        p.ExpandedNodes,
		EnqueuedNodes:        p.EnqueuedNodes,
		CandidateCacheHits:   p.CandidateCacheHits,
		CandidateCacheMisses: p.CandidateCacheMisses,
		VisitedSetRejections: p.VisitedSetRejections,
		DominanceEvictions:   p.DominanceEvictions,
		WallTimeMillis:       float64(p.WallTime.Microseconds()) / 1000,
	}
}

// ExecuteRequest starts live execution of the plan a prior SolveRequest
// produced. RunID is the SolveResponse's RunID; the session looks up the
// in-memory Plan it already holds rather than receiving one over the wire.
type ExecuteRequest struct {
	Type  string `json:"type"`
	RunID string `json:"run_id"`
}

// ExecuteProgress mirrors internal/executor.StepProgress, streamed one per
// completed plan step (spec.md §4.12).
type ExecuteProgress struct {
	Type           string  `json:"type"`
	RunID          string  `json:"run_id"`
	StepIndex      int     `json:"step_index"`
	Kind           string  `json:"kind"`
	Description    string  `json:"description"`
	PlannedTicks   float64 `json:"planned_ticks"`
	EstimatedTicks float64 `json:"estimated_ticks"`
	ActualTicks    float64 `json:"actual_ticks"`
	Deaths         int     `json:"deaths"`
}

// ExecuteResult mirrors internal/executor.Result, sent once execution
// stops (whether by completing or by hitting a replan boundary).
type ExecuteResult struct {
	Type              string  `json:"type"`
	RunID             string  `json:"run_id"`
	Completed         bool    `json:"completed"`
	StepsRun          int     `json:"steps_run"`
	Deaths            int     `json:"deaths"`
	TotalPlannedTicks float64 `json:"total_planned_ticks"`
	TotalActualTicks  float64 `json:"total_actual_ticks"`
	StoppedAt         string  `json:"stopped_at,omitempty"`
}

// ErrorMessage reports a protocol- or session-level error back to the
// client (a malformed request, an unknown run id, a session at capacity).
type ErrorMessage struct {
	Type   string `json:"type"`
	RunID  string `json:"run_id,omitempty"`
	Detail string `json:"detail"`
}

// ErrUnknownMessageType is returned by Unmarshal for an unrecognized Type
// discriminator.
var ErrUnknownMessageType = fmt.Errorf("protocol: unknown message type")

// Marshal serializes a message envelope to JSON. v must be a pointer to one
// of this package's message types.
func Marshal(v interface{}) ([]byte, error) {
	switch v.(type) {
	case *SolveRequest, *SolveResponse, *ExecuteRequest, *ExecuteProgress, *ExecuteResult, *ErrorMessage:
		return json.Marshal(v)
	default:
		return nil, ErrUnknownMessageType
	}
}

// Unmarshal deserializes JSON data into v, one of this package's message
// types. Callers that don't yet know the concrete type should first decode
// into an Envelope to read Type, then dispatch to the matching struct.
func Unmarshal(data []byte, v interface{}) error {
	switch v.(type) {
	case *SolveRequest, *SolveResponse, *ExecuteRequest, *ExecuteProgress, *ExecuteResult, *ErrorMessage:
		return json.Unmarshal(data, v)
	default:
		return ErrUnknownMessageType
	}
}

// Envelope reads only the Type discriminator, letting a receiver pick the
// concrete message struct to decode into next.
type Envelope struct {
	Type string `json:"type"`
}

// PeekType reports data's Type discriminator without decoding the rest of
// the message.
func PeekType(data []byte) (string, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", err
	}
	return env.Type, nil
}
