package solver

import (
	"container/heap"
	"math"
	"time"

	"github.com/lox/betteridle/internal/candidate"
	"github.com/lox/betteridle/internal/capability"
	"github.com/lox/betteridle/internal/goal"
	"github.com/lox/betteridle/internal/heuristic"
	"github.com/lox/betteridle/internal/macro"
	"github.com/lox/betteridle/internal/plan"
	"github.com/lox/betteridle/internal/prereq"
	"github.com/lox/betteridle/internal/sellpolicy"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/waitdelta"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/registry"
)

// trainConsumingBufferTarget is the inventory count TrainConsumingSkillUntil
// macro edges restock each input to before running the consumer action.
const trainConsumingBufferTarget = 20

// edge describes one candidate successor before it becomes a node: the
// step that would land on it, independent of the resulting state.
type edge struct {
	kind           plan.StepKind
	interaction    state.Interaction
	waitFor        waitfor.WaitFor
	expectedAction registry.ActionID
	macroStep      macro.Macro
}

// searcher holds everything one Solve call needs; nothing here outlives a
// single solve (spec.md §5: caches are per-run, cleared at the start of
// each solve simply by constructing a fresh searcher).
type searcher struct {
	catalog registry.Registries
	goal    goal.Goal
	opts    SolverOptions

	adv    *state.Advancer
	enumer *candidate.Enumerator
	keyer  *bucketKeyer

	frontier *frontier
	visited  map[capability.Key]float64
	nodes    []node

	priceOf func(registry.ItemID) int

	startedAt         time.Time
	visitedRejections int
}

// Solve runs the A* search from initial under g (spec.md §4.9, §6's
// solve(initialState, goal, options)).
func Solve(catalog registry.Registries, initial state.GameState, g goal.Goal, opts SolverOptions) SolverResult {
	if err := opts.Validate(); err != nil {
		return SolverResult{Failure: &SolverFailure{Reason: FailureNoPathToGoal, Detail: err.Error()}}
	}

	rng := NewFastRand(opts.Seed)
	se := &searcher{
		catalog:   catalog,
		goal:      g,
		opts:      opts,
		adv:       state.NewAdvancer(catalog, nil),
		enumer:    candidate.NewEnumerator(catalog, opts.CandidateCacheSize, rng),
		keyer:     newBucketKeyer(catalog, g),
		frontier:  newFrontier(),
		visited:   make(map[capability.Key]float64),
		priceOf:   sellpolicy.SellPrice(catalog),
		startedAt: time.Now(),
	}
	return se.run(initial)
}

func (se *searcher) run(initial state.GameState) SolverResult {
	root := node{parent: -1, state: initial}
	root.h = heuristic.Estimate(se.catalog, initial, se.goal)
	se.nodes = append(se.nodes, root)

	pq := &priorityQueue{{node: 0, f: root.h, ticks: 0}}
	heap.Init(pq)
	enqueued, expanded := 1, 0
	bestProgress := se.goal.Progress(initial, se.catalog)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		n := se.nodes[item.node]

		if p := se.goal.Progress(n.state, se.catalog); p > bestProgress {
			bestProgress = p
		}
		if se.goal.IsSatisfied(n.state, se.catalog) {
			return se.success(item.node, expanded, enqueued)
		}

		expanded++
		if expanded > se.opts.MaxExpandedNodes {
			return se.failure(FailureExceededBudget, expanded, enqueued, bestProgress, "max expanded nodes reached")
		}

		se.expand(pq, item.node, &enqueued)

		if enqueued > se.opts.MaxQueueSize {
			return se.failure(FailureExceededBudget, expanded, enqueued, bestProgress, "max queue size reached")
		}
	}

	return se.failure(FailureNoPathToGoal, expanded, enqueued, bestProgress, "frontier exhausted")
}

// expand generates every successor edge from parentIdx in the fixed order
// spec.md §5 mandates: interactions before wait before macros, candidates
// in their enumeration order.
func (se *searcher) expand(pq *priorityQueue, parentIdx int, enqueued *int) {
	n := se.nodes[parentIdx]
	cands := se.enumer.Enumerate(n.state, se.goal)

	for _, actID := range cands.SwitchCandidates {
		child, err := se.adv.ApplyInteraction(n.state, state.SwitchActivity{ActionID: actID}, se.priceOf)
		if err != nil {
			continue
		}
		se.offer(pq, enqueued, parentIdx, child, 0, edge{kind: plan.StepInteraction, interaction: state.SwitchActivity{ActionID: actID}})
	}

	for _, pid := range cands.BuyCandidates {
		child, err := se.adv.ApplyInteraction(n.state, state.BuyUpgrade{PurchaseID: pid}, se.priceOf)
		if err != nil {
			continue
		}
		se.offer(pq, enqueued, parentIdx, child, 0, edge{kind: plan.StepInteraction, interaction: state.BuyUpgrade{PurchaseID: pid}})
	}

	if cands.EmitSellCandidate {
		keep := se.resolvePolicy(n.state).KeepItems(n.state)
		child, err := se.adv.ApplyInteraction(n.state, state.SellItems{Keep: keep}, se.priceOf)
		if err == nil {
			se.offer(pq, enqueued, parentIdx, child, 0, edge{kind: plan.StepInteraction, interaction: state.SellItems{Keep: keep}})
		}
	}

	wd := waitdelta.Select(se.catalog, n.state, se.goal, cands)
	if !math.IsInf(wd.Ticks, 1) && wd.Ticks > 0 {
		ticks := math.Ceil(wd.Ticks)
		child := se.adv.AdvanceDeterministic(n.state, int(ticks))
		if !se.isZeroProgressWait(n.state, child) {
			se.offer(pq, enqueued, parentIdx, child, ticks, edge{
				kind:           plan.StepWait,
				waitFor:        wd.WaitFor,
				expectedAction: activeActionID(n.state),
			})
		}
	}

	for _, m := range se.generateMacros(n.state, cands) {
		child, ticks, reason := m.Expand(se.adv, se.catalog, n.state)
		if reason == macro.StopNoProducer || reason == macro.StopDepthLimitExceeded {
			continue
		}
		se.offer(pq, enqueued, parentIdx, child, float64(ticks), edge{kind: plan.StepMacro, macroStep: m})
	}
}

// isZeroProgressWait implements spec.md §4.9's "zero-progress waits ...
// are discarded": a wait edge whose visited-set key is unchanged by the
// advance (and that hasn't reached the goal) made no material progress.
func (se *searcher) isZeroProgressWait(before, after state.GameState) bool {
	if se.goal.IsSatisfied(after, se.catalog) {
		return false
	}
	return se.keyer.visitedKey(before) == se.keyer.visitedKey(after)
}

// offer applies dominance pruning and visited-set de-duplication to one
// candidate successor and, if it survives both, pushes it onto pq.
func (se *searcher) offer(pq *priorityQueue, enqueued *int, parentIdx int, child state.GameState, ticks float64, e edge) {
	parent := se.nodes[parentIdx]
	newTicks := parent.ticksSoFar + ticks
	interactionCount := parent.interactionCount
	if e.kind == plan.StepInteraction {
		interactionCount++
	}

	reachedGoal := se.goal.IsSatisfied(child, se.catalog)

	vKey := se.keyer.visitedKey(child)
	if prevTicks, ok := se.visited[vKey]; ok && prevTicks <= newTicks && !reachedGoal {
		se.visitedRejections++
		return
	}

	bucket := se.keyer.domBucket(child)
	progress := se.goal.Progress(child, se.catalog)
	if !se.frontier.Offer(bucket, newTicks, progress) {
		return
	}

	se.visited[vKey] = newTicks

	cn := node{
		state:            child,
		ticksSoFar:       newTicks,
		interactionCount: interactionCount,
		parent:           parentIdx,
		stepKind:         e.kind,
		interaction:      e.interaction,
		waitFor:          e.waitFor,
		expectedAction:   e.expectedAction,
		macroStep:        e.macroStep,
		stepTicks:        ticks,
	}
	cn.h = heuristic.Estimate(se.catalog, child, se.goal)

	se.nodes = append(se.nodes, cn)
	idx := len(se.nodes) - 1
	heap.Push(pq, pqItem{node: idx, f: newTicks + cn.h, ticks: newTicks})
	*enqueued++
}

// generateMacros builds the macro edges available from s: one "resolve the
// next prerequisite" macro per switch candidate that isn't immediately
// runnable (internal/prereq), plus a coupled produce/consume-loop macro for
// switch candidates that are already runnable consuming-skill actions.
// Deduplicated by description, since two switch candidates can surface the
// same prerequisite macro.
func (se *searcher) generateMacros(s state.GameState, cands candidate.Candidates) []macro.Macro {
	seen := map[string]bool{}
	var out []macro.Macro
	add := func(m macro.Macro) {
		if m == nil {
			return
		}
		key := m.Describe()
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, m)
	}

	for _, actID := range cands.SwitchCandidates {
		res := prereq.EnsureExecutable(se.catalog, s, actID, se.goal)
		switch res.Status {
		case prereq.NeedsMacros:
			if len(res.Macros) > 0 {
				add(res.Macros[0])
			}
		case prereq.Ready:
			if act, ok := se.catalog.ActionByID(actID); ok {
				if m, ok := se.trainConsumingMacro(s, act, cands.Watch); ok {
					add(m)
				}
			}
		}
	}
	return out
}

// trainConsumingMacro proposes running act as a coupled produce/consume
// loop (spec.md §4.6) when act belongs to a consuming skill and every one
// of its inputs already has an unlocked producer.
func (se *searcher) trainConsumingMacro(s state.GameState, act registry.Action, watch candidate.Watch) (macro.Macro, bool) {
	if !act.Skill.IsConsuming() || !act.HasInputs() {
		return nil, false
	}
	producers := map[registry.ItemID]registry.ActionID{}
	for _, in := range act.Inputs {
		producer, _, found := prereq.FindProducer(se.catalog, s, in.Item, true)
		if !found {
			return nil, false
		}
		producers[in.Item] = producer
	}

	policy := se.resolvePolicy(s)
	var watched []macro.StopRule
	for _, pid := range watch.Upgrades {
		p, ok := se.catalog.PurchaseByID(pid)
		if !ok {
			continue
		}
		cost, ok := p.Cost.SingleFixedCost()
		if !ok {
			continue
		}
		watched = append(watched, macro.StopWhenUpgradeAffordable{Purchase: pid, Cost: cost, Policy: policy})
	}

	return macro.TrainConsumingSkillUntil{
		ConsumerAction:   act.ID,
		ProducerForInput: producers,
		BufferTarget:     trainConsumingBufferTarget,
		SellSpec:         se.sellSpec(),
		Stop:             macro.StopAtGoal{Goal: se.goal},
		Watched:          watched,
	}, true
}

func (se *searcher) sellSpec() sellpolicy.Spec {
	if se.opts.SellPolicyOverride != nil {
		return se.opts.SellPolicyOverride
	}
	return se.goal.SellPolicySpec()
}

func (se *searcher) resolvePolicy(s state.GameState) sellpolicy.Policy {
	return se.sellSpec().Resolve(s, se.catalog, se.goal.ConsumingSkills())
}

func (se *searcher) success(goalIdx, expanded, enqueued int) SolverResult {
	n := se.nodes[goalIdx]
	p := &plan.Plan{
		Steps:             se.reconstruct(goalIdx),
		TotalTicks:        n.ticksSoFar,
		InteractionCount:  n.interactionCount,
		ExpandedNodeCount: expanded,
		EnqueuedNodeCount: enqueued,
		SellPolicyMarkers: []plan.SellPolicyMarker{
			{StepIndex: 0, Policy: se.resolvePolicy(se.nodes[0].state)},
		},
	}
	return SolverResult{Plan: p, Profile: se.profile(expanded, enqueued)}
}

func (se *searcher) failure(reason FailureReason, expanded, enqueued int, bestProgress float64, detail string) SolverResult {
	return SolverResult{
		Failure: &SolverFailure{
			Reason:        reason,
			ExpandedNodes: expanded,
			EnqueuedNodes: enqueued,
			BestProgress:  bestProgress,
			Detail:        detail,
		},
		Profile: se.profile(expanded, enqueued),
	}
}

func (se *searcher) profile(expanded, enqueued int) Profile {
	hits, misses := se.enumer.Stats()
	return Profile{
		ExpandedNodes:         expanded,
		EnqueuedNodes:         enqueued,
		CandidateCacheHits:    hits,
		CandidateCacheMisses:  misses,
		VisitedSetRejections:  se.visitedRejections,
		DominanceEvictions:    se.frontier.evictions,
		WallTime:              time.Since(se.startedAt),
	}
}

// reconstruct walks back-pointers from goalIdx to the root, building steps
// in reverse, then reverses them (spec.md §4.10).
func (se *searcher) reconstruct(goalIdx int) []plan.Step {
	var rev []plan.Step
	for idx := goalIdx; se.nodes[idx].parent != -1; idx = se.nodes[idx].parent {
		n := se.nodes[idx]
		rev = append(rev, plan.Step{
			Kind:           n.stepKind,
			Interaction:    n.interaction,
			WaitFor:        n.waitFor,
			ExpectedAction: n.expectedAction,
			Macro:          n.macroStep,
			Ticks:          n.stepTicks,
		})
	}
	steps := make([]plan.Step, len(rev))
	for i, s := range rev {
		steps[len(rev)-1-i] = s
	}
	return steps
}
