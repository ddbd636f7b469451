package solver

import (
	"github.com/lox/betteridle/internal/macro"
	"github.com/lox/betteridle/internal/plan"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/waitfor"
	"github.com/lox/betteridle/registry"
)

// node is one entry in the search arena. Children reference their parent by
// index so a successful solve can walk back-pointers to reconstruct a
// plan.Plan (spec.md §4.10) without storing an explicit tree.
type node struct {
	state            state.GameState
	ticksSoFar       float64
	interactionCount int
	parent           int // -1 for the root
	h                float64

	// The edge from parent to this node, for reconstruction. Exactly one
	// of interaction/waitFor/macroStep is populated, selected by stepKind.
	stepKind       plan.StepKind
	interaction    state.Interaction
	waitFor        waitfor.WaitFor
	expectedAction registry.ActionID
	macroStep      macro.Macro
	stepTicks      float64
}

// pqItem is a priority-queue entry: f = ticksSoFar + h, tie-broken by lower
// ticksSoFar first (spec.md §4.9).
type pqItem struct {
	node  int
	f     float64
	ticks float64
}

// priorityQueue is a container/heap min-heap over pqItem, grounded on
// stadam23-Eve-flipper/internal/graph/dijkstra.go's pqItem/priorityQueue
// pattern (the teacher's own sdk/solver/traversal.go is a CFR recursive
// tree walk with no priority-queue analog to draw from).
type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].ticks < pq[j].ticks
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(pqItem))
}
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
