package traversing

import (
	"log"
	"time"

	"github.com/sarchlab/traverse/graphs"
	"github.com/sarchlab/traverse/hooking"
	"github.com/sarchlab/traverse/visiting"
)

// HookPosRoundStart marks the beginning of a traversal round. The hook
// Detail is a *RoundInfo with the result fields unset.
var HookPosRoundStart = &hooking.HookPos{Name: "Round Start"}

// HookPosNodeVisit marks the first visit of a node within a round. The hook
// Item is the node id.
var HookPosNodeVisit = &hooking.HookPos{Name: "Node Visit"}

// HookPosRoundEnd marks the end of a traversal round. The hook Detail is a
// completed *RoundInfo.
var HookPosRoundEnd = &hooking.HookPos{Name: "Round End"}

// RoundInfo describes one traversal round. It is delivered to hooks at round
// boundaries.
type RoundInfo struct {
	Algorithm    string
	Source       int
	NodesVisited int
	FrontierPeak int
	Duration     time.Duration
}

// A Traverser runs traversal algorithms over one graph, reusing a single
// visited tracker across rounds. T selects the tracker's counter width.
//
// A Traverser is not safe for concurrent use. ParallelBFS manages its own
// worker goroutines internally and still requires exclusive access to the
// Traverser.
type Traverser[T visiting.Unsigned] struct {
	hooking.HookableBase

	name       string
	graph      *graphs.Graph
	tracker    *visiting.Tracker[T]
	roundStart time.Time
}

// Name returns the name of the traverser.
func (t *Traverser[T]) Name() string {
	return t.name
}

// BFS visits all nodes reachable from source in breadth-first order and
// returns them in visit order.
func (t *Traverser[T]) BFS(source int) []int {
	t.sourceMustBeInGraph(source)
	info := t.startRound("BFS", source)

	t.tracker.SetVisited(source)
	t.onVisit(source)
	order := []int{source}

	frontier := []int{source}
	for len(frontier) > 0 {
		if len(frontier) > info.FrontierPeak {
			info.FrontierPeak = len(frontier)
		}

		var next []int
		for _, node := range frontier {
			for _, neighbor := range t.graph.Outgoing(node) {
				if t.tracker.SetAndGetVisited(neighbor) {
					continue
				}

				t.onVisit(neighbor)
				order = append(order, neighbor)
				next = append(next, neighbor)
			}
		}

		frontier = next
	}

	t.endRound(info, len(order))

	return order
}

// DFS visits all nodes reachable from source in depth-first order and
// returns them in visit order. Neighbors are explored in insertion order,
// matching the recursive formulation on an explicit stack.
func (t *Traverser[T]) DFS(source int) []int {
	t.sourceMustBeInGraph(source)
	info := t.startRound("DFS", source)

	var order []int
	stack := []int{source}

	for len(stack) > 0 {
		if len(stack) > info.FrontierPeak {
			info.FrontierPeak = len(stack)
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t.tracker.SetAndGetVisited(node) {
			continue
		}

		t.onVisit(node)
		order = append(order, node)

		neighbors := t.graph.Outgoing(node)
		for i := len(neighbors) - 1; i >= 0; i-- {
			if !t.tracker.IsVisited(neighbors[i]) {
				stack = append(stack, neighbors[i])
			}
		}
	}

	t.endRound(info, len(order))

	return order
}

// ConnectedComponents labels every node with a component id, following edges
// in their stored direction. Graphs built with AddBiEdge get the usual
// undirected component semantics. Component ids are dense and assigned in
// order of the lowest node id in each component.
//
// The whole labeling is one round: marks accumulate across sources, so each
// node is expanded exactly once no matter how many components exist.
func (t *Traverser[T]) ConnectedComponents() []int {
	numNodes := t.graph.NumNodes()
	info := t.startRound("ConnectedComponents", -1)

	labels := make([]int, numNodes)
	numComponents := 0

	for source := 0; source < numNodes; source++ {
		if t.tracker.SetAndGetVisited(source) {
			continue
		}

		t.onVisit(source)
		labels[source] = numComponents

		frontier := []int{source}
		for len(frontier) > 0 {
			var next []int
			for _, node := range frontier {
				for _, neighbor := range t.graph.Outgoing(node) {
					if t.tracker.SetAndGetVisited(neighbor) {
						continue
					}

					t.onVisit(neighbor)
					labels[neighbor] = numComponents
					next = append(next, neighbor)
				}
			}

			frontier = next
		}

		numComponents++
	}

	t.endRound(info, numNodes)

	return labels
}

func (t *Traverser[T]) startRound(algorithm string, source int) *RoundInfo {
	t.tracker.Clear()

	info := &RoundInfo{
		Algorithm: algorithm,
		Source:    source,
	}

	if t.NumHooks() > 0 {
		t.InvokeHook(hooking.HookCtx{
			Domain: t,
			Pos:    HookPosRoundStart,
			Detail: info,
		})
	}

	t.roundStart = time.Now()

	return info
}

func (t *Traverser[T]) endRound(info *RoundInfo, visited int) {
	info.NodesVisited = visited
	info.Duration = time.Since(t.roundStart)

	if t.NumHooks() > 0 {
		t.InvokeHook(hooking.HookCtx{
			Domain: t,
			Pos:    HookPosRoundEnd,
			Detail: info,
		})
	}
}

func (t *Traverser[T]) onVisit(node int) {
	if t.NumHooks() > 0 {
		t.InvokeHook(hooking.HookCtx{
			Domain: t,
			Pos:    HookPosNodeVisit,
			Item:   node,
		})
	}
}

func (t *Traverser[T]) sourceMustBeInGraph(source int) {
	if source < 0 || source >= t.graph.NumNodes() {
		log.Panicf("source %d out of range [0, %d)",
			source, t.graph.NumNodes())
	}
}
