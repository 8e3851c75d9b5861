package monitoring

import (
	"github.com/sarchlab/traverse/hooking"
	"github.com/sarchlab/traverse/traversing"
)

// A TraversalProgressHook feeds a monitor's progress bars from traversal
// hooks. Each round gets its own bar, sized to the graph, filled as nodes
// are visited and removed when the round ends.
//
// The hook must only be attached to traversers whose per-node hooks fire
// from a single goroutine.
type TraversalProgressHook struct {
	monitor  *Monitor
	numNodes uint64
	bar      *ProgressBar
}

// NewTraversalProgressHook creates a hook that reports to monitor. numNodes
// is the graph size used as the bar total.
func NewTraversalProgressHook(
	monitor *Monitor,
	numNodes int,
) *TraversalProgressHook {
	return &TraversalProgressHook{
		monitor:  monitor,
		numNodes: uint64(numNodes),
	}
}

// Func updates the progress bar of the current round.
func (h *TraversalProgressHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case traversing.HookPosRoundStart:
		info := ctx.Detail.(*traversing.RoundInfo)

		name := info.Algorithm
		if named, ok := ctx.Domain.(Traverser); ok {
			name = named.Name() + " " + info.Algorithm
		}

		h.bar = h.monitor.CreateProgressBar(name, h.numNodes)
	case traversing.HookPosNodeVisit:
		if h.bar != nil {
			h.bar.IncrementFinished(1)
		}
	case traversing.HookPosRoundEnd:
		if h.bar != nil {
			h.monitor.CompleteProgressBar(h.bar)
			h.bar = nil
		}
	}
}
