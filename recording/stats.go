package recording

import (
	"github.com/rs/xid"

	"github.com/sarchlab/traverse/hooking"
	"github.com/sarchlab/traverse/traversing"
)

// RoundStatsTable is the table that the Collector records into.
const RoundStatsTable = "traversal_rounds"

// RoundStats is one recorded traversal round.
type RoundStats struct {
	RunID        string
	Traverser    string
	Algorithm    string
	Source       int
	NodesVisited int
	FrontierPeak int
	DurationNS   int64
}

// A Collector records every traversal round of the traversers it is attached
// to. Attach it with AcceptHook; rows appear in the RoundStatsTable.
type Collector struct {
	recorder Recorder
	runID    string
}

// NewCollector creates a collector that records into recorder. All rounds
// observed by one collector share a run id.
func NewCollector(recorder Recorder) *Collector {
	c := &Collector{
		recorder: recorder,
		runID:    xid.New().String(),
	}

	recorder.CreateTable(RoundStatsTable, RoundStats{})

	return c
}

// RunID returns the id shared by all rounds this collector records.
func (c *Collector) RunID() string {
	return c.runID
}

// Func records a row for every finished round. Other hook positions are
// ignored.
func (c *Collector) Func(ctx hooking.HookCtx) {
	if ctx.Pos != traversing.HookPosRoundEnd {
		return
	}

	info := ctx.Detail.(*traversing.RoundInfo)

	stats := RoundStats{
		RunID:        c.runID,
		Algorithm:    info.Algorithm,
		Source:       info.Source,
		NodesVisited: info.NodesVisited,
		FrontierPeak: info.FrontierPeak,
		DurationNS:   info.Duration.Nanoseconds(),
	}

	if named, ok := ctx.Domain.(interface{ Name() string }); ok {
		stats.Traverser = named.Name()
	}

	c.recorder.InsertData(RoundStatsTable, stats)
}
