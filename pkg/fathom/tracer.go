package fathom

import (
	"fmt"
	"io"
)

// Progress is a point-in-time snapshot of a running search, emitted
// every Params.PrintInterval processed nodes while the queue is
// non-empty.
type Progress struct {
	// Processed counts the nodes bounded so far.
	Processed int
	// Queued is the current queue size.
	Queued int
	// BestBound is the bound at the best-first end of the queue.
	BestBound float64
	// Incumbent is the current incumbent's objective value.
	Incumbent float64
	// GapPercent is the relative optimality gap between incumbent and
	// best bound, as a percentage; zero when the comparison scale is
	// zero.
	GapPercent float64
}

// Tracer receives search progress reports.
type Tracer interface {
	Trace(p Progress)
}

// Node event kinds reported to a NodeTracer.
const (
	EventPop     = "pop"     // node removed from the best-first end
	EventFathom  = "fathom"  // freshly bounded node discarded
	EventImprove = "improve" // incumbent replaced
	EventPrune   = "prune"   // queued node discarded from the worst end
	EventPush    = "push"    // child admitted to the queue
	EventDrop    = "drop"    // child discarded before entering the queue
)

// NodeEvent describes one engine decision about one node.
type NodeEvent struct {
	Event  string
	ID     uint64
	Depth  int
	Bound  float64
	Queued int
}

// NodeTracer is an optional extension of Tracer. A tracer implementing
// it receives per-node events when Params.Debug is set.
type NodeTracer interface {
	TraceNode(e NodeEvent)
}

// DiscardTracer drops all reports.
type DiscardTracer struct{}

func (DiscardTracer) Trace(_ Progress) {
}

// LoggingTracer writes plain-text status lines to Writer.
type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p Progress) {
	fmt.Fprintf(t.Writer, "explored %d queued %d best %g incumbent %g gap %.2f%%\n",
		p.Processed, p.Queued, p.BestBound, p.Incumbent, p.GapPercent)
}

func (t LoggingTracer) TraceNode(e NodeEvent) {
	fmt.Fprintf(t.Writer, "%s node %d depth %d bound %g queued %d\n",
		e.Event, e.ID, e.Depth, e.Bound, e.Queued)
}
