package trace

import (
	"github.com/sirupsen/logrus"

	"github.com/fathom-framework/fathom/pkg/fathom"
)

// LogrusTracer renders search progress and node events as structured
// log entries. Progress reports go out at info level, per-node events
// at debug level, so a logger below debug keeps node events silent
// even when the engine emits them.
type LogrusTracer struct {
	Logger *logrus.Logger
}

var _ fathom.Tracer = LogrusTracer{}
var _ fathom.NodeTracer = LogrusTracer{}

func (t LogrusTracer) Trace(p fathom.Progress) {
	t.Logger.WithFields(logrus.Fields{
		"explored":  p.Processed,
		"queued":    p.Queued,
		"best":      p.BestBound,
		"incumbent": p.Incumbent,
		"gap_pct":   p.GapPercent,
	}).Info("search progress")
}

func (t LogrusTracer) TraceNode(e fathom.NodeEvent) {
	t.Logger.WithFields(logrus.Fields{
		"node":   e.ID,
		"depth":  e.Depth,
		"bound":  e.Bound,
		"queued": e.Queued,
	}).Debug(e.Event)
}
