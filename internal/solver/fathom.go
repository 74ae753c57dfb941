package solver

import (
	"math"

	"github.com/fathom-framework/fathom/pkg/fathom"
)

// Fathom decides whether a subproblem with the given bound can be
// discarded against the current incumbent. It is the single definition
// of "close enough to stop caring about this subtree", applied both to
// freshly bounded nodes and to the worst end of the queue after an
// incumbent improvement.
func Fathom(bound float64, sense fathom.Sense, incumbent float64, p fathom.Params) bool {
	// A bound at the sense-correct infinity marks a subproblem with no
	// feasible region: prunable unconditionally, before any arithmetic
	// that could turn Inf-Inf into NaN.
	if math.IsInf(bound, int(sense)) {
		return true
	}
	gap := float64(sense) * (incumbent - bound)
	if gap <= 0 {
		return true
	}
	if gap < p.AbsoluteTolerance {
		return true
	}
	scale := math.Abs(bound)
	if bound == 0 {
		scale = math.Abs(incumbent)
	}
	if scale == 0 {
		return false
	}
	return gap <= scale*p.RelativeTolerance
}

// gapPercent reports the relative optimality gap between incumbent and
// bound as a percentage, using the same scale rule as the relative
// fathom test. A zero scale reports zero.
func gapPercent(bound float64, sense fathom.Sense, incumbent float64) float64 {
	gap := float64(sense) * (incumbent - bound)
	if math.IsInf(gap, 0) {
		// No feasible incumbent yet, or an unbounded best bound: no
		// meaningful percentage exists.
		return math.Inf(1)
	}
	scale := math.Abs(bound)
	if bound == 0 {
		scale = math.Abs(incumbent)
	}
	if scale == 0 {
		return 0
	}
	return 100 * gap / scale
}
