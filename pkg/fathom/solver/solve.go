package solver

import (
	"math"
	"os"

	"github.com/fathom-framework/fathom/internal/solver"
	"github.com/fathom-framework/fathom/pkg/fathom"
)

// Solution is returned by the Solver when the search ran to
// exhaustion. A completed search can still end without a usable answer
// when the problem has no feasible solution.
type Solution struct {
	err       error
	best      fathom.Solution
	processed int
}

// Error returns fathom.ErrInfeasible when the search exhausted the
// tree without finding a feasible solution, nil otherwise.
func (s *Solution) Error() error {
	return s.err
}

// Best returns the final incumbent. When Error is non-nil its value is
// the sense-correct infinity.
func (s *Solution) Best() fathom.Solution {
	return s.best
}

// Value returns the final incumbent's objective value.
func (s *Solution) Value() float64 {
	return s.best.Value()
}

// Processed returns the number of nodes the engine bounded during the
// search.
func (s *Solution) Processed() int {
	return s.processed
}

// Solver is the public entry point: it owns cross-search configuration
// such as tracing, while each Solve call owns its problem, queue and
// counters.
type Solver struct {
	tracer fathom.Tracer
}

func New(options ...Option) (*Solver, error) {
	s := Solver{}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *Solver) error

// WithTracer routes progress reports, and node events when the
// problem's Debug parameter is set, to t. Pass fathom.DiscardTracer to
// silence a search whose PrintInterval is set.
func WithTracer(t fathom.Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = fathom.LoggingTracer{Writer: os.Stdout}
		}
		return nil
	},
}

// Solve searches problem to exhaustion and returns the final incumbent
// together with the processed-node count. The error return covers
// invalid inputs (nil problem, bad sense, bad parameters); an
// infeasible problem is reported through Solution.Error instead, since
// the search itself completed.
func (s *Solver) Solve(problem fathom.Problem) (*Solution, error) {
	engine, err := solver.NewSolver(solver.WithProblem(problem), solver.WithTracer(s.tracer))
	if err != nil {
		return nil, err
	}

	best, processed := engine.Solve()

	solution := &Solution{best: best, processed: processed}
	if math.IsInf(best.Value(), int(problem.Sense())) {
		solution.err = fathom.ErrInfeasible
	}
	return solution, nil
}
