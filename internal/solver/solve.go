package solver

import (
	"fmt"
	"os"

	"github.com/fathom-framework/fathom/pkg/fathom"
)

// Solver runs one best-first branch-and-bound search to completion.
type Solver interface {
	// Solve returns the final incumbent and the number of nodes for
	// which ComputeBound was invoked. The incumbent is optimal within
	// the problem's configured tolerances.
	Solve() (fathom.Solution, int)
}

type solver struct {
	problem fathom.Problem
	tracer  fathom.Tracer
	nodes   fathom.NodeTracer // non-nil only when debug tracing is on
}

// Solve drives the Initializing -> Exploring -> Exhausted state
// machine. Counters are local to the call, so sequential searches on
// independently owned problems never share state.
func (s *solver) Solve() (fathom.Solution, int) {
	p := s.problem
	sense := p.Sense()
	params := p.Params()

	// Initializing: heuristic incumbent, then the root subproblem.
	guess := p.InitialGuess()
	if guess == nil {
		panic(&fathom.ContractError{Op: "InitialGuess",
			Detail: "returned nil; an absent heuristic must return a sense-infinite Solution"})
	}
	p.SetIncumbent(guess)

	root := p.RootNode()
	if root == nil {
		panic(&fathom.ContractError{Op: "RootNode", Detail: "returned nil"})
	}
	meta := root.Meta()
	meta.ID = 1
	meta.Depth = 0
	meta.Bound = sense.Unbounded()

	queue := newBoundQueue(sense)
	queue.Push(root)
	nextID := uint64(1)
	processed := 0

	// Exploring: pop the most optimistic subproblem, bound it
	// precisely, then fathom or harvest it and branch.
	for queue.Len() > 0 {
		node := queue.PopBest()
		m := node.Meta()
		s.traceNode(fathom.EventPop, m, queue.Len())

		bound := p.ComputeBound(node)
		processed++
		if params.Debug && bound != m.Bound {
			panic(&fathom.ContractError{Op: "ComputeBound",
				Detail: fmt.Sprintf("returned %g but stored %g in node %d", bound, m.Bound, m.ID)})
		}

		if Fathom(bound, sense, p.Incumbent().Value(), params) {
			s.traceNode(fathom.EventFathom, m, queue.Len())
		} else {
			before := p.Incumbent().Value()
			p.GetSolution(node)
			after := p.Incumbent().Value()
			if sense.Better(after, before) {
				s.traceNode(fathom.EventImprove, m, queue.Len())
				s.pruneWorst(queue, sense, after, params)
			}

			if !p.Terminal(node) {
				nextID = s.expand(queue, node, nextID)
			}
		}

		if params.PrintInterval > 0 && processed%params.PrintInterval == 0 && queue.Len() > 0 {
			best := queue.PeekBest().Meta().Bound
			incumbent := p.Incumbent().Value()
			s.tracer.Trace(fathom.Progress{
				Processed:  processed,
				Queued:     queue.Len(),
				BestBound:  best,
				Incumbent:  incumbent,
				GapPercent: gapPercent(best, sense, incumbent),
			})
		}
	}

	// Exhausted: nothing left that could beat the incumbent beyond
	// tolerance.
	return p.Incumbent(), processed
}

// pruneWorst discards the least optimistic tail of the queue that the
// improved incumbent has made fathomable. This is the only point of
// queue-wide pruning; it keeps queue growth bounded once good
// incumbents appear.
func (s *solver) pruneWorst(queue *boundQueue, sense fathom.Sense, incumbent float64, params fathom.Params) {
	for queue.Len() > 0 {
		w := queue.PeekWorst().Meta()
		if !Fathom(w.Bound, sense, incumbent, params) {
			return
		}
		queue.PopWorst()
		s.traceNode(fathom.EventPrune, w, queue.Len())
	}
}

// expand branches a surviving node, returning the id counter after the
// last child. Children receive the next ids and the parent's depth plus
// one; a child enters the queue only if its inherited or derived bound
// survives the fathom test.
func (s *solver) expand(queue *boundQueue, node fathom.Node, nextID uint64) uint64 {
	p := s.problem
	sense := p.Sense()
	params := p.Params()
	m := node.Meta()

	k := p.Separate(node)
	if k < 0 {
		panic(&fathom.ContractError{Op: "Separate",
			Detail: fmt.Sprintf("returned negative child count %d for node %d", k, m.ID)})
	}
	for i := 1; i <= k; i++ {
		child := p.MakeChild(node, i)
		if child == nil {
			panic(&fathom.ContractError{Op: "MakeChild",
				Detail: fmt.Sprintf("returned nil for child %d of node %d", i, m.ID)})
		}
		cm := child.Meta()
		nextID++
		cm.ID = nextID
		cm.Depth = m.Depth + 1
		if Fathom(cm.Bound, sense, p.Incumbent().Value(), params) {
			s.traceNode(fathom.EventDrop, cm, queue.Len())
			continue
		}
		queue.Push(child)
		s.traceNode(fathom.EventPush, cm, queue.Len())
	}
	return nextID
}

func (s *solver) traceNode(event string, m *fathom.NodeMeta, queued int) {
	if s.nodes == nil {
		return
	}
	s.nodes.TraceNode(fathom.NodeEvent{
		Event:  event,
		ID:     m.ID,
		Depth:  m.Depth,
		Bound:  m.Bound,
		Queued: queued,
	})
}

func NewSolver(options ...Option) (Solver, error) {
	s := solver{}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *solver) error

func WithProblem(p fathom.Problem) Option {
	return func(s *solver) error {
		if p == nil {
			return fathom.ErrNilProblem
		}
		if !p.Sense().Valid() {
			return fmt.Errorf("sense %d: %w", p.Sense(), fathom.ErrInvalidSense)
		}
		if err := p.Params().Validate(); err != nil {
			return fmt.Errorf("invalid search parameters: %w", err)
		}
		s.problem = p
		return nil
	}
}

func WithTracer(t fathom.Tracer) Option {
	return func(s *solver) error {
		s.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(s *solver) error {
		if s.problem == nil {
			return fathom.ErrNilProblem
		}
		return nil
	},
	func(s *solver) error {
		if s.tracer == nil {
			s.tracer = fathom.LoggingTracer{Writer: os.Stdout}
		}
		if s.problem.Params().Debug {
			if nt, ok := s.tracer.(fathom.NodeTracer); ok {
				s.nodes = nt
			}
		}
		return nil
	},
}
