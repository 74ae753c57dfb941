package fathom

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNilProblem is returned when a solver is constructed without a
	// problem to search.
	ErrNilProblem = errors.New("problem must not be nil")

	// ErrInvalidSense is returned when a problem reports a sense other
	// than Minimize or Maximize.
	ErrInvalidSense = errors.New("sense must be Minimize or Maximize")

	// ErrInfeasible reports that the search exhausted the tree without
	// ever finding a feasible solution.
	ErrInfeasible = errors.New("no feasible solution found")
)

// ContractError reports a defect in a problem implementation, such as a
// negative child count from Separate or a nil node from MakeChild. The
// engine delivers it by panic: a broken extension is a programming error,
// not a recoverable runtime condition.
type ContractError struct {
	Op     string
	Detail string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("extension contract violated in %s: %s", e.Op, e.Detail)
}

// Sense is the optimization direction, encoded numerically so the same
// comparison arithmetic serves both minimization and maximization.
type Sense int

const (
	Minimize Sense = 1
	Maximize Sense = -1
)

// Valid reports whether s is one of the two supported directions.
func (s Sense) Valid() bool {
	return s == Minimize || s == Maximize
}

// Better reports whether a is strictly better than b under s.
func (s Sense) Better(a, b float64) bool {
	return float64(s)*(b-a) > 0
}

// Infeasible returns the worst representable objective value under s:
// +Inf when minimizing, -Inf when maximizing. It doubles as the bound
// sentinel for a subproblem with no feasible region, which the fathom
// test discards unconditionally, and as the incumbent value when no
// heuristic guess applies.
func (s Sense) Infeasible() float64 {
	return math.Inf(int(s))
}

// Unbounded returns the most optimistic objective value under s. The
// engine uses it as the root's placeholder bound before the first
// ComputeBound call.
func (s Sense) Unbounded() float64 {
	return math.Inf(-int(s))
}

// Solution is a complete feasible answer to a problem. One concrete
// variant exists per problem family; the engine only ever reads the
// objective value.
type Solution interface {
	Value() float64
}

// SolutionBase carries the objective value shared by every concrete
// Solution. Embed it by value and set Objective on construction; the
// incumbent is replaced wholesale on improvement, never mutated.
type SolutionBase struct {
	Objective float64
}

func (s SolutionBase) Value() float64 {
	return s.Objective
}

// NodeMeta is the engine-owned portion of every search tree node: the
// bound, valid only after ComputeBound has run or a parent bound was
// inherited, a unique monotonically increasing id, and the depth below
// the root.
type NodeMeta struct {
	Bound float64
	ID    uint64
	Depth int
}

// Meta returns the embedded metadata, so any struct embedding NodeMeta
// satisfies Node.
func (m *NodeMeta) Meta() *NodeMeta {
	return m
}

// Node is one subproblem in the search tree. Concrete variants embed
// NodeMeta and add whatever data defines their restricted subspace. A
// node is owned by the queue until popped, then consumed: expansion
// produces freshly owned children and the parent is never reinserted.
type Node interface {
	Meta() *NodeMeta
}

// Problem is the extension contract a concrete problem family must
// satisfy. The first four accessors come for free by embedding
// ProblemBase; the seven hook operations define the family.
//
// A Problem is a single long-lived mutable object for the duration of
// one search call. Hooks run single-threaded with exclusive access, so
// they may freely use problem-level scratch fields, but one Problem
// must never be shared by concurrent searches.
type Problem interface {
	Sense() Sense
	Params() Params
	Incumbent() Solution
	SetIncumbent(Solution)

	// InitialGuess produces a heuristic starting incumbent. When no
	// heuristic applies it returns a Solution whose value is the
	// sense-correct infinity.
	InitialGuess() Solution
	// RootNode builds the unconstrained root subproblem. Bound, id and
	// depth are engine-assigned after return.
	RootNode() Node
	// ComputeBound computes and stores the node's bound, returning the
	// stored value. It may use and mutate problem-level scratch state.
	ComputeBound(n Node) float64
	// GetSolution extracts a complete feasible Solution from the
	// by-products of the last ComputeBound call on n, replacing the
	// incumbent if strictly better. Side effect only.
	GetSolution(n Node)
	// Terminal reports whether the node's bound is exact, so no
	// further branching below it is needed.
	Terminal(n Node) bool
	// Separate prepares branching data and returns the number of
	// children to generate; zero is legal and means a leaf.
	Separate(n Node) int
	// MakeChild constructs child i, 1-based, of the most recent
	// Separate call. The child's bound defaults to the parent's unless
	// a tighter one is directly derivable; id and depth are
	// engine-assigned after return.
	MakeChild(n Node, i int) Node
}

// ProblemBase carries the engine-facing state shared by every concrete
// Problem: the optimization sense, the search parameters, and the
// current incumbent. Embed it by value in the concrete problem struct.
type ProblemBase struct {
	sense     Sense
	params    Params
	incumbent Solution
}

// NewProblemBase assembles the shared problem state.
func NewProblemBase(sense Sense, params Params) ProblemBase {
	return ProblemBase{sense: sense, params: params}
}

func (p *ProblemBase) Sense() Sense {
	return p.sense
}

func (p *ProblemBase) Params() Params {
	return p.params
}

// SetParams replaces the search parameters. Call it before the search
// starts; parameters are immutable during a run.
func (p *ProblemBase) SetParams(params Params) {
	p.params = params
}

func (p *ProblemBase) Incumbent() Solution {
	return p.incumbent
}

func (p *ProblemBase) SetIncumbent(s Solution) {
	p.incumbent = s
}
