package maxsat

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/fathom-framework/fathom/pkg/fathom"
)

const satisfiable = 1

// Solution is a complete truth assignment. Assignment[i] holds the
// value of variable i+1. The objective is the total weight of soft
// clauses the assignment falsifies.
type Solution struct {
	fathom.SolutionBase
	Assignment []bool
}

// node fixes the values of the first len(assign) variables; the rest
// are free.
type node struct {
	fathom.NodeMeta
	assign []bool
}

// MaxSat minimizes the total weight of falsified soft clauses subject
// to all hard clauses holding. Bounding and feasibility checks lean on
// a single SAT solver loaded with the hard clauses: each bound call
// assumes the node's fixed prefix and asks for a model, so infeasible
// subtrees are detected exactly and every feasible bound comes with a
// complete assignment as a by-product.
type MaxSat struct {
	fathom.ProblemBase

	wcnf *WCNF
	g    *gini.Gini

	// by-products of the last ComputeBound call
	model     []bool
	modelCost int64
	haveModel bool
	exact     bool
}

var _ fathom.Problem = &MaxSat{}

// New builds a MaxSat problem and loads the instance's hard clauses
// into the underlying SAT solver.
func New(wcnf *WCNF, params fathom.Params) *MaxSat {
	m := &MaxSat{
		ProblemBase: fathom.NewProblemBase(fathom.Minimize, params),
		wcnf:        wcnf,
		g:           gini.New(),
	}
	// register every declared variable so models cover variables that
	// appear in soft clauses only
	for v := 0; v < wcnf.Variables(); v++ {
		m.g.Lit()
	}
	for _, c := range wcnf.Clauses() {
		if !c.Hard {
			continue
		}
		for _, lit := range c.Lits {
			m.g.Add(z.Dimacs2Lit(lit))
		}
		m.g.Add(z.LitNull)
	}
	return m
}

// InitialGuess asks the SAT solver for any model of the hard clauses.
// When the hard clauses are unsatisfiable there is no assignment at
// all and the guess is infeasible.
func (m *MaxSat) InitialGuess() fathom.Solution {
	if m.g.Solve() != satisfiable {
		return &Solution{SolutionBase: fathom.SolutionBase{Objective: m.Sense().Infeasible()}}
	}
	assignment := m.snapshot()
	return &Solution{
		SolutionBase: fathom.SolutionBase{Objective: float64(m.cost(assignment))},
		Assignment:   assignment,
	}
}

func (m *MaxSat) RootNode() fathom.Node {
	return &node{}
}

// ComputeBound returns the soft weight already lost to the node's
// fixed prefix, a lower bound on the cost of any completion. Nodes
// whose prefix cannot be extended to a model of the hard clauses are
// infeasible. The model found along the way is kept so GetSolution
// and Terminal can reuse it.
func (m *MaxSat) ComputeBound(n fathom.Node) float64 {
	nd, meta := m.node(n, "ComputeBound")
	m.haveModel = false
	m.exact = false

	m.g.Assume(m.assumptions(nd.assign)...)
	if m.g.Solve() != satisfiable {
		meta.Bound = m.Sense().Infeasible()
		return meta.Bound
	}

	locked := m.cost(nd.assign)
	m.model = m.snapshot()
	m.modelCost = m.cost(m.model)
	m.haveModel = true
	m.exact = m.modelCost == locked

	meta.Bound = float64(locked)
	return meta.Bound
}

// GetSolution promotes the model found by the last bound call when it
// costs less than the incumbent.
func (m *MaxSat) GetSolution(n fathom.Node) {
	m.node(n, "GetSolution")
	if !m.haveModel {
		return
	}
	cost := float64(m.modelCost)
	if !m.Sense().Better(cost, m.Incumbent().Value()) {
		return
	}
	m.SetIncumbent(&Solution{
		SolutionBase: fathom.SolutionBase{Objective: cost},
		Assignment:   append([]bool(nil), m.model...),
	})
}

// Terminal reports whether the last model already meets the node's
// bound, in which case no completion of the prefix can do better and
// the subtree is solved.
func (m *MaxSat) Terminal(n fathom.Node) bool {
	m.node(n, "Terminal")
	return m.exact
}

// Separate splits on the next free variable, or on nothing once every
// variable is fixed.
func (m *MaxSat) Separate(n fathom.Node) int {
	nd, _ := m.node(n, "Separate")
	if len(nd.assign) >= m.wcnf.Variables() {
		return 0
	}
	return 2
}

// MakeChild fixes the next free variable, true for the first child and
// false for the second. Children inherit the parent's bound until
// their own bound call.
func (m *MaxSat) MakeChild(n fathom.Node, i int) fathom.Node {
	nd, meta := m.node(n, "MakeChild")

	assign := make([]bool, len(nd.assign)+1)
	copy(assign, nd.assign)
	switch i {
	case 1:
		assign[len(nd.assign)] = true
	case 2:
		assign[len(nd.assign)] = false
	default:
		panic(&fathom.ContractError{
			Op:     "MakeChild",
			Detail: fmt.Sprintf("child index %d out of range [1, 2]", i),
		})
	}

	child := &node{assign: assign}
	child.Bound = meta.Bound
	return child
}

func (m *MaxSat) node(n fathom.Node, op string) (*node, *fathom.NodeMeta) {
	nd, ok := n.(*node)
	if !ok {
		panic(&fathom.ContractError{
			Op:     op,
			Detail: fmt.Sprintf("foreign node type %T", n),
		})
	}
	return nd, nd.Meta()
}

// assumptions maps a fixed prefix to solver literals.
func (m *MaxSat) assumptions(assign []bool) []z.Lit {
	lits := make([]z.Lit, len(assign))
	for i, value := range assign {
		lit := i + 1
		if !value {
			lit = -lit
		}
		lits[i] = z.Dimacs2Lit(lit)
	}
	return lits
}

// snapshot copies the solver's current model into a fresh assignment.
func (m *MaxSat) snapshot() []bool {
	assignment := make([]bool, m.wcnf.Variables())
	for i := range assignment {
		assignment[i] = m.g.Value(z.Dimacs2Lit(i + 1))
	}
	return assignment
}

// cost sums the weights of soft clauses the assignment falsifies.
// Variables beyond len(assign) count as free, so for a node's prefix
// this is the cost already locked in, and for a complete assignment
// the true objective.
func (m *MaxSat) cost(assign []bool) int64 {
	var cost int64
	for _, c := range m.wcnf.Clauses() {
		if c.Hard {
			continue
		}
		if falsified(c, assign) {
			cost += c.Weight
		}
	}
	return cost
}

// falsified reports whether every literal of the clause is assigned
// and false. Variables beyond len(assign) count as free.
func falsified(c Clause, assign []bool) bool {
	for _, lit := range c.Lits {
		v := lit
		if v < 0 {
			v = -v
		}
		if v > len(assign) {
			return false
		}
		value := assign[v-1]
		if lit < 0 {
			value = !value
		}
		if value {
			return false
		}
	}
	return true
}
