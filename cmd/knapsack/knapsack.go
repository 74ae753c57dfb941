package knapsack

import (
	"fmt"
	"sort"

	"github.com/fathom-framework/fathom/pkg/fathom"
)

// Solution is one feasible packing. Chosen holds the selected items as
// ascending positions in the original instance.
type Solution struct {
	fathom.SolutionBase
	Chosen []int
}

// node is one subproblem: items before level are decided, the rest are
// free. weight and value accumulate the taken items; taken records
// their ratio-order positions.
type node struct {
	fathom.NodeMeta

	level  int
	weight float64
	value  float64
	taken  []int
}

// Knapsack is the binary knapsack problem family: maximize the total
// value of a subset of items whose total weight stays within the
// capacity. Bounding uses the classic fractional relaxation, so items
// are kept sorted by value/weight ratio.
type Knapsack struct {
	fathom.ProblemBase

	capacity float64
	items    []Item // ratio-sorted, best first
	index    []int  // items[i]'s position in the original instance

	// by-products of the last ComputeBound call; the engine guarantees
	// GetSolution and Terminal run on the same node before the next
	// bound is computed
	integral []int
	extra    float64
	exact    bool
}

var _ fathom.Problem = &Knapsack{}

// New builds a Knapsack problem for inst. The instance is copied and
// ratio-sorted; inst itself is left untouched.
func New(inst *Instance, params fathom.Params) *Knapsack {
	n := len(inst.Items)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	ratio := func(it Item) float64 { return it.Value / it.Weight }
	sort.SliceStable(perm, func(a, b int) bool {
		return ratio(inst.Items[perm[a]]) > ratio(inst.Items[perm[b]])
	})

	k := &Knapsack{
		ProblemBase: fathom.NewProblemBase(fathom.Maximize, params),
		capacity:    inst.Capacity,
		items:       make([]Item, n),
		index:       perm,
	}
	for i, p := range perm {
		k.items[i] = inst.Items[p]
	}
	return k
}

// InitialGuess greedily packs items in ratio order, skipping any that
// no longer fit. On many instances this is already optimal; the search
// then only has to certify it.
func (k *Knapsack) InitialGuess() fathom.Solution {
	var weight, value float64
	var picks []int
	for i, it := range k.items {
		if weight+it.Weight <= k.capacity {
			weight += it.Weight
			value += it.Value
			picks = append(picks, i)
		}
	}
	return k.solution(value, picks)
}

func (k *Knapsack) RootNode() fathom.Node {
	return &node{}
}

// ComputeBound computes the fractional relaxation bound: take free
// items whole in ratio order while they fit, then the fitting share of
// the first item that does not. The greedy whole-item prefix is kept
// as scratch for GetSolution.
func (k *Knapsack) ComputeBound(n fathom.Node) float64 {
	nd := n.(*node)
	m := nd.Meta()

	if nd.weight > k.capacity {
		m.Bound = k.Sense().Infeasible()
		return m.Bound
	}

	k.integral = k.integral[:0]
	k.extra = 0
	k.exact = true

	bound := nd.value
	room := k.capacity - nd.weight
	for i := nd.level; i < len(k.items); i++ {
		it := k.items[i]
		if it.Weight <= room {
			room -= it.Weight
			bound += it.Value
			k.integral = append(k.integral, i)
			k.extra += it.Value
			continue
		}
		// first item that no longer fits whole: its fractional share
		// completes the relaxation, and the bound stops being exact
		bound += it.Value * room / it.Weight
		k.exact = false
		break
	}
	m.Bound = bound
	return bound
}

// GetSolution turns the greedy whole-item prefix of the last bound
// into a feasible packing and promotes it if strictly better.
func (k *Knapsack) GetSolution(n fathom.Node) {
	nd := n.(*node)
	candidate := nd.value + k.extra
	if !k.Sense().Better(candidate, k.Incumbent().Value()) {
		return
	}
	picks := make([]int, 0, len(nd.taken)+len(k.integral))
	picks = append(picks, nd.taken...)
	picks = append(picks, k.integral...)
	k.SetIncumbent(k.solution(candidate, picks))
}

// Terminal reports whether the last bound had no fractional part, in
// which case the greedy completion is optimal for this subspace.
func (k *Knapsack) Terminal(_ fathom.Node) bool {
	return k.exact
}

func (k *Knapsack) Separate(n fathom.Node) int {
	if n.(*node).level >= len(k.items) {
		return 0
	}
	return 2
}

// MakeChild branches on the first free item: child 1 takes it, child 2
// skips it. Children inherit the parent bound; a take-child that no
// longer fits is bounded infeasible so the engine drops it before it
// ever reaches the queue.
func (k *Knapsack) MakeChild(n fathom.Node, i int) fathom.Node {
	nd := n.(*node)
	it := k.items[nd.level]

	child := &node{
		level:  nd.level + 1,
		weight: nd.weight,
		value:  nd.value,
		taken:  append([]int(nil), nd.taken...),
	}
	child.Bound = nd.Bound

	switch i {
	case 1:
		child.weight += it.Weight
		child.value += it.Value
		child.taken = append(child.taken, nd.level)
		if child.weight > k.capacity {
			child.Bound = k.Sense().Infeasible()
		}
	case 2:
		// all fields already carried over
	default:
		panic(&fathom.ContractError{Op: "MakeChild",
			Detail: fmt.Sprintf("child index %d out of range [1, 2]", i)})
	}
	return child
}

// solution maps ratio-order positions back to instance positions.
func (k *Knapsack) solution(value float64, picks []int) *Solution {
	chosen := make([]int, len(picks))
	for i, p := range picks {
		chosen[i] = k.index[p]
	}
	sort.Ints(chosen)
	return &Solution{
		SolutionBase: fathom.SolutionBase{Objective: value},
		Chosen:       chosen,
	}
}
