package knapsack_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fathom-framework/fathom/cmd/knapsack"
	"github.com/fathom-framework/fathom/pkg/fathom"
	"github.com/fathom-framework/fathom/pkg/fathom/solver"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// hardware is a small instance whose greedy packing is already optimal,
// so the search only has to certify it.
func hardware() *knapsack.Instance {
	return &knapsack.Instance{
		Capacity: 10,
		Items: []knapsack.Item{
			{Name: "bolt", Weight: 5, Value: 10},
			{Name: "nut", Weight: 4, Value: 40},
			{Name: "washer", Weight: 6, Value: 30},
			{Name: "screw", Weight: 3, Value: 50},
		},
	}
}

func solve(p *knapsack.Knapsack) *solver.Solution {
	so, err := solver.New(solver.WithTracer(fathom.DiscardTracer{}))
	Expect(err).ToNot(HaveOccurred())
	solution, err := so.Solve(p)
	Expect(err).ToNot(HaveOccurred())
	return solution
}

var _ = Describe("Knapsack", func() {
	It("should find the optimal packing", func() {
		solution := solve(knapsack.New(hardware(), fathom.Params{}))
		Expect(solution.Error()).ToNot(HaveOccurred())
		Expect(solution.Value()).To(Equal(90.0))
		Expect(solution.Processed()).To(Equal(7))

		best, ok := solution.Best().(*knapsack.Solution)
		Expect(ok).To(BeTrue())
		Expect(best.Chosen).To(Equal([]int{1, 3}))
	})

	It("should explore the same nodes on every run", func() {
		first := solve(knapsack.New(hardware(), fathom.Params{}))
		second := solve(knapsack.New(hardware(), fathom.Params{}))
		Expect(second.Value()).To(Equal(first.Value()))
		Expect(second.Processed()).To(Equal(first.Processed()))
	})

	It("should stop early within the absolute tolerance", func() {
		solution := solve(knapsack.New(hardware(), fathom.Params{AbsoluteTolerance: 7}))
		Expect(solution.Value()).To(BeNumerically("~", 90, 7))
		Expect(solution.Processed()).To(Equal(6))
	})

	It("should stop early within the relative tolerance", func() {
		solution := solve(knapsack.New(hardware(), fathom.Params{RelativeTolerance: 0.10}))
		Expect(solution.Value()).To(BeNumerically("~", 90, 9))
		Expect(solution.Processed()).To(Equal(6))
	})

	It("should certify the empty packing for an instance with no items", func() {
		solution := solve(knapsack.New(&knapsack.Instance{Capacity: 10}, fathom.Params{}))
		Expect(solution.Error()).ToNot(HaveOccurred())
		Expect(solution.Value()).To(Equal(0.0))
		Expect(solution.Processed()).To(Equal(1))

		best, ok := solution.Best().(*knapsack.Solution)
		Expect(ok).To(BeTrue())
		Expect(best.Chosen).To(BeEmpty())
	})

	It("should start from the greedy packing", func() {
		k := knapsack.New(hardware(), fathom.Params{})
		guess, ok := k.InitialGuess().(*knapsack.Solution)
		Expect(ok).To(BeTrue())
		Expect(guess.Value()).To(Equal(90.0))
		Expect(guess.Chosen).To(Equal([]int{1, 3}))
	})

	It("should bound the root with the fractional relaxation", func() {
		k := knapsack.New(hardware(), fathom.Params{})
		root := k.RootNode()
		Expect(k.ComputeBound(root)).To(Equal(105.0))
		Expect(root.Meta().Bound).To(Equal(105.0))
	})

	It("should solve a random instance to the same value with and without tolerances", func() {
		inst := knapsack.RandomInstance(12, newRand(3))
		exact := solve(knapsack.New(inst, fathom.Params{}))
		relaxed := solve(knapsack.New(inst, fathom.Params{AbsoluteTolerance: 2}))
		Expect(relaxed.Value()).To(BeNumerically(">=", exact.Value()-2))
		Expect(relaxed.Value()).To(BeNumerically("<=", exact.Value()))
		Expect(relaxed.Processed()).To(BeNumerically("<=", exact.Processed()))
	})
})
