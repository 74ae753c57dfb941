package solver

import (
	"math"
	"math/rand"
	"testing"

	"github.com/fathom-framework/fathom/pkg/fathom"
)

// BenchmarkTree is a fixed random search tree deep enough to keep the
// queue busy at both ends.
var BenchmarkTree = func() branch {
	const (
		depth     = 14
		seed      = 9
		slack     = 10.0
		harvestAt = 4
	)

	rng := rand.New(rand.NewSource(seed))

	var grow func(bound float64, level int) branch
	grow = func(bound float64, level int) branch {
		br := branch{bound: bound, value: none}
		if level >= depth {
			br.terminal = true
			br.value = bound - slack*rng.Float64()
			return br
		}
		if level >= harvestAt {
			br.value = bound - 2*slack - slack*rng.Float64()
		}
		br.children = []branch{
			grow(bound-slack*rng.Float64(), level+1),
			grow(bound-slack*rng.Float64(), level+1),
		}
		return br
	}
	return grow(1000, 0)
}()

func BenchmarkSolve(b *testing.B) {
	for i := 0; i < b.N; i++ {
		p := newScriptProblem(fathom.Maximize, fathom.Params{}, math.Inf(-1), BenchmarkTree)
		s, err := NewSolver(WithProblem(p), WithTracer(fathom.DiscardTracer{}))
		if err != nil {
			b.Fatalf("failed to initialize solver: %s", err)
		}
		s.Solve()
	}
}

func BenchmarkSolveWithTolerance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		p := newScriptProblem(fathom.Maximize, fathom.Params{RelativeTolerance: 0.05}, math.Inf(-1), BenchmarkTree)
		s, err := NewSolver(WithProblem(p), WithTracer(fathom.DiscardTracer{}))
		if err != nil {
			b.Fatalf("failed to initialize solver: %s", err)
		}
		s.Solve()
	}
}
