package bench

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcFloatStats(t *testing.T) {
	for _, tt := range []struct {
		name   string
		values []float64
		want   FloatStats
	}{
		{name: "Empty", values: nil, want: FloatStats{}},
		{name: "Single", values: []float64{5}, want: FloatStats{N: 1, Best: 5, Mean: 5, Std: 0}},
		{name: "Pair", values: []float64{2, 4}, want: FloatStats{N: 2, Best: 2, Mean: 3, Std: math.Sqrt2}},
		{name: "Unordered", values: []float64{3, 1, 2}, want: FloatStats{N: 3, Best: 1, Mean: 2, Std: 1}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcFloatStats(tt.values)
			assert.Equal(t, tt.want.N, got.N)
			assert.Equal(t, tt.want.Best, got.Best)
			assert.InDelta(t, tt.want.Mean, got.Mean, 1e-12)
			assert.InDelta(t, tt.want.Std, got.Std, 1e-12)
		})
	}
}

func TestCalcIntStats(t *testing.T) {
	assert.Equal(t, IntStats{}, CalcIntStats(nil))

	got := CalcIntStats([]int{4, 2, 9})
	assert.Equal(t, 3, got.N)
	assert.Equal(t, 2, got.Best)
	assert.InDelta(t, 5.0, got.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(13), got.Std, 1e-12)
}
