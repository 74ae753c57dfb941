package bench

import "math"

// FloatStats summarizes a sample of float64 measurements. Best is the
// minimum and Std the sample standard deviation.
type FloatStats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	s.Best = values[0]
	sum := 0.0
	for _, v := range values {
		if v < s.Best {
			s.Best = v
		}
		sum += v
	}
	s.Mean = sum / float64(s.N)

	variance := 0.0
	if s.N >= 2 {
		for _, v := range values {
			d := v - s.Mean
			variance += d * d
		}
		variance /= float64(s.N - 1)
	}
	s.Std = math.Sqrt(variance)
	return s
}

// IntStats is FloatStats over integer measurements, keeping Best exact.
type IntStats struct {
	N    int
	Best int
	Mean float64
	Std  float64
}

func CalcIntStats(values []int) IntStats {
	s := IntStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	s.Best = values[0]
	floats := make([]float64, s.N)
	for i, v := range values {
		if v < s.Best {
			s.Best = v
		}
		floats[i] = float64(v)
	}
	fs := CalcFloatStats(floats)
	s.Mean = fs.Mean
	s.Std = fs.Std
	return s
}
