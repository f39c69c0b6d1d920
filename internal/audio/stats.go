package audio

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PopStdDev is the population standard deviation, 0 for fewer than two values
func PopStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.PopStdDev(xs, nil)
}

// MeanAbsDiff is the mean absolute difference between consecutive values,
// 0 for fewer than two values
func MeanAbsDiff(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	diffs := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		diffs[i-1] = math.Abs(xs[i] - xs[i-1])
	}
	return stat.Mean(diffs, nil)
}
