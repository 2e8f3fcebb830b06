// Package stats provides the numeric primitives behind summary-statistic grading.
// All standard deviation calculations use population stddev (÷n, not ÷(n−1)),
// and percentiles use linear interpolation between closest ranks.
package stats

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Default tolerances for IsClose, the same as numpy.isclose.
const (
	DefaultRelTol = 1e-5
	DefaultAbsTol = 1e-8
)

// Well-known percentile thresholds.
const (
	PercentileQ1     = 0.25
	PercentileMedian = 0.5
	PercentileQ3     = 0.75
)

// DropNaN returns a copy of values without NaN entries.
func DropNaN(values []float64) []float64 {
	kept := make([]float64, 0, len(values))

	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}

	return kept
}

// Sorted returns a sorted copy of values.
func Sorted(values []float64) []float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return sorted
}

// Mean returns the arithmetic mean of values.
// Returns 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64

	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// MeanStdDev returns the arithmetic mean and population standard deviation.
// Returns (0, 0) for an empty slice.
func MeanStdDev(values []float64) (mean, stddev float64) {
	count := len(values)
	if count == 0 {
		return 0, 0
	}

	mean = Mean(values)

	var sumSq float64

	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}

	return mean, math.Sqrt(sumSq / float64(count))
}

// Percentile returns the p-th percentile of values using linear interpolation.
// p must be in [0, 1]. The input slice is not modified (a copy is sorted internally).
// Returns 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return PercentileSorted(Sorted(values), p)
}

// PercentileSorted is Percentile for input that is already in ascending order.
func PercentileSorted(sorted []float64, p float64) float64 {
	count := len(sorted)
	if count == 0 {
		return 0
	}

	idx := p * float64(count-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))

	if lower == upper || upper >= count {
		return sorted[lower]
	}

	return lerp(sorted[lower], sorted[upper], idx-float64(lower))
}

// lerp interpolates from the nearer end so that lerp(a, b, 1) == b exactly.
func lerp(a, b, t float64) float64 {
	diff := b - a

	if t >= PercentileMedian {
		return b - diff*(1-t)
	}

	return a + diff*t
}

// Median returns the 50th percentile of values.
// Returns 0 for an empty slice.
func Median(values []float64) float64 {
	return Percentile(values, PercentileMedian)
}

// Min returns the smallest element in values.
// Returns the zero value of T for an empty slice.
func Min[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	return slices.Min(values)
}

// Max returns the largest element in values.
// Returns the zero value of T for an empty slice.
func Max[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	return slices.Max(values)
}

// IsClose reports whether a and b are equal within numpy.isclose tolerances:
// |a - b| <= atol + rtol*|b|. The test is asymmetric in b, like numpy.
func IsClose(a, b float64) bool {
	return IsCloseTol(a, b, DefaultRelTol, DefaultAbsTol)
}

// IsCloseTol is IsClose with explicit tolerances.
func IsCloseTol(a, b, rtol, atol float64) bool {
	if a == b {
		return true
	}

	if math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsNaN(a) || math.IsNaN(b) {
		return false
	}

	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}

// AllClose reports whether a and b have the same length and every pair of
// elements satisfies IsClose.
func AllClose(a, b []float64) bool {
	return floats.EqualFunc(a, b, IsClose)
}
