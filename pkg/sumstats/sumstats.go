// Package sumstats reduces a sequence to a fixed seven-value fingerprint
// (min, Q1, median, Q3, max, mean, std) so that two sequences can be compared
// for grading without matching them element by element.
package sumstats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/Sumatoshi-tech/autograde/pkg/alg/stats"
	"github.com/Sumatoshi-tech/autograde/pkg/frame"
)

// Sentinel errors.
var (
	ErrEmpty      = errors.New("no non-missing values to summarize")
	ErrNotNumeric = errors.New("series is not numeric or datetime")
)

// Size is the number of statistics in a Summary.
const Size = 7

const decimals = 2

// Summary is the rounded statistical fingerprint of a sequence.
type Summary struct {
	Min    float64 `json:"min"    yaml:"min"`
	Q1     float64 `json:"q1"     yaml:"q1"`
	Median float64 `json:"median" yaml:"median"`
	Q3     float64 `json:"q3"     yaml:"q3"`
	Max    float64 `json:"max"    yaml:"max"`
	Mean   float64 `json:"mean"   yaml:"mean"`
	Std    float64 `json:"std"    yaml:"std"`
}

// Of summarizes values. NaN entries are dropped first.
func Of(values []float64) (Summary, error) {
	sorted := stats.Sorted(stats.DropNaN(values))
	if len(sorted) == 0 {
		return Summary{}, ErrEmpty
	}

	// Every reduction runs over the sorted copy so the result does not depend
	// on input order, not even in the last bit of the mean.
	mean, std := stats.MeanStdDev(sorted)

	return Summary{
		Min:    Round(sorted[0]),
		Q1:     Round(stats.PercentileSorted(sorted, stats.PercentileQ1)),
		Median: Round(stats.PercentileSorted(sorted, stats.PercentileMedian)),
		Q3:     Round(stats.PercentileSorted(sorted, stats.PercentileQ3)),
		Max:    Round(sorted[len(sorted)-1]),
		Mean:   Round(mean),
		Std:    RoundExact(std),
	}, nil
}

// OfTimes summarizes instants by their Unix nanosecond value. Zero times are
// treated as missing.
func OfTimes(values []time.Time) (Summary, error) {
	return Of(Nanos(values))
}

// OfSeries summarizes a float or time series.
func OfSeries(s *frame.Series) (Summary, error) {
	switch s.Kind() {
	case frame.KindFloat:
		values, err := s.Floats()
		if err != nil {
			return Summary{}, err
		}

		return Of(values)
	case frame.KindTime:
		values, err := s.Times()
		if err != nil {
			return Summary{}, err
		}

		return OfTimes(values)
	default:
		return Summary{}, fmt.Errorf("%w: %q is %s", ErrNotNumeric, s.Name(), s.Kind())
	}
}

// Nanos converts instants to Unix nanoseconds, mapping the zero time to NaN.
func Nanos(values []time.Time) []float64 {
	out := make([]float64, len(values))

	for i, ts := range values {
		if ts.IsZero() {
			out[i] = math.NaN()

			continue
		}

		out[i] = float64(ts.UnixNano())
	}

	return out
}

// Round rounds x to two decimals, half to even, on the scaled binary value.
func Round(x float64) float64 {
	const scale = 100

	return math.RoundToEven(x*scale) / scale
}

// RoundExact rounds x to two decimals, half to even, on the exact decimal
// expansion of x. Unlike Round it never picks up error from scaling by 100.
func RoundExact(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', decimals, 64), 64)
	if err != nil {
		return Round(x)
	}

	return rounded
}

// Array returns the statistics in canonical order.
func (s Summary) Array() [Size]float64 {
	return [Size]float64{s.Min, s.Q1, s.Median, s.Q3, s.Max, s.Mean, s.Std}
}

// FromArray builds a Summary from statistics in canonical order.
func FromArray(a [Size]float64) Summary {
	return Summary{Min: a[0], Q1: a[1], Median: a[2], Q3: a[3], Max: a[4], Mean: a[5], Std: a[6]}
}

// Equal reports exact equality of every statistic.
func (s Summary) Equal(other Summary) bool {
	return s == other
}

// Close reports whether every statistic of s is IsClose to other's.
func (s Summary) Close(other Summary) bool {
	a, b := s.Array(), other.Array()

	return stats.AllClose(a[:], b[:])
}

// String renders the summary as a tuple.
func (s Summary) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g, %g, %g, %g)", s.Min, s.Q1, s.Median, s.Q3, s.Max, s.Mean, s.Std)
}
