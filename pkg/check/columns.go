package check

import (
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/autograde/pkg/alg/stats"
	"github.com/Sumatoshi-tech/autograde/pkg/frame"
	"github.com/Sumatoshi-tech/autograde/pkg/sumstats"
)

// ArrayVsColumn reports whether values and the named numeric column share a
// summary fingerprint. It is an approximate equality oracle: only the seven
// rounded statistics are compared, not the elements.
func ArrayVsColumn(values []float64, f *frame.Frame, column string) (bool, error) {
	col, err := f.Column(column)
	if err != nil {
		return false, err
	}

	got, err := sumstats.Of(values)
	if err != nil {
		return false, fmt.Errorf("summarize values: %w", err)
	}

	want, err := sumstats.OfSeries(col)
	if err != nil {
		return false, fmt.Errorf("summarize column %q: %w", column, err)
	}

	return got.Equal(want), nil
}

// ColumnSorted reports whether a float or time column is sorted in the given
// direction. Each first difference and each running sum of differences must
// keep the direction's sign, and the running extreme must equal the net change
// from the first to the last row. A missing value makes the column unsorted.
func ColumnSorted(f *frame.Frame, column string, ascending bool) (bool, error) {
	col, err := f.Column(column)
	if err != nil {
		return false, err
	}

	switch col.Kind() {
	case frame.KindFloat:
		values, ferr := col.Floats()
		if ferr != nil {
			return false, ferr
		}

		for _, v := range values {
			if math.IsNaN(v) {
				return false, nil
			}
		}

		return sortedBy(values, ascending), nil
	case frame.KindTime:
		times, terr := col.Times()
		if terr != nil {
			return false, terr
		}

		nanos := make([]int64, len(times))

		for i, ts := range times {
			if ts.IsZero() {
				return false, nil
			}

			nanos[i] = ts.UnixNano()
		}

		return sortedBy(nanos, ascending), nil
	default:
		return false, fmt.Errorf("%w: %q is %s", sumstats.ErrNotNumeric, column, col.Kind())
	}
}

func sortedBy[T int64 | float64](values []T, ascending bool) bool {
	if len(values) < 2 {
		return true
	}

	wrongSign := func(v T) bool {
		if ascending {
			return v < 0
		}

		return v > 0
	}

	var cum, extreme T

	for i := 1; i < len(values); i++ {
		diff := values[i] - values[i-1]
		cum += diff

		if wrongSign(diff) || wrongSign(cum) {
			return false
		}

		if i == 1 || (ascending && cum > extreme) || (!ascending && cum < extreme) {
			extreme = cum
		}
	}

	// Summing differences accumulates rounding error, so the running extreme
	// only needs to be close to the net change.
	return stats.IsClose(float64(extreme), float64(values[len(values)-1]-values[0]))
}

// UniqueValues reports whether the distinct values of a column are exactly the
// expected set. Numbers compare by value regardless of Go type, times by
// instant and strings by content.
func UniqueValues(f *frame.Frame, column string, expected ...any) (bool, error) {
	col, err := f.Column(column)
	if err != nil {
		return false, err
	}

	present := make(map[frame.Key]struct{})
	for _, v := range col.Unique() {
		present[frame.KeyOf(v)] = struct{}{}
	}

	wanted := make(map[frame.Key]struct{}, len(expected))
	for _, v := range expected {
		wanted[frame.KeyOf(v)] = struct{}{}
	}

	if len(present) != len(wanted) {
		return false, nil
	}

	for k := range present {
		if _, ok := wanted[k]; !ok {
			return false, nil
		}
	}

	return true, nil
}
