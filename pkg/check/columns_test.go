package check_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/autograde/pkg/check"
	"github.com/Sumatoshi-tech/autograde/pkg/frame"
	"github.com/Sumatoshi-tech/autograde/pkg/sumstats"
)

func numbers(values ...float64) *frame.Frame {
	return frame.MustNew(frame.NewFloatSeries("n", values))
}

func TestArrayVsColumn(t *testing.T) {
	t.Parallel()

	f := numbers(1, 2, 3, 4, 5)

	ok, err := check.ArrayVsColumn([]float64{5, 1, 3, 2, 4}, f, "n")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = check.ArrayVsColumn([]float64{1, 2, 3, 4, 6}, f, "n")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArrayVsColumn_Errors(t *testing.T) {
	t.Parallel()

	f := frame.MustNew(
		frame.NewFloatSeries("n", []float64{1}),
		frame.NewStringSeries("s", []string{"a"}),
	)

	_, err := check.ArrayVsColumn([]float64{1}, f, "missing")
	require.ErrorIs(t, err, frame.ErrColumnNotFound)

	_, err = check.ArrayVsColumn(nil, f, "n")
	require.ErrorIs(t, err, sumstats.ErrEmpty)

	_, err = check.ArrayVsColumn([]float64{1}, f, "s")
	require.ErrorIs(t, err, sumstats.ErrNotNumeric)
}

func TestColumnSorted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		values    []float64
		ascending bool
		want      bool
	}{
		{name: "ascending", values: []float64{1, 2, 3, 4, 5}, ascending: true, want: true},
		{name: "descending as ascending", values: []float64{5, 4, 3, 2, 1}, ascending: true, want: false},
		{name: "descending", values: []float64{5, 4, 3, 2, 1}, ascending: false, want: true},
		{name: "single inversion", values: []float64{1, 3, 2, 4, 5}, ascending: true, want: false},
		{name: "single descending inversion", values: []float64{9, 7, 8, 5, 1}, ascending: false, want: false},
		{name: "plateau", values: []float64{1, 1, 2, 2}, ascending: true, want: true},
		{name: "constant", values: []float64{3, 3, 3}, ascending: false, want: true},
		{name: "fractional", values: []float64{0.1, 0.2, 0.3, 0.7}, ascending: true, want: true},
		{name: "single value", values: []float64{7}, ascending: true, want: true},
		{name: "empty", values: []float64{}, ascending: false, want: true},
		{name: "missing value", values: []float64{1, math.NaN(), 3}, ascending: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := check.ColumnSorted(numbers(tt.values...), "n", tt.ascending)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnSorted_Times(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f := frame.MustNew(
		frame.NewTimeSeries("up", []time.Time{day, day.Add(time.Hour), day.AddDate(0, 0, 1)}),
		frame.NewTimeSeries("gap", []time.Time{day, {}, day.AddDate(0, 0, 1)}),
	)

	ok, err := check.ColumnSorted(f, "up", true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = check.ColumnSorted(f, "up", false)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = check.ColumnSorted(f, "gap", true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestColumnSorted_Errors(t *testing.T) {
	t.Parallel()

	f := frame.MustNew(frame.NewStringSeries("s", []string{"a", "b"}))

	_, err := check.ColumnSorted(f, "s", true)
	require.ErrorIs(t, err, sumstats.ErrNotNumeric)

	_, err = check.ColumnSorted(f, "missing", true)
	require.ErrorIs(t, err, frame.ErrColumnNotFound)
}

func TestUniqueValues(t *testing.T) {
	t.Parallel()

	f := frame.MustNew(
		frame.NewStringSeries("s", []string{"a", "b", "a", "c"}),
		frame.NewFloatSeries("n", []float64{1, 2, 2, 1}),
	)

	tests := []struct {
		name     string
		column   string
		expected []any
		want     bool
	}{
		{name: "exact set", column: "s", expected: []any{"a", "b", "c"}, want: true},
		{name: "any order", column: "s", expected: []any{"c", "a", "b"}, want: true},
		{name: "missing value", column: "s", expected: []any{"a", "b"}, want: false},
		{name: "extra value", column: "s", expected: []any{"a", "b", "c", "d"}, want: false},
		{name: "ints match floats", column: "n", expected: []any{1, 2}, want: true},
		{name: "mixed numeric types", column: "n", expected: []any{int64(2), float32(1)}, want: true},
		{name: "string is not number", column: "n", expected: []any{"1", "2"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := check.UniqueValues(f, tt.column, tt.expected...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
