package check

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/Sumatoshi-tech/autograde/pkg/alg/stats"
	"github.com/Sumatoshi-tech/autograde/pkg/frame"
	"github.com/Sumatoshi-tech/autograde/pkg/plot"
	"github.com/Sumatoshi-tech/autograde/pkg/sumstats"
)

// Point is an expected (x, y) marker position.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// LinesForColumns reports whether some line's x and y data are exactly the
// named columns, element by element and in order.
func LinesForColumns(axes *plot.Axes, f *frame.Frame, xCol, yCol string) (bool, error) {
	x, err := f.Column(xCol)
	if err != nil {
		return false, err
	}

	y, err := f.Column(yCol)
	if err != nil {
		return false, err
	}

	for _, line := range axes.Lines {
		if seriesEqual(line.X, x) && seriesEqual(line.Y, y) {
			return true, nil
		}
	}

	return false, nil
}

// LinesForData reports whether some line's data is exactly xs and ys.
func LinesForData(axes *plot.Axes, xs, ys []float64) bool {
	want := plot.New().Plot("", xs, ys).Lines[0]

	for _, line := range axes.Lines {
		if len(xs) == len(ys) && seriesEqual(line.X, want.X) && seriesEqual(line.Y, want.Y) {
			return true
		}
	}

	return false
}

// Points reports whether every point has a matching single-point line under
// IsClose. All points are examined; the missing ones are logged.
func Points(axes *plot.Axes, points ...Point) bool {
	found := true

	for _, p := range points {
		if !hasPoint(axes, p) {
			slog.Debug("point missing from chart", "x", p.X, "y", p.Y)

			found = false
		}
	}

	return found
}

func hasPoint(axes *plot.Axes, p Point) bool {
	for _, line := range axes.Lines {
		if line.X.Len() != 1 || line.Y.Len() != 1 {
			continue
		}

		x, okX := numericValues(line.X)
		y, okY := numericValues(line.Y)

		if okX && okY && stats.IsClose(x[0], p.X) && stats.IsClose(y[0], p.Y) {
			return true
		}
	}

	return false
}

// SumStatsForAllLines summarizes every line axis holding more than one value
// and requires each summary to be close to at least one expected summary.
// It stops at the first summary without a match.
func SumStatsForAllLines(axes *plot.Axes, expected []sumstats.Summary) (bool, error) {
	var computed []sumstats.Summary

	for i, line := range axes.Lines {
		for _, data := range []*frame.Series{line.X, line.Y} {
			if data.Len() <= 1 {
				continue
			}

			s, err := sumstats.OfSeries(data)
			if err != nil {
				return false, fmt.Errorf("line %d: %w", i, err)
			}

			computed = append(computed, s)
		}
	}

	for _, got := range computed {
		matched := slices.ContainsFunc(expected, func(want sumstats.Summary) bool {
			ok := got.Close(want)
			slog.Debug("compare line summary", "got", got.String(), "want", want.String(), "close", ok)

			return ok
		})

		if !matched {
			slog.Debug("line summary has no match", "got", got.String())

			return false, nil
		}
	}

	return true, nil
}

// seriesEqual is exact, order-sensitive equality of kind and elements.
func seriesEqual(a, b *frame.Series) bool {
	if a.Kind() != b.Kind() || a.Len() != b.Len() {
		return false
	}

	switch a.Kind() {
	case frame.KindFloat:
		av, _ := a.Floats()
		bv, _ := b.Floats()

		return floats.Equal(av, bv)
	case frame.KindTime:
		av, _ := a.Times()
		bv, _ := b.Times()

		return slices.EqualFunc(av, bv, func(x, y time.Time) bool { return x.Equal(y) })
	default:
		av, _ := a.Strings()
		bv, _ := b.Strings()

		return slices.Equal(av, bv)
	}
}

// numericValues views float or time data as float64, times as Unix nanoseconds.
func numericValues(s *frame.Series) ([]float64, bool) {
	switch s.Kind() {
	case frame.KindFloat:
		values, err := s.Floats()

		return values, err == nil
	case frame.KindTime:
		values, err := s.Times()

		return sumstats.Nanos(values), err == nil
	default:
		return nil, false
	}
}
