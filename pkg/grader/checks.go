package grader

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Sumatoshi-tech/autograde/pkg/check"
	"github.com/Sumatoshi-tech/autograde/pkg/frame"
	"github.com/Sumatoshi-tech/autograde/pkg/plot"
)

// submission is what a check is evaluated against.
type submission struct {
	frame *frame.Frame
	axes  *plot.Axes
}

func (s submission) needFrame() (*frame.Frame, error) {
	if s.frame == nil {
		return nil, ErrNoData
	}

	return s.frame, nil
}

func (s submission) needAxes() (*plot.Axes, error) {
	if s.axes == nil {
		return nil, ErrNoChart
	}

	return s.axes, nil
}

type checkFunc func(sub submission, c Check) (bool, error)

var registry = map[string]checkFunc{
	"array_vs_column":        arrayVsColumn,
	"column_sorted":          columnSorted,
	"unique_values":          uniqueValues,
	"lines_for_columns":      linesForColumns,
	"lines_for_data":         linesForData,
	"points":                 points,
	"sumstats_for_all_lines": sumStatsForAllLines,
	"axhline":                axesCheck(check.AxHLine),
	"axhline_value":          valueCheck(check.AxHLineValue),
	"axvline":                axesCheck(check.AxVLine),
	"axvline_value":          valueCheck(check.AxVLineValue),
	"legend":                 legend,
	"legibility":             legibility,
	"text_coords":            textCoords,
}

// CheckNames lists every check a case may name, sorted.
func CheckNames() []string {
	return slices.Sorted(maps.Keys(registry))
}

func missing(param string) error {
	return fmt.Errorf("%w: %s", ErrMissingParam, param)
}

func arrayVsColumn(sub submission, c Check) (bool, error) {
	f, err := sub.needFrame()
	if err != nil {
		return false, err
	}

	return check.ArrayVsColumn(c.Values, f, c.Column)
}

func columnSorted(sub submission, c Check) (bool, error) {
	f, err := sub.needFrame()
	if err != nil {
		return false, err
	}

	ascending := c.Ascending == nil || *c.Ascending

	return check.ColumnSorted(f, c.Column, ascending)
}

func uniqueValues(sub submission, c Check) (bool, error) {
	f, err := sub.needFrame()
	if err != nil {
		return false, err
	}

	col, err := f.Column(c.Column)
	if err != nil {
		return false, err
	}

	expected := c.Expected

	// YAML keeps timestamps as strings, so parse them for datetime columns.
	if col.Kind() == frame.KindTime {
		expected = make([]any, len(c.Expected))

		for i, v := range c.Expected {
			s, ok := v.(string)
			if !ok {
				return false, fmt.Errorf("%w: %v is not a timestamp", ErrInvalidTarget, v)
			}

			ts, perr := frame.ParseTime(s)
			if perr != nil {
				return false, fmt.Errorf("%w: %w", ErrInvalidTarget, perr)
			}

			expected[i] = ts
		}
	}

	return check.UniqueValues(f, c.Column, expected...)
}

func linesForColumns(sub submission, c Check) (bool, error) {
	f, err := sub.needFrame()
	if err != nil {
		return false, err
	}

	axes, err := sub.needAxes()
	if err != nil {
		return false, err
	}

	return check.LinesForColumns(axes, f, c.XColumn, c.YColumn)
}

func linesForData(sub submission, c Check) (bool, error) {
	axes, err := sub.needAxes()
	if err != nil {
		return false, err
	}

	return check.LinesForData(axes, c.X, c.Y), nil
}

func points(sub submission, c Check) (bool, error) {
	axes, err := sub.needAxes()
	if err != nil {
		return false, err
	}

	return check.Points(axes, c.Points...), nil
}

func sumStatsForAllLines(sub submission, c Check) (bool, error) {
	axes, err := sub.needAxes()
	if err != nil {
		return false, err
	}

	return check.SumStatsForAllLines(axes, c.Summaries)
}

func axesCheck(fn func(*plot.Axes) (bool, error)) checkFunc {
	return func(sub submission, _ Check) (bool, error) {
		axes, err := sub.needAxes()
		if err != nil {
			return false, err
		}

		return fn(axes)
	}
}

func valueCheck(fn func(*plot.Axes, float64) (bool, error)) checkFunc {
	return func(sub submission, c Check) (bool, error) {
		axes, err := sub.needAxes()
		if err != nil {
			return false, err
		}

		if c.Value == nil {
			return false, missing("value")
		}

		return fn(axes, *c.Value)
	}
}

func legend(sub submission, c Check) (bool, error) {
	axes, err := sub.needAxes()
	if err != nil {
		return false, err
	}

	return check.Legend(axes, c.Count), nil
}

func legibility(sub submission, _ Check) (bool, error) {
	axes, err := sub.needAxes()
	if err != nil {
		return false, err
	}

	return check.Legibility(axes), nil
}

func textCoords(sub submission, c Check) (bool, error) {
	axes, err := sub.needAxes()
	if err != nil {
		return false, err
	}

	if c.At == nil {
		return false, missing("at")
	}

	return check.TextCoords(axes, c.Text, c.At.X, c.At.Y)
}
