package check

import (
	"github.com/Sumatoshi-tech/autograde/pkg/alg/stats"
	"github.com/Sumatoshi-tech/autograde/pkg/plot"
)

// refLinePoints is the point count of a straight reference line on each axis.
const refLinePoints = 2

type orientation int

const (
	horizontal orientation = iota
	vertical
)

func (o orientation) String() string {
	if o == vertical {
		return "vertical"
	}

	return "horizontal"
}

// refLineScan collects the shared coordinate of every straight line with the
// requested orientation.
type refLineScan struct {
	straight bool
	values   []float64
}

func scanRefLines(axes *plot.Axes, o orientation) refLineScan {
	var scan refLineScan

	for _, line := range axes.Lines {
		if line.X.Len() != refLinePoints || line.Y.Len() != refLinePoints {
			continue
		}

		scan.straight = true

		data := line.Y
		if o == vertical {
			data = line.X
		}

		values, ok := numericValues(data)
		if ok && values[0] == values[1] {
			scan.values = append(scan.values, values[0])
		}
	}

	return scan
}

func (s refLineScan) verdict(o orientation) error {
	if !s.straight {
		return failf(KindNotFound, "graph did not contain a straight line")
	}

	if len(s.values) == 0 {
		return failf(KindWrongShape, "straight line in graph was not %s", o)
	}

	return nil
}

// AxHLine reports whether the chart has a horizontal reference line: a line
// with exactly two points whose y values are equal.
func AxHLine(axes *plot.Axes) (bool, error) {
	if err := scanRefLines(axes, horizontal).verdict(horizontal); err != nil {
		return false, err
	}

	return true, nil
}

// AxHLineValue is AxHLine with the line's y value also required to equal value.
func AxHLineValue(axes *plot.Axes, value float64) (bool, error) {
	return refLineAt(axes, horizontal, value, func(a, b float64) bool { return a == b })
}

// AxVLine reports whether the chart has a vertical reference line.
func AxVLine(axes *plot.Axes) (bool, error) {
	if err := scanRefLines(axes, vertical).verdict(vertical); err != nil {
		return false, err
	}

	return true, nil
}

// AxVLineValue is AxVLine with the line's x value also required to be close
// to value.
func AxVLineValue(axes *plot.Axes, value float64) (bool, error) {
	return refLineAt(axes, vertical, value, stats.IsClose)
}

func refLineAt(axes *plot.Axes, o orientation, value float64, equal func(a, b float64) bool) (bool, error) {
	scan := scanRefLines(axes, o)
	if err := scan.verdict(o); err != nil {
		return false, err
	}

	for _, v := range scan.values {
		if equal(v, value) {
			return true, nil
		}
	}

	return false, failf(KindWrongValue, "%s line in graph was not at the expected value %g", o, value)
}
