// Package plot models a rendered chart the way a grader inspects it: a set of
// lines with x/y data, free-floating text annotations, axis labels and an
// optional legend. Charts built with go-echarts or go-chart, or decoded from
// JSON, are converted into this model before checking.
package plot

import (
	"time"

	"github.com/Sumatoshi-tech/autograde/pkg/frame"
)

// Reference lines span the whole axis, expressed as axes fractions.
const (
	axesStart = 0.0
	axesEnd   = 1.0
)

// Line is a plotted line. X and Y always have the same length.
type Line struct {
	Label string
	X     *frame.Series
	Y     *frame.Series
}

// Len returns the number of data points.
func (l Line) Len() int {
	return l.X.Len()
}

// Text is an annotation anchored at data coordinates.
type Text struct {
	Text string
	X    float64
	Y    float64
}

// Legend is an attached legend with its entries.
type Legend struct {
	Entries []string
}

// Axes is a single chart area.
type Axes struct {
	Title  string
	XLabel string
	YLabel string
	Lines  []Line
	Texts  []Text
	Legend *Legend
}

// New creates empty axes.
func New() *Axes {
	return &Axes{}
}

// Plot adds a line through the points (xs[i], ys[i]).
// Extra values in the longer slice are dropped.
func (a *Axes) Plot(label string, xs, ys []float64) *Axes {
	n := min(len(xs), len(ys))
	a.Lines = append(a.Lines, Line{
		Label: label,
		X:     frame.NewFloatSeries("x", xs[:n]),
		Y:     frame.NewFloatSeries("y", ys[:n]),
	})

	return a
}

// PlotTime adds a line with datetime x values.
func (a *Axes) PlotTime(label string, xs []time.Time, ys []float64) *Axes {
	n := min(len(xs), len(ys))
	a.Lines = append(a.Lines, Line{
		Label: label,
		X:     frame.NewTimeSeries("x", xs[:n]),
		Y:     frame.NewFloatSeries("y", ys[:n]),
	})

	return a
}

// PlotSeries adds a line from two existing series.
func (a *Axes) PlotSeries(label string, x, y *frame.Series) *Axes {
	a.Lines = append(a.Lines, Line{Label: label, X: x, Y: y})

	return a
}

// Point adds a single-point line, the shape a scatter marker takes.
func (a *Axes) Point(x, y float64) *Axes {
	return a.Plot("", []float64{x}, []float64{y})
}

// AxHLine adds a horizontal reference line at y spanning the x axis.
func (a *Axes) AxHLine(y float64) *Axes {
	return a.Plot("", []float64{axesStart, axesEnd}, []float64{y, y})
}

// AxVLine adds a vertical reference line at x spanning the y axis.
func (a *Axes) AxVLine(x float64) *Axes {
	return a.Plot("", []float64{x, x}, []float64{axesStart, axesEnd})
}

// Annotate adds a text annotation at (x, y).
func (a *Axes) Annotate(text string, x, y float64) *Axes {
	a.Texts = append(a.Texts, Text{Text: text, X: x, Y: y})

	return a
}

// SetTitle sets the chart title.
func (a *Axes) SetTitle(title string) *Axes {
	a.Title = title

	return a
}

// SetXLabel sets the x-axis label.
func (a *Axes) SetXLabel(label string) *Axes {
	a.XLabel = label

	return a
}

// SetYLabel sets the y-axis label.
func (a *Axes) SetYLabel(label string) *Axes {
	a.YLabel = label

	return a
}

// ShowLegend attaches a legend listing every labelled line.
func (a *Axes) ShowLegend() *Axes {
	legend := &Legend{}

	for _, line := range a.Lines {
		if line.Label != "" {
			legend.Entries = append(legend.Entries, line.Label)
		}
	}

	a.Legend = legend

	return a
}
