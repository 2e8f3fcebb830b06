package plot

import (
	chart "github.com/wcharczuk/go-chart/v2"
)

// FromGoChart converts a go-chart chart into Axes.
//
// Continuous and time series become lines, annotation series become text
// annotations. go-chart has no legend type of its own: a legend is drawn as a
// chart element, so any element counts as an attached legend. Other series
// types (bar, histogram, moving averages) are skipped.
func FromGoChart(c *chart.Chart) *Axes {
	axes := &Axes{Title: c.Title, XLabel: c.XAxis.Name, YLabel: c.YAxis.Name}

	for _, series := range c.Series {
		addGoChartSeries(axes, series)
	}

	if len(c.Elements) > 0 {
		axes.ShowLegend()
	}

	return axes
}

func addGoChartSeries(axes *Axes, series chart.Series) {
	switch s := series.(type) {
	case chart.ContinuousSeries:
		axes.Plot(s.Name, s.XValues, s.YValues)
	case *chart.ContinuousSeries:
		axes.Plot(s.Name, s.XValues, s.YValues)
	case chart.TimeSeries:
		axes.PlotTime(s.Name, s.XValues, s.YValues)
	case *chart.TimeSeries:
		axes.PlotTime(s.Name, s.XValues, s.YValues)
	case chart.AnnotationSeries:
		addAnnotations(axes, s.Annotations)
	case *chart.AnnotationSeries:
		addAnnotations(axes, s.Annotations)
	}
}

func addAnnotations(axes *Axes, annotations []chart.Value2) {
	for _, a := range annotations {
		axes.Annotate(a.Label, a.XValue, a.YValue)
	}
}
