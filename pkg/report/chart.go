package report

import (
	"math"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/autograde/pkg/frame"
	"github.com/Sumatoshi-tech/autograde/pkg/grader"
	"github.com/Sumatoshi-tech/autograde/pkg/plot"
)

// ECharts axis types.
const (
	axisValue    = "value"
	axisTime     = "time"
	axisCategory = "category"
)

const (
	chartWidth       = "100%"
	chartHeight      = "480px"
	singlePointSize  = 10
	annotationSymbol = "pin"
)

// BuildLineChart re-plots the submitted axes as a go-echarts line chart. Every
// line becomes one series of [x, y] pairs; datetime x values are plotted on a
// time axis in Unix milliseconds and missing values become gaps. Text
// annotations are attached to the first series as mark points.
// If cOpts is nil, the light theme is used.
func BuildLineChart(cOpts *ChartOpts, axes *plot.Axes) *charts.Line {
	if cOpts == nil {
		cOpts = NewChartOpts(ThemeLight)
	}

	xType := axisValue
	if hasTimeX(axes) {
		xType = axisTime
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(chartWidth, chartHeight)),
		charts.WithTitleOpts(cOpts.Title(axes.Title, "")),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithXAxisOpts(cOpts.XAxis(axes.XLabel, xType)),
		charts.WithYAxisOpts(cOpts.YAxis(axes.YLabel)),
		charts.WithLegendOpts(cOpts.Legend(axes.Legend != nil)),
	)

	palette := cOpts.Theme().Palette

	for i, l := range axes.Lines {
		color := palette[i%len(palette)]

		seriesOpts := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
		}

		if l.Len() == 1 {
			seriesOpts = append(seriesOpts, charts.WithLineChartOpts(opts.LineChart{
				ShowSymbol: opts.Bool(true),
				SymbolSize: singlePointSize,
			}))
		}

		if i == 0 {
			seriesOpts = append(seriesOpts, annotations(axes.Texts)...)
		}

		line.AddSeries(l.Label, lineData(l), seriesOpts...)
	}

	if len(axes.Lines) == 0 && len(axes.Texts) > 0 {
		line.AddSeries("", nil, annotations(axes.Texts)...)
	}

	return line
}

// BuildDurationChart draws one bar per check result, its height the check's
// evaluation time in microseconds and its color the check status.
func BuildDurationChart(cOpts *ChartOpts, results []grader.Result) *charts.Bar {
	if cOpts == nil {
		cOpts = NewChartOpts(ThemeLight)
	}

	labels := make([]string, len(results))
	data := make([]opts.BarData, len(results))

	for i, r := range results {
		labels[i] = r.Name
		data[i] = opts.BarData{
			Name:  r.Status,
			Value: float64(r.Duration) / float64(time.Microsecond),
			ItemStyle: &opts.ItemStyle{
				Color: cOpts.StatusColor(r.Status),
			},
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(chartWidth, chartHeight)),
		charts.WithTitleOpts(cOpts.Title("Check timings", "microseconds per check")),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithXAxisOpts(cOpts.XAxis("", axisCategory)),
		charts.WithYAxisOpts(cOpts.YAxis("µs")),
		charts.WithLegendOpts(cOpts.Legend(false)),
	)

	bar.SetXAxis(labels)
	bar.AddSeries("duration", data)

	return bar
}

func hasTimeX(axes *plot.Axes) bool {
	for _, l := range axes.Lines {
		if l.X.Kind() == frame.KindTime {
			return true
		}
	}

	return false
}

func lineData(l plot.Line) []opts.LineData {
	data := make([]opts.LineData, l.Len())

	for i := range data {
		data[i] = opts.LineData{Value: []any{coord(l.X, i), coord(l.Y, i)}}
	}

	return data
}

// coord returns element i in a form ECharts plots: numbers as is, datetimes
// as Unix milliseconds, missing and infinite values as nil.
func coord(s *frame.Series, i int) any {
	if s.IsMissing(i) {
		return nil
	}

	switch v := s.At(i).(type) {
	case time.Time:
		return v.UnixMilli()
	case float64:
		if math.IsInf(v, 0) {
			return nil
		}

		return v
	default:
		return v
	}
}

func annotations(texts []plot.Text) []charts.SeriesOpts {
	if len(texts) == 0 {
		return nil
	}

	items := make([]opts.MarkPointNameCoordItem, len(texts))
	for i, t := range texts {
		items[i] = opts.MarkPointNameCoordItem{
			Name:       t.Text,
			Value:      t.Text,
			Coordinate: []any{t.X, t.Y},
		}
	}

	return []charts.SeriesOpts{
		charts.WithMarkPointNameCoordItemOpts(items...),
		charts.WithMarkPointStyleOpts(opts.MarkPointStyle{Symbol: []string{annotationSymbol}}),
	}
}
