package plot_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/Sumatoshi-tech/autograde/pkg/frame"
	"github.com/Sumatoshi-tech/autograde/pkg/plot"
)

func floats(t *testing.T, s *frame.Series) []float64 {
	t.Helper()

	values, err := s.Floats()
	require.NoError(t, err)

	return values
}

func TestAxes_Builders(t *testing.T) {
	t.Parallel()

	axes := plot.New().
		SetTitle("Temps").
		SetXLabel("day").
		SetYLabel("°C").
		Plot("temp", []float64{1, 2, 3}, []float64{4, 5, 6}).
		Point(2, 5).
		AxHLine(5).
		AxVLine(2).
		Annotate("peak", 3, 6).
		ShowLegend()

	require.Len(t, axes.Lines, 4)
	assert.Equal(t, "Temps", axes.Title)
	assert.Equal(t, []float64{4, 5, 6}, floats(t, axes.Lines[0].Y))
	assert.Equal(t, 1, axes.Lines[1].Len())
	assert.Equal(t, []float64{5, 5}, floats(t, axes.Lines[2].Y))
	assert.Equal(t, []float64{2, 2}, floats(t, axes.Lines[3].X))
	assert.Equal(t, []plot.Text{{Text: "peak", X: 3, Y: 6}}, axes.Texts)
	require.NotNil(t, axes.Legend)
	assert.Equal(t, []string{"temp"}, axes.Legend.Entries)
}

func TestAxes_PlotTruncatesToShorter(t *testing.T) {
	t.Parallel()

	axes := plot.New().Plot("", []float64{1, 2, 3}, []float64{1, 2})
	assert.Equal(t, 2, axes.Lines[0].Len())
	assert.Equal(t, 2, axes.Lines[0].Y.Len())
}

func TestAxes_PlotTime(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	axes := plot.New().PlotTime("t", []time.Time{day, day.AddDate(0, 0, 1)}, []float64{1, 2})

	assert.Equal(t, frame.KindTime, axes.Lines[0].X.Kind())
}

func TestDecode(t *testing.T) {
	t.Parallel()

	doc := `{
		"title": "Sales",
		"xlabel": "month",
		"ylabel": "units",
		"legend": true,
		"lines": [
			{"label": "2023", "x": [1, 2, 3], "y": [10, null, 30]},
			{"x": ["2024-01-01", "2024-02-01"], "y": [1, 2]}
		],
		"texts": [{"text": "max", "x": 3, "y": 30}]
	}`

	axes, err := plot.Decode(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "month", axes.XLabel)
	require.Len(t, axes.Lines, 2)

	ys := floats(t, axes.Lines[0].Y)
	assert.InDelta(t, 10.0, ys[0], 0)
	assert.True(t, math.IsNaN(ys[1]))

	assert.Equal(t, frame.KindTime, axes.Lines[1].X.Kind())
	assert.Equal(t, []plot.Text{{Text: "max", X: 3, Y: 30}}, axes.Texts)
	require.NotNil(t, axes.Legend)
	assert.Equal(t, []string{"2023"}, axes.Legend.Entries)
}

func TestDecode_LegendEntries(t *testing.T) {
	t.Parallel()

	axes, err := plot.Decode(strings.NewReader(`{"legend": ["a", "b"]}`))
	require.NoError(t, err)
	require.NotNil(t, axes.Legend)
	assert.Equal(t, []string{"a", "b"}, axes.Legend.Entries)

	axes, err = plot.Decode(strings.NewReader(`{"legend": false}`))
	require.NoError(t, err)
	assert.Nil(t, axes.Legend)
}

func TestDecode_SchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := plot.Decode(strings.NewReader(`{"lines": [{"x": [1]}]}`))
	require.ErrorIs(t, err, plot.ErrInvalidChart)

	_, err = plot.Decode(strings.NewReader(`{"colour": "red"}`))
	require.ErrorIs(t, err, plot.ErrInvalidChart)
}

func TestDecode_LengthMismatch(t *testing.T) {
	t.Parallel()

	_, err := plot.Decode(strings.NewReader(`{"lines": [{"x": [1, 2], "y": [1]}]}`))
	require.ErrorIs(t, err, plot.ErrLengthMismatch)
}

func TestDecode_BadTimestamp(t *testing.T) {
	t.Parallel()

	_, err := plot.Decode(strings.NewReader(`{"lines": [{"x": ["soon"], "y": [1]}]}`))
	require.Error(t, err)
}

func TestFromECharts(t *testing.T) {
	t.Parallel()

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Weekly"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "day"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "users"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.SetXAxis([]string{"Mon", "Tue", "Wed"})
	line.AddSeries("active", []opts.LineData{{Value: 10}, {Value: 20.5}, {Value: 15}},
		charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "target", YAxis: 18}),
		charts.WithMarkPointNameCoordItemOpts(opts.MarkPointNameCoordItem{
			Name:       "peak",
			Coordinate: []any{1, 20.5},
		}),
	)
	line.AddSeries("pairs", []opts.LineData{{Value: []float64{0.5, 1}}, {Value: []any{1.5, "2"}}})

	axes, err := plot.FromECharts(line)
	require.NoError(t, err)

	assert.Equal(t, "Weekly", axes.Title)
	assert.Equal(t, "day", axes.XLabel)
	assert.Equal(t, "users", axes.YLabel)

	require.Len(t, axes.Lines, 3)
	assert.Equal(t, "active", axes.Lines[0].Label)
	assert.Equal(t, []float64{0, 1, 2}, floats(t, axes.Lines[0].X))
	assert.Equal(t, []float64{10, 20.5, 15}, floats(t, axes.Lines[0].Y))

	// The mark line follows its series.
	assert.Equal(t, []float64{18, 18}, floats(t, axes.Lines[1].Y))

	assert.Equal(t, []float64{0.5, 1.5}, floats(t, axes.Lines[2].X))
	assert.Equal(t, []float64{1, 2}, floats(t, axes.Lines[2].Y))

	assert.Equal(t, []plot.Text{{Text: "peak", X: 1, Y: 20.5}}, axes.Texts)
	require.NotNil(t, axes.Legend)
	assert.Equal(t, []string{"active", "pairs"}, axes.Legend.Entries)
}

func TestFromECharts_NumericCategories(t *testing.T) {
	t.Parallel()

	line := charts.NewLine()
	line.AddSeries("s", []opts.LineData{{Value: 1}, {Value: 2}})
	line.XAxisList[0].Data = []float64{2020, 2021}

	axes, err := plot.FromECharts(line)
	require.NoError(t, err)
	assert.Equal(t, []float64{2020, 2021}, floats(t, axes.Lines[0].X))
	assert.Nil(t, axes.Legend)
}

func TestFromECharts_UnsupportedValue(t *testing.T) {
	t.Parallel()

	line := charts.NewLine()
	line.AddSeries("s", []opts.LineData{{Value: struct{}{}}})

	_, err := plot.FromECharts(line)
	require.ErrorIs(t, err, plot.ErrUnsupportedData)
}

func TestFromGoChart(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	c := chart.Chart{
		Title: "Latency",
		XAxis: chart.XAxis{Name: "time"},
		YAxis: chart.YAxis{Name: "ms"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "p50", XValues: []float64{1, 2}, YValues: []float64{3, 4}},
			&chart.TimeSeries{Name: "p99", XValues: []time.Time{day}, YValues: []float64{9}},
			chart.AnnotationSeries{Annotations: []chart.Value2{{Label: "spike", XValue: 2, YValue: 4}}},
		},
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}

	axes := plot.FromGoChart(&c)

	assert.Equal(t, "Latency", axes.Title)
	assert.Equal(t, "time", axes.XLabel)
	assert.Equal(t, "ms", axes.YLabel)
	require.Len(t, axes.Lines, 2)
	assert.Equal(t, frame.KindTime, axes.Lines[1].X.Kind())
	assert.Equal(t, []plot.Text{{Text: "spike", X: 2, Y: 4}}, axes.Texts)
	require.NotNil(t, axes.Legend)
	assert.Equal(t, []string{"p50", "p99"}, axes.Legend.Entries)
}

func TestFromGoChart_NoLegend(t *testing.T) {
	t.Parallel()

	axes := plot.FromGoChart(&chart.Chart{})
	assert.Nil(t, axes.Legend)
	assert.Empty(t, axes.Lines)
}
