package plot

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/autograde/pkg/frame"
)

// ErrUnsupportedData is returned when a series holds data the adapter cannot read.
var ErrUnsupportedData = errors.New("unsupported series data")

// pairLen is the length of an explicit [x, y] data item.
const pairLen = 2

// FromECharts converts a go-echarts line chart into Axes without modifying it.
//
// Data items that are plain values take their x from the x-axis data, which
// may be numeric or category labels (categories map to their index, the way
// ECharts positions them). Items given as [x, y] pairs use their own x.
// MarkLine y/x items become horizontal/vertical reference lines and
// MarkPoint coordinate items become text annotations.
func FromECharts(line *charts.Line) (*Axes, error) {
	axes := &Axes{Title: line.Title.Title}

	if len(line.XAxisList) > 0 {
		axes.XLabel = line.XAxisList[0].Name
	}

	if len(line.YAxisList) > 0 {
		axes.YLabel = line.YAxisList[0].Name
	}

	var categories []any
	if len(line.XAxisList) > 0 {
		categories = toAnySlice(line.XAxisList[0].Data)
	}

	for _, series := range line.MultiSeries {
		err := addEChartsSeries(axes, series, categories)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", series.Name, err)
		}
	}

	if line.Legend.Show != nil && *line.Legend.Show {
		axes.ShowLegend()
	}

	return axes, nil
}

func addEChartsSeries(axes *Axes, series charts.SingleSeries, categories []any) error {
	items, err := lineItems(series.Data)
	if err != nil {
		return err
	}

	xs := make([]float64, len(items))
	ys := make([]float64, len(items))

	for i, item := range items {
		xs[i], ys[i], err = itemXY(item, i, categories)
		if err != nil {
			return err
		}
	}

	axes.PlotSeries(series.Name, frame.NewFloatSeries("x", xs), frame.NewFloatSeries("y", ys))

	if series.MarkLines != nil {
		addMarkLines(axes, series.MarkLines.Data)
	}

	if series.MarkPoints != nil {
		addMarkPoints(axes, series.MarkPoints.Data)
	}

	return nil
}

func lineItems(data any) ([]any, error) {
	switch d := data.(type) {
	case nil:
		return nil, nil
	case []opts.LineData:
		items := make([]any, len(d))
		for i, item := range d {
			items[i] = item.Value
		}

		return items, nil
	case []any:
		return d, nil
	case []float64:
		return toAnySlice(d), nil
	case []int:
		return toAnySlice(d), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedData, data)
	}
}

func itemXY(item any, idx int, categories []any) (float64, float64, error) {
	if pair := toAnySlice(item); len(pair) == pairLen {
		px, okX := numeric(pair[0])
		py, okY := numeric(pair[1])

		if !okX || !okY {
			return 0, 0, fmt.Errorf("%w: pair %v", ErrUnsupportedData, pair)
		}

		return px, py, nil
	}

	value, ok := numeric(item)
	if !ok {
		return 0, 0, fmt.Errorf("%w: value %v", ErrUnsupportedData, item)
	}

	return categoryX(idx, categories), value, nil
}

// categoryX returns the numeric category at idx, or idx itself for label axes.
func categoryX(idx int, categories []any) float64 {
	if idx < len(categories) {
		if x, ok := numeric(categories[idx]); ok {
			return x
		}
	}

	return float64(idx)
}

func addMarkLines(axes *Axes, items []any) {
	for _, item := range items {
		switch ml := item.(type) {
		case opts.MarkLineNameYAxisItem:
			if y, ok := numeric(ml.YAxis); ok {
				axes.AxHLine(y)
			}
		case opts.MarkLineNameXAxisItem:
			if x, ok := numeric(ml.XAxis); ok {
				axes.AxVLine(x)
			}
		}
	}
}

func addMarkPoints(axes *Axes, items []any) {
	for _, item := range items {
		mp, ok := item.(opts.MarkPointNameCoordItem)
		if !ok || len(mp.Coordinate) != pairLen {
			continue
		}

		x, okX := numeric(mp.Coordinate[0])
		y, okY := numeric(mp.Coordinate[1])

		if !okX || !okY {
			continue
		}

		text := mp.Value
		if text == "" {
			text = mp.Name
		}

		axes.Annotate(text, x, y)
	}
}

// numeric accepts Go numbers and numeric strings. nil reads as NaN.
func numeric(v any) (float64, bool) {
	if v == nil {
		return math.NaN(), true
	}

	if f, ok := frame.ToFloat(v); ok {
		return f, true
	}

	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(s, 64)

		return f, err == nil
	}

	return 0, false
}

func toAnySlice(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case []float64:
		return boxAll(s)
	case []int:
		return boxAll(s)
	case []string:
		return boxAll(s)
	default:
		return nil
	}
}

func boxAll[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}
