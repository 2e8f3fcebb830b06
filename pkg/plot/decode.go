package plot

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/autograde/pkg/frame"
)

// Sentinel errors for decoding.
var (
	ErrInvalidChart   = errors.New("chart does not match schema")
	ErrLengthMismatch = errors.New("line x and y lengths differ")
)

//go:embed axes.schema.json
var axesSchema []byte

type axesDoc struct {
	Title  string          `json:"title"`
	XLabel string          `json:"xlabel"`
	YLabel string          `json:"ylabel"`
	Legend json.RawMessage `json:"legend"`
	Lines  []lineDoc       `json:"lines"`
	Texts  []textDoc       `json:"texts"`
}

type lineDoc struct {
	Label string     `json:"label"`
	X     []any      `json:"x"`
	Y     []*float64 `json:"y"`
}

type textDoc struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Decode reads a chart in JSON form. The document is validated against the
// embedded schema before conversion. A line's x values are either all numbers
// or all timestamps; null entries become missing values.
func Decode(r io.Reader) (*Axes, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read chart: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(axesSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("validate chart: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			msgs = append(msgs, re.String())
		}

		return nil, fmt.Errorf("%w: %s", ErrInvalidChart, strings.Join(msgs, "; "))
	}

	var doc axesDoc

	err = json.Unmarshal(raw, &doc)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}

	return doc.toAxes()
}

func (d axesDoc) toAxes() (*Axes, error) {
	axes := &Axes{Title: d.Title, XLabel: d.XLabel, YLabel: d.YLabel}

	for i, ld := range d.Lines {
		if len(ld.X) != len(ld.Y) {
			return nil, fmt.Errorf("%w: line %d has %d x and %d y values", ErrLengthMismatch, i, len(ld.X), len(ld.Y))
		}

		x, err := decodeX(ld.X)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}

		ys := make([]float64, len(ld.Y))
		for j, y := range ld.Y {
			ys[j] = math.NaN()
			if y != nil {
				ys[j] = *y
			}
		}

		axes.PlotSeries(ld.Label, x, frame.NewFloatSeries("y", ys))
	}

	for _, td := range d.Texts {
		axes.Annotate(td.Text, td.X, td.Y)
	}

	err := decodeLegend(axes, d.Legend)
	if err != nil {
		return nil, err
	}

	return axes, nil
}

func decodeX(values []any) (*frame.Series, error) {
	hasString := false

	for _, v := range values {
		if _, ok := v.(string); ok {
			hasString = true

			break
		}
	}

	if !hasString {
		xs := make([]float64, len(values))
		for i, v := range values {
			xs[i] = math.NaN()
			if f, ok := v.(float64); ok {
				xs[i] = f
			}
		}

		return frame.NewFloatSeries("x", xs), nil
	}

	times := make([]time.Time, len(values))

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}

		ts, err := frame.ParseTime(s)
		if err != nil {
			return nil, err
		}

		times[i] = ts
	}

	return frame.NewTimeSeries("x", times), nil
}

// decodeLegend accepts either a flag, which derives entries from line labels,
// or an explicit list of entries.
func decodeLegend(axes *Axes, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}

	var flag bool

	if json.Unmarshal(raw, &flag) == nil {
		if flag {
			axes.ShowLegend()
		}

		return nil
	}

	var entries []string

	err := json.Unmarshal(raw, &entries)
	if err != nil {
		return fmt.Errorf("decode legend: %w", err)
	}

	axes.Legend = &Legend{Entries: entries}

	return nil
}
