package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrNoHeader is returned when the CSV input has no header row.
var ErrNoHeader = errors.New("csv has no header row")

// Layouts tried, in order, when inferring time columns.
var timeLayouts = []string{time.RFC3339Nano, time.DateTime, time.DateOnly}

// ReadCSV reads a frame from CSV with a header row. Each column becomes a float
// series when all non-empty cells parse as numbers, a time series when all
// non-empty cells parse as timestamps, and a string series otherwise.
// Empty cells in numeric and time columns are missing values.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	header, rows := records[0], records[1:]
	columns := make([]*Series, len(header))

	for col, name := range header {
		cells := make([]string, len(rows))
		for i, row := range rows {
			cells[i] = strings.TrimSpace(row[col])
		}

		columns[col] = inferSeries(strings.TrimSpace(name), cells)
	}

	return New(columns...)
}

func inferSeries(name string, cells []string) *Series {
	if values, ok := parseFloats(cells); ok {
		return NewFloatSeries(name, values)
	}

	if values, ok := parseTimes(cells); ok {
		return NewTimeSeries(name, values)
	}

	return NewStringSeries(name, cells)
}

func parseFloats(cells []string) ([]float64, bool) {
	values := make([]float64, len(cells))

	for i, cell := range cells {
		if cell == "" {
			values[i] = math.NaN()

			continue
		}

		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}

		values[i] = v
	}

	return values, true
}

func parseTimes(cells []string) ([]time.Time, bool) {
	values := make([]time.Time, len(cells))
	parsedAny := false

	for i, cell := range cells {
		if cell == "" {
			continue
		}

		ts, ok := parseTime(cell)
		if !ok {
			return nil, false
		}

		values[i] = ts
		parsedAny = true
	}

	return values, parsedAny
}

func parseTime(cell string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		ts, err := time.Parse(layout, cell)
		if err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

// ParseTime parses a timestamp in any layout ReadCSV accepts.
func ParseTime(s string) (time.Time, error) {
	ts, ok := parseTime(strings.TrimSpace(s))
	if !ok {
		return time.Time{}, fmt.Errorf("cannot parse time %q", s)
	}

	return ts, nil
}
