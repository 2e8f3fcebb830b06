// Package grader runs a grading case: a YAML file naming a submission's data
// and chart and the checks to evaluate against them.
package grader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/autograde/pkg/check"
	"github.com/Sumatoshi-tech/autograde/pkg/frame"
	"github.com/Sumatoshi-tech/autograde/pkg/plot"
	"github.com/Sumatoshi-tech/autograde/pkg/sumstats"
)

// Sentinel errors for case loading and evaluation.
var (
	ErrNoChecks      = errors.New("case has no checks")
	ErrMissingCheck  = errors.New("check entry has no check name")
	ErrUnknownCheck  = errors.New("unknown check")
	ErrNoData        = errors.New("check needs data but the case has none")
	ErrNoChart       = errors.New("check needs a chart but the case has none")
	ErrMissingParam  = errors.New("missing check parameter")
	ErrInvalidTarget = errors.New("invalid expected value")
)

// Case is a parsed grading case.
type Case struct {
	Name   string  `yaml:"name,omitempty"`
	Data   string  `yaml:"data,omitempty"`
	Chart  string  `yaml:"chart,omitempty"`
	Checks []Check `yaml:"checks"`

	dir string
}

// Check is one entry of a case's check list. Which parameters apply depends
// on the check name.
type Check struct {
	Name  string `yaml:"name,omitempty"`
	Check string `yaml:"check"`

	Column    string             `yaml:"column,omitempty"`
	XColumn   string             `yaml:"x_column,omitempty"`
	YColumn   string             `yaml:"y_column,omitempty"`
	Ascending *bool              `yaml:"ascending,omitempty"`
	Values    []float64          `yaml:"values,omitempty"`
	X         []float64          `yaml:"x,omitempty"`
	Y         []float64          `yaml:"y,omitempty"`
	Expected  []any              `yaml:"expected,omitempty"`
	Points    []check.Point      `yaml:"points,omitempty"`
	Summaries []sumstats.Summary `yaml:"summaries,omitempty"`
	Value     *float64           `yaml:"value,omitempty"`
	Count     int                `yaml:"count,omitempty"`
	Text      string             `yaml:"text,omitempty"`
	At        *check.Point       `yaml:"at,omitempty"`
}

// Label is the check's display name, falling back to the check kind.
func (c Check) Label() string {
	if c.Name != "" {
		return c.Name
	}

	return c.Check
}

// LoadCase reads and validates a case file. Data and chart paths are resolved
// against the case file's directory.
func LoadCase(path string) (*Case, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case: %w", err)
	}

	c, err := ParseCase(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c.dir = filepath.Dir(path)

	return c, nil
}

// ParseCase decodes a case from YAML. Unknown fields are rejected so typos in
// parameter names fail loudly instead of silently defaulting.
func ParseCase(raw []byte) (*Case, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var c Case

	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parse case: %w", err)
	}

	if len(c.Checks) == 0 {
		return nil, ErrNoChecks
	}

	for i, entry := range c.Checks {
		if entry.Check == "" {
			return nil, fmt.Errorf("check %d: %w", i, ErrMissingCheck)
		}
	}

	return &c, nil
}

func (c *Case) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(c.dir, path)
}

// DataPath is the resolved path of the data CSV, or empty.
func (c *Case) DataPath() string {
	return c.resolve(c.Data)
}

// ChartPath is the resolved path of the chart JSON, or empty.
func (c *Case) ChartPath() string {
	return c.resolve(c.Chart)
}

// LoadSubmission reads the case's data and chart. Either may be absent, in
// which case the corresponding result is nil.
func (c *Case) LoadSubmission() (*frame.Frame, *plot.Axes, error) {
	var (
		f    *frame.Frame
		axes *plot.Axes
	)

	if path := c.DataPath(); path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open data: %w", err)
		}
		defer file.Close()

		f, err = frame.ReadCSV(file)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if path := c.ChartPath(); path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open chart: %w", err)
		}
		defer file.Close()

		axes, err = plot.Decode(file)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return f, axes, nil
}
