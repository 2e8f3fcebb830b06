// Package report renders grading results for people: a terminal table, a JSON
// document, and an HTML page that re-plots the submitted chart next to the
// check timings.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/autograde/pkg/config"
	"github.com/Sumatoshi-tech/autograde/pkg/grader"
	"github.com/Sumatoshi-tech/autograde/pkg/observability"
)

// ErrUnknownFormat is returned for an output format other than table or json.
var ErrUnknownFormat = errors.New("unknown report format")

const (
	messageColumn = 6
	// maxMessageWidth wraps long failure messages in the table.
	maxMessageWidth = 60
)

// Summary is the JSON form of a graded case.
type Summary struct {
	Case    string          `json:"case"`
	Passed  bool            `json:"passed"`
	Total   int             `json:"total"`
	Failed  int             `json:"failed"`
	Results []grader.Result `json:"results"`
}

// Summarize counts the results of a case.
func Summarize(caseName string, results []grader.Result) Summary {
	failed := 0

	for _, r := range results {
		if !r.Passed() {
			failed++
		}
	}

	return Summary{
		Case:    caseName,
		Passed:  failed == 0,
		Total:   len(results),
		Failed:  failed,
		Results: results,
	}
}

// Write renders results in the given format.
func Write(w io.Writer, format, caseName string, results []grader.Result) error {
	switch format {
	case config.FormatTable:
		return WriteTable(w, caseName, results)
	case config.FormatJSON:
		return WriteJSON(w, caseName, results)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteJSON writes the case summary as indented JSON.
func WriteJSON(w io.Writer, caseName string, results []grader.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(Summarize(caseName, results))
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}

// WriteTable writes one row per check with its status, failure kind, timing
// and message, followed by a pass count.
func WriteTable(w io.Writer, caseName string, results []grader.Result) error {
	sum := Summarize(caseName, results)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Footer = text.FormatDefault

	if caseName != "" {
		tw.SetTitle("%s", caseName)
	}

	tw.AppendHeader(table.Row{"#", "Check", "Status", "Kind", "Time", "Message"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: messageColumn, WidthMax: maxMessageWidth, WidthMaxEnforcer: text.WrapSoft},
	})

	for i, r := range results {
		tw.AppendRow(table.Row{
			strconv.Itoa(i + 1),
			r.Name,
			statusLabel(r.Status),
			r.Kind,
			r.Duration.Round(time.Microsecond).String(),
			r.Message,
		})
	}

	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d/%d checks passed", sum.Total-sum.Failed, sum.Total)})

	_, err := io.WriteString(w, tw.Render()+"\n")
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// statusLabel colors a status for terminals; color.NoColor disables it.
func statusLabel(status string) string {
	switch status {
	case observability.StatusPass:
		return color.New(color.FgGreen).Sprint("PASS")
	case observability.StatusFail:
		return color.New(color.FgRed).Sprint("FAIL")
	default:
		return color.New(color.FgYellow).Sprint("ERROR")
	}
}
