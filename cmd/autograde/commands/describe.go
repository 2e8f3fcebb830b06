package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/autograde/pkg/config"
	"github.com/Sumatoshi-tech/autograde/pkg/frame"
	"github.com/Sumatoshi-tech/autograde/pkg/report"
	"github.com/Sumatoshi-tech/autograde/pkg/sumstats"
)

var statNames = [sumstats.Size]string{"min", "q1", "median", "q3", "max", "mean", "std"}

const stdIndex = sumstats.Size - 1

// columnSummary is the JSON form of describe's output.
type columnSummary struct {
	Column  string           `json:"column"`
	Kind    string           `json:"kind"`
	Rows    int              `json:"rows"`
	Missing int              `json:"missing"`
	Summary sumstats.Summary `json:"summary"`
}

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "describe <data.csv> <column>",
		Short: "Print the summary statistics of a column",
		Long: `Print the rounded (min, Q1, median, Q3, max, mean, std) tuple of a CSV
column, the same fingerprint sumstats_for_all_lines compares against.
Datetime columns are summarized by their Unix nanosecond values.`,
		SilenceUsage: true,
		Args:         cobra.ExactArgs(2), //nolint:mnd // path and column.
		RunE: func(cmd *cobra.Command, args []string) error {
			return describe(cmd.OutOrStdout(), args[0], args[1], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", config.FormatTable, "Output format: table, json")

	return cmd
}

func describe(w io.Writer, path, column, format string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open data: %w", err)
	}
	defer file.Close()

	f, err := frame.ReadCSV(file)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	col, err := f.Column(column)
	if err != nil {
		return err
	}

	sum, err := sumstats.OfSeries(col)
	if err != nil {
		return fmt.Errorf("column %q: %w", column, err)
	}

	out := columnSummary{
		Column:  column,
		Kind:    col.Kind().String(),
		Rows:    col.Len(),
		Missing: countMissing(col),
		Summary: sum,
	}

	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(out)
	case config.FormatTable:
		return writeSummaryTable(w, out, col.Kind() == frame.KindTime)
	default:
		return fmt.Errorf("%w: %q", report.ErrUnknownFormat, format)
	}
}

func writeSummaryTable(w io.Writer, out columnSummary, datetime bool) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Footer = text.FormatDefault
	tw.SetTitle("%s (%s)", out.Column, out.Kind)
	tw.AppendHeader(table.Row{"Statistic", "Value"})

	values := out.Summary.Array()
	for i, name := range statNames {
		tw.AppendRow(table.Row{name, formatStat(values[i], i, datetime)})
	}

	tw.AppendFooter(table.Row{"rows", fmt.Sprintf("%s (%s missing)",
		humanize.Comma(int64(out.Rows)), humanize.Comma(int64(out.Missing)))})

	_, err := io.WriteString(w, tw.Render()+"\n")

	return err
}

// formatStat renders datetime statistics as instants, and their std as a
// duration.
func formatStat(v float64, idx int, datetime bool) string {
	if !datetime {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	if idx == stdIndex {
		return time.Duration(v).String()
	}

	return time.Unix(0, int64(v)).UTC().Format(time.RFC3339)
}

func countMissing(s *frame.Series) int {
	n := 0

	for i := range s.Len() {
		if s.IsMissing(i) {
			n++
		}
	}

	return n
}
