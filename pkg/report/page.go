package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/Sumatoshi-tech/autograde/pkg/grader"
	"github.com/Sumatoshi-tech/autograde/pkg/plot"
)

const defaultPageTitle = "autograde report"

// WriteHTML renders an HTML page with the submitted chart, when there is
// one, followed by the check timings.
func WriteHTML(w io.Writer, theme Theme, caseName string, axes *plot.Axes, results []grader.Result) error {
	cOpts := NewChartOpts(theme)

	title := caseName
	if title == "" {
		title = defaultPageTitle
	}

	page := components.NewPage()
	page.SetPageTitle(title)
	page.SetLayout(components.PageFlexLayout)

	if axes != nil {
		page.AddCharts(BuildLineChart(cOpts, axes))
	}

	page.AddCharts(BuildDurationChart(cOpts, results))

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render report page: %w", err)
	}

	return nil
}

// SaveHTML writes the HTML page to path.
func SaveHTML(path string, theme Theme, caseName string, axes *plot.Axes, results []grader.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report page: %w", err)
	}

	renderErr := WriteHTML(file, theme, caseName, axes, results)

	closeErr := file.Close()
	if renderErr != nil {
		return renderErr
	}

	if closeErr != nil {
		return fmt.Errorf("close report page: %w", closeErr)
	}

	return nil
}
