package report

import (
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/autograde/pkg/observability"
)

// Theme represents a color theme for the HTML report.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ThemeConfig holds the theme-specific styling values.
type ThemeConfig struct {
	// Semantic colors.
	Pass  string
	Fail  string
	Error string

	// Chart-specific.
	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// Series colors, cycled per plotted line.
	Palette []string
}

// GetThemeConfig returns the configuration for a given theme. Unknown themes
// fall back to light.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

var lightTheme = ThemeConfig{
	Pass:  "#16a34a", // green-600.
	Fail:  "#dc2626", // red-600.
	Error: "#ca8a04", // yellow-600.

	ChartBackground: "#ffffff",
	ChartGrid:       "#e7e5e4", // stone-200.
	ChartAxis:       "#a8a29e", // stone-400.
	ChartText:       "#44403c", // stone-700.
	ChartTextMuted:  "#78716c", // stone-500.

	Palette: []string{"#a16207", "#0369a1", "#4d7c0f", "#7c3aed", "#be185d", "#0891b2"},
}

var darkTheme = ThemeConfig{
	Pass:  "#22c55e", // green-500.
	Fail:  "#ef4444", // red-500.
	Error: "#eab308", // yellow-500.

	ChartBackground: "#1c1917", // stone-900.
	ChartGrid:       "#44403c", // stone-700.
	ChartAxis:       "#57534e", // stone-600.
	ChartText:       "#d6d3d1", // stone-300.
	ChartTextMuted:  "#a8a29e", // stone-400.

	Palette: []string{"#d97706", "#0284c7", "#65a30d", "#8b5cf6", "#db2777", "#06b6d4"},
}

// ChartOpts provides themed chart options.
type ChartOpts struct {
	theme ThemeConfig
}

// NewChartOpts creates a new ChartOpts with the given theme.
func NewChartOpts(theme Theme) *ChartOpts {
	return &ChartOpts{theme: GetThemeConfig(theme)}
}

// Theme returns the resolved theme values.
func (c *ChartOpts) Theme() ThemeConfig {
	return c.theme
}

// Init returns initialization options with themed background.
func (c *ChartOpts) Init(width, height string) opts.Initialization {
	return opts.Initialization{
		Width:           width,
		Height:          height,
		BackgroundColor: c.theme.ChartBackground,
	}
}

// Title returns title options with themed text colors.
func (c *ChartOpts) Title(title, subtitle string) opts.Title {
	return opts.Title{
		Title:         title,
		Subtitle:      subtitle,
		Left:          "center",
		TitleStyle:    &opts.TextStyle{Color: c.theme.ChartText},
		SubtitleStyle: &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

// Legend returns legend options with themed text color.
func (c *ChartOpts) Legend(show bool) opts.Legend {
	return opts.Legend{
		Show:      opts.Bool(show),
		Type:      "scroll",
		Top:       "10%",
		Left:      "center",
		TextStyle: &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

// XAxis returns x-axis options with themed colors. axisType is an ECharts
// axis type such as "value", "time" or "category".
func (c *ChartOpts) XAxis(name, axisType string) opts.XAxis {
	return opts.XAxis{
		Name:      name,
		Type:      axisType,
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
	}
}

// YAxis returns y-axis options with themed colors.
func (c *ChartOpts) YAxis(name string) opts.YAxis {
	return opts.YAxis{
		Name:      name,
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
		SplitLine: &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: c.theme.ChartGrid},
		},
	}
}

// Tooltip returns tooltip options.
func (c *ChartOpts) Tooltip(trigger string) opts.Tooltip {
	return opts.Tooltip{Show: opts.Bool(true), Trigger: trigger}
}

// StatusColor returns the color used for a result status.
func (c *ChartOpts) StatusColor(status string) string {
	switch status {
	case observability.StatusPass:
		return c.theme.Pass
	case observability.StatusFail:
		return c.theme.Fail
	default:
		return c.theme.Error
	}
}
