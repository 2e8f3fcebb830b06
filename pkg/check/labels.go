package check

import (
	"github.com/Sumatoshi-tech/autograde/pkg/plot"
)

// Legend reports whether a legend is attached, or whether the chart carries
// exactly textCount free text annotations standing in for one.
func Legend(axes *plot.Axes, textCount int) bool {
	return axes.Legend != nil || len(axes.Texts) == textCount
}

// Legibility reports whether both axes are labelled.
func Legibility(axes *plot.Axes) bool {
	return axes.XLabel != "" && axes.YLabel != ""
}

// TextCoords checks the first annotation reading text sits exactly at (x, y).
func TextCoords(axes *plot.Axes, text string, x, y float64) (bool, error) {
	for _, t := range axes.Texts {
		if t.Text != text {
			continue
		}

		if t.X != x || t.Y != y {
			return false, failf(KindWrongValue,
				"text %q is at (%g, %g), expected (%g, %g)", text, t.X, t.Y, x, y)
		}

		return true, nil
	}

	return false, failf(KindNotFound, "text %q not found in graph", text)
}
