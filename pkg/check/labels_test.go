package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/autograde/pkg/check"
	"github.com/Sumatoshi-tech/autograde/pkg/plot"
)

func TestLegend(t *testing.T) {
	t.Parallel()

	withLegend := plot.New().Plot("a", []float64{1}, []float64{1}).ShowLegend()
	assert.True(t, check.Legend(withLegend, 3))

	texts := plot.New().Annotate("a", 0, 0).Annotate("b", 1, 1)
	assert.True(t, check.Legend(texts, 2))
	assert.False(t, check.Legend(texts, 3))

	assert.True(t, check.Legend(plot.New(), 0))
	assert.False(t, check.Legend(plot.New(), 1))
}

func TestLegibility(t *testing.T) {
	t.Parallel()

	assert.True(t, check.Legibility(plot.New().SetXLabel("day").SetYLabel("sales")))
	assert.False(t, check.Legibility(plot.New().SetXLabel("day")))
	assert.False(t, check.Legibility(plot.New().SetYLabel("sales")))
	assert.False(t, check.Legibility(plot.New()))
}

func TestTextCoords(t *testing.T) {
	t.Parallel()

	axes := plot.New().
		Annotate("peak", 3, 9).
		Annotate("peak", 4, 10).
		Annotate("trough", 1, 0)

	ok, err := check.TextCoords(axes, "trough", 1, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = check.TextCoords(axes, "peak", 3, 9)
	require.NoError(t, err)
	assert.True(t, ok)

	// Only the first matching annotation is considered.
	ok, err = check.TextCoords(axes, "peak", 4, 10)
	require.ErrorIs(t, err, check.ErrWrongValue)
	assert.False(t, ok)

	_, err = check.TextCoords(axes, "valley", 0, 0)
	require.ErrorIs(t, err, check.ErrNotFound)
	assert.Equal(t, check.KindNotFound, check.KindOf(err))
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "not_found", check.KindNotFound.String())
	assert.Equal(t, "wrong_shape", check.KindWrongShape.String())
	assert.Equal(t, "wrong_value", check.KindWrongValue.String())
	assert.Equal(t, "Kind(9)", check.Kind(9).String())
	assert.Equal(t, check.Kind(0), check.KindOf(nil))
}
