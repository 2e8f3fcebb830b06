package frame_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/autograde/pkg/frame"
)

func TestNew_LengthMismatch(t *testing.T) {
	t.Parallel()

	_, err := frame.New(
		frame.NewFloatSeries("a", []float64{1, 2}),
		frame.NewFloatSeries("b", []float64{1}),
	)
	require.ErrorIs(t, err, frame.ErrLengthMismatch)
}

func TestNew_DuplicateColumn(t *testing.T) {
	t.Parallel()

	_, err := frame.New(
		frame.NewFloatSeries("a", []float64{1}),
		frame.NewStringSeries("a", []string{"x"}),
	)
	require.ErrorIs(t, err, frame.ErrDuplicateColumn)
}

func TestFrame_Column(t *testing.T) {
	t.Parallel()

	f := frame.MustNew(
		frame.NewFloatSeries("temp", []float64{1, 2, 3}),
		frame.NewStringSeries("city", []string{"a", "b", "c"}),
	)

	assert.Equal(t, []string{"temp", "city"}, f.Columns())
	assert.Equal(t, 3, f.Len())
	assert.True(t, f.HasColumn("city"))

	col, err := f.Column("temp")
	require.NoError(t, err)
	assert.Equal(t, frame.KindFloat, col.Kind())

	_, err = f.Column("missing")
	require.ErrorIs(t, err, frame.ErrColumnNotFound)
}

func TestSeries_AccessorsCopy(t *testing.T) {
	t.Parallel()

	src := []float64{1, 2, 3}
	s := frame.NewFloatSeries("x", src)
	src[0] = 99

	got, err := s.Floats()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got)

	got[1] = 42
	again, err := s.Floats()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, again[1], 0)
}

func TestSeries_KindMismatch(t *testing.T) {
	t.Parallel()

	s := frame.NewStringSeries("s", []string{"a"})

	_, err := s.Floats()
	require.ErrorIs(t, err, frame.ErrKindMismatch)

	_, err = s.Times()
	require.ErrorIs(t, err, frame.ErrKindMismatch)
}

func TestSeries_Unique(t *testing.T) {
	t.Parallel()

	t.Run("strings_first_seen_order", func(t *testing.T) {
		t.Parallel()

		s := frame.NewStringSeries("c", []string{"a", "b", "a", "c"})
		assert.Equal(t, []any{"a", "b", "c"}, s.Unique())
	})

	t.Run("floats_nan_once", func(t *testing.T) {
		t.Parallel()

		s := frame.NewFloatSeries("f", []float64{1, math.NaN(), 1, math.NaN(), 2})
		got := s.Unique()
		require.Len(t, got, 3)
		assert.InDelta(t, 1.0, got[0], 0)
		assert.True(t, math.IsNaN(got[1].(float64)))
	})

	t.Run("times_by_instant", func(t *testing.T) {
		t.Parallel()

		utc := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		other := utc.In(time.FixedZone("X", 3600))
		s := frame.NewTimeSeries("t", []time.Time{utc, other})
		assert.Len(t, s.Unique(), 1)
	})
}

func TestKeyOf_NumericTypesAgree(t *testing.T) {
	t.Parallel()

	assert.Equal(t, frame.KeyOf(3.0), frame.KeyOf(3))
	assert.Equal(t, frame.KeyOf(int64(3)), frame.KeyOf(float32(3)))
	assert.NotEqual(t, frame.KeyOf("3"), frame.KeyOf(3))
}

func TestSeries_IsMissing(t *testing.T) {
	t.Parallel()

	f := frame.NewFloatSeries("f", []float64{1, math.NaN()})
	assert.False(t, f.IsMissing(0))
	assert.True(t, f.IsMissing(1))

	ts := frame.NewTimeSeries("t", []time.Time{{}, time.Now()})
	assert.True(t, ts.IsMissing(0))
	assert.False(t, ts.IsMissing(1))
}

func TestReadCSV_InfersKinds(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"day,temp,city",
		"2024-01-01,1.5,Oslo",
		"2024-01-02,,Bergen",
		"2024-01-03,3,Oslo",
	}, "\n")

	f, err := frame.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, f.Len())

	day, err := f.Column("day")
	require.NoError(t, err)
	assert.Equal(t, frame.KindTime, day.Kind())

	temp, err := f.Column("temp")
	require.NoError(t, err)
	require.Equal(t, frame.KindFloat, temp.Kind())

	values, err := temp.Floats()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, values[0], 0)
	assert.True(t, math.IsNaN(values[1]))

	city, err := f.Column("city")
	require.NoError(t, err)
	assert.Equal(t, frame.KindString, city.Kind())
}

func TestReadCSV_Empty(t *testing.T) {
	t.Parallel()

	_, err := frame.ReadCSV(strings.NewReader(""))
	require.ErrorIs(t, err, frame.ErrNoHeader)
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	ts, err := frame.ParseTime("2024-03-05T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2024, ts.Year())

	_, err = frame.ParseTime("yesterday")
	require.Error(t, err)
}
