// Package frame provides the small tabular structure that submissions are graded on:
// named, typed columns of equal length.
package frame

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"
)

// Sentinel errors for column access.
var (
	ErrKindMismatch    = errors.New("series kind mismatch")
	ErrColumnNotFound  = errors.New("column not found")
	ErrLengthMismatch  = errors.New("column lengths differ")
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// Kind identifies the element type held by a Series.
type Kind int

// Series kinds.
const (
	KindFloat Kind = iota
	KindTime
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Series is a named, typed sequence of values.
// Float series mark missing values with NaN, time series with the zero time.
type Series struct {
	name    string
	kind    Kind
	floats  []float64
	times   []time.Time
	strings []string
}

// NewFloatSeries creates a float series. The values are copied.
func NewFloatSeries(name string, values []float64) *Series {
	return &Series{name: name, kind: KindFloat, floats: slices.Clone(values)}
}

// NewTimeSeries creates a time series. The values are copied.
func NewTimeSeries(name string, values []time.Time) *Series {
	return &Series{name: name, kind: KindTime, times: slices.Clone(values)}
}

// NewStringSeries creates a string series. The values are copied.
func NewStringSeries(name string, values []string) *Series {
	return &Series{name: name, kind: KindString, strings: slices.Clone(values)}
}

// Name returns the series name.
func (s *Series) Name() string { return s.name }

// Kind returns the element kind.
func (s *Series) Kind() Kind { return s.kind }

// Len returns the number of elements, missing ones included.
func (s *Series) Len() int {
	switch s.kind {
	case KindFloat:
		return len(s.floats)
	case KindTime:
		return len(s.times)
	case KindString:
		return len(s.strings)
	default:
		return 0
	}
}

// Floats returns a copy of the float values.
func (s *Series) Floats() ([]float64, error) {
	if s.kind != KindFloat {
		return nil, fmt.Errorf("%w: %q is %s, want float", ErrKindMismatch, s.name, s.kind)
	}

	return slices.Clone(s.floats), nil
}

// Times returns a copy of the time values.
func (s *Series) Times() ([]time.Time, error) {
	if s.kind != KindTime {
		return nil, fmt.Errorf("%w: %q is %s, want time", ErrKindMismatch, s.name, s.kind)
	}

	return slices.Clone(s.times), nil
}

// Strings returns a copy of the string values.
func (s *Series) Strings() ([]string, error) {
	if s.kind != KindString {
		return nil, fmt.Errorf("%w: %q is %s, want string", ErrKindMismatch, s.name, s.kind)
	}

	return slices.Clone(s.strings), nil
}

// IsMissing reports whether element i is a missing value.
func (s *Series) IsMissing(i int) bool {
	switch s.kind {
	case KindFloat:
		return math.IsNaN(s.floats[i])
	case KindTime:
		return s.times[i].IsZero()
	default:
		return false
	}
}

// At returns element i boxed as float64, time.Time or string.
func (s *Series) At(i int) any {
	switch s.kind {
	case KindFloat:
		return s.floats[i]
	case KindTime:
		return s.times[i]
	default:
		return s.strings[i]
	}
}

// Values returns every element boxed, in order.
func (s *Series) Values() []any {
	out := make([]any, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}

	return out
}

// Unique returns the distinct values in first-seen order.
// Missing values are reported once, like pandas Series.unique.
func (s *Series) Unique() []any {
	seen := make(map[Key]struct{}, s.Len())

	var out []any

	for i := range s.Len() {
		v := s.At(i)
		k := KeyOf(v)

		if _, dup := seen[k]; dup {
			continue
		}

		seen[k] = struct{}{}
		out = append(out, v)
	}

	return out
}

// Key is a comparable identity for a boxed cell value.
// Numbers compare by float64 value, times by instant, strings by content.
type Key struct {
	kind Kind
	num  float64
	nano int64
	str  string
	nan  bool
}

// KeyOf builds the Key of v. Unsupported types key by their %v rendering.
func KeyOf(v any) Key {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return Key{kind: KindTime, nan: true}
		}

		return Key{kind: KindTime, nano: x.UnixNano()}
	case string:
		return Key{kind: KindString, str: x}
	}

	if f, ok := ToFloat(v); ok {
		if math.IsNaN(f) {
			return Key{kind: KindFloat, nan: true}
		}

		return Key{kind: KindFloat, num: f}
	}

	return Key{kind: KindString, str: fmt.Sprintf("%v", v)}
}

// ToFloat converts any Go numeric value to float64.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}
