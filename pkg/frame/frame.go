package frame

import (
	"fmt"
	"slices"
)

// Frame is an ordered set of equally long, uniquely named columns.
type Frame struct {
	columns []*Series
	index   map[string]int
}

// New builds a frame from columns. All columns must share one length.
func New(columns ...*Series) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(columns))}

	for _, col := range columns {
		if _, dup := f.index[col.Name()]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name())
		}

		if len(f.columns) > 0 && col.Len() != f.columns[0].Len() {
			return nil, fmt.Errorf("%w: %q has %d rows, %q has %d",
				ErrLengthMismatch, col.Name(), col.Len(), f.columns[0].Name(), f.columns[0].Len())
		}

		f.index[col.Name()] = len(f.columns)
		f.columns = append(f.columns, col)
	}

	return f, nil
}

// MustNew is New that panics on error. Intended for fixtures.
func MustNew(columns ...*Series) *Frame {
	f, err := New(columns...)
	if err != nil {
		panic(err)
	}

	return f
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (*Series, error) {
	idx, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}

	return f.columns[idx], nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.columns))
	for i, col := range f.columns {
		names[i] = col.Name()
	}

	return names
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if len(f.columns) == 0 {
		return 0
	}

	return f.columns[0].Len()
}

// HasColumn reports whether a column exists.
func (f *Frame) HasColumn(name string) bool {
	return slices.Contains(f.Columns(), name)
}
