// Package check holds the grading assertions. Most checkers return a plain
// verdict. The reference-line and annotation checkers instead return an *Error
// whose Kind says what was wrong, so a harness can report a reason.
package check

import (
	"errors"
	"fmt"
)

// Kind classifies a structural grading failure.
type Kind int

// Failure kinds.
const (
	// KindNotFound means the expected structure is entirely absent.
	KindNotFound Kind = iota + 1
	// KindWrongShape means the structure is present with the wrong shape or orientation.
	KindWrongShape
	// KindWrongValue means the structure has the right shape but the wrong value.
	KindWrongValue
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrNotFound   = errors.New("expected structure not found")
	ErrWrongShape = errors.New("structure has wrong shape")
	ErrWrongValue = errors.New("structure has wrong value")
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindWrongShape:
		return "wrong_shape"
	case KindWrongValue:
		return "wrong_value"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindWrongShape:
		return ErrWrongShape
	case KindWrongValue:
		return ErrWrongValue
	default:
		return nil
	}
}

// Error is a grading failure with a human-readable reason.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Unwrap exposes the kind's sentinel so errors.Is(err, ErrWrongValue) works.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

func failf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}

	return 0
}
