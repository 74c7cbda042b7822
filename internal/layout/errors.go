package layout

import (
	"errors"
	"fmt"
)

// Sentinel errors for layout failures.
var (
	ErrUnsupportedEvent = errors.New("unsupported markup construct")
	ErrListUnderflow    = errors.New("list context underflow")
	ErrInvalidConfig    = errors.New("invalid layout configuration")
)

// StructuralError reports an event stream whose nesting does not match what
// the engine expected, such as an End whose kind differs from the innermost
// open Start.
type StructuralError struct {
	Expected string
	Actual   string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed event stream: expected %s, got %s", e.Expected, e.Actual)
}

func kindMismatch(want, got BlockKind) error {
	return &StructuralError{Expected: want.String(), Actual: got.String()}
}
