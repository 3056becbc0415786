package grid

import (
	"fmt"
)

// SourceFormatError reports an upload whose bytes could not be interpreted
// as a cell grid at all. It is fatal to the current request, surfaced to the
// caller verbatim, and never retried automatically; a retry by the caller
// redoes the whole load from scratch.
type SourceFormatError struct {
	// Op names the parsing step that failed.
	Op string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface
func (e *SourceFormatError) Error() string {
	return fmt.Sprintf("unreadable report source (%s): %v", e.Op, e.Err)
}

// Unwrap allows errors.Is and errors.As to reach the underlying cause
func (e *SourceFormatError) Unwrap() error {
	return e.Err
}

func sourceFormatError(op string, err error) *SourceFormatError {
	return &SourceFormatError{Op: op, Err: err}
}
