package datecodec

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrBadFormat indicates the text is not shaped like DD-MM-YYYY.
	ErrBadFormat = errors.New("datecodec: not a DD-MM-YYYY date")

	// ErrBadDate indicates the text is well shaped but names a day
	// that does not exist on the calendar.
	ErrBadDate = errors.New("datecodec: no such calendar date")
)

// ParseError carries the offending input so callers can log which
// record was dropped. It wraps one of the sentinels above.
type ParseError struct {
	Input string
	Kind  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind.Error(), e.Input)
}

func (e *ParseError) Unwrap() error { return e.Kind }
