package change

import "errors"

var (
	// ErrNotAccumulating is returned when an operation needs an open change
	// and the document has none.
	ErrNotAccumulating = errors.New("no change in progress")

	// ErrInvalidSpan is returned when a change span has start after end.
	ErrInvalidSpan = errors.New("invalid change span")

	// ErrInvalidCount is returned for a repeat count below one.
	ErrInvalidCount = errors.New("invalid repeat count")
)
