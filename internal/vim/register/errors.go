package register

import "errors"

var (
	// ErrInvalidName is returned when writing to a name outside the 74 registers.
	ErrInvalidName = errors.New("invalid register name")

	// ErrClipboard wraps failures of the clipboard provider.
	ErrClipboard = errors.New("clipboard unavailable")
)
