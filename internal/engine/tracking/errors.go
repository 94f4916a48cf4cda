package tracking

import "errors"

// Errors returned by tracking operations.
var (
	// ErrReleased indicates a position handle was used or released after Release.
	ErrReleased = errors.New("position already released")

	// ErrVersionRange indicates a version outside what the log can answer for.
	ErrVersionRange = errors.New("version out of range")

	// ErrForeignDocument indicates a snapshot of a different document was supplied.
	ErrForeignDocument = errors.New("snapshot belongs to another document")

	// ErrOffsetOutOfRange indicates an offset outside the snapshot.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrInvalidEdit indicates an edit that cannot be applied to the current version.
	ErrInvalidEdit = errors.New("invalid edit")
)
