package keymap

import "errors"

// Errors returned by the resolver.
var (
	// ErrMappingCycle indicates that recursive expansion exceeded the depth limit.
	ErrMappingCycle = errors.New("recursive mapping")

	// ErrEmptyMapping indicates a rule whose From sequence is empty.
	ErrEmptyMapping = errors.New("empty mapping")

	// ErrUnknownMode indicates a mode name that is not recognized.
	ErrUnknownMode = errors.New("unknown mode")
)
