package settings

import (
	"errors"
	"fmt"
)

// Errors returned by settings operations.
var (
	// ErrUnknownOption indicates the option name is not recognized.
	ErrUnknownOption = errors.New("unknown option")

	// ErrTypeMismatch indicates the value type doesn't match the option type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrGlobalOnly indicates a local override of a global option.
	ErrGlobalOnly = errors.New("option is global only")

	// ErrNoGlobal indicates a Local was requested without a Global.
	ErrNoGlobal = errors.New("local settings need global settings")

	// ErrInvalidArgument indicates a malformed ":set" argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange indicates a number below the option's minimum.
	ErrOutOfRange = errors.New("value out of range")
)

// OptionError ties a settings error to the option it concerns.
type OptionError struct {
	// Name is the option name as the caller gave it.
	Name string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *OptionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *OptionError) Unwrap() error {
	return e.Err
}

func optionError(name string, err error) error {
	return &OptionError{Name: name, Err: err}
}
