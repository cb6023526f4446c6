package usage

import (
	"fmt"
	"strings"
)

// MissingArgument is returned when a required field was not supplied and no prompt is available.
func MissingArgument(path []string, arg string) *Error {
	return &Error{
		Kind:    ErrMissingArgument,
		Path:    path,
		Message: fmt.Sprintf("missing required argument '%s'", arg),
	}
}

// MissingSubcommand is returned when a choice was not made and no prompt is available.
func MissingSubcommand(path []string, choices []string) *Error {
	return &Error{
		Kind:    ErrMissingArgument,
		Path:    path,
		Message: fmt.Sprintf("missing subcommand, expected one of: %s", strings.Join(choices, ", ")),
	}
}
