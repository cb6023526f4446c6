package usage

import (
	"errors"
	"strings"
)

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrInvalidFlag
	ErrInvalidValue
	ErrMissingArgument
	ErrUnknownVariant
	ErrUnexpectedArgument
	ErrValidation
	ErrInterrupted
	ErrAction
	ErrInvalidConfigKey
)

// Exit codes:
//
//	Exit 1: Environment/system errors
//	  - Unknown errors
//	  - Leaf action failures
//	  - Invalid config key
//
//	Exit 2: User input errors
//	  - Invalid flag
//	  - Invalid value
//	  - Missing argument
//	  - Unknown variant
//	  - Unexpected argument
//	  - Validation failure
//
//	Exit 130: Interrupted by the user
var exitCodes = map[ErrorKind]int{
	ErrUnknown:            1,
	ErrInvalidFlag:        2,
	ErrInvalidValue:       2,
	ErrMissingArgument:    2,
	ErrUnknownVariant:     2,
	ErrUnexpectedArgument: 2,
	ErrValidation:         2,
	ErrInterrupted:        130,
	ErrAction:             1,
	ErrInvalidConfigKey:   1,
}

// Error represents a user-facing usage error with semantic type information.
// Path is the command path of the node that failed, starting with the program name.
type Error struct {
	Kind        ErrorKind
	Path        []string
	Message     string
	Suggestions []string
	Err         error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if len(e.Path) > 0 {
		b.WriteString(strings.Join(e.Path, " "))
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nThe most similar ")
		if len(e.Suggestions) == 1 {
			b.WriteString("option is\n")
		} else {
			b.WriteString("options are\n")
		}
		for _, s := range e.Suggestions {
			b.WriteString("        ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// GetExitCode returns the appropriate exit code for this error.
func (e *Error) GetExitCode() int {
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// ExitCode maps any error to a process exit code.
// nil maps to 0 and errors that carry no *Error map to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue *Error
	if errors.As(err, &ue) {
		return ue.GetExitCode()
	}
	return 1
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
