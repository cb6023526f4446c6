package usage

import (
	"errors"
	"fmt"
)

// Validation is returned when a node's values fail a semantic check in non-interactive mode.
func Validation(path []string, err error) *Error {
	return &Error{
		Kind:    ErrValidation,
		Path:    path,
		Message: err.Error(),
		Err:     err,
	}
}

// Interrupted is returned when the user aborts while a node is being resolved.
func Interrupted(path []string, err error) *Error {
	return &Error{
		Kind:    ErrInterrupted,
		Path:    path,
		Message: "interrupted",
		Err:     err,
	}
}

// Action wraps a leaf action failure with the path of the node that ran it.
// Errors that already carry a usage error are returned unchanged.
func Action(path []string, err error) error {
	var ue *Error
	if errors.As(err, &ue) {
		return err
	}
	return &Error{
		Kind:    ErrAction,
		Path:    path,
		Message: err.Error(),
		Err:     err,
	}
}

// InvalidConfigKey is returned when a config key is not known.
func InvalidConfigKey(key string) *Error {
	return &Error{
		Kind:    ErrInvalidConfigKey,
		Message: fmt.Sprintf("'%s' is not a valid config key", key),
	}
}
