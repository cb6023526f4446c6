package usage

import "fmt"

// InvalidFlag is returned when a flag is not defined for the current node.
func InvalidFlag(path []string, flag string, suggestions ...string) *Error {
	return &Error{
		Kind:        ErrInvalidFlag,
		Path:        path,
		Message:     fmt.Sprintf("unexpected flag '%s'", flag),
		Suggestions: suggestions,
	}
}

// InvalidValue is returned when a supplied value cannot be converted to the field type.
func InvalidValue(path []string, field, raw string, err error) *Error {
	msg := fmt.Sprintf("invalid value '%s' for '%s'", raw, field)
	if err != nil {
		msg += ": " + err.Error()
	}
	return &Error{
		Kind:    ErrInvalidValue,
		Path:    path,
		Message: msg,
		Err:     err,
	}
}

// MissingValue is returned when a flag that takes a value is the last token.
func MissingValue(path []string, flag string) *Error {
	return &Error{
		Kind:    ErrInvalidValue,
		Path:    path,
		Message: fmt.Sprintf("flag '%s' requires a value", flag),
	}
}
