package usage

import "fmt"

// UnknownVariant is returned when a subcommand name does not exist at the current node.
func UnknownVariant(path []string, name string, suggestions ...string) *Error {
	return &Error{
		Kind:        ErrUnknownVariant,
		Path:        path,
		Message:     fmt.Sprintf("unrecognized subcommand '%s'", name),
		Suggestions: suggestions,
	}
}

// UnexpectedArgument is returned when tokens remain that no node can consume.
func UnexpectedArgument(path []string, arg string, suggestions ...string) *Error {
	return &Error{
		Kind:        ErrUnexpectedArgument,
		Path:        path,
		Message:     fmt.Sprintf("unexpected argument '%s'", arg),
		Suggestions: suggestions,
	}
}
