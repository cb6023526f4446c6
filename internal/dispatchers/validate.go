package dispatchers

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports that values which parsed correctly violate a
// semantic constraint. Fields names the offending fields; when empty every
// field of the node is considered offending.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", strings.Join(e.Fields, ", "), e.Reason)
}

// Invalid builds a ValidationError for the given fields.
func Invalid(reason string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Reason: reason}
}

func asValidation(err error, fields ...string) *ValidationError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		if len(verr.Fields) == 0 && len(fields) > 0 {
			return &ValidationError{Fields: fields, Reason: verr.Reason}
		}
		return verr
	}
	return &ValidationError{Fields: fields, Reason: err.Error()}
}

// checkField runs the field-level check for one value.
func checkField(f field, value any) *ValidationError {
	if f.check == nil {
		return nil
	}
	if err := f.check(value); err != nil {
		return asValidation(err, f.name)
	}
	return nil
}

// validateNode runs the field checks of every set value, then the node's
// cross-field validation. A node validator error that is not a
// *ValidationError is returned as a plain error and ends the walk.
func validateNode(n *node, parent any, b *Builder) (*ValidationError, error) {
	for _, f := range n.fields {
		v, ok := b.Get(f.name)
		if !ok {
			continue
		}
		if verr := checkField(f, v); verr != nil {
			return verr, nil
		}
	}
	if n.validate != nil {
		if err := n.validate(parent, b); err != nil {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				return nil, err
			}
			return asValidation(verr), nil
		}
	}
	return nil, nil
}

// offending returns the fields to resolve again after a validation failure.
func offending(n *node, verr *ValidationError) []string {
	if len(verr.Fields) > 0 {
		var out []string
		for _, name := range verr.Fields {
			if _, ok := n.field(name); ok {
				out = append(out, name)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	out := make([]string, len(n.fields))
	for i, f := range n.fields {
		out[i] = f.name
	}
	return out
}
