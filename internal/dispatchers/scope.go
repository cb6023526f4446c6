package dispatchers

import (
	"github.com/mitchellh/mapstructure"
)

// Scope is the frozen set of values of one visited node.
// It is created once, after validation, and never changes afterwards.
type Scope struct {
	names  []string
	values map[string]any
}

func newScope(names []string, values map[string]any) Scope {
	s := Scope{
		names:  make([]string, 0, len(names)),
		values: make(map[string]any, len(values)),
	}
	for _, name := range names {
		if v, ok := values[name]; ok {
			s.names = append(s.names, name)
			s.values[name] = v
		}
	}
	return s
}

// Get returns the value of a field.
func (s Scope) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Has reports whether the field has a value.
func (s Scope) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Names returns the names of the fields that have a value, in declaration order.
func (s Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of fields that have a value.
func (s Scope) Len() int {
	return len(s.names)
}

// Clone returns an independent copy.
func (s Scope) Clone() Scope {
	return newScope(s.names, s.values)
}

// Map returns a copy of the values keyed by field name.
func (s Scope) Map() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Decode copies the scope into a struct. Struct fields are matched by their
// `field` tag, falling back to a case-insensitive match on the Go field name.
func (s Scope) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "field",
		Result:           out,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return err
	}
	return dec.Decode(s.Map())
}

// Value returns the typed value of a field, or the zero value when the field
// is unset or holds another type.
func Value[T any](s Scope, name string) T {
	v, _ := Lookup[T](s, name)
	return v
}

// Lookup returns the typed value of a field and whether it was present with that type.
func Lookup[T any](s Scope, name string) (T, bool) {
	var zero T
	v, ok := s.values[name]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
