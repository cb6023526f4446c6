package dispatchers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parser converts the raw text of a flag, positional or prompt answer into a field value.
type Parser func(raw string) (any, error)

// Field describes one typed field of a sequence node.
// P is the parent context type of the node that owns the field.
//
// A field is filled, in order of precedence, from its flag or positional,
// from Default (a value derived from the parent context), and finally by
// prompting. Bool fields default to false and, like Optional fields, are only
// prompted when a validation failure names them.
type Field[P any] struct {
	Name        string // long flag name without dashes; also the key in the Scope
	Short       string // optional one-letter alias, without the dash
	Positional  bool
	Bool        bool
	Optional    bool
	Secret      bool
	Prompt      string
	Description string
	ValueHint   string
	Parse       Parser
	Check       func(value any) error
	Options     func(parent P) []Option
	Default     func(parent P) (any, bool)
	Suggest     func(parent P, b *Builder) string
	Format      func(value any) string
}

// field is the type-erased form of Field stored in the node arena.
type field struct {
	name        string
	short       string
	positional  bool
	boolean     bool
	optional    bool
	secret      bool
	prompt      string
	description string
	valueHint   string
	parse       Parser
	check       func(value any) error
	options     func(parent any) []Option
	derive      func(parent any) (any, bool)
	suggest     func(parent any, b *Builder) string
	format      func(value any) string
}

func (f Field[P]) erase() field {
	out := field{
		name:        f.Name,
		short:       f.Short,
		positional:  f.Positional,
		boolean:     f.Bool,
		optional:    f.Optional,
		secret:      f.Secret,
		prompt:      f.Prompt,
		description: f.Description,
		valueHint:   f.ValueHint,
		parse:       f.Parse,
		check:       f.Check,
		format:      f.Format,
	}
	if out.boolean && out.parse == nil {
		out.parse = ParseBool
	}
	if out.format == nil {
		out.format = func(v any) string { return fmt.Sprint(v) }
	}
	if f.Options != nil {
		out.options = func(parent any) []Option { return f.Options(parent.(P)) }
	}
	if f.Default != nil {
		out.derive = func(parent any) (any, bool) { return f.Default(parent.(P)) }
	}
	if f.Suggest != nil {
		out.suggest = func(parent any, b *Builder) string { return f.Suggest(parent.(P), b) }
	}
	return out
}

func (f field) flagName() string {
	return "--" + f.name
}

func (f field) promptText() string {
	if f.prompt != "" {
		return f.prompt
	}
	return fmt.Sprintf("What is the %s?", strings.ReplaceAll(f.name, "-", " "))
}

// usageToken renders the field the way it appears in a usage line.
func (f field) usageToken() string {
	hint := f.valueHint
	if hint == "" {
		hint = "<" + f.name + ">"
	}
	switch {
	case f.positional && f.optional:
		return "[" + hint + "]"
	case f.positional:
		return hint
	case f.boolean:
		return "[" + f.flagName() + "]"
	case f.optional:
		return "[" + f.flagName() + " " + hint + "]"
	default:
		return f.flagName() + " " + hint
	}
}

// ParseString accepts any non-empty text.
func ParseString(raw string) (any, error) {
	if raw == "" {
		return nil, errors.New("value must not be empty")
	}
	return raw, nil
}

// ParseText accepts any text, including the empty string.
func ParseText(raw string) (any, error) {
	return raw, nil
}

// ParseInt parses a signed base-10 integer into an int64.
func ParseInt(raw string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("expected an integer")
	}
	return n, nil
}

// ParseUint parses an unsigned base-10 integer into a uint64.
func ParseUint(raw string) (any, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("expected a non-negative integer")
	}
	return n, nil
}

// ParseBool parses the usual spellings of a boolean, plus yes/no.
func ParseBool(raw string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("expected true or false")
	}
	return b, nil
}

// ParseDuration parses a Go duration such as "30s" or "1h".
func ParseDuration(raw string) (any, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("expected a duration like 30s or 5m")
	}
	return d, nil
}

// ParseOneOf returns a parser that accepts only the listed values.
func ParseOneOf(values ...string) Parser {
	return func(raw string) (any, error) {
		for _, v := range values {
			if raw == v {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("expected one of: %s", strings.Join(values, ", "))
	}
}
