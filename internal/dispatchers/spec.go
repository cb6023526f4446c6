package dispatchers

import (
	"context"
	"fmt"
	"reflect"
)

// Definition is implemented by Sequence and Choice so both can be added to a Registry.
type Definition interface {
	define() (*node, error)
}

// Sequence is a node with an ordered list of fields.
//
// P is the context the node receives from its parent and C the context it
// hands to its child or leaf action. Derive must be a pure function of its
// arguments. When P and C are the same type Derive may be nil and the parent
// context is passed through unchanged.
//
// Exactly one of Next and Action must be set.
type Sequence[P, C any] struct {
	ID          string
	Keyword     string // token that introduces the node when it is reached through Next
	Summary     string
	Description string
	Fields      []Field[P]
	Validate    func(parent P, b *Builder) error
	Derive      func(parent P, s Scope) C
	Next        string
	Action      func(ctx context.Context, c C) error
}

func (s Sequence[P, C]) define() (*node, error) {
	n := &node{
		id:          s.ID,
		kind:        kindSequence,
		keyword:     s.Keyword,
		summary:     s.Summary,
		description: s.Description,
		in:          reflect.TypeFor[P](),
		out:         reflect.TypeFor[C](),
		next:        s.Next,
	}

	for _, f := range s.Fields {
		n.fields = append(n.fields, f.erase())
	}

	if s.Validate != nil {
		n.validate = func(parent any, b *Builder) error { return s.Validate(parent.(P), b) }
	}

	switch {
	case s.Derive != nil:
		n.derive = func(parent any, sc Scope) any { return s.Derive(parent.(P), sc) }
	case n.in == n.out:
		n.derive = func(parent any, _ Scope) any { return parent }
	default:
		return n, fmt.Errorf("node %q: no context mapping from %s to %s", s.ID, n.in, n.out)
	}

	if s.Action != nil {
		n.action = func(ctx context.Context, c any) error { return s.Action(ctx, c.(C)) }
	}

	return n, nil
}

// Variant is one named alternative of a Choice.
type Variant struct {
	Name        string
	Description string
	Target      string
}

// Choice is a node that selects exactly one of a closed set of variants.
// It passes its context P through unchanged to the selected variant.
type Choice[P any] struct {
	ID          string
	Keyword     string
	Summary     string
	Description string
	Prompt      string
	Variants    []Variant
}

func (c Choice[P]) define() (*node, error) {
	t := reflect.TypeFor[P]()
	prompt := c.Prompt
	if prompt == "" {
		prompt = "Choose an option:"
	}
	return &node{
		id:          c.ID,
		kind:        kindChoice,
		keyword:     c.Keyword,
		summary:     c.Summary,
		description: c.Description,
		prompt:      prompt,
		in:          t,
		out:         t,
		derive:      func(parent any, _ Scope) any { return parent },
		variants:    append([]Variant(nil), c.Variants...),
	}, nil
}
