package dispatchers

import (
	"context"
	"reflect"
)

type nodeKind int

const (
	kindSequence nodeKind = iota
	kindChoice
)

func (k nodeKind) String() string {
	if k == kindChoice {
		return "choice"
	}
	return "sequence"
}

// node is the type-erased arena entry for one command tree node.
type node struct {
	id          string
	kind        nodeKind
	keyword     string
	summary     string
	description string
	prompt      string

	in  reflect.Type
	out reflect.Type

	fields   []field
	validate func(parent any, b *Builder) error
	derive   func(parent any, s Scope) any
	next     string
	action   func(ctx context.Context, c any) error

	variants []Variant
}

func (n *node) isLeaf() bool {
	return n.kind == kindSequence && n.action != nil
}

func (n *node) field(name string) (field, bool) {
	for _, f := range n.fields {
		if f.name == name {
			return f, true
		}
	}
	return field{}, false
}

func (n *node) fieldByShort(short string) (field, bool) {
	for _, f := range n.fields {
		if f.short != "" && f.short == short {
			return f, true
		}
	}
	return field{}, false
}

func (n *node) positionals() []field {
	var out []field
	for _, f := range n.fields {
		if f.positional {
			out = append(out, f)
		}
	}
	return out
}

func (n *node) variant(name string) (Variant, bool) {
	for _, v := range n.variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

func (n *node) variantNames() []string {
	names := make([]string, len(n.variants))
	for i, v := range n.variants {
		names[i] = v.Name
	}
	return names
}

func (n *node) flagNames() []string {
	var names []string
	for _, f := range n.fields {
		if f.positional {
			continue
		}
		names = append(names, f.flagName())
	}
	return names
}
