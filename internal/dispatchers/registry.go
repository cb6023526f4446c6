package dispatchers

import (
	"errors"
	"fmt"
	"reflect"
)

// maxDepth bounds the length of any path through a tree.
const maxDepth = 64

// Registry is the arena in which nodes are declared before the tree is built.
type Registry struct {
	name     string
	rootType reflect.Type
	nodes    map[string]*node
	order    []string
	errs     []error
}

// NewRegistry creates a registry for a program called name whose root
// context has type R.
func NewRegistry[R any](name string) *Registry {
	return &Registry{
		name:     name,
		rootType: reflect.TypeFor[R](),
		nodes:    make(map[string]*node),
	}
}

// Add declares nodes. Errors are collected and reported by Build.
func (r *Registry) Add(defs ...Definition) *Registry {
	for _, d := range defs {
		n, err := d.define()
		if err != nil {
			r.errs = append(r.errs, err)
			continue
		}
		if n.id == "" {
			r.errs = append(r.errs, errors.New("node with empty id"))
			continue
		}
		if _, dup := r.nodes[n.id]; dup {
			r.errs = append(r.errs, fmt.Errorf("node %q declared twice", n.id))
			continue
		}
		r.nodes[n.id] = n
		r.order = append(r.order, n.id)
	}
	return r
}

// Build checks the declared nodes and returns the tree rooted at rootID.
// Every structural problem (dangling ids, context type mismatches, missing
// context mappings, cycles, unreachable nodes, duplicate names) is reported
// here so that a built Tree cannot fail structurally at run time.
func (r *Registry) Build(rootID string) (*Tree, error) {
	errs := append([]error(nil), r.errs...)

	root, ok := r.nodes[rootID]
	if !ok {
		errs = append(errs, fmt.Errorf("root node %q is not declared", rootID))
		return nil, errors.Join(errs...)
	}
	if !r.rootType.AssignableTo(root.in) {
		errs = append(errs, fmt.Errorf("root node %q expects %s, registry root context is %s", rootID, root.in, r.rootType))
	}

	for _, id := range r.order {
		errs = append(errs, r.checkNode(r.nodes[id])...)
	}

	if len(errs) == 0 {
		depth, err := r.checkAcyclic(root)
		if err != nil {
			errs = append(errs, err)
		}
		reached := r.reachable(root)
		for _, id := range r.order {
			if !reached[id] {
				errs = append(errs, fmt.Errorf("node %q is not reachable from %q", id, rootID))
			}
		}
		if len(errs) == 0 {
			return &Tree{name: r.name, root: root, nodes: r.nodes, depth: depth}, nil
		}
	}

	return nil, errors.Join(errs...)
}

func (r *Registry) checkNode(n *node) []error {
	var errs []error

	switch n.kind {
	case kindSequence:
		if (n.next == "") == (n.action == nil) {
			errs = append(errs, fmt.Errorf("node %q: exactly one of Next and Action must be set", n.id))
		}
		if n.next != "" {
			errs = append(errs, r.checkLink(n, n.next)...)
		}
		errs = append(errs, checkFields(n)...)

	case kindChoice:
		if len(n.variants) == 0 {
			errs = append(errs, fmt.Errorf("node %q: choice has no variants", n.id))
		}
		seen := make(map[string]bool)
		for _, v := range n.variants {
			if v.Name == "" {
				errs = append(errs, fmt.Errorf("node %q: variant with empty name", n.id))
				continue
			}
			if seen[v.Name] {
				errs = append(errs, fmt.Errorf("node %q: variant %q declared twice", n.id, v.Name))
			}
			seen[v.Name] = true
			errs = append(errs, r.checkLink(n, v.Target)...)
		}
	}

	return errs
}

func (r *Registry) checkLink(parent *node, childID string) []error {
	child, ok := r.nodes[childID]
	if !ok {
		return []error{fmt.Errorf("node %q: links to undeclared node %q", parent.id, childID)}
	}
	if !parent.out.AssignableTo(child.in) {
		return []error{fmt.Errorf("node %q produces %s but %q expects %s", parent.id, parent.out, childID, child.in)}
	}
	return nil
}

func checkFields(n *node) []error {
	var errs []error
	names := make(map[string]bool)
	shorts := make(map[string]bool)

	for _, f := range n.fields {
		switch {
		case f.name == "":
			errs = append(errs, fmt.Errorf("node %q: field with empty name", n.id))
			continue
		case f.name == "help":
			errs = append(errs, fmt.Errorf("node %q: field name %q is reserved", n.id, f.name))
		case names[f.name]:
			errs = append(errs, fmt.Errorf("node %q: field %q declared twice", n.id, f.name))
		}
		names[f.name] = true

		if f.short != "" {
			if len(f.short) != 1 || f.short == "h" {
				errs = append(errs, fmt.Errorf("node %q: field %q has invalid short name %q", n.id, f.name, f.short))
			}
			if shorts[f.short] {
				errs = append(errs, fmt.Errorf("node %q: short name %q declared twice", n.id, f.short))
			}
			shorts[f.short] = true
		}

		if f.parse == nil {
			errs = append(errs, fmt.Errorf("node %q: field %q has no parser", n.id, f.name))
		}
		if f.positional && f.boolean {
			errs = append(errs, fmt.Errorf("node %q: field %q cannot be both positional and boolean", n.id, f.name))
		}
	}

	return errs
}

// checkAcyclic walks every path from root and returns the longest path length.
func (r *Registry) checkAcyclic(root *node) (int, error) {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int)
	depth := make(map[string]int)

	var visit func(n *node) error
	visit = func(n *node) error {
		switch color[n.id] {
		case grey:
			return fmt.Errorf("node %q is part of a cycle", n.id)
		case black:
			return nil
		}
		color[n.id] = grey
		longest := 0
		for _, id := range children(n) {
			child := r.nodes[id]
			if err := visit(child); err != nil {
				return err
			}
			longest = max(longest, depth[id])
		}
		depth[n.id] = longest + 1
		color[n.id] = black
		return nil
	}

	if err := visit(root); err != nil {
		return 0, err
	}
	if depth[root.id] > maxDepth {
		return 0, fmt.Errorf("tree depth %d exceeds the limit of %d", depth[root.id], maxDepth)
	}
	return depth[root.id], nil
}

func (r *Registry) reachable(root *node) map[string]bool {
	seen := map[string]bool{root.id: true}
	queue := []*node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, id := range children(n) {
			if !seen[id] {
				seen[id] = true
				queue = append(queue, r.nodes[id])
			}
		}
	}
	return seen
}

func children(n *node) []string {
	if n.kind == kindChoice {
		ids := make([]string, len(n.variants))
		for i, v := range n.variants {
			ids[i] = v.Target
		}
		return ids
	}
	if n.next != "" {
		return []string{n.next}
	}
	return nil
}
