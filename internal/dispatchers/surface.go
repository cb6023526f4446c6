package dispatchers

import (
	"slices"
	"strconv"
	"strings"

	"github.com/footprint-tools/keel/internal/usage"
)

// Surface is what the user typed for one node: the parsed values of the
// fields given on the command line and, for a choice, the variant named.
// Fields that were not typed are absent. Child is the surface of the next
// node, or nil when the arguments stop before it.
type Surface struct {
	NodeID  string
	Path    []string
	Values  map[string]any
	Raw     map[string]string
	Variant string
	Help    bool
	Child   *Surface
}

// Has reports whether the user typed a value for the field.
func (s *Surface) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.Values[name]
	return ok
}

// helpTarget returns the surface at which --help was requested, if any.
func (s *Surface) helpTarget() *Surface {
	for cur := s; cur != nil; cur = cur.Child {
		if cur.Help {
			return cur
		}
	}
	return nil
}

// Parse converts raw arguments into the chain of surfaces along the path
// they describe. No prompting happens here: any conversion error, unknown
// flag or unknown subcommand is reported immediately.
func (t *Tree) Parse(args []string) (*Surface, error) {
	p := &parser{tree: t, tokens: args}
	return p.parse(t.root, []string{t.name})
}

type parser struct {
	tree   *Tree
	tokens []string
	pos    int
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

func (p *parser) advance() string {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *parser) parse(n *node, path []string) (*Surface, error) {
	s := &Surface{
		NodeID: n.id,
		Path:   path,
		Values: make(map[string]any),
		Raw:    make(map[string]string),
	}
	if n.kind == kindChoice {
		return p.parseChoice(n, s)
	}
	return p.parseSequence(n, s)
}

func (p *parser) parseChoice(n *node, s *Surface) (*Surface, error) {
	tok, ok := p.peek()
	if !ok {
		return s, nil
	}
	if isHelp(tok) {
		p.advance()
		s.Help = true
		return s, nil
	}
	if isFlag(tok) {
		return nil, usage.InvalidFlag(s.Path, tok)
	}

	v, found := n.variant(tok)
	if !found {
		suggestions := FindSimilar(tok, n.variantNames(), defaultSuggestionsCount)
		return nil, usage.UnknownVariant(s.Path, tok, suggestions...)
	}
	p.advance()
	s.Variant = v.Name

	child, err := p.parse(p.tree.nodes[v.Target], appendPath(s.Path, v.Name))
	if err != nil {
		return nil, err
	}
	s.Child = child
	return s, nil
}

func (p *parser) parseSequence(n *node, s *Surface) (*Surface, error) {
	var next *node
	if n.next != "" {
		next = p.tree.nodes[n.next]
	}
	positionals := n.positionals()
	flagsDone := false

	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		if !flagsDone {
			if isHelp(tok) {
				p.advance()
				s.Help = true
				return s, nil
			}
			if tok == "--" {
				p.advance()
				flagsDone = true
				continue
			}
			if isFlag(tok) {
				p.advance()
				if err := p.parseFlag(n, s, tok); err != nil {
					return nil, err
				}
				continue
			}
		}

		if !flagsDone && next != nil && enters(next, tok) {
			break
		}
		f, ok := nextPositional(positionals, s)
		if !ok {
			break
		}
		p.advance()
		if err := setValue(s, f, tok); err != nil {
			return nil, err
		}
	}

	if next == nil {
		if tok, ok := p.peek(); ok {
			return nil, usage.UnexpectedArgument(s.Path, tok)
		}
		return s, nil
	}

	tok, ok := p.peek()
	if !ok {
		return s, nil
	}

	childPath := s.Path
	if next.keyword != "" {
		if tok != next.keyword {
			suggestions := FindSimilar(tok, []string{next.keyword}, 1)
			return nil, usage.UnexpectedArgument(s.Path, tok, suggestions...)
		}
		p.advance()
		childPath = appendPath(s.Path, next.keyword)
	}

	child, err := p.parse(next, childPath)
	if err != nil {
		return nil, err
	}
	s.Child = child
	return s, nil
}

func (p *parser) parseFlag(n *node, s *Surface, tok string) error {
	name, value, hasValue := strings.Cut(tok, "=")

	var (
		f     field
		found bool
	)
	if strings.HasPrefix(name, "--") {
		// Positionals may also be named, so a value that collides with a
		// variant or keyword can still be given.
		f, found = n.field(strings.TrimPrefix(name, "--"))
	} else {
		f, found = n.fieldByShort(strings.TrimPrefix(name, "-"))
	}
	if !found {
		suggestions := FindSimilar(name, n.flagNames(), 1)
		return usage.InvalidFlag(s.Path, name, suggestions...)
	}

	if f.boolean && !hasValue {
		s.Values[f.name] = true
		s.Raw[f.name] = "true"
		return nil
	}

	if !hasValue {
		v, ok := p.peek()
		if !ok {
			return usage.MissingValue(s.Path, name)
		}
		p.advance()
		value = v
	}

	return setValue(s, f, value)
}

func setValue(s *Surface, f field, raw string) error {
	v, err := f.parse(raw)
	if err != nil {
		return usage.InvalidValue(s.Path, f.name, raw, err)
	}
	s.Values[f.name] = v
	s.Raw[f.name] = raw
	return nil
}

func nextPositional(positionals []field, s *Surface) (field, bool) {
	for _, f := range positionals {
		if !s.Has(f.name) {
			return f, true
		}
	}
	return field{}, false
}

// enters reports whether tok is the token that starts node n.
func enters(n *node, tok string) bool {
	if n.keyword != "" {
		return tok == n.keyword
	}
	if n.kind == kindChoice {
		_, ok := n.variant(tok)
		return ok
	}
	return false
}

func isHelp(tok string) bool {
	return tok == "--help" || tok == "-h"
}

// isFlag reports whether tok looks like a flag. Negative numbers are values.
func isFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return false
	}
	return true
}

func appendPath(path []string, elem string) []string {
	return append(slices.Clip(path), elem)
}
