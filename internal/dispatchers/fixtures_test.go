package dispatchers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type rootCtx struct {
	Verbose bool
}

type aCtx struct {
	Verbose bool
	X       int64
}

type leafCtx struct {
	X     int64
	Y     int64
	Label string
}

type recorder struct {
	leafB1 []leafCtx
	leafB2 []string
	err    error
}

func positive(v any) error {
	if v.(int64) <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

// newTestTree builds: root [--verbose] nodeA --x choiceB (variantB1 --y [--label] | variantB2 --w)
func newTestTree(t *testing.T, rec *recorder) *Tree {
	t.Helper()

	reg := NewRegistry[rootCtx]("root")
	reg.Add(
		Sequence[rootCtx, rootCtx]{
			ID:      "root",
			Summary: "Test program",
			Fields: []Field[rootCtx]{
				{Name: "verbose", Short: "v", Bool: true, Description: "Verbose output"},
			},
			Derive: func(p rootCtx, s Scope) rootCtx {
				p.Verbose = Value[bool](s, "verbose")
				return p
			},
			Next: "nodeA",
		},
		Sequence[rootCtx, aCtx]{
			ID:      "nodeA",
			Keyword: "nodeA",
			Summary: "First level",
			Fields: []Field[rootCtx]{
				{Name: "x", Prompt: "value of x?", Parse: ParseInt, Check: positive, Description: "The x value"},
			},
			Derive: func(p rootCtx, s Scope) aCtx {
				return aCtx{Verbose: p.Verbose, X: Value[int64](s, "x")}
			},
			Next: "choiceB",
		},
		Choice[aCtx]{
			ID:      "choiceB",
			Keyword: "choiceB",
			Summary: "Pick a variant",
			Variants: []Variant{
				{Name: "variantB1", Description: "First variant", Target: "leafB1"},
				{Name: "variantB2", Description: "Second variant", Target: "leafB2"},
			},
		},
		Sequence[aCtx, leafCtx]{
			ID: "leafB1",
			Fields: []Field[aCtx]{
				{Name: "y", Prompt: "value of y?", Parse: ParseInt},
				{Name: "label", Prompt: "label?", Optional: true, Parse: ParseText},
			},
			Validate: func(p aCtx, b *Builder) error {
				if BuilderValue[int64](b, "y") == p.X {
					return Invalid("y must differ from x", "y")
				}
				return nil
			},
			Derive: func(p aCtx, s Scope) leafCtx {
				return leafCtx{X: p.X, Y: Value[int64](s, "y"), Label: Value[string](s, "label")}
			},
			Action: func(_ context.Context, c leafCtx) error {
				rec.leafB1 = append(rec.leafB1, c)
				return rec.err
			},
		},
		Sequence[aCtx, aCtx]{
			ID: "leafB2",
			Fields: []Field[aCtx]{
				{Name: "w", Prompt: "value of w?", Parse: ParseString},
			},
			Derive: func(p aCtx, _ Scope) aCtx { return p },
			Action: func(_ context.Context, c aCtx) error {
				rec.leafB2 = append(rec.leafB2, "called")
				return nil
			},
		},
	)

	tree, err := reg.Build("root")
	require.NoError(t, err)
	return tree
}

type ownerCtx struct {
	Owner string
	Tags  string
}

// newOwnerTree builds: shop <owner> [--tags] (send <amount> | view)
func newOwnerTree(t *testing.T, got *[]ownerCtx) *Tree {
	t.Helper()

	record := func(_ context.Context, c ownerCtx) error {
		*got = append(*got, c)
		return nil
	}

	reg := NewRegistry[struct{}]("shop")
	reg.Add(
		Sequence[struct{}, ownerCtx]{
			ID: "owner",
			Fields: []Field[struct{}]{
				{Name: "owner", Positional: true, Prompt: "owner?", Parse: ParseString},
				{Name: "tags", Short: "t", Optional: true, Parse: ParseText},
			},
			Derive: func(_ struct{}, s Scope) ownerCtx {
				return ownerCtx{Owner: Value[string](s, "owner"), Tags: Value[string](s, "tags")}
			},
			Next: "action",
		},
		Choice[ownerCtx]{
			ID: "action",
			Variants: []Variant{
				{Name: "send", Target: "send"},
				{Name: "view", Target: "view"},
			},
		},
		Sequence[ownerCtx, ownerCtx]{
			ID: "send",
			Fields: []Field[ownerCtx]{
				{Name: "amount", Positional: true, Prompt: "amount?", Parse: ParseInt},
			},
			Action: record,
		},
		Sequence[ownerCtx, ownerCtx]{
			ID:     "view",
			Action: record,
		},
	)

	tree, err := reg.Build("owner")
	require.NoError(t, err)
	return tree
}

type answer struct {
	message string
	text    string
	index   int
	err     error
}

// scriptedPrompter replays answers in order and records every prompt.
type scriptedPrompter struct {
	t       *testing.T
	script  []answer
	asked   []string
	reports []error
}

func newScript(t *testing.T, script ...answer) *scriptedPrompter {
	return &scriptedPrompter{t: t, script: script}
}

func (p *scriptedPrompter) next(message string) answer {
	p.asked = append(p.asked, message)
	if len(p.script) == 0 {
		p.t.Errorf("unexpected prompt %q", message)
		return answer{err: ErrInterrupted}
	}
	a := p.script[0]
	p.script = p.script[1:]
	if a.message != "" && a.message != message {
		p.t.Errorf("prompt = %q, want %q", message, a.message)
	}
	return a
}

func (p *scriptedPrompter) Input(_ context.Context, req InputRequest) (string, error) {
	a := p.next(req.Message)
	return a.text, a.err
}

func (p *scriptedPrompter) Select(_ context.Context, req SelectRequest) (int, error) {
	a := p.next(req.Message)
	return a.index, a.err
}

func (p *scriptedPrompter) Report(err error) {
	p.reports = append(p.reports, err)
}

func (p *scriptedPrompter) done() {
	p.t.Helper()
	require.Empty(p.t, p.script, "unused answers")
}
