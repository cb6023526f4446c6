package dispatchers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/log"
	"github.com/footprint-tools/keel/internal/usage"
)

// Tree is a checked command tree ready to run. It is immutable and may be
// shared between concurrent runs.
type Tree struct {
	name  string
	root  *node
	nodes map[string]*node
	depth int
}

// Name returns the program name used as the first element of every path.
func (t *Tree) Name() string { return t.name }

// Depth returns the number of nodes on the longest path through the tree.
func (t *Tree) Depth() int { return t.depth }

// Step describes one resolved node of a walk.
type Step struct {
	NodeID  string
	Path    []string
	Variant string
	Scope   Scope
	Context any
}

type runConfig struct {
	prompter Prompter
	logger   domain.Logger
	out      io.Writer
	trace    func(Step)
}

// RunOption configures a single Run.
type RunOption func(*runConfig)

// WithPrompter enables interactive resolution of missing fields.
// Without a prompter the run is non-interactive.
func WithPrompter(p Prompter) RunOption {
	return func(c *runConfig) { c.prompter = p }
}

// WithLogger sets the logger for walk diagnostics.
func WithLogger(l domain.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOutput sets where help is written.
func WithOutput(w io.Writer) RunOption {
	return func(c *runConfig) {
		if w != nil {
			c.out = w
		}
	}
}

// WithTrace registers a hook called after every node is resolved.
func WithTrace(fn func(Step)) RunOption {
	return func(c *runConfig) { c.trace = fn }
}

// Run parses args, fills in whatever is missing and runs the selected leaf
// action with the context accumulated along the path. root is the root
// context and must have the type the registry was created with.
func (t *Tree) Run(ctx context.Context, args []string, root any, opts ...RunOption) error {
	cfg := runConfig{logger: log.NopLogger{}, out: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}

	if root == nil || !reflect.TypeOf(root).AssignableTo(t.root.in) {
		return fmt.Errorf("%s: root context %T does not match %s", t.name, root, t.root.in)
	}

	surface, err := t.Parse(args)
	if err != nil {
		cfg.logger.Debug("dispatch: parse failed: %v", err)
		return err
	}

	if target := surface.helpTarget(); target != nil {
		return t.WriteHelp(cfg.out, target.NodeID, target.Path)
	}

	w := &walker{
		tree:     t,
		prompter: cfg.prompter,
		log:      cfg.logger,
		trace:    cfg.trace,
	}
	return w.walk(ctx, surface, root)
}

type state int

const (
	stateNeedsInput state = iota
	stateValidating
	stateDone
)

type walker struct {
	tree     *Tree
	prompter Prompter
	log      domain.Logger
	trace    func(Step)
}

func (w *walker) interactive() bool {
	return w.prompter != nil
}

// walk visits nodes from the root to a leaf. Each iteration resolves one
// node completely before moving on, so a frozen scope is never revisited.
func (w *walker) walk(ctx context.Context, surface *Surface, root any) error {
	n := w.tree.root
	s := surface
	path := []string{w.tree.name}
	current := root

	for {
		if err := ctx.Err(); err != nil {
			return usage.Interrupted(path, err)
		}
		if s != nil && s.NodeID != n.id {
			s = nil
		}

		w.log.Debug("dispatch: enter %s (%s) at %q", n.id, n.kind, strings.Join(path, " "))

		switch n.kind {
		case kindChoice:
			v, err := w.choose(ctx, n, s, path)
			if err != nil {
				return err
			}
			w.emit(Step{NodeID: n.id, Path: path, Variant: v.Name, Context: current})

			path = appendPath(path, v.Name)
			n = w.tree.nodes[v.Target]
			s = childOf(s)

		case kindSequence:
			scope, err := w.resolve(ctx, n, current, s, path)
			if err != nil {
				return err
			}
			next := n.derive(current, scope)
			w.emit(Step{NodeID: n.id, Path: path, Scope: scope, Context: next})

			if n.isLeaf() {
				return w.run(ctx, n, next, path)
			}

			current = next
			n = w.tree.nodes[n.next]
			if n.keyword != "" {
				path = appendPath(path, n.keyword)
			}
			s = childOf(s)
		}
	}
}

func (w *walker) run(ctx context.Context, n *node, c any, path []string) error {
	w.log.Info("dispatch: run %q", strings.Join(path, " "))
	err := n.action(ctx, c)
	if err == nil {
		w.log.Debug("dispatch: %s done", n.id)
		return nil
	}
	w.log.Error("dispatch: %s failed: %v", n.id, err)
	if errors.Is(err, ErrInterrupted) || errors.Is(err, context.Canceled) {
		return usage.Interrupted(path, err)
	}
	return usage.Action(path, err)
}

func (w *walker) emit(step Step) {
	if w.trace != nil {
		w.trace(step)
	}
}

func childOf(s *Surface) *Surface {
	if s == nil {
		return nil
	}
	return s.Child
}

// choose picks the variant of a choice node from the surface or a menu.
func (w *walker) choose(ctx context.Context, n *node, s *Surface, path []string) (Variant, error) {
	if s != nil && s.Variant != "" {
		if v, ok := n.variant(s.Variant); ok {
			return v, nil
		}
	}
	if !w.interactive() {
		return Variant{}, usage.MissingSubcommand(path, n.variantNames())
	}

	opts := make([]Option, len(n.variants))
	for i, v := range n.variants {
		opts[i] = Option{Name: v.Name, Description: v.Description}
	}
	idx, err := w.prompter.Select(ctx, SelectRequest{Message: n.prompt, Options: opts})
	if err != nil {
		return Variant{}, promptError(path, err)
	}
	if idx < 0 || idx >= len(n.variants) {
		return Variant{}, fmt.Errorf("%s: selection %d out of range", strings.Join(path, " "), idx)
	}
	return n.variants[idx], nil
}

// resolve runs the per-node state machine and returns the frozen scope.
func (w *walker) resolve(ctx context.Context, n *node, parent any, s *Surface, path []string) (Scope, error) {
	b := newBuilder(n.fields)
	w.merge(n, parent, s, b)

	st := stateNeedsInput
	for st != stateDone {
		if err := ctx.Err(); err != nil {
			return Scope{}, usage.Interrupted(path, err)
		}

		switch st {
		case stateNeedsInput:
			for _, f := range b.pending() {
				if !w.interactive() {
					if f.optional {
						continue
					}
					return Scope{}, usage.MissingArgument(path, f.name)
				}
				if err := w.ask(ctx, n, f, parent, b, path); err != nil {
					return Scope{}, err
				}
			}
			st = stateValidating

		case stateValidating:
			verr, err := validateNode(n, parent, b)
			if err != nil {
				w.log.Error("dispatch: %s: validator failed: %v", n.id, err)
				return Scope{}, usage.Action(path, err)
			}
			if verr == nil {
				st = stateDone
				continue
			}
			w.log.Warn("dispatch: %s: validation failed: %v", n.id, verr)
			if !w.interactive() || len(n.fields) == 0 {
				return Scope{}, usage.Validation(path, verr)
			}
			w.prompter.Report(verr)
			for _, name := range offending(n, verr) {
				b.Unset(name)
			}
			st = stateNeedsInput
		}
	}

	for _, f := range n.fields {
		if b.IsSet(f.name) {
			w.log.Debug("dispatch: %s.%s from %s", n.id, f.name, b.Source(f.name))
		}
	}
	return b.freeze(), nil
}

// merge applies typed values and derived defaults to a fresh builder.
func (w *walker) merge(n *node, parent any, s *Surface, b *Builder) {
	for _, f := range n.fields {
		if s != nil {
			if v, ok := s.Values[f.name]; ok {
				b.Set(f.name, v, SourceFlag)
				continue
			}
		}
		if f.derive != nil {
			if v, ok := f.derive(parent); ok {
				b.Set(f.name, v, SourceDerived)
				continue
			}
		}
		if f.boolean {
			b.Set(f.name, false, SourceDefault)
		}
	}
}

// ask prompts for one field until it parses and passes its check.
func (w *walker) ask(ctx context.Context, n *node, f field, parent any, b *Builder, path []string) error {
	for {
		raw, err := w.read(ctx, f, parent, b)
		if err != nil {
			return promptError(path, err)
		}
		if raw == "" && f.optional {
			b.markAsked(f.name)
			return nil
		}

		v, err := f.parse(raw)
		if err != nil {
			w.log.Debug("dispatch: %s.%s: %v", n.id, f.name, err)
			w.prompter.Report(usage.InvalidValue(nil, f.name, raw, err))
			continue
		}
		if verr := checkField(f, v); verr != nil {
			w.prompter.Report(verr)
			continue
		}

		b.Set(f.name, v, SourcePrompt)
		return nil
	}
}

var yesNo = []Option{{Name: "yes"}, {Name: "no"}}

func (w *walker) read(ctx context.Context, f field, parent any, b *Builder) (string, error) {
	if f.boolean {
		idx, err := w.prompter.Select(ctx, SelectRequest{Message: f.promptText(), Options: yesNo, Default: 1})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(yesNo) {
			return "", fmt.Errorf("selection %d out of range", idx)
		}
		return yesNo[idx].Name, nil
	}

	var suggest string
	if f.suggest != nil {
		suggest = f.suggest(parent, b)
	}

	if f.options != nil {
		if opts := f.options(parent); len(opts) > 0 {
			def := 0
			for i, o := range opts {
				if o.Name == suggest {
					def = i
				}
			}
			idx, err := w.prompter.Select(ctx, SelectRequest{Message: f.promptText(), Options: opts, Default: def})
			if err != nil {
				return "", err
			}
			if idx < 0 || idx >= len(opts) {
				return "", fmt.Errorf("selection %d out of range", idx)
			}
			return opts[idx].Name, nil
		}
	}

	raw, err := w.prompter.Input(ctx, InputRequest{
		Message:  f.promptText(),
		Suggest:  suggest,
		Secret:   f.secret,
		Optional: f.optional,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func promptError(path []string, err error) error {
	if errors.Is(err, ErrInterrupted) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return usage.Interrupted(path, err)
	}
	return fmt.Errorf("%s: prompt: %w", strings.Join(path, " "), err)
}
