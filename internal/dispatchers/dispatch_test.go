package dispatchers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/footprint-tools/keel/internal/usage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func requireKind(t *testing.T, err error, kind usage.ErrorKind) *usage.Error {
	t.Helper()
	var ue *usage.Error
	require.ErrorAs(t, err, &ue)
	require.Equal(t, kind, ue.Kind, ue.Error())
	return ue
}

func argv(s string) []string {
	return strings.Fields(s)
}

func TestRun_ScenarioA_AllFlags(t *testing.T) {
	rec := &recorder{}
	tree := newTestTree(t, rec)

	err := tree.Run(context.Background(), argv("--verbose nodeA --x=1 choiceB variantB1 --y=2"), rootCtx{})
	require.NoError(t, err)
	require.Equal(t, 0, usage.ExitCode(err))
	require.Equal(t, []leafCtx{{X: 1, Y: 2}}, rec.leafB1)
	require.Empty(t, rec.leafB2)
}

func TestRun_ScenarioB_MalformedValue(t *testing.T) {
	for _, bad := range []string{"--y=", "--y=two"} {
		t.Run(bad, func(t *testing.T) {
			rec := &recorder{}
			tree := newTestTree(t, rec)

			err := tree.Run(context.Background(), argv("--verbose nodeA --x=1 choiceB variantB1 "+bad), rootCtx{})
			ue := requireKind(t, err, usage.ErrInvalidValue)
			require.Contains(t, ue.Error(), "'y'")
			require.Equal(t, []string{"root", "nodeA", "choiceB", "variantB1"}, ue.Path)
			require.Equal(t, 2, usage.ExitCode(err))
			require.Empty(t, rec.leafB1)
		})
	}
}

func TestRun_ScenarioC_PromptsUntilValid(t *testing.T) {
	rec := &recorder{}
	tree := newTestTree(t, rec)
	p := newScript(t,
		answer{message: "value of x?", text: "one"},
		answer{message: "value of x?", text: "1"},
	)

	err := tree.Run(context.Background(), argv("nodeA choiceB variantB1 --y=2"), rootCtx{}, WithPrompter(p))
	require.NoError(t, err)
	p.done()

	require.Len(t, p.reports, 1)
	requireKind(t, p.reports[0], usage.ErrInvalidValue)
	require.Equal(t, []leafCtx{{X: 1, Y: 2}}, rec.leafB1)
}

func TestRun_NoPromptsWhenAllFlagsGiven(t *testing.T) {
	rec := &recorder{}
	tree := newTestTree(t, rec)
	p := newScript(t)

	err := tree.Run(context.Background(), argv("nodeA --x=3 choiceB variantB1 --y=4"), rootCtx{}, WithPrompter(p))
	require.NoError(t, err)
	require.Empty(t, p.asked)
	require.Equal(t, []leafCtx{{X: 3, Y: 4}}, rec.leafB1)
}

func TestRun_OmittedFlagPromptedOnce(t *testing.T) {
	rec := &recorder{}
	tree := newTestTree(t, rec)
	p := newScript(t, answer{message: "value of y?", text: "7"})

	err := tree.Run(context.Background(), argv("nodeA --x 3 choiceB variantB1"), rootCtx{}, WithPrompter(p))
	require.NoError(t, err)
	p.done()
	require.Equal(t, []string{"value of y?"}, p.asked)
	require.Equal(t, []leafCtx{{X: 3, Y: 7}}, rec.leafB1)
}

func TestRun_MissingFieldNonInteractive(t *testing.T) {
	rec := &recorder{}
	tree := newTestTree(t, rec)

	err := tree.Run(context.Background(), argv("nodeA choiceB variantB1 --y=2"), rootCtx{})
	ue := requireKind(t, err, usage.ErrMissingArgument)
	require.Equal(t, []string{"root", "nodeA"}, ue.Path)
	require.Contains(t, ue.Error(), "'x'")
	require.Empty(t, rec.leafB1)
}

func TestRun_DeriveIsDeterministic(t *testing.T) {
	rec := &recorder{}
	tree := newTestTree(t, rec)

	collect := func() []Step {
		var steps []Step
		err := tree.Run(context.Background(), argv("-v nodeA --x=5 choiceB variantB1 --y=6 --label=a"), rootCtx{},
			WithTrace(func(s Step) { steps = append(steps, s) }))
		require.NoError(t, err)
		return steps
	}

	first, second := collect(), collect()
	require.Len(t, first, 4)

	opt := cmp.AllowUnexported(Scope{})
	if diff := cmp.Diff(first, second, opt); diff != "" {
		t.Fatalf("walk not deterministic (-first +second):\n%s", diff)
	}
	require.Equal(t, leafCtx{X: 5, Y: 6, Label: "a"}, first[3].Context)

	n := tree.nodes["nodeA"]
	a := n.derive(rootCtx{Verbose: true}, first[1].Scope)
	b := n.derive(rootCtx{Verbose: true}, first[1].Scope.Clone())
	require.Equal(t, a, b)
}

func TestRun_ChoiceSelectsExactlyOneVariant(t *testing.T) {
	rec := &recorder{}
	tree := newTestTree(t, rec)
	p := newScript(t,
		answer{message: "Choose an option:", index: 1},
		answer{message: "value of w?", text: "hello"},
	)

	var visited []string
	err := tree.Run(context.Background(), argv("nodeA --x=1"), rootCtx{},
		WithPrompter(p),
		WithTrace(func(s Step) { visited = append(visited, s.NodeID) }))
	require.NoError(t, err)
	p.done()

	require.Equal(t, []string{"root", "nodeA", "choiceB", "leafB2"}, visited)
	require.NotContains(t, p.asked, "value of y?")
	require.Empty(t, rec.leafB1)
	require.Len(t, rec.leafB2, 1)
}

func TestRun_InteractiveValidationRepromptsOnlyOffendingField(t *testing.T) {
	rec := &recorder{}
	tree := newTestTree(t, rec)
	p := newScript(t, answer{message: "value of y?", text: "9"})

	err := tree.Run(context.Background(), argv("nodeA --x=1 choiceB variantB1 --y=1 --label=keep"), rootCtx{}, WithPrompter(p))
	require.NoError(t, err)
	p.done()

	require.Equal(t, []string{"value of y?"}, p.asked)
	require.Len(t, p.reports, 1)
	var verr *ValidationError
	require.ErrorAs(t, p.reports[0], &verr)
	require.Equal(t, []string{"y"}, verr.Fields)
	require.Equal(t, []leafCtx{{X: 1, Y: 9, Label: "keep"}}, rec.leafB1)
}

func TestRun_NonInteractiveValidationAbortsBeforeDescendants(t *testing.T) {
	t.Run("field check at nodeA", func(t *testing.T) {
		rec := &recorder{}
		tree := newTestTree(t, rec)

		var visited []string
		err := tree.Run(context.Background(), argv("nodeA --x=0 choiceB variantB1 --y=2"), rootCtx{},
			WithTrace(func(s Step) { visited = append(visited, s.NodeID) }))
		ue := requireKind(t, err, usage.ErrValidation)
		require.Equal(t, []string{"root", "nodeA"}, ue.Path)
		require.Equal(t, []string{"root"}, visited)
		require.Empty(t, rec.leafB1)
	})

	t.Run("cross-field rule at leaf", func(t *testing.T) {
		rec := &recorder{}
		tree := newTestTree(t, rec)

		err := tree.Run(context.Background(), argv("nodeA --x=2 choiceB variantB1 --y=2"), rootCtx{})
		ue := requireKind(t, err, usage.ErrValidation)
		require.Contains(t, ue.Error(), "y must differ from x")
		require.Equal(t, 2, usage.ExitCode(err))
		require.Empty(t, rec.leafB1)
	})
}

func TestRun_LeafErrorCarriesPath(t *testing.T) {
	rec := &recorder{err: errors.New("ledger unavailable")}
	tree := newTestTree(t, rec)

	err := tree.Run(context.Background(), argv("nodeA --x=1 choiceB variantB1 --y=2"), rootCtx{})
	ue := requireKind(t, err, usage.ErrAction)
	require.ErrorIs(t, err, rec.err)
	require.Equal(t, []string{"root", "nodeA", "choiceB", "variantB1"}, ue.Path)
	require.Equal(t, 1, usage.ExitCode(err))
}

func TestRun_Interrupted(t *testing.T) {
	t.Run("prompter abort", func(t *testing.T) {
		rec := &recorder{}
		tree := newTestTree(t, rec)
		p := newScript(t, answer{message: "value of x?", err: ErrInterrupted})

		err := tree.Run(context.Background(), argv("nodeA"), rootCtx{}, WithPrompter(p))
		requireKind(t, err, usage.ErrInterrupted)
		require.Equal(t, 130, usage.ExitCode(err))
		require.Empty(t, rec.leafB1)
	})

	t.Run("cancelled context", func(t *testing.T) {
		rec := &recorder{}
		tree := newTestTree(t, rec)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := tree.Run(ctx, argv("nodeA --x=1 choiceB variantB1 --y=2"), rootCtx{})
		requireKind(t, err, usage.ErrInterrupted)
		require.Empty(t, rec.leafB1)
	})
}

func TestRun_MissingSubcommandNonInteractive(t *testing.T) {
	tree := newTestTree(t, &recorder{})

	err := tree.Run(context.Background(), argv("nodeA --x=1"), rootCtx{})
	ue := requireKind(t, err, usage.ErrMissingArgument)
	require.Contains(t, ue.Error(), "variantB1, variantB2")
}

func TestRun_WrongRootContext(t *testing.T) {
	tree := newTestTree(t, &recorder{})

	err := tree.Run(context.Background(), nil, "not a root")
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not match")
}

func TestRun_Help(t *testing.T) {
	rec := &recorder{}
	tree := newTestTree(t, rec)

	var out bytes.Buffer
	err := tree.Run(context.Background(), argv("nodeA --help --x=notparsed"), rootCtx{}, WithOutput(&out))
	require.NoError(t, err)
	require.Contains(t, out.String(), "root nodeA - First level")
	require.Contains(t, out.String(), "--x <x>")
	require.Empty(t, rec.leafB1)
}

func TestRun_PositionalsAndOptionalFields(t *testing.T) {
	var got []ownerCtx
	tree := newOwnerTree(t, &got)

	require.NoError(t, tree.Run(context.Background(), argv("alice -t vip send 5"), struct{}{}))
	require.Equal(t, []ownerCtx{{Owner: "alice", Tags: "vip"}}, got)

	got = nil
	p := newScript(t,
		answer{message: "owner?", text: "  bob  "},
		answer{message: "amount?", text: "12"},
	)
	require.NoError(t, tree.Run(context.Background(), argv("send"), struct{}{}, WithPrompter(p)))
	p.done()
	require.Equal(t, []ownerCtx{{Owner: "bob"}}, got)
}

func TestRun_EmptyInputForRequiredFieldReprompts(t *testing.T) {
	var got []ownerCtx
	tree := newOwnerTree(t, &got)
	p := newScript(t,
		answer{message: "owner?", text: ""},
		answer{message: "owner?", text: "carol"},
	)

	require.NoError(t, tree.Run(context.Background(), argv("view"), struct{}{}, WithPrompter(p)))
	p.done()
	require.Len(t, p.reports, 1)
	require.Equal(t, []ownerCtx{{Owner: "carol"}}, got)
}

func TestRun_ValidatorFailureIsNotRetried(t *testing.T) {
	storeDown := errors.New("ledger unavailable")
	ran := false

	reg := NewRegistry[struct{}]("shop")
	reg.Add(Sequence[struct{}, struct{}]{
		ID: "lookup",
		Fields: []Field[struct{}]{
			{Name: "name", Positional: true, Prompt: "name?", Parse: ParseString},
		},
		Validate: func(struct{}, *Builder) error {
			return fmt.Errorf("look up name: %w", storeDown)
		},
		Action: func(context.Context, struct{}) error {
			ran = true
			return nil
		},
	})
	tree, err := reg.Build("lookup")
	require.NoError(t, err)

	p := newScript(t, answer{message: "name?", text: "alice"})
	err = tree.Run(context.Background(), nil, struct{}{}, WithPrompter(p))
	p.done()

	requireKind(t, err, usage.ErrAction)
	require.ErrorIs(t, err, storeDown)
	require.Equal(t, 1, usage.ExitCode(err))
	require.Empty(t, p.reports)
	require.False(t, ran)
}
