package usage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var path = []string{"keel", "tokens", "send"}

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"invalid flag", InvalidFlag(path, "--x"), 2},
		{"invalid value", InvalidValue(path, "amount", "abc", errors.New("not a number")), 2},
		{"missing value", MissingValue(path, "--memo"), 2},
		{"missing argument", MissingArgument(path, "amount"), 2},
		{"missing subcommand", MissingSubcommand(path, []string{"a", "b"}), 2},
		{"unknown variant", UnknownVariant(path, "sned", "send"), 2},
		{"unexpected argument", UnexpectedArgument(path, "extra"), 2},
		{"validation", Validation(path, errors.New("receiver must differ")), 2},
		{"interrupted", Interrupted(path, context.Canceled), 130},
		{"action", Action(path, errors.New("insufficient funds")), 1},
		{"config key", InvalidConfigKey("nope"), 1},
		{"wrapped", fmt.Errorf("outer: %w", MissingArgument(path, "x")), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestError_MessageCarriesPath(t *testing.T) {
	err := MissingArgument(path, "amount")

	require.Equal(t, "keel tokens send: missing required argument 'amount'", err.Error())
}

func TestError_Suggestions(t *testing.T) {
	one := UnknownVariant([]string{"keel"}, "acount", "account")
	require.Contains(t, one.Error(), "The most similar option is\n        account")

	many := UnknownVariant([]string{"keel"}, "x", "a", "b")
	require.Contains(t, many.Error(), "The most similar options are")
}

func TestError_Unwrap(t *testing.T) {
	err := Interrupted(path, context.Canceled)

	require.ErrorIs(t, err, context.Canceled)
}

func TestAction_KeepsUsageErrors(t *testing.T) {
	inner := InvalidConfigKey("nope")

	require.Same(t, inner, Action(path, inner))
}

func TestAction_KeepsWrappedUsageErrors(t *testing.T) {
	wrapped := fmt.Errorf("set theme: %w", MissingArgument(path, "theme"))

	err := Action(path, wrapped)
	require.Same(t, wrapped, err)
	require.Equal(t, 2, ExitCode(err))
}

func TestInvalidValue_IncludesCause(t *testing.T) {
	err := InvalidValue(path, "amount", "1.1234567", errors.New("at most 6 decimal places"))

	require.Contains(t, err.Error(), "invalid value '1.1234567' for 'amount': at most 6 decimal places")
}
