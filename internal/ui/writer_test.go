package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_Printf(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf)

	_, err := w.Printf("balance: %s\n", "1.5")
	require.NoError(t, err)
	_, err = w.Println("done")
	require.NoError(t, err)

	require.Equal(t, "balance: 1.5\ndone\n", buf.String())
}

func TestWriter_QuietSuppressesMessagesOnly(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf, WithQuiet(true))

	_, _ = w.Printf("chatty %d\n", 1)
	_, _ = w.Println("chatty")
	_, err := w.Write([]byte("hash: abc\n"))
	require.NoError(t, err)
	w.Pager("paged\n")

	require.Equal(t, "hash: abc\npaged\n", buf.String())
}

func TestWriter_PagerOnNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	called := false
	w := NewWriterTo(&buf,
		WithConfigGetter(func(string) (string, bool) { called = true; return "less", true }),
		WithEnvGetter(func(string) string { return "more" }),
	)

	w.Pager("help text\n")
	require.Equal(t, "help text\n", buf.String())
	require.False(t, called, "pager settings are not consulted without a terminal")
}
