// Package actiontest builds leaf dependencies over an in-memory ledger for tests.
package actiontest

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/config"
	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/log"
	"github.com/footprint-tools/keel/internal/store"
	"github.com/footprint-tools/keel/internal/ui/style"
)

// Env is a test ledger plus captured output.
type Env struct {
	Deps   actions.Deps
	Store  *store.Store
	Config *config.MemoryProvider
	Out    *bytes.Buffer // results written to Deps.Out
	Info   *bytes.Buffer // progress written through Deps.Printf
}

// New returns an Env backed by a fresh in-memory store.
func New(t *testing.T) *Env {
	t.Helper()

	s, err := store.New(store.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	e := &Env{
		Store:  s,
		Config: config.NewMemoryProvider(nil),
		Out:    &bytes.Buffer{},
		Info:   &bytes.Buffer{},
	}
	e.Deps = actions.Deps{
		Ledger: s,
		Config: e.Config,
		Out:    e.Out,
		Printf: func(format string, a ...any) (int, error) {
			return fmt.Fprintf(e.Info, format, a...)
		},
		Styler:  style.NopStyler{},
		Logger:  log.NopLogger{},
		Version: func() string { return "test" },
	}
	return e
}

// Account creates an account with an initial balance given as a decimal string.
func (e *Env) Account(t *testing.T, network, id, initial string) domain.Transaction {
	t.Helper()
	amount, err := domain.ParseAmount(initial)
	require.NoError(t, err)
	tx, err := e.Store.CreateAccount(context.Background(), domain.Account{Network: network, ID: id, DisplayName: id}, amount)
	require.NoError(t, err)
	return tx
}
