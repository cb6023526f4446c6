package account

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/keel/internal/actions/actiontest"
	"github.com/footprint-tools/keel/internal/domain"
)

func networked[P domain.Scoped](p P, network string) domain.Networked[P] {
	return domain.Networked[P]{Parent: p, Network: network}
}

func TestCreate(t *testing.T) {
	env := actiontest.New(t)
	ctx := context.Background()

	c := networked(domain.NewAccount{AccountID: "alice", DisplayName: "Alice", InitialBalance: 5_000_000}, "testnet")
	require.NoError(t, create(ctx, c, env.Deps))

	require.Contains(t, env.Info.String(), "Created account alice on testnet with balance 5")

	acct, err := env.Store.Account(ctx, "testnet", "alice")
	require.NoError(t, err)
	require.Equal(t, "Alice", acct.DisplayName)

	err = create(ctx, c, env.Deps)
	require.ErrorIs(t, err, domain.ErrAccountExists)
}

func TestViewSummary(t *testing.T) {
	env := actiontest.New(t)
	ctx := context.Background()
	env.Account(t, "testnet", "alice", "10")
	env.Account(t, "testnet", "bob", "0")
	_, err := env.Store.Transfer(ctx, domain.Transaction{Network: "testnet", Signer: "alice", Receiver: "bob", Amount: 4_000_000})
	require.NoError(t, err)

	view := domain.BlockView{Networked: networked(domain.AccountRef{AccountID: "alice"}, "testnet")}
	require.NoError(t, viewSummary(ctx, view, env.Deps))
	out := env.Out.String()
	require.Contains(t, out, "Block:    3")
	require.Contains(t, out, "Balance:  6")
	require.Contains(t, out, "to bob")

	env.Out.Reset()
	view.Height = 2
	require.NoError(t, viewSummary(ctx, view, env.Deps))
	require.Contains(t, env.Out.String(), "Balance:  10")
	require.NotContains(t, env.Out.String(), "to bob")
}

func TestViewSummary_Errors(t *testing.T) {
	env := actiontest.New(t)
	ctx := context.Background()
	env.Account(t, "testnet", "alice", "1")
	env.Account(t, "testnet", "bob", "1")

	bob := domain.BlockView{Networked: networked(domain.AccountRef{AccountID: "bob"}, "testnet"), Height: 1}
	require.ErrorContains(t, viewSummary(ctx, bob, env.Deps), "created at block 2")

	bob.Height = 9
	require.ErrorContains(t, viewSummary(ctx, bob, env.Deps), "beyond the latest block")

	carol := domain.BlockView{Networked: networked(domain.AccountRef{AccountID: "carol"}, "testnet")}
	require.ErrorIs(t, viewSummary(ctx, carol, env.Deps), domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	env := actiontest.New(t)
	ctx := context.Background()
	env.Account(t, "testnet", "alice", "3")
	env.Account(t, "testnet", "bob", "0")

	c := networked(domain.AccountDeletion{AccountID: "alice", Beneficiary: "bob"}, "testnet")
	require.NoError(t, remove(ctx, c, env.Deps))
	require.Contains(t, env.Info.String(), "Deleted account alice")
	require.Contains(t, env.Info.String(), "3 moved to bob")

	balance, err := env.Store.BalanceAt(ctx, "testnet", "bob", 3)
	require.NoError(t, err)
	require.Equal(t, domain.Amount(3_000_000), balance)
}

func TestList(t *testing.T) {
	env := actiontest.New(t)
	ctx := context.Background()

	require.NoError(t, list(ctx, networked(domain.Global{}, "testnet"), env.Deps))
	require.Contains(t, env.Info.String(), "No accounts on testnet")

	env.Account(t, "testnet", "bob", "2.5")
	env.Account(t, "testnet", "alice", "1")
	env.Account(t, "mainnet", "carol", "1")

	require.NoError(t, list(ctx, networked(domain.Global{}, "testnet"), env.Deps))
	out := env.Out.String()
	require.Contains(t, out, "ACCOUNT")
	require.Less(t, strings.Index(out, "alice"), strings.Index(out, "bob"))
	require.Contains(t, out, "2.5")
	require.NotContains(t, out, "carol")
}
