package account

import (
	"context"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/domain"
)

// Create registers a new account and credits its initial balance.
func Create(ctx context.Context, c domain.Networked[domain.NewAccount]) error {
	return create(ctx, c, actions.DepsFor(c.Globals()))
}

func create(ctx context.Context, c domain.Networked[domain.NewAccount], deps Deps) error {
	acct := domain.Account{
		Network:     c.Network,
		ID:          c.Parent.AccountID,
		DisplayName: c.Parent.DisplayName,
	}

	tx, err := deps.Ledger.CreateAccount(ctx, acct, c.Parent.InitialBalance)
	if err != nil {
		return err
	}
	deps.Logger.Info("account: created %s on %s at block %d", acct.ID, acct.Network, tx.Height)

	s := deps.Styler
	_, _ = deps.Printf("%s account %s on %s with balance %s\n",
		s.Success("Created"), acct.ID, acct.Network, c.Parent.InitialBalance)
	_, _ = deps.Printf("%s %s at block %d\n", s.Muted("transaction"), tx.Hash, tx.Height)
	return nil
}
