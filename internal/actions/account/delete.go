package account

import (
	"context"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/domain"
)

// Delete removes an account after moving its balance to the beneficiary.
func Delete(ctx context.Context, c domain.Networked[domain.AccountDeletion]) error {
	return remove(ctx, c, actions.DepsFor(c.Globals()))
}

func remove(ctx context.Context, c domain.Networked[domain.AccountDeletion], deps Deps) error {
	id := c.Parent.AccountID
	beneficiary := c.Parent.Beneficiary

	tx, err := deps.Ledger.DeleteAccount(ctx, c.Network, id, beneficiary)
	if err != nil {
		return err
	}
	deps.Logger.Info("account: deleted %s on %s, %s moved to %s", id, c.Network, tx.Amount, beneficiary)

	s := deps.Styler
	_, _ = deps.Printf("%s account %s on %s\n", s.Warning("Deleted"), id, c.Network)
	_, _ = deps.Printf("%s moved to %s\n", s.Credit(tx.Amount.String()), beneficiary)
	_, _ = deps.Printf("%s %s at block %d\n", s.Muted("transaction"), tx.Hash, tx.Height)
	return nil
}
