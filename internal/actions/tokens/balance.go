package tokens

import (
	"context"
	"fmt"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/domain"
)

// ViewBalance prints the current balance of the owner account.
func ViewBalance(ctx context.Context, c domain.Networked[domain.Owner]) error {
	return viewBalance(ctx, c, actions.DepsFor(c.Globals()))
}

func viewBalance(ctx context.Context, c domain.Networked[domain.Owner], deps actions.Deps) error {
	id := c.Parent.OwnerID
	if _, err := deps.Ledger.Account(ctx, c.Network, id); err != nil {
		return err
	}

	height, err := deps.Ledger.Height(ctx, c.Network)
	if err != nil {
		return err
	}
	balance, err := deps.Ledger.BalanceAt(ctx, c.Network, id, height)
	if err != nil {
		return err
	}

	_, _ = deps.Printf("%s on %s at block %d: ", id, c.Network, height)
	_, err = fmt.Fprintln(deps.Out, balance)
	return err
}
