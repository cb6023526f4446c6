package account

import (
	"context"
	"fmt"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/domain"
)

// List prints the live accounts of a network with their current balance.
func List(ctx context.Context, c domain.Networked[domain.Global]) error {
	return list(ctx, c, actions.DepsFor(c.Globals()))
}

func list(ctx context.Context, c domain.Networked[domain.Global], deps Deps) error {
	accounts, err := deps.Ledger.ListAccounts(ctx, c.Network)
	if err != nil {
		return err
	}

	s := deps.Styler
	if len(accounts) == 0 {
		_, _ = deps.Printf("%s\n", s.Muted("No accounts on "+c.Network))
		return nil
	}

	height, err := deps.Ledger.Height(ctx, c.Network)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(deps.Out, "%s\n", s.Header(fmt.Sprintf("%-24s %-24s %14s", "ACCOUNT", "NAME", "BALANCE")))
	for _, a := range accounts {
		balance, err := deps.Ledger.BalanceAt(ctx, c.Network, a.ID, height)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(deps.Out, "%-24s %-24s %14s\n", a.ID, a.DisplayName, balance)
	}
	return nil
}
