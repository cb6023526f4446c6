package account

import (
	"context"
	"fmt"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/format"
)

// historyLimit is how many recent transactions a summary shows.
const historyLimit = 10

// ViewSummary prints the balance and recent transactions of an account as
// of a block height. Height 0 means the latest block.
func ViewSummary(ctx context.Context, v domain.BlockView) error {
	return viewSummary(ctx, v, actions.DepsFor(v.Globals()))
}

func viewSummary(ctx context.Context, v domain.BlockView, deps Deps) error {
	network := v.Network
	id := v.Parent.AccountID

	latest, err := deps.Ledger.Height(ctx, network)
	if err != nil {
		return err
	}
	height := v.Height
	if height == 0 {
		height = latest
	}
	if height > latest {
		return fmt.Errorf("block height %d is beyond the latest block %d on %s", height, latest, network)
	}

	acct, err := deps.Ledger.Account(ctx, network, id)
	if err != nil {
		return err
	}
	if acct.Height > height {
		return fmt.Errorf("account %s was created at block %d, after block %d", id, acct.Height, height)
	}

	balance, err := deps.Ledger.BalanceAt(ctx, network, id, height)
	if err != nil {
		return err
	}
	history, err := deps.Ledger.History(ctx, network, id, height, historyLimit)
	if err != nil {
		return err
	}

	s := deps.Styler
	title := acct.ID
	if acct.DisplayName != "" && acct.DisplayName != acct.ID {
		title = fmt.Sprintf("%s (%s)", acct.ID, acct.DisplayName)
	}

	out := deps.Out
	_, _ = fmt.Fprintf(out, "%s %s\n", s.Header("Account"), title)
	_, _ = fmt.Fprintf(out, "  Network:  %s\n", network)
	_, _ = fmt.Fprintf(out, "  Block:    %d\n", height)
	_, _ = fmt.Fprintf(out, "  Created:  block %d, %s\n", acct.Height, format.Timestamp(acct.CreatedAt))
	_, _ = fmt.Fprintf(out, "  Balance:  %s\n", s.Success(balance.String()))

	if len(history) == 0 {
		return nil
	}
	_, _ = fmt.Fprintf(out, "\n%s\n", s.Header("Recent transactions"))
	for _, t := range history {
		_, _ = fmt.Fprintf(out, "  %s\n", format.Row(s, t, id))
	}
	return nil
}
