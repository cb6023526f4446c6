// Package transaction implements `keel transaction view-status`.
package transaction

import (
	"context"
	"fmt"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/format"
)

// ViewStatus prints a transaction and how many blocks have confirmed it.
func ViewStatus(ctx context.Context, c domain.Networked[domain.TxRef]) error {
	return viewStatus(ctx, c, actions.DepsFor(c.Globals()))
}

func viewStatus(ctx context.Context, c domain.Networked[domain.TxRef], deps actions.Deps) error {
	tx, err := deps.Ledger.Transaction(ctx, c.Network, c.Parent.Hash)
	if err != nil {
		return err
	}
	latest, err := deps.Ledger.Height(ctx, c.Network)
	if err != nil {
		return err
	}

	s := deps.Styler
	out := deps.Out
	_, _ = fmt.Fprintf(out, "%s %s\n", s.Header("Transaction"), tx.Hash)
	_, _ = fmt.Fprintf(out, "  Status:    %s (%d confirmations)\n", s.Success("final"), latest-tx.Height)
	_, _ = fmt.Fprintf(out, "  Network:   %s\n", tx.Network)
	_, _ = fmt.Fprintf(out, "  Block:     %d\n", tx.Height)
	_, _ = fmt.Fprintf(out, "  Kind:      %s\n", tx.Kind)
	if tx.Signer != "" {
		_, _ = fmt.Fprintf(out, "  Signer:    %s\n", tx.Signer)
	}
	_, _ = fmt.Fprintf(out, "  Receiver:  %s\n", tx.Receiver)
	_, _ = fmt.Fprintf(out, "  Amount:    %s\n", tx.Amount)
	if tx.Memo != "" {
		_, _ = fmt.Fprintf(out, "  Memo:      %s\n", tx.Memo)
	}
	_, _ = fmt.Fprintf(out, "  Time:      %s\n", format.Timestamp(tx.CreatedAt))
	return nil
}
