// Package format renders ledger values for terminal output.
package format

import (
	"fmt"
	"time"

	"github.com/footprint-tools/keel/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

// Timestamp renders t in the local time zone.
func Timestamp(t time.Time) string {
	return t.Local().Format(timestampLayout)
}

// ShortHash returns the first eight characters of a transaction hash.
func ShortHash(hash string) string {
	if len(hash) <= 8 {
		return hash
	}
	return hash[:8]
}

// Delta returns the signed amount of t as seen by account id and whether it
// is a credit.
func Delta(t domain.Transaction, id string) (string, bool) {
	switch {
	case t.Receiver == id && t.Signer != id:
		return "+" + t.Amount.String(), true
	case t.Signer == id && t.Receiver != id:
		return "-" + t.Amount.String(), false
	default:
		return t.Amount.String(), true
	}
}

// Counterparty describes the other side of t as seen by account id.
func Counterparty(t domain.Transaction, id string) string {
	switch {
	case t.Kind == domain.TxCreate:
		return "genesis"
	case t.Signer == id:
		return "to " + t.Receiver
	default:
		return "from " + t.Signer
	}
}

// Row renders one history line: height, kind, signed amount, counterparty, hash.
func Row(s domain.Styler, t domain.Transaction, id string) string {
	delta, credit := Delta(t, id)
	amount := fmt.Sprintf("%14s", delta)
	if credit {
		amount = s.Credit(amount)
	} else {
		amount = s.Debit(amount)
	}
	return fmt.Sprintf("%s  %-8s %s  %-20s %s",
		s.Muted(fmt.Sprintf("#%-6d", t.Height)),
		string(t.Kind),
		amount,
		Counterparty(t, id),
		s.Muted(ShortHash(t.Hash)),
	)
}
