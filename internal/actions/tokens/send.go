// Package tokens implements the `keel tokens` leaves.
package tokens

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/domain"
)

// Signing methods, named after the variants that select them.
const (
	MethodKeychain  = "sign-with-keychain"
	MethodSignLater = "sign-later"
)

// SignWithKeychain submits the transfer to the ledger and prints its hash.
func SignWithKeychain(ctx context.Context, s domain.Signing) error {
	return signWithKeychain(ctx, s, actions.DepsFor(s.Globals()))
}

func signWithKeychain(ctx context.Context, s domain.Signing, deps actions.Deps) error {
	t := s.Parent
	tx, err := deps.Ledger.Transfer(ctx, domain.Transaction{
		Network:  s.Network,
		Signer:   t.OwnerID,
		Receiver: t.ReceiverID,
		Amount:   t.Amount,
		Memo:     t.Memo,
	})
	if err != nil {
		return err
	}
	deps.Logger.Info("tokens: %s sent %s to %s on %s (%s)", t.OwnerID, t.Amount, t.ReceiverID, s.Network, tx.Hash)

	st := deps.Styler
	_, _ = deps.Printf("%s %s from %s to %s on %s at block %d\n",
		st.Success("Sent"), st.Debit(t.Amount.String()), t.OwnerID, t.ReceiverID, s.Network, tx.Height)
	_, _ = fmt.Fprintln(deps.Out, tx.Hash)
	return nil
}

// unsignedTransaction is the document printed by sign-later.
type unsignedTransaction struct {
	Network        string `yaml:"network"`
	Signer         string `yaml:"signer"`
	Receiver       string `yaml:"receiver"`
	Amount         string `yaml:"amount"`
	Memo           string `yaml:"memo,omitempty"`
	ExpectedHeight int64  `yaml:"expected_height"`
	SigningMethod  string `yaml:"signing_method"`
}

// SignLater prints the transfer as an unsigned YAML document without
// touching balances.
func SignLater(ctx context.Context, s domain.Signing) error {
	return signLater(ctx, s, actions.DepsFor(s.Globals()))
}

func signLater(ctx context.Context, s domain.Signing, deps actions.Deps) error {
	t := s.Parent
	for _, id := range []string{t.OwnerID, t.ReceiverID} {
		if _, err := deps.Ledger.Account(ctx, s.Network, id); err != nil {
			return err
		}
	}

	height, err := deps.Ledger.Height(ctx, s.Network)
	if err != nil {
		return err
	}

	doc := unsignedTransaction{
		Network:        s.Network,
		Signer:         t.OwnerID,
		Receiver:       t.ReceiverID,
		Amount:         t.Amount.String(),
		Memo:           t.Memo,
		ExpectedHeight: height + 1,
		SigningMethod:  MethodSignLater,
	}

	enc := yaml.NewEncoder(deps.Out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode unsigned transaction: %w", err)
	}
	return enc.Close()
}
