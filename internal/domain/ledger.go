package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAccountExists     = errors.New("account already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// AmountDecimals is the number of fractional digits an Amount carries.
const AmountDecimals = 6

const amountUnit = 1_000_000

// Amount is a token quantity in micro-units.
type Amount int64

// ParseAmount parses a decimal string such as "12", "0.5" or "3.000001".
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty amount")
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, errors.New("amount must be an unsigned decimal")
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (frac == "" || len(frac) > AmountDecimals) {
		return 0, fmt.Errorf("amount supports at most %d decimal places", AmountDecimals)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if w > (1<<63-1)/amountUnit-1 {
		return 0, fmt.Errorf("amount %q is too large", s)
	}

	var f int64
	if hasFrac {
		padded := frac + strings.Repeat("0", AmountDecimals-len(frac))
		f, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}

	return Amount(w*amountUnit + f), nil
}

// String renders the amount without trailing fractional zeros.
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := v / amountUnit
	frac := v % amountUnit
	if frac == 0 {
		return sign + strconv.FormatInt(whole, 10)
	}
	fs := fmt.Sprintf("%0*d", AmountDecimals, frac)
	return sign + strconv.FormatInt(whole, 10) + "." + strings.TrimRight(fs, "0")
}

// TxKind identifies what a ledger transaction did.
type TxKind string

const (
	TxCreate   TxKind = "create"
	TxTransfer TxKind = "transfer"
	TxDelete   TxKind = "delete"
)

// Account is a ledger account on one network.
type Account struct {
	Network     string
	ID          string
	DisplayName string
	Height      int64 // block height at which the account was created
	CreatedAt   time.Time
}

// Transaction is one ledger entry. Height is assigned by the store.
type Transaction struct {
	Hash      string
	Network   string
	Height    int64
	Kind      TxKind
	Signer    string
	Receiver  string
	Amount    Amount
	Memo      string
	CreatedAt time.Time
}
