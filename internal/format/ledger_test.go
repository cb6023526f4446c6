package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/ui/style"
)

func TestDelta(t *testing.T) {
	tx := domain.Transaction{Kind: domain.TxTransfer, Signer: "alice", Receiver: "bob", Amount: 1_500_000}

	text, credit := Delta(tx, "bob")
	require.Equal(t, "+1.5", text)
	require.True(t, credit)

	text, credit = Delta(tx, "alice")
	require.Equal(t, "-1.5", text)
	require.False(t, credit)
}

func TestCounterparty(t *testing.T) {
	require.Equal(t, "genesis", Counterparty(domain.Transaction{Kind: domain.TxCreate, Receiver: "a"}, "a"))
	tx := domain.Transaction{Kind: domain.TxTransfer, Signer: "alice", Receiver: "bob"}
	require.Equal(t, "to bob", Counterparty(tx, "alice"))
	require.Equal(t, "from alice", Counterparty(tx, "bob"))
}

func TestShortHash(t *testing.T) {
	require.Equal(t, "abc", ShortHash("abc"))
	require.Equal(t, "01234567", ShortHash("0123456789"))
}

func TestRow(t *testing.T) {
	tx := domain.Transaction{Height: 7, Kind: domain.TxTransfer, Signer: "alice", Receiver: "bob", Amount: 2_000_000, Hash: "deadbeefcafe"}

	row := Row(style.NopStyler{}, tx, "alice")
	require.True(t, strings.HasPrefix(row, "#7"))
	require.Contains(t, row, "-2")
	require.Contains(t, row, "to bob")
	require.True(t, strings.HasSuffix(row, "deadbeef"))
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 23, 15, 4, 5, 0, time.Local)
	require.Equal(t, "2024-01-23 15:04:05", Timestamp(ts))
}
