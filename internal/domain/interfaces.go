package domain

import (
	"context"
	"io"
)

// Ledger is the account store the leaf actions work against.
type Ledger interface {
	// CreateAccount registers a new account and credits its initial balance.
	CreateAccount(ctx context.Context, acct Account, initial Amount) (Transaction, error)

	// Account returns a live account.
	Account(ctx context.Context, network, id string) (Account, error)

	// ListAccounts returns all live accounts on a network.
	ListAccounts(ctx context.Context, network string) ([]Account, error)

	// DeleteAccount moves the remaining balance to beneficiary and removes the account.
	DeleteAccount(ctx context.Context, network, id, beneficiary string) (Transaction, error)

	// Transfer moves tokens between two live accounts.
	Transfer(ctx context.Context, tx Transaction) (Transaction, error)

	// Transaction looks up a transaction by hash.
	Transaction(ctx context.Context, network, hash string) (Transaction, error)

	// Height returns the latest block height on a network (0 when empty).
	Height(ctx context.Context, network string) (int64, error)

	// BalanceAt returns the balance of an account as of the given height.
	BalanceAt(ctx context.Context, network, id string, height int64) (Amount, error)

	// History returns the most recent transactions touching an account up to height.
	History(ctx context.Context, network, id string, height int64, limit int) ([]Transaction, error)

	// Close closes the store connection.
	Close() error
}

// ConfigProvider defines operations for reading and writing configuration.
type ConfigProvider interface {
	// Get returns the value for a configuration key.
	Get(key string) (string, bool)

	// GetAll returns all configuration values.
	GetAll() (map[string]string, error)

	// Set sets a configuration value.
	Set(key, value string) error

	// Unset removes a configuration value.
	Unset(key string) error
}

// Logger defines logging operations.
type Logger interface {
	// Debug logs a debug message.
	Debug(format string, args ...any)

	// Info logs an info message.
	Info(format string, args ...any)

	// Warn logs a warning message.
	Warn(format string, args ...any)

	// Error logs an error message.
	Error(format string, args ...any)

	// Close closes the logger.
	Close() error
}

// OutputWriter defines output operations.
type OutputWriter interface {
	io.Writer

	// Printf formats and prints to the output.
	Printf(format string, args ...any) (int, error)

	// Println prints a line to the output.
	Println(args ...any) (int, error)
}

// Styler defines text styling operations.
type Styler interface {
	// Enabled returns true if styling is enabled.
	Enabled() bool

	// Success styles text as success.
	Success(text string) string

	// Warning styles text as warning.
	Warning(text string) string

	// Error styles text as error.
	Error(text string) string

	// Info styles text as info.
	Info(text string) string

	// Muted styles text as muted.
	Muted(text string) string

	// Header styles text as header.
	Header(text string) string

	// Credit styles an incoming amount.
	Credit(text string) string

	// Debit styles an outgoing amount.
	Debit(text string) string
}

// Application represents the main application context with all dependencies.
type Application struct {
	Ledger Ledger
	Config ConfigProvider
	Logger Logger
	Output OutputWriter
	Styler Styler
}
