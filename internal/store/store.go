// Package store is the SQLite-backed ledger behind the keel leaf actions.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/log"
	"github.com/footprint-tools/keel/internal/store/migrations"
)

// Store wraps a SQLite database connection and implements domain.Ledger.
// Block heights are per network and advance by one with every transaction.
type Store struct {
	db   *sql.DB
	path string

	now     func() time.Time
	newHash func() string
}

// New opens the ledger at path and runs any pending migrations.
func New(path string) (*Store, error) {
	log.Debug("store: opening database at %s", path)

	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	s, err := NewWithDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.path = path

	log.Debug("store: database ready")
	return s, nil
}

// NewWithDB creates a Store from an existing connection and migrates it.
// Tests pass an in-memory database limited to one open connection.
func NewWithDB(db *sql.DB) (*Store, error) {
	if err := migrations.Run(db); err != nil {
		log.Error("store: migrations failed: %v", err)
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{
		db:      db,
		now:     time.Now,
		newHash: uuid.NewString,
	}, nil
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, empty for stores built with NewWithDB.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateAccount registers acct and credits it with initial in a genesis transaction.
func (s *Store) CreateAccount(ctx context.Context, acct domain.Account, initial domain.Amount) (domain.Transaction, error) {
	if initial < 0 {
		return domain.Transaction{}, fmt.Errorf("initial balance must not be negative")
	}

	var created domain.Transaction
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := liveAccount(ctx, tx, acct.Network, acct.ID); err == nil {
			return fmt.Errorf("account %q on %s: %w", acct.ID, acct.Network, domain.ErrAccountExists)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		var err error
		created, err = s.insertTransaction(ctx, tx, domain.Transaction{
			Network:  acct.Network,
			Kind:     domain.TxCreate,
			Receiver: acct.ID,
			Amount:   initial,
		})
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO accounts (network, id, display_name, created_height, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			acct.Network, acct.ID, acct.DisplayName, created.Height, formatTime(created.CreatedAt),
		)
		return err
	})
	if err != nil {
		log.Error("store: create account %s/%s failed: %v", acct.Network, acct.ID, err)
		return domain.Transaction{}, err
	}
	return created, nil
}

// Account returns a live account.
func (s *Store) Account(ctx context.Context, network, id string) (domain.Account, error) {
	return liveAccount(ctx, s.db, network, id)
}

// ListAccounts returns all live accounts on network ordered by id.
func (s *Store) ListAccounts(ctx context.Context, network string) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT network, id, display_name, created_height, created_at
		 FROM accounts
		 WHERE network = ? AND deleted_height IS NULL
		 ORDER BY id`,
		network,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAccount moves the remaining balance of id to beneficiary and marks id deleted.
func (s *Store) DeleteAccount(ctx context.Context, network, id, beneficiary string) (domain.Transaction, error) {
	if id == beneficiary {
		return domain.Transaction{}, fmt.Errorf("beneficiary must differ from the deleted account")
	}

	var deleted domain.Transaction
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := liveAccount(ctx, tx, network, id); err != nil {
			return err
		}
		if _, err := liveAccount(ctx, tx, network, beneficiary); err != nil {
			return err
		}

		height, err := currentHeight(ctx, tx, network)
		if err != nil {
			return err
		}
		remaining, err := balance(ctx, tx, network, id, height)
		if err != nil {
			return err
		}

		deleted, err = s.insertTransaction(ctx, tx, domain.Transaction{
			Network:  network,
			Kind:     domain.TxDelete,
			Signer:   id,
			Receiver: beneficiary,
			Amount:   remaining,
		})
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE accounts SET deleted_height = ?
			 WHERE network = ? AND id = ? AND deleted_height IS NULL`,
			deleted.Height, network, id,
		)
		return err
	})
	if err != nil {
		log.Error("store: delete account %s/%s failed: %v", network, id, err)
		return domain.Transaction{}, err
	}
	return deleted, nil
}

// Transfer debits t.Signer and credits t.Receiver in one transaction.
func (s *Store) Transfer(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	if t.Amount <= 0 {
		return domain.Transaction{}, fmt.Errorf("amount must be positive")
	}
	t.Kind = domain.TxTransfer

	var done domain.Transaction
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := liveAccount(ctx, tx, t.Network, t.Signer); err != nil {
			return err
		}
		if _, err := liveAccount(ctx, tx, t.Network, t.Receiver); err != nil {
			return err
		}

		height, err := currentHeight(ctx, tx, t.Network)
		if err != nil {
			return err
		}
		available, err := balance(ctx, tx, t.Network, t.Signer, height)
		if err != nil {
			return err
		}
		if available < t.Amount {
			return fmt.Errorf("%s has %s, needs %s: %w", t.Signer, available, t.Amount, domain.ErrInsufficientFunds)
		}

		done, err = s.insertTransaction(ctx, tx, t)
		return err
	})
	if err != nil {
		log.Warn("store: transfer %s -> %s on %s failed: %v", t.Signer, t.Receiver, t.Network, err)
		return domain.Transaction{}, err
	}
	return done, nil
}

// Transaction looks up a transaction by hash.
func (s *Store) Transaction(ctx context.Context, network, hash string) (domain.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT hash, network, height, kind, signer, receiver, amount, memo, created_at
		 FROM transactions WHERE network = ? AND hash = ?`,
		network, hash,
	)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Transaction{}, fmt.Errorf("transaction %s on %s: %w", hash, network, domain.ErrNotFound)
	}
	return t, err
}

// Height returns the latest block height on network.
func (s *Store) Height(ctx context.Context, network string) (int64, error) {
	return currentHeight(ctx, s.db, network)
}

// BalanceAt returns the balance of id as of height.
func (s *Store) BalanceAt(ctx context.Context, network, id string, height int64) (domain.Amount, error) {
	return balance(ctx, s.db, network, id, height)
}

// History returns up to limit transactions touching id at or below height, newest first.
func (s *Store) History(ctx context.Context, network, id string, height int64, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT hash, network, height, kind, signer, receiver, amount, memo, created_at
		 FROM transactions
		 WHERE network = ? AND height <= ? AND (signer = ? OR receiver = ?)
		 ORDER BY height DESC
		 LIMIT ?`,
		network, height, id, id, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) insertTransaction(ctx context.Context, q queryer, t domain.Transaction) (domain.Transaction, error) {
	height, err := currentHeight(ctx, q, t.Network)
	if err != nil {
		return domain.Transaction{}, err
	}

	t.Height = height + 1
	if t.Hash == "" {
		t.Hash = s.newHash()
	}
	t.CreatedAt = s.now().UTC()

	_, err = q.ExecContext(ctx,
		`INSERT INTO transactions
		 (hash, network, height, kind, signer, receiver, amount, memo, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Hash, t.Network, t.Height, string(t.Kind), t.Signer, t.Receiver,
		int64(t.Amount), t.Memo, formatTime(t.CreatedAt),
	)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

func liveAccount(ctx context.Context, q queryer, network, id string) (domain.Account, error) {
	row := q.QueryRowContext(ctx,
		`SELECT network, id, display_name, created_height, created_at
		 FROM accounts
		 WHERE network = ? AND id = ? AND deleted_height IS NULL`,
		network, id,
	)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, fmt.Errorf("account %q on %s: %w", id, network, domain.ErrNotFound)
	}
	return a, err
}

func currentHeight(ctx context.Context, q queryer, network string) (int64, error) {
	var height sql.NullInt64
	err := q.QueryRowContext(ctx,
		"SELECT MAX(height) FROM transactions WHERE network = ?", network,
	).Scan(&height)
	if err != nil {
		return 0, fmt.Errorf("get height: %w", err)
	}
	return height.Int64, nil
}

func balance(ctx context.Context, q queryer, network, id string, height int64) (domain.Amount, error) {
	var received, sent int64
	err := q.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN receiver = ? THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN signer = ? THEN amount ELSE 0 END), 0)
		 FROM transactions
		 WHERE network = ? AND height <= ? AND (receiver = ? OR signer = ?)`,
		id, id, network, height, id, id,
	).Scan(&received, &sent)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return domain.Amount(received - sent), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (domain.Account, error) {
	var (
		a  domain.Account
		ts string
	)
	if err := row.Scan(&a.Network, &a.ID, &a.DisplayName, &a.Height, &ts); err != nil {
		return domain.Account{}, err
	}
	t, err := parseTime(ts)
	if err != nil {
		return domain.Account{}, err
	}
	a.CreatedAt = t
	return a, nil
}

func scanTransaction(row scanner) (domain.Transaction, error) {
	var (
		t      domain.Transaction
		kind   string
		amount int64
		ts     string
	)
	if err := row.Scan(&t.Hash, &t.Network, &t.Height, &kind, &t.Signer, &t.Receiver, &amount, &t.Memo, &ts); err != nil {
		return domain.Transaction{}, err
	}
	created, err := parseTime(ts)
	if err != nil {
		return domain.Transaction{}, err
	}
	t.Kind = domain.TxKind(kind)
	t.Amount = domain.Amount(amount)
	t.CreatedAt = created
	return t, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Verify Store implements domain.Ledger
var _ domain.Ledger = (*Store)(nil)
