// Package journal persists accounts, trades and exit history in SQLite.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/pooltrader/ledger"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a record with the same key already exists.
	ErrDuplicate = errors.New("already exists")
)

// PersistenceError wraps a storage failure. The operation was not applied
// and may be retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store is the storage the rest of the application needs.
type Store interface {
	CreateAccount(ctx context.Context, a ledger.Account) error
	UpdateAccount(ctx context.Context, a ledger.Account) error
	GetAccount(ctx context.Context, id string) (ledger.Account, error)
	ListAccounts(ctx context.Context) ([]ledger.Account, error)
	DeleteAccount(ctx context.Context, id string) error

	SaveTrade(ctx context.Context, t ledger.Trade) error
	GetTrade(ctx context.Context, id string) (ledger.Trade, error)
	ListTrades(ctx context.Context, status ledger.Status) ([]ledger.Trade, error)

	ListHistory(ctx context.Context, tradeID string) ([]ledger.HistoryRecord, error)
	ListHistoryBetween(ctx context.Context, start, end time.Time) ([]ledger.HistoryRecord, error)

	ApplyExit(ctx context.Context, res ledger.ExitResult) (ledger.HistoryRecord, error)
	ApplyDeletion(ctx context.Context, report ledger.DeletionReport) error

	Close() error
}

// fail classifies err for op. Lookup and key errors pass through, anything
// else is a PersistenceError.
func fail(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) || ledger.IsValidation(err) {
		return err
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
