// Package desk runs ledger operations against a journal store: it loads
// the records an operation needs, calls the pure ledger function and saves
// the outcome in one store call.
package desk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/pooltrader/journal"
	"github.com/rustyeddy/pooltrader/ledger"
	"github.com/rustyeddy/pooltrader/pkg/id"
)

// Desk serves one request at a time against a store.
type Desk struct {
	store   journal.Store
	log     *slog.Logger
	now     func() time.Time
	tradeID func() string
}

// Option configures a Desk.
type Option func(*Desk)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Desk) { d.now = now }
}

// WithTradeIDs replaces the trade id generator.
func WithTradeIDs(next func() string) Option {
	return func(d *Desk) { d.tradeID = next }
}

// New returns a Desk over store. A nil logger discards log output.
func New(store journal.Store, logger *slog.Logger, opts ...Option) *Desk {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Desk{
		store:   store,
		log:     logger,
		now:     time.Now,
		tradeID: id.NewTrade,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CreateAccount validates and stores a new account.
func (d *Desk) CreateAccount(ctx context.Context, userID, name, email string, capital decimal.Decimal) (ledger.Account, error) {
	a, err := ledger.NewAccount(userID, name, email, capital)
	if err != nil {
		return ledger.Account{}, err
	}

	existing, err := d.store.ListAccounts(ctx)
	if err != nil {
		return ledger.Account{}, err
	}
	for _, e := range existing {
		if e.ID == a.ID {
			return ledger.Account{}, &ledger.ValidationError{Field: "user_id", Reason: "user id already exists"}
		}
		if strings.EqualFold(e.Email, a.Email) {
			return ledger.Account{}, &ledger.ValidationError{Field: "email", Reason: "email already exists"}
		}
	}

	if err := d.store.CreateAccount(ctx, a); err != nil {
		if errors.Is(err, journal.ErrDuplicate) {
			return ledger.Account{}, &ledger.ValidationError{Field: "user_id", Reason: err.Error()}
		}
		return ledger.Account{}, err
	}
	d.log.Info("account created", "user_id", a.ID, "capital", a.Capital.StringFixed(2))
	return a, nil
}

// Accounts lists every account.
func (d *Desk) Accounts(ctx context.Context) ([]ledger.Account, error) {
	return d.store.ListAccounts(ctx)
}

// Account returns one account.
func (d *Desk) Account(ctx context.Context, userID string) (ledger.Account, error) {
	return d.store.GetAccount(ctx, userID)
}

// Deposit adds capital to an account. Open trades keep the capital they
// recorded at entry.
func (d *Desk) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (ledger.Account, error) {
	return d.adjustCapital(ctx, userID, amount, ledger.Deposit, "deposit")
}

// Withdraw removes capital from an account.
func (d *Desk) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (ledger.Account, error) {
	return d.adjustCapital(ctx, userID, amount, ledger.Withdraw, "withdraw")
}

func (d *Desk) adjustCapital(ctx context.Context, userID string, amount decimal.Decimal,
	apply func(ledger.Account, decimal.Decimal) (ledger.Account, error), op string) (ledger.Account, error) {
	a, err := d.store.GetAccount(ctx, userID)
	if err != nil {
		return ledger.Account{}, err
	}
	a, err = apply(a, amount)
	if err != nil {
		return ledger.Account{}, err
	}
	if err := d.store.UpdateAccount(ctx, a); err != nil {
		return ledger.Account{}, err
	}
	d.log.Info("capital "+op, "user_id", a.ID, "amount", amount.StringFixed(2), "capital", a.Capital.StringFixed(2))
	return a, nil
}

// DeleteAccount removes an account that no trade or history record names.
func (d *Desk) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := d.store.GetAccount(ctx, userID); err != nil {
		return err
	}
	trades, err := d.store.ListTrades(ctx, "")
	if err != nil {
		return err
	}
	history, err := d.store.ListHistory(ctx, "")
	if err != nil {
		return err
	}
	if refs := ledger.Referenced(userID, trades, history); refs.Any() {
		return &ledger.ValidationError{Field: "user_id", Reason: fmt.Sprintf(
			"account %s is linked to %d open trades, %d closed trades and %d history records; delete those trades first",
			userID, refs.OpenTrades, refs.ClosedTrades, refs.History)}
	}
	if err := d.store.DeleteAccount(ctx, userID); err != nil {
		return err
	}
	d.log.Info("account deleted", "user_id", userID)
	return nil
}
