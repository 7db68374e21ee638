package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rustyeddy/pooltrader/ledger"
)

const accountColumns = `user_id, name, email, capital, profit`

// CreateAccount inserts a new account. It fails with ErrDuplicate when the
// user id or email is already taken.
func (j *SQLite) CreateAccount(ctx context.Context, a ledger.Account) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Email, a.Capital, a.Profit,
	)
	if isConstraint(err) {
		return fmt.Errorf("account %q: %w", a.ID, ErrDuplicate)
	}
	return fail("create account", err)
}

// UpdateAccount overwrites an existing account.
func (j *SQLite) UpdateAccount(ctx context.Context, a ledger.Account) error {
	res, err := j.db.ExecContext(ctx, `
		UPDATE accounts SET name = ?, email = ?, capital = ?, profit = ?
		WHERE user_id = ?`,
		a.Name, a.Email, a.Capital, a.Profit, a.ID,
	)
	if isConstraint(err) {
		return fmt.Errorf("email %q: %w", a.Email, ErrDuplicate)
	}
	if err != nil {
		return fail("update account", err)
	}
	return fail("update account", mustAffect(res, fmt.Sprintf("account %q", a.ID)))
}

// GetAccount returns a single account by user id.
func (j *SQLite) GetAccount(ctx context.Context, id string) (ledger.Account, error) {
	a, err := getAccount(ctx, j.db, id)
	return a, fail("get account", err)
}

// ListAccounts returns every account ordered by user id.
func (j *SQLite) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY user_id`)
	if err != nil {
		return nil, fail("list accounts", err)
	}
	defer rows.Close()

	var out []ledger.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fail("list accounts", err)
		}
		out = append(out, a)
	}
	return out, fail("list accounts", rows.Err())
}

// DeleteAccount removes an account.
func (j *SQLite) DeleteAccount(ctx context.Context, id string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM accounts WHERE user_id = ?`, id)
	if err != nil {
		return fail("delete account", err)
	}
	return fail("delete account", mustAffect(res, fmt.Sprintf("account %q", id)))
}

func getAccount(ctx context.Context, q execer, id string) (ledger.Account, error) {
	row := q.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = ?`, id)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Account{}, fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	return a, err
}

func scanAccount(s scanner) (ledger.Account, error) {
	var a ledger.Account
	err := s.Scan(&a.ID, &a.Name, &a.Email, &a.Capital, &a.Profit)
	return a, err
}
