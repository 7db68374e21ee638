package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/pooltrader/ledger"
)

// SQLite is a Store backed by a single SQLite connection.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (or creates) the database at path and applies Schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &PersistenceError{Op: "open database", Err: err}
	}
	// one writer per process; transactions are serialized
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, &PersistenceError{Op: "create schema", Err: err}
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (j *SQLite) Close() error {
	return j.db.Close()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// inTx runs fn in a transaction that is committed only if fn succeeds.
func (j *SQLite) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fail(op, err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return &PersistenceError{Op: op, Err: errors.Join(err, rerr)}
		}
		return fail(op, err)
	}
	if err := tx.Commit(); err != nil {
		return fail(op, err)
	}
	return nil
}

func isConstraint(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.Code == sqlite3.ErrConstraint
}

func mustAffect(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// addProfit applies an account update inside tx.
func addProfit(ctx context.Context, tx execer, u ledger.AccountUpdate) error {
	a, err := getAccount(ctx, tx, u.AccountID)
	if err != nil {
		return err
	}
	a = ledger.ApplyUpdate(a, u)
	res, err := tx.ExecContext(ctx, `UPDATE accounts SET profit = ? WHERE user_id = ?`, a.Profit, a.ID)
	if err != nil {
		return err
	}
	return mustAffect(res, fmt.Sprintf("account %q", a.ID))
}

// ApplyExit stores the history record, the updated trade and every account
// profit change of an exit in one transaction. The returned record carries
// its assigned ID.
func (j *SQLite) ApplyExit(ctx context.Context, res ledger.ExitResult) (ledger.HistoryRecord, error) {
	rec := res.Record
	err := j.inTx(ctx, "apply exit", func(tx *sql.Tx) error {
		id, err := insertHistory(ctx, tx, rec)
		if err != nil {
			return err
		}
		rec.ID = id

		if err := updateTrade(ctx, tx, res.Trade); err != nil {
			return err
		}
		for _, u := range res.Updates {
			if err := addProfit(ctx, tx, u); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ledger.HistoryRecord{}, err
	}
	return rec, nil
}

// ApplyDeletion removes the trade and the history listed in report and
// applies its profit reversals, all in one transaction. It fails if the
// trade still has history the report did not account for.
func (j *SQLite) ApplyDeletion(ctx context.Context, report ledger.DeletionReport) error {
	return j.inTx(ctx, "delete trade", func(tx *sql.Tx) error {
		for _, hid := range report.RemovedHistory {
			res, err := tx.ExecContext(ctx,
				`DELETE FROM trade_history WHERE id = ? AND trade_id = ?`, hid, report.TradeID)
			if err != nil {
				return err
			}
			if err := mustAffect(res, fmt.Sprintf("history %d", hid)); err != nil {
				return err
			}
		}

		var left int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM trade_history WHERE trade_id = ?`, report.TradeID).Scan(&left); err != nil {
			return err
		}
		if left > 0 {
			return fmt.Errorf("trade %q has %d history records not covered by the deletion", report.TradeID, left)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM trades WHERE trade_id = ?`, report.TradeID)
		if err != nil {
			return err
		}
		if err := mustAffect(res, fmt.Sprintf("trade %q", report.TradeID)); err != nil {
			return err
		}

		for _, u := range report.Reversals {
			if err := addProfit(ctx, tx, u); err != nil {
				return err
			}
		}
		return nil
	})
}
