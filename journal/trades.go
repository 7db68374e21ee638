package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rustyeddy/pooltrader/ledger"
)

const tradeColumns = `trade_id, symbol, qty, avg_price, strategy, accounts_json, status, total_fees, opened_at, fills_json`

// SaveTrade inserts a trade or replaces the stored copy.
func (j *SQLite) SaveTrade(ctx context.Context, t ledger.Trade) error {
	participants, fills, err := encodeTrade(t)
	if err != nil {
		return fail("save trade", err)
	}
	_, err = j.db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (trade_id) DO UPDATE SET
			symbol = excluded.symbol,
			qty = excluded.qty,
			avg_price = excluded.avg_price,
			strategy = excluded.strategy,
			accounts_json = excluded.accounts_json,
			status = excluded.status,
			total_fees = excluded.total_fees,
			opened_at = excluded.opened_at,
			fills_json = excluded.fills_json`,
		t.ID, t.Symbol, t.Qty, t.AvgPrice, t.Strategy, participants,
		string(t.Status), t.TotalFees, t.OpenedAt.UTC(), fills,
	)
	return fail("save trade", err)
}

// GetTrade returns a single trade by ID.
func (j *SQLite) GetTrade(ctx context.Context, id string) (ledger.Trade, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE trade_id = ?`, id)
	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Trade{}, fmt.Errorf("trade %q: %w", id, ErrNotFound)
	}
	return t, fail("get trade", err)
}

// ListTrades returns trades with the given status, or all trades when
// status is empty, oldest first.
func (j *SQLite) ListTrades(ctx context.Context, status ledger.Status) ([]ledger.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY opened_at ASC, trade_id ASC`

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fail("list trades", err)
	}
	defer rows.Close()

	var out []ledger.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fail("list trades", err)
		}
		out = append(out, t)
	}
	return out, fail("list trades", rows.Err())
}

func updateTrade(ctx context.Context, tx execer, t ledger.Trade) error {
	participants, fills, err := encodeTrade(t)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `
		UPDATE trades SET qty = ?, avg_price = ?, accounts_json = ?, status = ?, total_fees = ?, fills_json = ?
		WHERE trade_id = ?`,
		t.Qty, t.AvgPrice, participants, string(t.Status), t.TotalFees, fills, t.ID,
	)
	if err != nil {
		return err
	}
	return mustAffect(res, fmt.Sprintf("trade %q", t.ID))
}

func encodeTrade(t ledger.Trade) (string, string, error) {
	participants, err := json.Marshal(t.Participants)
	if err != nil {
		return "", "", fmt.Errorf("encode accounts: %w", err)
	}
	fills := t.Fills
	if fills == nil {
		fills = []ledger.Fill{}
	}
	fj, err := json.Marshal(fills)
	if err != nil {
		return "", "", fmt.Errorf("encode fills: %w", err)
	}
	return string(participants), string(fj), nil
}

func scanTrade(s scanner) (ledger.Trade, error) {
	var (
		t            ledger.Trade
		participants string
		status       string
		fills        string
	)
	err := s.Scan(&t.ID, &t.Symbol, &t.Qty, &t.AvgPrice, &t.Strategy,
		&participants, &status, &t.TotalFees, &t.OpenedAt, &fills)
	if err != nil {
		return ledger.Trade{}, err
	}
	if t.Status, err = ledger.ParseStatus(status); err != nil {
		return ledger.Trade{}, fmt.Errorf("trade %q: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(participants), &t.Participants); err != nil {
		return ledger.Trade{}, fmt.Errorf("trade %q accounts: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(fills), &t.Fills); err != nil {
		return ledger.Trade{}, fmt.Errorf("trade %q fills: %w", t.ID, err)
	}
	return t, nil
}
