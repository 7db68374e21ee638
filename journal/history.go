package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rustyeddy/pooltrader/ledger"
)

const historyColumns = `id, trade_id, symbol, entry_price, exit_price, qty, profit_loss, fee, timestamp, breakdown_json`

// ListHistory returns the exit history of one trade, or of every trade when
// tradeID is empty, in exit order.
func (j *SQLite) ListHistory(ctx context.Context, tradeID string) ([]ledger.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM trade_history`
	var args []any
	if tradeID != "" {
		query += ` WHERE trade_id = ?`
		args = append(args, tradeID)
	}
	query += ` ORDER BY timestamp ASC, id ASC`
	return j.queryHistory(ctx, query, args...)
}

// ListHistoryBetween returns exits whose timestamp is within [start, end).
func (j *SQLite) ListHistoryBetween(ctx context.Context, start, end time.Time) ([]ledger.HistoryRecord, error) {
	return j.queryHistory(ctx, `
		SELECT `+historyColumns+`
		FROM trade_history
		WHERE timestamp >= ? AND timestamp < ?
		ORDER BY timestamp ASC, id ASC`, start.UTC(), end.UTC())
}

func (j *SQLite) queryHistory(ctx context.Context, query string, args ...any) ([]ledger.HistoryRecord, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fail("list history", err)
	}
	defer rows.Close()

	var out []ledger.HistoryRecord
	for rows.Next() {
		var (
			rec       ledger.HistoryRecord
			breakdown string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.TradeID,
			&rec.Symbol,
			&rec.EntryPrice,
			&rec.ExitPrice,
			&rec.Qty,
			&rec.ProfitLoss,
			&rec.Fee,
			&rec.Timestamp,
			&breakdown,
		); err != nil {
			return nil, fail("list history", err)
		}
		if err := json.Unmarshal([]byte(breakdown), &rec.Breakdown); err != nil {
			return nil, fail("list history", fmt.Errorf("history %d breakdown: %w", rec.ID, err))
		}
		out = append(out, rec)
	}
	return out, fail("list history", rows.Err())
}

func insertHistory(ctx context.Context, tx execer, rec ledger.HistoryRecord) (int64, error) {
	breakdown, err := json.Marshal(rec.Breakdown)
	if err != nil {
		return 0, fmt.Errorf("encode breakdown: %w", err)
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO trade_history
		(trade_id, symbol, entry_price, exit_price, qty, profit_loss, fee, timestamp, breakdown_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.TradeID, rec.Symbol, rec.EntryPrice, rec.ExitPrice, rec.Qty,
		rec.ProfitLoss, rec.Fee, rec.Timestamp.UTC(), string(breakdown),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
