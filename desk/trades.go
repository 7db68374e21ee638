package desk

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/pooltrader/ledger"
)

// OpenTrade creates a trade for the selected accounts.
func (d *Desk) OpenTrade(ctx context.Context, req ledger.OpenRequest) (ledger.Trade, error) {
	accounts, err := d.store.ListAccounts(ctx)
	if err != nil {
		return ledger.Trade{}, err
	}
	if req.OpenedAt.IsZero() {
		req.OpenedAt = d.now()
	}

	t, err := ledger.OpenTrade(d.tradeID(), req, accounts)
	if err != nil {
		return ledger.Trade{}, err
	}
	if err := d.store.SaveTrade(ctx, t); err != nil {
		return ledger.Trade{}, err
	}
	d.log.Info("trade opened",
		"trade_id", t.ID, "symbol", t.Symbol,
		"qty", t.Qty.String(), "price", t.AvgPrice.StringFixed(2),
		"accounts", len(t.Participants))
	return t, nil
}

// AddFill averages a new fill into an open trade.
func (d *Desk) AddFill(ctx context.Context, tradeID string, qty, price, fee decimal.Decimal) (ledger.Trade, error) {
	t, err := d.store.GetTrade(ctx, tradeID)
	if err != nil {
		return ledger.Trade{}, err
	}
	t, err = ledger.ApplyFillWithFee(t, qty, price, fee)
	if err != nil {
		return ledger.Trade{}, err
	}
	if err := d.store.SaveTrade(ctx, t); err != nil {
		return ledger.Trade{}, err
	}
	d.log.Info("fill added",
		"trade_id", t.ID, "qty", qty.String(), "price", price.StringFixed(2),
		"total_qty", t.Qty.String(), "avg_price", t.AvgPrice.StringFixed(2))
	return t, nil
}

// PreviewExit computes an exit without saving it.
func (d *Desk) PreviewExit(ctx context.Context, tradeID string, qty, price, fee decimal.Decimal) (ledger.ExitResult, error) {
	t, err := d.store.GetTrade(ctx, tradeID)
	if err != nil {
		return ledger.ExitResult{}, err
	}
	return ledger.ExitTrade(t, qty, price, fee, d.now())
}

// ExitTrade exits qty of a trade and distributes the realized profit.
// History, trade and account changes are saved atomically.
func (d *Desk) ExitTrade(ctx context.Context, tradeID string, qty, price, fee decimal.Decimal) (ledger.ExitResult, error) {
	res, err := d.PreviewExit(ctx, tradeID, qty, price, fee)
	if err != nil {
		return ledger.ExitResult{}, err
	}
	rec, err := d.store.ApplyExit(ctx, res)
	if err != nil {
		d.log.Error("exit not applied", "trade_id", tradeID, "err", err)
		return ledger.ExitResult{}, err
	}
	res.Record = rec
	d.log.Info("trade exited",
		"trade_id", tradeID, "qty", qty.String(), "price", price.StringFixed(2),
		"profit_loss", rec.ProfitLoss.StringFixed(2), "closed", res.Closed())
	return res, nil
}

// DeleteTrade removes a trade. A trade with exit history is only deleted
// when cascade is set, in which case its history is removed and the profit
// it distributed is reversed.
func (d *Desk) DeleteTrade(ctx context.Context, tradeID string, cascade bool) (ledger.DeletionReport, error) {
	t, err := d.store.GetTrade(ctx, tradeID)
	if err != nil {
		return ledger.DeletionReport{}, err
	}
	history, err := d.store.ListHistory(ctx, tradeID)
	if err != nil {
		return ledger.DeletionReport{}, err
	}
	report, err := ledger.PlanDeletion(t, history, cascade)
	if err != nil {
		return ledger.DeletionReport{}, err
	}
	if err := d.store.ApplyDeletion(ctx, report); err != nil {
		d.log.Error("trade not deleted", "trade_id", tradeID, "err", err)
		return ledger.DeletionReport{}, err
	}
	d.log.Warn("trade deleted",
		"trade_id", tradeID, "was_open", report.WasOpen,
		"history_removed", len(report.RemovedHistory), "reversals", len(report.Reversals))
	return report, nil
}

// Trade returns one trade.
func (d *Desk) Trade(ctx context.Context, tradeID string) (ledger.Trade, error) {
	return d.store.GetTrade(ctx, tradeID)
}

// Trades lists trades with status, or all trades when status is empty.
func (d *Desk) Trades(ctx context.Context, status ledger.Status) ([]ledger.Trade, error) {
	return d.store.ListTrades(ctx, status)
}

// History lists exit history, optionally for a single trade.
func (d *Desk) History(ctx context.Context, tradeID string) ([]ledger.HistoryRecord, error) {
	return d.store.ListHistory(ctx, tradeID)
}

// HistoryBetween lists exits within [start, end).
func (d *Desk) HistoryBetween(ctx context.Context, start, end time.Time) ([]ledger.HistoryRecord, error) {
	return d.store.ListHistoryBetween(ctx, start, end)
}

// Summary aggregates the whole pool.
func (d *Desk) Summary(ctx context.Context) (ledger.Summary, error) {
	accounts, err := d.store.ListAccounts(ctx)
	if err != nil {
		return ledger.Summary{}, err
	}
	trades, err := d.store.ListTrades(ctx, "")
	if err != nil {
		return ledger.Summary{}, err
	}
	history, err := d.store.ListHistory(ctx, "")
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Summarize(accounts, trades, history), nil
}
