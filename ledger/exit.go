package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExitResult is everything an exit changes. The caller must persist all
// of it in a single transaction.
type ExitResult struct {
	Trade   Trade
	Record  HistoryRecord
	Updates []AccountUpdate
}

// Closed reports whether the exit closed the trade.
func (r ExitResult) Closed() bool { return r.Trade.Status == StatusClosed }

// ExitTrade sells qty of an open trade at price. Realized profit is
// (price - avg) * qty - fee, rounded to cents, and is split by the
// capital recorded at entry.
func ExitTrade(t Trade, qty, price, fee decimal.Decimal, at time.Time) (ExitResult, error) {
	if !t.Open() {
		return ExitResult{}, invalid("status", "trade %s is already %s", t.ID, t.Status)
	}
	if !qty.IsPositive() {
		return ExitResult{}, invalid("qty", "exit quantity must be positive, got %s", qty)
	}
	if qty.GreaterThan(t.Qty) {
		return ExitResult{}, invalid("qty", "exit quantity %s exceeds remaining %s", qty, t.Qty)
	}
	if !price.IsPositive() {
		return ExitResult{}, invalid("price", "exit price must be positive, got %s", price)
	}
	if fee.IsNegative() {
		return ExitResult{}, invalid("fee", "fee cannot be negative, got %s", fee)
	}

	profit := RealizedProfit(t.AvgPrice, price, qty, fee)
	breakdown, err := Distribute(profit, t.Participants)
	if err != nil {
		return ExitResult{}, err
	}

	out := t.Clone()
	if qty.Equal(t.Qty) {
		out.Qty = decimal.Zero
		out.Status = StatusClosed
	} else {
		out.Qty = t.Qty.Sub(qty)
	}
	out.TotalFees = t.TotalFees.Add(fee)

	updates := make([]AccountUpdate, len(breakdown))
	for i, a := range breakdown {
		updates[i] = AccountUpdate{AccountID: a.AccountID, Delta: a.Amount}
	}

	return ExitResult{
		Trade: out,
		Record: HistoryRecord{
			TradeID:    t.ID,
			Symbol:     t.Symbol,
			EntryPrice: t.AvgPrice,
			ExitPrice:  price,
			Qty:        qty,
			ProfitLoss: profit,
			Fee:        fee,
			Timestamp:  at,
			Breakdown:  breakdown,
		},
		Updates: updates,
	}, nil
}

// RealizedProfit is (exit - entry) * qty - fee rounded to cents.
func RealizedProfit(entry, exit, qty, fee decimal.Decimal) decimal.Decimal {
	return exit.Sub(entry).Mul(qty).Sub(fee).Round(2)
}
