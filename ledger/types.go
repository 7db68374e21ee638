// Package ledger holds the bookkeeping for pooled trading accounts:
// capital shares, position averaging, exits and deletions.
//
// Every operation takes record values and returns updated copies. Nothing
// here touches storage; persisting the result is the caller's job.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status of a trade.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// ParseStatus converts a stored or user supplied status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusClosed:
		return Status(s), nil
	}
	return "", invalid("status", "unknown status %q", s)
}

// Account is a member of the capital pool.
type Account struct {
	ID      string          `json:"user_id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Capital decimal.Decimal `json:"capital"`
	Profit  decimal.Decimal `json:"profit"`
}

// Participant is an account taking part in a trade together with the
// capital it had when the trade was opened.
type Participant struct {
	AccountID string          `json:"account_id"`
	Capital   decimal.Decimal `json:"capital"`
}

// Fill is one entry execution of a trade.
type Fill struct {
	Qty   decimal.Decimal `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

// Trade is a pooled position.
type Trade struct {
	ID           string          `json:"trade_id"`
	Symbol       string          `json:"symbol"`
	Qty          decimal.Decimal `json:"qty"`
	AvgPrice     decimal.Decimal `json:"avg_price"`
	Strategy     string          `json:"strategy"`
	Status       Status          `json:"status"`
	Participants []Participant   `json:"accounts"`
	TotalFees    decimal.Decimal `json:"total_fees"`
	OpenedAt     time.Time       `json:"opened_at"`
	Fills        []Fill          `json:"fills"`
}

// Open reports whether the trade can still be filled or exited.
func (t Trade) Open() bool { return t.Status == StatusOpen }

// Clone returns a copy that shares no slices with t.
func (t Trade) Clone() Trade {
	out := t
	out.Participants = append([]Participant(nil), t.Participants...)
	out.Fills = append([]Fill(nil), t.Fills...)
	return out
}

// Allocation is one account's part of a realized profit or loss.
type Allocation struct {
	AccountID string          `json:"account_id"`
	Share     decimal.Decimal `json:"share"`
	Amount    decimal.Decimal `json:"amount"`
}

// HistoryRecord is the immutable snapshot written for every exit.
type HistoryRecord struct {
	ID         int64           `json:"id"`
	TradeID    string          `json:"trade_id"`
	Symbol     string          `json:"symbol"`
	EntryPrice decimal.Decimal `json:"entry_price"`
	ExitPrice  decimal.Decimal `json:"exit_price"`
	Qty        decimal.Decimal `json:"qty"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`
	Fee        decimal.Decimal `json:"fee"`
	Timestamp  time.Time       `json:"timestamp"`
	Breakdown  []Allocation    `json:"breakdown"`
}

// AccountUpdate is a change to apply to an account's profit.
type AccountUpdate struct {
	AccountID string          `json:"account_id"`
	Delta     decimal.Decimal `json:"delta"`
}
