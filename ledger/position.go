package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OpenRequest describes the first fill of a new pooled trade.
type OpenRequest struct {
	Symbol     string
	Strategy   string
	Qty        decimal.Decimal
	Price      decimal.Decimal
	Fee        decimal.Decimal
	AccountIDs []string
	OpenedAt   time.Time
}

// OpenTrade creates an open trade with id. The capital of each selected
// account is copied into the trade so that later capital edits do not
// change how this trade's profit is split.
func OpenTrade(id string, req OpenRequest, accounts []Account) (Trade, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	switch {
	case id == "":
		return Trade{}, invalid("trade_id", "trade id is required")
	case symbol == "":
		return Trade{}, invalid("symbol", "symbol is required")
	case strings.TrimSpace(req.Strategy) == "":
		return Trade{}, invalid("strategy", "strategy name is required")
	}
	if err := checkFill(req.Qty, req.Price, req.Fee); err != nil {
		return Trade{}, err
	}
	if len(req.AccountIDs) == 0 {
		return Trade{}, invalid("accounts", "at least one account must be selected")
	}

	byID := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	participants := make([]Participant, 0, len(req.AccountIDs))
	for _, aid := range req.AccountIDs {
		a, ok := byID[aid]
		if !ok {
			return Trade{}, invalid("accounts", "unknown account %q", aid)
		}
		participants = append(participants, Participant{AccountID: a.ID, Capital: a.Capital})
	}
	ps, err := sortedParticipants(participants)
	if err != nil {
		return Trade{}, err
	}

	return Trade{
		ID:           id,
		Symbol:       symbol,
		Qty:          req.Qty,
		AvgPrice:     req.Price,
		Strategy:     strings.TrimSpace(req.Strategy),
		Status:       StatusOpen,
		Participants: ps,
		TotalFees:    req.Fee,
		OpenedAt:     req.OpenedAt,
		Fills:        []Fill{{Qty: req.Qty, Price: req.Price}},
	}, nil
}

// AveragePrice returns the combined quantity and quantity weighted mean
// price of an existing position and a new fill.
func AveragePrice(qty, avg, fillQty, fillPrice decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	total := qty.Add(fillQty)
	cost := qty.Mul(avg).Add(fillQty.Mul(fillPrice))
	return total, cost.Div(total)
}

// ApplyFill adds a fill to an open trade. No history is written for fills.
func ApplyFill(t Trade, qty, price decimal.Decimal) (Trade, error) {
	return ApplyFillWithFee(t, qty, price, decimal.Zero)
}

// ApplyFillWithFee is ApplyFill that also books the fill's fee.
func ApplyFillWithFee(t Trade, qty, price, fee decimal.Decimal) (Trade, error) {
	if !t.Open() {
		return Trade{}, invalid("status", "trade %s is %s", t.ID, t.Status)
	}
	if err := checkFill(qty, price, fee); err != nil {
		return Trade{}, err
	}

	out := t.Clone()
	out.Qty, out.AvgPrice = AveragePrice(t.Qty, t.AvgPrice, qty, price)
	out.TotalFees = t.TotalFees.Add(fee)
	out.Fills = append(out.Fills, Fill{Qty: qty, Price: price})
	return out, nil
}

func checkFill(qty, price, fee decimal.Decimal) error {
	if !qty.IsPositive() {
		return invalid("qty", "quantity must be positive, got %s", qty)
	}
	if !price.IsPositive() {
		return invalid("price", "price must be positive, got %s", price)
	}
	if fee.IsNegative() {
		return invalid("fee", "fee cannot be negative, got %s", fee)
	}
	return nil
}
