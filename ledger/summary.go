package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AccountShare is an account's slice of the whole pool.
type AccountShare struct {
	AccountID string          `json:"user_id"`
	Name      string          `json:"name"`
	Capital   decimal.Decimal `json:"capital"`
	Profit    decimal.Decimal `json:"profit"`
	SharePct  decimal.Decimal `json:"share_pct"`
}

// Summary is the pool overview shown on the dashboard.
type Summary struct {
	TotalCapital       decimal.Decimal `json:"total_capital"`
	TotalProfit        decimal.Decimal `json:"total_profit"`
	ROIPct             decimal.Decimal `json:"roi_pct"`
	Accounts           int             `json:"accounts"`
	ProfitableAccounts int             `json:"profitable_accounts"`
	OpenTrades         int             `json:"open_trades"`
	ClosedTrades       int             `json:"closed_trades"`
	Exits              int             `json:"exits"`
	WinningExits       int             `json:"winning_exits"`
	WinRatePct         decimal.Decimal `json:"win_rate_pct"`
	AvgProfitLoss      decimal.Decimal `json:"avg_profit_loss"`
	Shares             []AccountShare  `json:"shares"`
}

var hundred = decimal.NewFromInt(100)

// Summarize aggregates accounts, trades and exit history.
func Summarize(accounts []Account, trades []Trade, history []HistoryRecord) Summary {
	var s Summary
	s.Accounts = len(accounts)

	for _, a := range accounts {
		s.TotalCapital = s.TotalCapital.Add(a.Capital)
		s.TotalProfit = s.TotalProfit.Add(a.Profit)
		if a.Profit.IsPositive() {
			s.ProfitableAccounts++
		}
	}
	if s.TotalCapital.IsPositive() {
		s.ROIPct = s.TotalProfit.Div(s.TotalCapital).Mul(hundred).Round(2)
	}

	for _, a := range accounts {
		share := AccountShare{
			AccountID: a.ID,
			Name:      a.Name,
			Capital:   a.Capital,
			Profit:    a.Profit,
		}
		if s.TotalCapital.IsPositive() {
			share.SharePct = a.Capital.Div(s.TotalCapital).Mul(hundred).Round(2)
		}
		s.Shares = append(s.Shares, share)
	}
	sort.Slice(s.Shares, func(i, j int) bool { return s.Shares[i].AccountID < s.Shares[j].AccountID })

	for _, t := range trades {
		if t.Open() {
			s.OpenTrades++
		} else {
			s.ClosedTrades++
		}
	}

	total := decimal.Zero
	for _, h := range history {
		s.Exits++
		total = total.Add(h.ProfitLoss)
		if h.ProfitLoss.IsPositive() {
			s.WinningExits++
		}
	}
	if s.Exits > 0 {
		n := decimal.NewFromInt(int64(s.Exits))
		s.AvgProfitLoss = total.Div(n).Round(2)
		s.WinRatePct = decimal.NewFromInt(int64(s.WinningExits)).Div(n).Mul(hundred).Round(2)
	}
	return s
}
