package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/pooltrader/ledger"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	profitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	colored = true
)

func setColor(on bool) { colored = on }

func paint(style lipgloss.Style, s string) string {
	if !colored {
		return s
	}
	return style.Render(s)
}

func okMark() string { return paint(profitStyle, "✓") }

func currency() string {
	if cfg == nil {
		return "INR"
	}
	return cfg.Display.Currency
}

func money(v decimal.Decimal) string {
	return ledger.FormatMoney(v, currency())
}

// pnl formats a profit or loss, green when positive and red when negative.
func pnl(v decimal.Decimal) string {
	s := money(v)
	switch v.Sign() {
	case 1:
		return paint(profitStyle, "+"+s)
	case -1:
		return paint(lossStyle, s)
	}
	return s
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, paint(mutedStyle, "(none)"))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow && colored {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

func printAccounts(w io.Writer, accounts []ledger.Account) {
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{a.ID, a.Name, a.Email, money(a.Capital), pnl(a.Profit)})
	}
	renderTable(w, []string{"User", "Name", "Email", "Capital", "Profit"}, rows)
}

func participantIDs(t ledger.Trade) string {
	ids := make([]string, len(t.Participants))
	for i, p := range t.Participants {
		ids[i] = p.AccountID
	}
	return strings.Join(ids, ",")
}

func printTrades(w io.Writer, trades []ledger.Trade) {
	rows := make([][]string, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, []string{
			t.ID, t.Symbol, t.Strategy, string(t.Status),
			t.Qty.String(), money(t.AvgPrice), money(t.TotalFees),
			participantIDs(t), t.OpenedAt.Format(time.DateOnly),
		})
	}
	renderTable(w, []string{"Trade", "Symbol", "Strategy", "Status", "Qty", "Avg", "Fees", "Accounts", "Opened"}, rows)
}

func printTrade(w io.Writer, t ledger.Trade) {
	fmt.Fprintln(w, paint(titleStyle, t.ID+" "+t.Symbol))
	fmt.Fprintf(w, "  Strategy: %s\n", t.Strategy)
	fmt.Fprintf(w, "  Status:   %s\n", t.Status)
	fmt.Fprintf(w, "  Qty:      %s @ %s\n", t.Qty, money(t.AvgPrice))
	fmt.Fprintf(w, "  Fees:     %s\n", money(t.TotalFees))
	fmt.Fprintf(w, "  Opened:   %s\n", t.OpenedAt.Format(time.DateOnly))

	fills := make([]string, len(t.Fills))
	for i, f := range t.Fills {
		fills[i] = f.Qty.String() + "@" + f.Price.StringFixed(2)
	}
	fmt.Fprintf(w, "  Fills:    %s\n", strings.Join(fills, "; "))
	for _, p := range t.Participants {
		fmt.Fprintf(w, "  - %s capital at entry %s\n", p.AccountID, money(p.Capital))
	}
}

func printExit(w io.Writer, res ledger.ExitResult, preview bool) {
	title := "Exit"
	if preview {
		title = "Exit preview (not saved)"
	}
	r := res.Record
	fmt.Fprintln(w, paint(titleStyle, title+": "+r.TradeID+" "+r.Symbol))
	fmt.Fprintf(w, "  Qty:    %s\n", r.Qty)
	fmt.Fprintf(w, "  Entry:  %s\n", money(r.EntryPrice))
	fmt.Fprintf(w, "  Exit:   %s\n", money(r.ExitPrice))
	fmt.Fprintf(w, "  Fee:    %s\n", money(r.Fee))
	fmt.Fprintf(w, "  P/L:    %s\n", pnl(r.ProfitLoss))

	rows := make([][]string, 0, len(r.Breakdown))
	for _, a := range r.Breakdown {
		rows = append(rows, []string{a.AccountID, a.Share.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%", pnl(a.Amount)})
	}
	renderTable(w, []string{"User", "Share", "Amount"}, rows)

	if res.Closed() {
		fmt.Fprintln(w, "  Trade closed")
	} else {
		fmt.Fprintf(w, "  Remaining: %s\n", res.Trade.Qty)
	}
}

func printDeletion(w io.Writer, report ledger.DeletionReport) {
	fmt.Fprintf(w, "%s Deleted trade %s (%s)\n", okMark(), report.TradeID, report.Symbol)
	if len(report.RemovedHistory) > 0 {
		fmt.Fprintf(w, "  Removed %d history records\n", len(report.RemovedHistory))
	}
	for _, u := range report.Reversals {
		fmt.Fprintf(w, "  %s profit %s\n", u.AccountID, pnl(u.Delta))
	}
}

func printHistory(w io.Writer, recs []ledger.HistoryRecord) {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			fmt.Sprint(r.ID), r.TradeID, r.Symbol, r.Qty.String(),
			money(r.EntryPrice), money(r.ExitPrice), money(r.Fee), pnl(r.ProfitLoss),
			r.Timestamp.Local().Format("2006-01-02 15:04"),
		})
	}
	renderTable(w, []string{"ID", "Trade", "Symbol", "Qty", "Entry", "Exit", "Fee", "P/L", "Time"}, rows)
}

func printSummary(w io.Writer, s ledger.Summary) {
	fmt.Fprintln(w, paint(titleStyle, "Pool summary"))
	fmt.Fprintf(w, "  Total capital:  %s\n", money(s.TotalCapital))
	fmt.Fprintf(w, "  Total profit:   %s\n", pnl(s.TotalProfit))
	fmt.Fprintf(w, "  ROI:            %s%%\n", s.ROIPct.StringFixed(2))
	fmt.Fprintf(w, "  Accounts:       %d (%d profitable)\n", s.Accounts, s.ProfitableAccounts)
	fmt.Fprintf(w, "  Trades:         %d open, %d closed\n", s.OpenTrades, s.ClosedTrades)
	fmt.Fprintf(w, "  Exits:          %d (win rate %s%%)\n", s.Exits, s.WinRatePct.StringFixed(2))
	fmt.Fprintf(w, "  Avg P/L / exit: %s\n", pnl(s.AvgProfitLoss))

	rows := make([][]string, 0, len(s.Shares))
	for _, sh := range s.Shares {
		rows = append(rows, []string{sh.AccountID, sh.Name, money(sh.Capital), sh.SharePct.StringFixed(2) + "%", pnl(sh.Profit)})
	}
	renderTable(w, []string{"User", "Name", "Capital", "Share", "Profit"}, rows)
}
