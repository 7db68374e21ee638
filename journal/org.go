package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/pooltrader/ledger"
)

// FormatHistoryOrg renders an exit as an Org-mode block. Facts go in the
// PROPERTIES drawer, the profit split in a table, with an empty Review
// section for notes.
func FormatHistoryOrg(r ledger.HistoryRecord) string {
	heading := fmt.Sprintf("** Exit: %s (%s)", r.Symbol, shortID(r.TradeID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", r.TradeID))
	b.WriteString(fmt.Sprintf(":HISTORY_ID: %d\n", r.ID))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", r.Symbol))
	b.WriteString(fmt.Sprintf(":QTY: %s\n", r.Qty))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %s\n", r.EntryPrice.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %s\n", r.ExitPrice.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":FEE: %s\n", r.Fee.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":PROFIT_LOSS: %s\n", r.ProfitLoss.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":TIME: %s\n", r.Timestamp.UTC().Format(time.RFC3339)))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Distribution\n")
	b.WriteString("| Account | Share % | Amount |\n")
	b.WriteString("|---------+---------+--------|\n")
	for _, a := range r.Breakdown {
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			a.AccountID, a.Share.Shift(2).StringFixed(2), a.Amount.StringFixed(2)))
	}
	b.WriteString("\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatHistoriesOrg renders multiple exits separated by blank lines.
func FormatHistoriesOrg(recs []ledger.HistoryRecord) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatHistoryOrg(r))
	}
	return b.String()
}

func shortID(full string) string {
	full = strings.TrimPrefix(full, "TRD-")
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
