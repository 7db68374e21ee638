package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/pooltrader/ledger"
)

// HistoryHeader is the first row of a history export.
var HistoryHeader = []string{
	"id", "trade_id", "symbol", "entry_price", "exit_price", "qty",
	"profit_loss", "fee", "timestamp", "breakdown",
}

// WriteHistoryCSV writes exit history as CSV. Money columns use two
// decimals; the breakdown column lists account:amount pairs.
func WriteHistoryCSV(w io.Writer, recs []ledger.HistoryRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(HistoryHeader); err != nil {
		return err
	}

	for _, r := range recs {
		parts := make([]string, len(r.Breakdown))
		for i, a := range r.Breakdown {
			parts[i] = a.AccountID + ":" + a.Amount.StringFixed(2)
		}
		if err := cw.Write([]string{
			fmt.Sprint(r.ID),
			r.TradeID,
			r.Symbol,
			r.EntryPrice.StringFixed(2),
			r.ExitPrice.StringFixed(2),
			r.Qty.String(),
			r.ProfitLoss.StringFixed(2),
			r.Fee.StringFixed(2),
			r.Timestamp.UTC().Format(time.RFC3339),
			strings.Join(parts, ";"),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportHistoryCSV writes recs to a new file at path.
func ExportHistoryCSV(path string, recs []ledger.HistoryRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteHistoryCSV(f, recs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
