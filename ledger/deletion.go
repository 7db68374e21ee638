package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DeletionReport lists what deleting a trade removes and which account
// profits are reversed.
type DeletionReport struct {
	TradeID        string          `json:"trade_id"`
	Symbol         string          `json:"symbol"`
	WasOpen        bool            `json:"was_open"`
	RemovedHistory []int64         `json:"removed_history"`
	Reversals      []AccountUpdate `json:"reversals"`
}

// PlanDeletion decides how trade t is deleted given its history.
//
// A trade with history can only be deleted with cascade set. Cascading
// removes every history record of the trade and reverses the profit those
// records distributed, so account profit stays equal to the sum of the
// remaining history.
func PlanDeletion(t Trade, history []HistoryRecord, cascade bool) (DeletionReport, error) {
	if t.ID == "" {
		return DeletionReport{}, invalid("trade_id", "trade id is required")
	}

	report := DeletionReport{
		TradeID: t.ID,
		Symbol:  t.Symbol,
		WasOpen: t.Open(),
	}

	var own []HistoryRecord
	for _, h := range history {
		if h.TradeID == t.ID {
			own = append(own, h)
		}
	}
	if len(own) == 0 {
		return report, nil
	}
	if !cascade {
		return DeletionReport{}, invalid("cascade",
			"trade %s has %d history records; confirm cascade to delete them and reverse their profit", t.ID, len(own))
	}

	totals := map[string]decimal.Decimal{}
	for _, h := range own {
		report.RemovedHistory = append(report.RemovedHistory, h.ID)
		for _, a := range h.Breakdown {
			totals[a.AccountID] = totals[a.AccountID].Add(a.Amount)
		}
	}
	sort.Slice(report.RemovedHistory, func(i, j int) bool { return report.RemovedHistory[i] < report.RemovedHistory[j] })

	ids := make([]string, 0, len(totals))
	for id, total := range totals {
		if !total.IsZero() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		report.Reversals = append(report.Reversals, AccountUpdate{AccountID: id, Delta: totals[id].Neg()})
	}
	return report, nil
}
