package journal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/pooltrader/ledger"
)

func TestFormatHistoryOrg(t *testing.T) {
	t.Parallel()

	result := FormatHistoryOrg(sampleRecord())

	assert.Contains(t, result, "** Exit: GOLDPETAL (01HV6Q7K)")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":TRADE_ID: TRD-01HV6Q7K3W9X0Y2Z4A5B6C7D8E")
	assert.Contains(t, result, ":HISTORY_ID: 7")
	assert.Contains(t, result, ":QTY: 20")
	assert.Contains(t, result, ":ENTRY_PRICE: 110.00")
	assert.Contains(t, result, ":EXIT_PRICE: 130.00")
	assert.Contains(t, result, ":PROFIT_LOSS: 400.00")
	assert.Contains(t, result, ":TIME: 2024-01-02T03:04:05Z")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "| A | 60.00 | 240.00 |")
	assert.Contains(t, result, "| B | 40.00 | 160.00 |")
	assert.Contains(t, result, "*** Review")
}

func TestFormatHistoryOrgNegativePL(t *testing.T) {
	t.Parallel()

	r := sampleRecord()
	r.ProfitLoss = d("-500")
	assert.Contains(t, FormatHistoryOrg(r), ":PROFIT_LOSS: -500.00")
}

func TestFormatHistoriesOrg(t *testing.T) {
	t.Parallel()

	a := sampleRecord()
	b := sampleRecord()
	b.TradeID = "TRD-SHORT"
	b.Symbol = "NIFTY"

	result := FormatHistoriesOrg([]ledger.HistoryRecord{a, b})
	assert.Contains(t, result, "GOLDPETAL")
	assert.Contains(t, result, "** Exit: NIFTY (SHORT)")

	parts := strings.Split(result, "\n\n\n")
	assert.Len(t, parts, 2)

	assert.Empty(t, FormatHistoriesOrg(nil))
}

func TestFormatHistoryOrgStructure(t *testing.T) {
	t.Parallel()

	lines := strings.Split(FormatHistoryOrg(sampleRecord()), "\n")
	require.Greater(t, len(lines), 10)
	assert.True(t, strings.HasPrefix(lines[0], "** Exit:"))

	end, dist := -1, -1
	for i, line := range lines {
		if line == ":END:" && end < 0 {
			end = i
		}
		if line == "*** Distribution" {
			dist = i
		}
	}
	assert.Greater(t, end, 0)
	assert.Greater(t, dist, end)
}

func TestShortID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"prefixed ulid", "TRD-01HV6Q7K3W9X0Y2Z4A5B6C7D8E", "01HV6Q7K"},
		{"exactly 8", "12345678", "12345678"},
		{"short", "short", "short"},
		{"empty", "", ""},
		{"nine", "123456789", "12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortID(tt.input))
		})
	}
}
