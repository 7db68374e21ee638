package journal

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/pooltrader/ledger"
)

func sampleRecord() ledger.HistoryRecord {
	return ledger.HistoryRecord{
		ID:         7,
		TradeID:    "TRD-01HV6Q7K3W9X0Y2Z4A5B6C7D8E",
		Symbol:     "GOLDPETAL",
		EntryPrice: d("110"),
		ExitPrice:  d("130"),
		Qty:        d("20"),
		ProfitLoss: d("400"),
		Fee:        d("0"),
		Timestamp:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Breakdown: []ledger.Allocation{
			{AccountID: "A", Share: d("0.6"), Amount: d("240")},
			{AccountID: "B", Share: d("0.4"), Amount: d("160")},
		},
	}
}

func TestWriteHistoryCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, []ledger.HistoryRecord{sampleRecord()}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, HistoryHeader, rows[0])
	want := []string{
		"7",
		"TRD-01HV6Q7K3W9X0Y2Z4A5B6C7D8E",
		"GOLDPETAL",
		"110.00",
		"130.00",
		"20",
		"400.00",
		"0.00",
		"2024-01-02T03:04:05Z",
		"A:240.00;B:160.00",
	}
	assert.Equal(t, want, rows[1])
}

func TestWriteHistoryCSVEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, HistoryHeader, rows[0])
}

func TestExportHistoryCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, ExportHistoryCSV(path, []ledger.HistoryRecord{sampleRecord(), sampleRecord()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestExportHistoryCSVBadPath(t *testing.T) {
	t.Parallel()

	err := ExportHistoryCSV(filepath.Join(t.TempDir(), "missing", "h.csv"), nil)
	assert.Error(t, err)
}
