package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

var testTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func testAccounts() []Account {
	return []Account{
		{ID: "A", Name: "Alice", Email: "alice@example.com", Capital: d("6000")},
		{ID: "B", Name: "Bob", Email: "bob@example.com", Capital: d("4000")},
	}
}

func openTestTrade(t *testing.T, qty, price string) Trade {
	t.Helper()
	tr, err := OpenTrade("TRD-TEST", OpenRequest{
		Symbol:     "goldpetal",
		Strategy:   "swing",
		Qty:        d(qty),
		Price:      d(price),
		AccountIDs: []string{"A", "B"},
		OpenedAt:   testTime,
	}, testAccounts())
	require.NoError(t, err)
	return tr
}
