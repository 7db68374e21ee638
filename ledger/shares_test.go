package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCapitalSharesProportional(t *testing.T) {
	t.Parallel()

	shares, err := ComputeCapitalShares([]Participant{
		{AccountID: "A", Capital: d("6000")},
		{AccountID: "B", Capital: d("4000")},
	})
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assertDecimal(t, "0.6", shares["A"])
	assertDecimal(t, "0.4", shares["B"])
}

func TestComputeCapitalSharesSumToOne(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		capitals []string
	}{
		{"thirds", []string{"1", "1", "1"}},
		{"uneven", []string{"1234.56", "7.89", "100000", "0.01"}},
		{"one zero", []string{"0", "500", "250"}},
		{"primes", []string{"7", "11", "13", "17", "19", "23"}},
		{"single", []string{"42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ps []Participant
			for i, c := range tt.capitals {
				ps = append(ps, Participant{AccountID: string(rune('A' + i)), Capital: d(c)})
			}
			shares, err := ComputeCapitalShares(ps)
			require.NoError(t, err)

			sum := decimal.Zero
			for _, s := range shares {
				assert.False(t, s.IsNegative())
				assert.True(t, s.LessThanOrEqual(decimal.NewFromInt(1)))
				sum = sum.Add(s)
			}
			assert.InDelta(t, 1.0, sum.InexactFloat64(), 1e-9)
		})
	}
}

func TestComputeCapitalSharesZeroCapitalIsEqual(t *testing.T) {
	t.Parallel()

	shares, err := ComputeCapitalShares([]Participant{
		{AccountID: "A", Capital: decimal.Zero},
		{AccountID: "B", Capital: decimal.Zero},
		{AccountID: "C", Capital: decimal.Zero},
		{AccountID: "D", Capital: decimal.Zero},
	})
	require.NoError(t, err)
	for id, s := range shares {
		assertDecimal(t, "0.25", s, id)
	}
}

func TestComputeCapitalSharesOrderIndependent(t *testing.T) {
	t.Parallel()

	a := []Participant{
		{AccountID: "x", Capital: d("300")},
		{AccountID: "y", Capital: d("200")},
		{AccountID: "z", Capital: d("100")},
	}
	b := []Participant{a[2], a[0], a[1]}

	sa, err := ComputeCapitalShares(a)
	require.NoError(t, err)
	sb, err := ComputeCapitalShares(b)
	require.NoError(t, err)

	for id := range sa {
		assert.True(t, sa[id].Equal(sb[id]), id)
	}
	// input slice untouched
	assert.Equal(t, "x", a[0].AccountID)
}

func TestComputeCapitalSharesInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ps   []Participant
	}{
		{"no participants", nil},
		{"duplicate", []Participant{{AccountID: "A", Capital: d("1")}, {AccountID: "A", Capital: d("2")}}},
		{"negative", []Participant{{AccountID: "A", Capital: d("-1")}}},
		{"missing id", []Participant{{Capital: d("1")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeCapitalShares(tt.ps)
			assert.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestDistributeSumsExactly(t *testing.T) {
	t.Parallel()

	ps := []Participant{
		{AccountID: "A", Capital: d("1")},
		{AccountID: "B", Capital: d("1")},
		{AccountID: "C", Capital: d("1")},
	}
	allocs, err := Distribute(d("100"), ps)
	require.NoError(t, err)
	require.Len(t, allocs, 3)

	assertDecimal(t, "33.34", allocs[0].Amount)
	assertDecimal(t, "33.33", allocs[1].Amount)
	assertDecimal(t, "33.33", allocs[2].Amount)

	sum := decimal.Zero
	for _, a := range allocs {
		sum = sum.Add(a.Amount)
	}
	assertDecimal(t, "100", sum)
}

func TestDistributeResidualToLargestShare(t *testing.T) {
	t.Parallel()

	ps := []Participant{
		{AccountID: "small", Capital: d("1")},
		{AccountID: "big", Capital: d("2")},
	}
	allocs, err := Distribute(d("-0.01"), ps)
	require.NoError(t, err)

	got := map[string]decimal.Decimal{}
	sum := decimal.Zero
	for _, a := range allocs {
		got[a.AccountID] = a.Amount
		sum = sum.Add(a.Amount)
	}
	assertDecimal(t, "-0.01", sum)
	assertDecimal(t, "-0.01", got["big"])
	assertDecimal(t, "0", got["small"])
}
