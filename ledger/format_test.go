package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"240", "USD", "$240.00"},
		{"1234.5", "USD", "$1,234.50"},
		{"-160", "USD", "-$160.00"},
		{"0.005", "USD", "$0.01"},
		{"12.5", "XYZ", "12.50 XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.amount+tt.currency, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(d(tt.amount), tt.currency))
		})
	}
}

func TestKnownCurrency(t *testing.T) {
	t.Parallel()

	assert.True(t, KnownCurrency("INR"))
	assert.True(t, KnownCurrency("USD"))
	assert.False(t, KnownCurrency("XYZ"))
}
