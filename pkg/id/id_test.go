package id

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = New()
	}
	assert.True(t, sort.StringsAreSorted(ids))

	seen := map[string]bool{}
	for _, v := range ids {
		assert.Len(t, v, 26)
		assert.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
}

func TestNewTrade(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC().Truncate(time.Millisecond)
	tid := NewTrade()
	after := time.Now().UTC()

	assert.True(t, strings.HasPrefix(tid, TradePrefix))

	ts, ok := TradeTime(tid)
	require.True(t, ok)
	assert.False(t, ts.Before(before))
	assert.False(t, ts.After(after))
}

func TestTradeTimeInvalid(t *testing.T) {
	t.Parallel()

	_, ok := TradeTime("01HV6Q7K3W9X0Y2Z4A5B6C7D8E")
	assert.False(t, ok)
	_, ok = TradeTime("TRD-not-a-ulid")
	assert.False(t, ok)
}
