package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// TradePrefix marks pooled trade identifiers.
const TradePrefix = "TRD-"

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// ulid.Monotonic keeps IDs generated within the same millisecond increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string (time-sortable identifier).
func New() string {
	return newAt(time.Now().UTC())
}

// NewTrade returns a human readable, time sortable trade id such as
// TRD-01HV6Q7K3W9X0Y2Z4A5B6C7D8E.
func NewTrade() string {
	return TradePrefix + New()
}

// TradeTime returns the creation time encoded in a trade id.
func TradeTime(tradeID string) (time.Time, bool) {
	raw, ok := strings.CutPrefix(tradeID, TradePrefix)
	if !ok {
		return time.Time{}, false
	}
	u, err := ulid.ParseStrict(raw)
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(u.Time()).UTC(), true
}

func newAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t), mono)
	if err != nil {
		// Only happens if entropy fails or the clock is out of ULID range.
		panic(err)
	}
	return id.String()
}
