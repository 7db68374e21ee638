package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NewAccount validates and builds a new account with zero profit.
func NewAccount(id, name, email string, capital decimal.Decimal) (Account, error) {
	id, name, email = strings.TrimSpace(id), strings.TrimSpace(name), strings.TrimSpace(email)
	switch {
	case id == "":
		return Account{}, invalid("user_id", "user id is required")
	case name == "":
		return Account{}, invalid("name", "full name is required")
	case email == "":
		return Account{}, invalid("email", "email is required")
	case !ValidEmail(email):
		return Account{}, invalid("email", "invalid email format %q", email)
	case capital.IsNegative():
		return Account{}, invalid("capital", "initial capital cannot be negative")
	}
	return Account{
		ID:      id,
		Name:    name,
		Email:   email,
		Capital: capital.Round(2),
		Profit:  decimal.Zero,
	}, nil
}

// ValidEmail is a loose shape check, not an address validator.
func ValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}

// Deposit adds capital to an account.
func Deposit(a Account, amount decimal.Decimal) (Account, error) {
	if !amount.IsPositive() {
		return Account{}, invalid("amount", "deposit must be positive, got %s", amount)
	}
	a.Capital = a.Capital.Add(amount).Round(2)
	return a, nil
}

// Withdraw removes capital from an account. Capital never goes below zero.
func Withdraw(a Account, amount decimal.Decimal) (Account, error) {
	if !amount.IsPositive() {
		return Account{}, invalid("amount", "withdrawal must be positive, got %s", amount)
	}
	if amount.GreaterThan(a.Capital) {
		return Account{}, invalid("amount", "withdrawal %s exceeds available capital %s", amount, a.Capital)
	}
	a.Capital = a.Capital.Sub(amount).Round(2)
	return a, nil
}

// ApplyUpdate adds an update's delta to the account's profit.
func ApplyUpdate(a Account, u AccountUpdate) Account {
	a.Profit = a.Profit.Add(u.Delta)
	return a
}

// References counts the trades and history records that name the account.
// An account with any reference cannot be removed without breaking the
// link between its profit and the breakdowns that produced it.
type References struct {
	OpenTrades   int
	ClosedTrades int
	History      int
}

// Any reports whether anything refers to the account.
func (r References) Any() bool {
	return r.OpenTrades+r.ClosedTrades+r.History > 0
}

// Referenced counts the trades and history records that name accountID.
func Referenced(accountID string, trades []Trade, history []HistoryRecord) References {
	var r References
	for _, t := range trades {
		for _, p := range t.Participants {
			if p.AccountID != accountID {
				continue
			}
			if t.Open() {
				r.OpenTrades++
			} else {
				r.ClosedTrades++
			}
			break
		}
	}
	for _, h := range history {
		for _, a := range h.Breakdown {
			if a.AccountID == accountID {
				r.History++
				break
			}
		}
	}
	return r
}
