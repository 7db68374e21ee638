package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ComputeCapitalShares maps each participant to capital / total capital.
// When the total is zero every participant gets an equal share.
func ComputeCapitalShares(participants []Participant) (map[string]decimal.Decimal, error) {
	ps, err := sortedParticipants(participants)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, p := range ps {
		total = total.Add(p.Capital)
	}

	shares := make(map[string]decimal.Decimal, len(ps))
	if total.IsZero() {
		equal := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(ps))))
		for _, p := range ps {
			shares[p.AccountID] = equal
		}
		return shares, nil
	}

	for _, p := range ps {
		shares[p.AccountID] = p.Capital.Div(total)
	}
	return shares, nil
}

// Distribute splits amount across participants by capital share. Each
// allocation is rounded to cents and the rounding residual is given to the
// largest share, so the allocations always add up to amount.
func Distribute(amount decimal.Decimal, participants []Participant) ([]Allocation, error) {
	shares, err := ComputeCapitalShares(participants)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(shares))
	for id := range shares {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Allocation, len(ids))
	sum := decimal.Zero
	largest := 0
	for i, id := range ids {
		out[i] = Allocation{
			AccountID: id,
			Share:     shares[id],
			Amount:    amount.Mul(shares[id]).Round(2),
		}
		sum = sum.Add(out[i].Amount)
		if out[i].Share.GreaterThan(out[largest].Share) {
			largest = i
		}
	}

	if residual := amount.Sub(sum); !residual.IsZero() {
		out[largest].Amount = out[largest].Amount.Add(residual)
	}
	return out, nil
}

func sortedParticipants(participants []Participant) ([]Participant, error) {
	if len(participants) == 0 {
		return nil, invalid("accounts", "at least one participating account is required")
	}

	ps := append([]Participant(nil), participants...)
	sort.Slice(ps, func(i, j int) bool { return ps[i].AccountID < ps[j].AccountID })

	for i, p := range ps {
		if p.AccountID == "" {
			return nil, invalid("accounts", "participant without account id")
		}
		if i > 0 && ps[i-1].AccountID == p.AccountID {
			return nil, invalid("accounts", "account %s listed twice", p.AccountID)
		}
		if p.Capital.IsNegative() {
			return nil, invalid("capital", "account %s has negative capital %s", p.AccountID, p.Capital)
		}
	}
	return ps, nil
}
