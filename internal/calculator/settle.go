package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance within which a balance counts as settled.
// Applying a plan leaves every net balance within Epsilon of zero.
const Epsilon = 0.01

// Transfer is one directed payment instruction in a settlement plan.
type Transfer struct {
	FromID   string
	FromName string
	ToID     string
	ToName   string
	Amount   float64
}

// ComputeSettlements produces the settlement plan for a snapshot of users
// and expenses: a list of transfers that, applied in any order, drives
// every net balance to within Epsilon of zero.
//
// A group of fewer than two users can owe nobody, whatever the expenses
// say, so the result is empty without further validation. Otherwise
// malformed input is rejected (see Balances). An already-settled group
// yields an empty plan and no error.
func ComputeSettlements(users []User, expenses []Expense) ([]Transfer, error) {
	if len(users) < 2 {
		return nil, nil
	}
	balances, err := Balances(users, expenses, nil)
	if err != nil {
		return nil, err
	}
	return PlanTransfers(balances), nil
}

// PlanTransfers matches net debtors against net creditors, largest first.
//
// Balances are converted to integer cents up front, rounding half away
// from zero and carrying each rounding remainder into the next balance,
// so the cent totals preserve the zero sum of the input. All matching
// then happens exactly in cents: no further rounding, so no drift can
// accumulate across a chain of transfers, and the split residue of a
// non-terminating share (e.g. 100 three ways) lands on one transfer
// instead of being dropped. A user whose balance rounds to zero cents is
// settled and excluded. Applying the full plan leaves every user within
// one cent of their accrued balance.
//
// Both sides are sorted by magnitude descending with UserID ascending as
// the tie-break, so the plan is deterministic. Matching is the standard
// greedy cash-flow heuristic: settle min(debtor, creditor) between the
// current largest of each side, then advance whichever side reached
// zero. It emits at most n-1 transfers for n unsettled users. The count
// is small in practice but not provably minimal; exact minimization is
// NP-hard and deliberately not attempted.
func PlanTransfers(balances []MemberBalance) []Transfer {
	type party struct {
		id    string
		name  string
		cents int64
	}

	hundred := decimal.NewFromInt(100)
	carry := decimal.Zero

	var debtors, creditors []party
	for _, b := range balances {
		exact := decimal.NewFromFloat(b.Net).Mul(hundred).Add(carry)
		rounded := exact.Round(0)
		carry = exact.Sub(rounded)

		cents := rounded.IntPart()
		switch {
		case cents < 0:
			debtors = append(debtors, party{id: b.UserID, name: b.Name, cents: -cents})
		case cents > 0:
			creditors = append(creditors, party{id: b.UserID, name: b.Name, cents: cents})
		}
	}

	byMagnitude := func(s []party) {
		sort.Slice(s, func(i, j int) bool {
			if s[i].cents != s[j].cents {
				return s[i].cents > s[j].cents
			}
			return s[i].id < s[j].id
		})
	}
	byMagnitude(debtors)
	byMagnitude(creditors)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := debtor.cents
		if creditor.cents < amount {
			amount = creditor.cents
		}
		transfers = append(transfers, Transfer{
			FromID:   debtor.id,
			FromName: debtor.name,
			ToID:     creditor.id,
			ToName:   creditor.name,
			Amount:   float64(amount) / 100,
		})

		debtor.cents -= amount
		creditor.cents -= amount
		if debtor.cents == 0 {
			i++
		}
		if creditor.cents == 0 {
			j++
		}
	}

	return transfers
}
