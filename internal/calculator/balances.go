// Package calculator computes group balances and settlement plans.
//
// It is pure computation: functions read their input snapshots and return
// fresh values, never touching storage or shared state, so concurrent
// callers need no coordination.
package calculator

import (
	"errors"
	"fmt"
	"sort"
)

// Validation errors for malformed input snapshots. The caller is expected
// to reject bad data at the boundary; these exist so a slipped-through
// record fails loudly instead of producing a silently wrong balance.
var (
	ErrNoParticipants = errors.New("expense has no participants")
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrUnknownUser    = errors.New("unknown user id")
)

// User is a participant identity snapshot.
type User struct {
	ID   string
	Name string
}

// Expense is a shared cost fronted by one user and split evenly among a
// participant set. The payer commonly appears in the participant set too;
// paying and owing a share are independent contributions to net balance.
type Expense struct {
	ID             string
	Amount         float64
	PayerID        string
	ParticipantIDs []string
}

// Payment is a settlement that already happened: the debtor handed the
// creditor money outside any expense. It reduces outstanding balances.
type Payment struct {
	FromID string
	ToID   string
	Amount float64
}

// MemberBalance is one user's accrued position.
type MemberBalance struct {
	UserID    string
	Name      string
	TotalPaid float64 // amounts fronted, plus payments made
	TotalOwed float64 // shares of participated expenses, plus payments received
	Net       float64 // TotalPaid - TotalOwed; positive = owed money, negative = owes money
}

// Balances accrues per-user positions across all expenses and payments.
//
// For each expense of amount A with k distinct participants: the payer is
// credited +A and every participant (the payer included, if listed) is
// debited A/k. Payments then shift balances the same way: the payer's
// paid total grows, the receiver's owed total grows. Everything is
// accumulated before any settling happens.
//
// Inputs referencing a user outside the snapshot, expenses with an empty
// participant set, and negative amounts are rejected with a validation
// error. Zero-amount expenses contribute nothing and are skipped.
// Duplicate participant IDs count once.
//
// The result is sorted by UserID so output is reproducible.
func Balances(users []User, expenses []Expense, payments []Payment) ([]MemberBalance, error) {
	byID := make(map[string]*MemberBalance, len(users))
	for _, u := range users {
		if _, seen := byID[u.ID]; seen {
			continue
		}
		byID[u.ID] = &MemberBalance{UserID: u.ID, Name: u.Name}
	}

	for _, e := range expenses {
		if e.Amount < 0 {
			return nil, fmt.Errorf("expense %q: %w", e.ID, ErrNegativeAmount)
		}
		participants := dedupe(e.ParticipantIDs)
		if len(participants) == 0 {
			return nil, fmt.Errorf("expense %q: %w", e.ID, ErrNoParticipants)
		}
		payer, ok := byID[e.PayerID]
		if !ok {
			return nil, fmt.Errorf("expense %q: payer %q: %w", e.ID, e.PayerID, ErrUnknownUser)
		}
		for _, p := range participants {
			if _, ok := byID[p]; !ok {
				return nil, fmt.Errorf("expense %q: participant %q: %w", e.ID, p, ErrUnknownUser)
			}
		}
		if e.Amount == 0 {
			continue
		}

		payer.TotalPaid += e.Amount
		share := e.Amount / float64(len(participants))
		for _, p := range participants {
			byID[p].TotalOwed += share
		}
	}

	for _, pay := range payments {
		if pay.Amount < 0 {
			return nil, fmt.Errorf("payment %s -> %s: %w", pay.FromID, pay.ToID, ErrNegativeAmount)
		}
		from, ok := byID[pay.FromID]
		if !ok {
			return nil, fmt.Errorf("payment from %q: %w", pay.FromID, ErrUnknownUser)
		}
		to, ok := byID[pay.ToID]
		if !ok {
			return nil, fmt.Errorf("payment to %q: %w", pay.ToID, ErrUnknownUser)
		}
		from.TotalPaid += pay.Amount
		to.TotalOwed += pay.Amount
	}

	balances := make([]MemberBalance, 0, len(byID))
	for _, bal := range byID {
		bal.Net = bal.TotalPaid - bal.TotalOwed
		balances = append(balances, *bal)
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].UserID < balances[j].UserID
	})

	return balances, nil
}

// dedupe returns the distinct IDs from the input, order-independent.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
