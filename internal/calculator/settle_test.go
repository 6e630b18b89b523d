package calculator

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeSettlements(t *testing.T) {
	tests := []struct {
		name     string
		users    []User
		expenses []Expense
		want     []Transfer
	}{
		{
			name:  "two users one shared expense",
			users: []User{{ID: "alice", Name: "Alice"}, {ID: "bob", Name: "Bob"}},
			expenses: []Expense{
				{ID: "e1", Amount: 100, PayerID: "alice", ParticipantIDs: []string{"alice", "bob"}},
			},
			want: []Transfer{
				{FromID: "bob", FromName: "Bob", ToID: "alice", ToName: "Alice", Amount: 50.00},
			},
		},
		{
			name: "three-way split settles to one creditor",
			users: []User{
				{ID: "alice", Name: "Alice"},
				{ID: "bob", Name: "Bob"},
				{ID: "carol", Name: "Carol"},
			},
			expenses: []Expense{
				{ID: "e1", Amount: 90, PayerID: "alice", ParticipantIDs: []string{"alice", "bob", "carol"}},
			},
			// Bob and Carol owe 30 each; tie broken by ID, Bob first.
			want: []Transfer{
				{FromID: "bob", FromName: "Bob", ToID: "alice", ToName: "Alice", Amount: 30.00},
				{FromID: "carol", FromName: "Carol", ToID: "alice", ToName: "Alice", Amount: 30.00},
			},
		},
		{
			name:     "no expenses",
			users:    []User{{ID: "alice", Name: "Alice"}, {ID: "bob", Name: "Bob"}},
			expenses: nil,
			want:     nil,
		},
		{
			name: "two creditors one debtor",
			users: []User{
				{ID: "alice", Name: "Alice"},
				{ID: "bob", Name: "Bob"},
				{ID: "carol", Name: "Carol"},
			},
			expenses: []Expense{
				{ID: "e1", Amount: 30, PayerID: "alice", ParticipantIDs: []string{"alice", "bob", "carol"}},
				{ID: "e2", Amount: 30, PayerID: "bob", ParticipantIDs: []string{"alice", "bob", "carol"}},
			},
			// Alice and Bob are each owed 10; Carol owes 20 total.
			want: []Transfer{
				{FromID: "carol", FromName: "Carol", ToID: "alice", ToName: "Alice", Amount: 10.00},
				{FromID: "carol", FromName: "Carol", ToID: "bob", ToName: "Bob", Amount: 10.00},
			},
		},
		{
			name:  "single user settles to nothing regardless of expenses",
			users: []User{{ID: "alice", Name: "Alice"}},
			expenses: []Expense{
				{ID: "e1", Amount: 100, PayerID: "alice", ParticipantIDs: []string{"alice"}},
			},
			want: nil,
		},
		{
			name:     "empty user list",
			users:    nil,
			expenses: nil,
			want:     nil,
		},
		{
			name:  "payer outside the participant set",
			users: []User{{ID: "alice", Name: "Alice"}, {ID: "bob", Name: "Bob"}},
			expenses: []Expense{
				{ID: "e1", Amount: 40, PayerID: "alice", ParticipantIDs: []string{"bob"}},
			},
			want: []Transfer{
				{FromID: "bob", FromName: "Bob", ToID: "alice", ToName: "Alice", Amount: 40.00},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeSettlements(tt.users, tt.expenses)
			if err != nil {
				t.Fatalf("ComputeSettlements() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("transfer count = %d, want %d (%+v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].FromID != tt.want[i].FromID || got[i].ToID != tt.want[i].ToID {
					t.Errorf("transfer %d = %s->%s, want %s->%s",
						i, got[i].FromID, got[i].ToID, tt.want[i].FromID, tt.want[i].ToID)
				}
				if got[i].FromName != tt.want[i].FromName || got[i].ToName != tt.want[i].ToName {
					t.Errorf("transfer %d names = %s->%s, want %s->%s",
						i, got[i].FromName, got[i].ToName, tt.want[i].FromName, tt.want[i].ToName)
				}
				if !almostEqual(got[i].Amount, tt.want[i].Amount) {
					t.Errorf("transfer %d amount = %v, want %v", i, got[i].Amount, tt.want[i].Amount)
				}
			}
		})
	}
}

func TestComputeSettlementsResidualCent(t *testing.T) {
	// 100 split three ways leaves a repeating decimal; the residual cent
	// must land on one transfer, not disappear.
	users := []User{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
		{ID: "carol", Name: "Carol"},
	}
	expenses := []Expense{
		{ID: "e1", Amount: 100, PayerID: "alice", ParticipantIDs: []string{"alice", "bob", "carol"}},
	}

	transfers, err := ComputeSettlements(users, expenses)
	if err != nil {
		t.Fatalf("ComputeSettlements() error = %v", err)
	}
	if len(transfers) != 2 {
		t.Fatalf("transfer count = %d, want 2 (%+v)", len(transfers), transfers)
	}

	// The largest debtor settles first and carries the extra cent.
	if transfers[0].FromID != "bob" || !almostEqual(transfers[0].Amount, 33.34) {
		t.Errorf("first transfer = %s %v, want bob 33.34 (residual cent absorbed)",
			transfers[0].FromID, transfers[0].Amount)
	}
	if transfers[1].FromID != "carol" || !almostEqual(transfers[1].Amount, 33.33) {
		t.Errorf("second transfer = %s %v, want carol 33.33",
			transfers[1].FromID, transfers[1].Amount)
	}

	total := transfers[0].Amount + transfers[1].Amount
	if !almostEqual(total, 66.67) {
		t.Errorf("total repaid = %v, want 66.67", total)
	}
}

func TestComputeSettlementsDeterminism(t *testing.T) {
	users := []User{
		{ID: "dave", Name: "Dave"},
		{ID: "alice", Name: "Alice"},
		{ID: "carol", Name: "Carol"},
		{ID: "bob", Name: "Bob"},
	}
	expenses := []Expense{
		{ID: "e1", Amount: 75.50, PayerID: "alice", ParticipantIDs: []string{"alice", "bob", "carol", "dave"}},
		{ID: "e2", Amount: 20, PayerID: "bob", ParticipantIDs: []string{"bob", "carol"}},
		{ID: "e3", Amount: 43.20, PayerID: "carol", ParticipantIDs: []string{"alice", "dave"}},
	}

	first, err := ComputeSettlements(users, expenses)
	if err != nil {
		t.Fatalf("ComputeSettlements() error = %v", err)
	}
	second, err := ComputeSettlements(users, expenses)
	if err != nil {
		t.Fatalf("ComputeSettlements() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same input produced different plans:\n%+v\n%+v", first, second)
	}
}

func TestComputeSettlementsProperties(t *testing.T) {
	users := []User{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
		{ID: "carol", Name: "Carol"},
		{ID: "dave", Name: "Dave"},
		{ID: "erin", Name: "Erin"},
	}
	expenses := []Expense{
		{ID: "e1", Amount: 120.45, PayerID: "alice", ParticipantIDs: []string{"alice", "bob", "carol"}},
		{ID: "e2", Amount: 33.10, PayerID: "bob", ParticipantIDs: []string{"bob", "dave"}},
		{ID: "e3", Amount: 99.99, PayerID: "carol", ParticipantIDs: []string{"alice", "bob", "carol", "dave"}},
		{ID: "e4", Amount: 7.77, PayerID: "dave", ParticipantIDs: []string{"alice"}},
		{ID: "e5", Amount: 0, PayerID: "erin", ParticipantIDs: []string{"erin", "alice"}},
	}

	balances, err := Balances(users, expenses, nil)
	if err != nil {
		t.Fatalf("Balances() error = %v", err)
	}
	transfers, err := ComputeSettlements(users, expenses)
	if err != nil {
		t.Fatalf("ComputeSettlements() error = %v", err)
	}

	// No self-transfers, all amounts positive.
	for _, tr := range transfers {
		if tr.FromID == tr.ToID {
			t.Errorf("self-transfer emitted: %+v", tr)
		}
		if tr.Amount <= 0 {
			t.Errorf("non-positive transfer amount: %+v", tr)
		}
	}

	// Transfer count bounded by unsettled users minus one.
	unsettled := 0
	for _, b := range balances {
		if math.Abs(b.Net) > Epsilon {
			unsettled++
		}
	}
	if len(transfers) > unsettled-1 {
		t.Errorf("transfer count = %d, want <= %d", len(transfers), unsettled-1)
	}

	// Applying every transfer drives each net balance to within Epsilon.
	net := make(map[string]float64, len(balances))
	for _, b := range balances {
		net[b.UserID] = b.Net
	}
	for _, tr := range transfers {
		net[tr.FromID] += tr.Amount
		net[tr.ToID] -= tr.Amount
	}
	tolerance := Epsilon
	for id, remaining := range net {
		if math.Abs(remaining) > tolerance {
			t.Errorf("user %s left with net %v after settling", id, remaining)
		}
	}
}

func TestComputeSettlementsAlreadySettled(t *testing.T) {
	users := []User{{ID: "alice", Name: "Alice"}, {ID: "bob", Name: "Bob"}}
	expenses := []Expense{
		{ID: "e1", Amount: 50, PayerID: "alice", ParticipantIDs: []string{"alice", "bob"}},
		{ID: "e2", Amount: 50, PayerID: "bob", ParticipantIDs: []string{"alice", "bob"}},
	}

	transfers, err := ComputeSettlements(users, expenses)
	if err != nil {
		t.Fatalf("ComputeSettlements() error = %v", err)
	}
	if len(transfers) != 0 {
		t.Errorf("expected empty plan for settled group, got %+v", transfers)
	}
}

func TestPlanTransfersSkipsSettledUsers(t *testing.T) {
	balances := []MemberBalance{
		{UserID: "alice", Name: "Alice", Net: 25},
		{UserID: "bob", Name: "Bob", Net: -25},
		{UserID: "carol", Name: "Carol", Net: 0.004}, // within epsilon
	}

	transfers := PlanTransfers(balances)
	if len(transfers) != 1 {
		t.Fatalf("transfer count = %d, want 1 (%+v)", len(transfers), transfers)
	}
	for _, tr := range transfers {
		if tr.FromID == "carol" || tr.ToID == "carol" {
			t.Errorf("settled user drawn into plan: %+v", tr)
		}
	}
}

// assertPlanSettles computes the plan for users and expenses, applies it,
// and fails if any user ends up more than Epsilon away from even. Residuals
// are tracked in decimal so the comparison against Epsilon is exact.
func assertPlanSettles(t *testing.T, users []User, expenses []Expense) {
	t.Helper()

	balances, err := Balances(users, expenses, nil)
	if err != nil {
		t.Fatalf("Balances() error = %v", err)
	}
	transfers, err := ComputeSettlements(users, expenses)
	if err != nil {
		t.Fatalf("ComputeSettlements() error = %v", err)
	}
	if len(transfers) > len(users)-1 {
		t.Fatalf("transfer count = %d, want <= %d", len(transfers), len(users)-1)
	}

	net := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		net[b.UserID] = decimal.NewFromFloat(b.Net)
	}
	for _, tr := range transfers {
		if tr.FromID == tr.ToID {
			t.Fatalf("self-transfer emitted: %+v", tr)
		}
		if tr.Amount <= 0 {
			t.Fatalf("non-positive transfer amount: %+v", tr)
		}
		amount := decimal.NewFromFloat(tr.Amount)
		net[tr.FromID] = net[tr.FromID].Add(amount)
		net[tr.ToID] = net[tr.ToID].Sub(amount)
	}

	eps := decimal.NewFromFloat(Epsilon)
	for id, remaining := range net {
		if remaining.Abs().GreaterThan(eps) {
			t.Fatalf("user %s left with net %s after settling (%d users, %d expenses)",
				id, remaining, len(users), len(expenses))
		}
	}
}

func TestComputeSettlementsCompleteness(t *testing.T) {
	// One payer fronting shares that never divide evenly forces a rounding
	// remainder through every chain in the plan. Each debtor settles with
	// the same creditor, so any per-transfer drift would pile up on the
	// users matched last.
	users := []User{
		{ID: "u1", Name: "U1"},
		{ID: "u2", Name: "U2"},
		{ID: "u3", Name: "U3"},
		{ID: "u4", Name: "U4"},
		{ID: "u5", Name: "U5"},
		{ID: "u6", Name: "U6"},
		{ID: "u7", Name: "U7"},
	}
	all := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"}
	expenses := []Expense{
		{ID: "e1", Amount: 100, PayerID: "u1", ParticipantIDs: all},
		{ID: "e2", Amount: 10, PayerID: "u1", ParticipantIDs: []string{"u2", "u3", "u4"}},
		{ID: "e3", Amount: 0.01, PayerID: "u2", ParticipantIDs: []string{"u5", "u6", "u7"}},
	}

	assertPlanSettles(t, users, expenses)
}

func TestComputeSettlementsCompletenessRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 500; iter++ {
		n := 2 + rng.Intn(8)
		users := make([]User, n)
		for i := range users {
			id := fmt.Sprintf("u%02d", i)
			users[i] = User{ID: id, Name: id}
		}

		expenses := make([]Expense, 1+rng.Intn(6))
		for i := range expenses {
			var participants []string
			for _, u := range users {
				if rng.Intn(2) == 0 {
					participants = append(participants, u.ID)
				}
			}
			if len(participants) == 0 {
				participants = append(participants, users[rng.Intn(n)].ID)
			}
			expenses[i] = Expense{
				ID:             fmt.Sprintf("e%02d", i),
				Amount:         float64(1+rng.Intn(20000)) / 100,
				PayerID:        users[rng.Intn(n)].ID,
				ParticipantIDs: participants,
			}
		}

		assertPlanSettles(t, users, expenses)
	}
}
