package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nkhare/settleup/internal/calculator"
	"github.com/nkhare/settleup/internal/models"
	"github.com/nkhare/settleup/internal/storage"
)

var (
	ErrSelfSettlement    = errors.New("payer and receiver must differ")
	ErrNonPositiveAmount = errors.New("settlement amount must be positive")
)

// SettlementService bridges storage and the calculator: it assembles a
// group's snapshot (members, expenses, recorded payments), computes
// balances and settlement plans, and records payments that actually
// happened. Plans are recomputed fresh on every call; they are never the
// source of truth.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// Balances returns per-member balances for a group, with recorded
// payments already applied.
func (s *SettlementService) Balances(ctx context.Context, groupID string) ([]calculator.MemberBalance, error) {
	users, expenses, payments, err := s.snapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances, err := calculator.Balances(users, expenses, payments)
	if err != nil {
		// Storage-validated data failing calculator validation means the
		// two layers disagree; surface it loudly.
		slog.Error("Balance computation rejected stored data", "group_id", groupID, "error", err)
		return nil, err
	}

	return balances, nil
}

// Plan returns the transfer list that settles the group's outstanding
// balances, recorded payments included.
func (s *SettlementService) Plan(ctx context.Context, groupID string) ([]calculator.Transfer, error) {
	users, expenses, payments, err := s.snapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(users) < 2 {
		return nil, nil
	}

	balances, err := calculator.Balances(users, expenses, payments)
	if err != nil {
		slog.Error("Plan computation rejected stored data", "group_id", groupID, "error", err)
		return nil, err
	}

	return calculator.PlanTransfers(balances), nil
}

// Record validates and persists an actual payment between two members.
func (s *SettlementService) Record(ctx context.Context, settlement *models.Settlement) (*models.Settlement, error) {
	if settlement.Amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if settlement.FromID == settlement.ToID {
		return nil, ErrSelfSettlement
	}

	group, err := s.store.GetGroup(ctx, settlement.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(settlement.FromID) {
		return nil, fmt.Errorf("payer %q: %w", settlement.FromID, ErrNotAMember)
	}
	if !group.HasMember(settlement.ToID) {
		return nil, fmt.Errorf("receiver %q: %w", settlement.ToID, ErrNotAMember)
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("CreateSettlement failed", "group_id", settlement.GroupID, "error", err)
		return nil, err
	}

	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"amount", settlement.Amount,
	)
	return settlement, nil
}

// History retrieves a group's recorded payments, newest first.
func (s *SettlementService) History(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return s.store.ListSettlementsByGroup(ctx, groupID)
}

// Delete removes a recorded payment, putting its amount back into the
// group's outstanding balances.
func (s *SettlementService) Delete(ctx context.Context, settlementID string) error {
	if err := s.store.DeleteSettlement(ctx, settlementID); err != nil {
		slog.Error("DeleteSettlement failed", "settlement_id", settlementID, "error", err)
		return err
	}
	return nil
}

// snapshot assembles the calculator's input for one group.
func (s *SettlementService) snapshot(ctx context.Context, groupID string) ([]calculator.User, []calculator.Expense, []calculator.Payment, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, err
	}

	storedExpenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, err
	}

	storedSettlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, err
	}

	users := make([]calculator.User, len(group.Members))
	for i, m := range group.Members {
		users[i] = calculator.User{ID: m.ID, Name: m.Name}
	}

	expenses := make([]calculator.Expense, len(storedExpenses))
	for i, e := range storedExpenses {
		expenses[i] = calculator.Expense{
			ID:             e.ID,
			Amount:         e.Amount,
			PayerID:        e.PayerID,
			ParticipantIDs: e.ParticipantIDs,
		}
	}

	payments := make([]calculator.Payment, len(storedSettlements))
	for i, p := range storedSettlements {
		payments[i] = calculator.Payment{
			FromID: p.FromID,
			ToID:   p.ToID,
			Amount: p.Amount,
		}
	}

	return users, expenses, payments, nil
}
