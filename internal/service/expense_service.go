package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nkhare/settleup/internal/models"
	"github.com/nkhare/settleup/internal/storage"
)

var (
	ErrEmptyParticipants = errors.New("at least one participant is required")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
	ErrNotAMember        = errors.New("not a member of this group")
)

// ExpenseService manages shared expenses. It owns boundary validation:
// nothing malformed reaches storage or the calculator, so balance
// computation never has to guess about bad data.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// Create validates and persists a new expense for a group.
func (s *ExpenseService) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return nil, err
	}
	if err := validateExpense(expense, group); err != nil {
		slog.Warn("Expense rejected", "group_id", expense.GroupID, "error", err)
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", expense.GroupID, "error", err)
		return nil, err
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"amount", expense.Amount,
		"participants", len(expense.ParticipantIDs),
	)
	return expense, nil
}

// Get retrieves an expense by ID.
func (s *ExpenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// ListByGroup retrieves all expenses for a group, newest first.
func (s *ExpenseService) ListByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// Update validates and replaces an existing expense.
func (s *ExpenseService) Update(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	existing, err := s.store.GetExpense(ctx, expense.ID)
	if err != nil {
		return nil, err
	}
	expense.GroupID = existing.GroupID
	expense.CreatedAt = existing.CreatedAt

	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return nil, err
	}
	if err := validateExpense(expense, group); err != nil {
		slog.Warn("Expense update rejected", "expense_id", expense.ID, "error", err)
		return nil, err
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return nil, err
	}

	return expense, nil
}

// Delete removes an expense by ID.
func (s *ExpenseService) Delete(ctx context.Context, expenseID string) error {
	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return err
	}
	return nil
}

// validateExpense enforces the expense preconditions: non-negative
// amount, non-empty participant set, and payer plus every participant
// present in the group roster.
func validateExpense(expense *models.Expense, group *models.Group) error {
	if expense.Amount < 0 {
		return ErrNegativeAmount
	}
	if len(expense.ParticipantIDs) == 0 {
		return ErrEmptyParticipants
	}
	if !group.HasMember(expense.PayerID) {
		return fmt.Errorf("payer %q: %w", expense.PayerID, ErrNotAMember)
	}
	for _, id := range expense.ParticipantIDs {
		if !group.HasMember(id) {
			return fmt.Errorf("participant %q: %w", id, ErrNotAMember)
		}
	}
	return nil
}
