// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/nkhare/settleup/internal/models"
)

// ErrNotFound is wrapped by store implementations when a requested
// record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group, expense and settlement storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateGroup persists a new group, including its initial members.
	// ID and CreatedAt fields are populated by the store if unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups with their members.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// UpdateGroup updates a group's name.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group and, by cascade, everything it owns.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddMembers adds members to an existing group.
	AddMembers(ctx context.Context, groupID string, members []models.Member) error

	// CreateExpense persists a new expense with its participant set.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves all expenses for a group, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// UpdateExpense replaces an existing expense and its participant set.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense by ID.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSettlement persists a recorded payment.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup retrieves all recorded payments for a group,
	// newest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// DeleteSettlement removes a recorded payment by ID.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
