package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nkhare/settleup/internal/models"
	"github.com/nkhare/settleup/internal/storage"
)

// CreateExpense persists a new expense and its participant set.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertExpense(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its participants.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, description, amount, payer_id, created_at FROM expenses WHERE id = ?",
		expenseID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
		&expense.PayerID, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	participants, err := s.listParticipants(ctx, []string{expenseID})
	if err != nil {
		return nil, err
	}
	expense.ParticipantIDs = participants[expenseID]

	return expense, nil
}

// ListExpensesByGroup retrieves all expenses for a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount, payer_id, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	var ids []string
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description,
			&expense.Amount, &expense.PayerID, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
		ids = append(ids, expense.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	participants, err := s.listParticipants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, expense := range expenses {
		expense.ParticipantIDs = participants[expense.ID]
	}

	return expenses, nil
}

// UpdateExpense replaces an existing expense and its participant set.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE expenses SET description = ?, amount = ?, payer_id = ? WHERE id = ?",
		expense.Description, expense.Amount, expense.PayerID, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM expense_participants WHERE expense_id = ?", expense.ID,
	); err != nil {
		return fmt.Errorf("failed to clear expense participants: %w", err)
	}
	for _, memberID := range expense.ParticipantIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, member_id) VALUES (?, ?)",
			expense.ID, memberID,
		); err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// insertExpense writes the expense row and its participant rows.
func insertExpense(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, payer_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount,
		expense.PayerID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, memberID := range expense.ParticipantIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, member_id) VALUES (?, ?)",
			expense.ID, memberID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	return nil
}

// listParticipants loads participant IDs for a batch of expenses in one
// query, keyed by expense ID.
func (s *SQLiteStore) listParticipants(ctx context.Context, expenseIDs []string) (map[string][]string, error) {
	participants := make(map[string][]string, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return participants, nil
	}

	query := `SELECT expense_id, member_id FROM expense_participants
		WHERE expense_id IN (?` + repeatPlaceholder(len(expenseIDs)-1) + `) ORDER BY member_id`

	args := make([]interface{}, len(expenseIDs))
	for i, id := range expenseIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, memberID string
		if err := rows.Scan(&expenseID, &memberID); err != nil {
			return nil, fmt.Errorf("failed to scan expense participant: %w", err)
		}
		participants[expenseID] = append(participants[expenseID], memberID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense participants: %w", err)
	}

	return participants, nil
}
