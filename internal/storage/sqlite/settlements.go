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

// CreateSettlement persists a recorded payment to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	var note interface{} = nil
	if settlement.Note != "" {
		note = settlement.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, from_id, to_id, amount, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.GroupID, settlement.FromID, settlement.ToID,
		settlement.Amount, note, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// ListSettlementsByGroup retrieves all recorded payments for a group.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, from_id, to_id, amount, note, created_at
		 FROM settlements WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by group: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var note sql.NullString

		if err := rows.Scan(&settlement.ID, &settlement.GroupID, &settlement.FromID,
			&settlement.ToID, &settlement.Amount, &note, &settlement.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}

		if note.Valid {
			settlement.Note = note.String
		}

		settlements = append(settlements, settlement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// DeleteSettlement removes a recorded payment by ID.
func (s *SQLiteStore) DeleteSettlement(ctx context.Context, settlementID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	return nil
}
