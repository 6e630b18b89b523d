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

// CreateGroup persists a new group and its initial members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_at) VALUES (?, ?, ?)",
		group.ID, group.Name, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i := range group.Members {
		member := &group.Members[i]
		member.GroupID = group.ID
		if member.ID == "" {
			member.ID = uuid.New().String()
		}
		if member.CreatedAt == 0 {
			member.CreatedAt = group.CreatedAt
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO members (id, group_id, name, created_at) VALUES (?, ?, ?, ?)",
			member.ID, member.GroupID, member.Name, member.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.listMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members

	return group, nil
}

// ListGroups retrieves all groups with their members.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM groups ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		members, err := s.listMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		group.Members = members
	}

	return groups, nil
}

// UpdateGroup updates a group's name.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE groups SET name = ? WHERE id = ?",
		group.Name, group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("group %s: %w", group.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteGroup removes a group; members, expenses and settlements cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return nil
}

// AddMembers adds members to an existing group.
func (s *SQLiteStore) AddMembers(ctx context.Context, groupID string, members []models.Member) error {
	if len(members) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for i := range members {
		member := &members[i]
		member.GroupID = groupID
		if member.ID == "" {
			member.ID = uuid.New().String()
		}
		if member.CreatedAt == 0 {
			member.CreatedAt = now
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO members (id, group_id, name, created_at) VALUES (?, ?, ?, ?)",
			member.ID, member.GroupID, member.Name, member.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// listMembers loads the members of one group, ordered by name.
func (s *SQLiteStore) listMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, name, created_at FROM members WHERE group_id = ? ORDER BY name, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.GroupID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}
