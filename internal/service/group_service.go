package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nkhare/settleup/internal/models"
	"github.com/nkhare/settleup/internal/storage"
)

var (
	ErrEmptyGroupName  = errors.New("group name is required")
	ErrEmptyMemberName = errors.New("member name is required")
	ErrDuplicateMember = errors.New("member name already in group")
)

// GroupService manages groups and their member directories.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Create creates a new group with an initial member roster.
func (s *GroupService) Create(ctx context.Context, name string, memberNames []string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyGroupName
	}

	members, err := buildMembers(memberNames, nil)
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:    name,
		Members: members,
	}

	// Save to storage (generates IDs and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members", len(group.Members))
	return group, nil
}

// Get retrieves a group with its members.
func (s *GroupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// List retrieves all groups.
func (s *GroupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// Rename updates a group's display name.
func (s *GroupService) Rename(ctx context.Context, groupID, name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyGroupName
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Name = name

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		slog.Error("UpdateGroup failed", "group_id", groupID, "error", err)
		return nil, err
	}

	return group, nil
}

// Delete removes a group and everything it owns.
func (s *GroupService) Delete(ctx context.Context, groupID string) error {
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return err
	}
	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// AddMembers adds new members to an existing group. Names must be
// non-empty and not collide with the current roster.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, memberNames []string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	members, err := buildMembers(memberNames, group.Members)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return group, nil
	}

	if err := s.store.AddMembers(ctx, groupID, members); err != nil {
		slog.Error("AddMembers failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Members added", "group_id", groupID, "count", len(members))
	return s.store.GetGroup(ctx, groupID)
}

// buildMembers validates names against each other and an existing roster.
func buildMembers(names []string, existing []models.Member) ([]models.Member, error) {
	taken := make(map[string]bool, len(existing)+len(names))
	for _, m := range existing {
		taken[m.Name] = true
	}

	var members []models.Member
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, ErrEmptyMemberName
		}
		if taken[name] {
			return nil, fmt.Errorf("%q: %w", name, ErrDuplicateMember)
		}
		taken[name] = true
		members = append(members, models.Member{Name: name})
	}

	return members, nil
}
