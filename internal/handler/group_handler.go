package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkhare/settleup/internal/models"
	"github.com/nkhare/settleup/internal/service"
)

// GroupHandler handles group HTTP requests
type GroupHandler struct {
	groups *service.GroupService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// GroupRequest is the JSON body for creating or renaming a group.
type GroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`
}

// MembersRequest is the JSON body for adding members to a group.
type MembersRequest struct {
	Members []string `json:"members"`
}

// MemberResponse is one member in API responses.
type MemberResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GroupResponse is a group in API responses.
type GroupResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Members   []MemberResponse `json:"members"`
	CreatedAt int64            `json:"createdAt"`
}

func toGroupResponse(group *models.Group) GroupResponse {
	members := make([]MemberResponse, len(group.Members))
	for i, m := range group.Members {
		members[i] = MemberResponse{ID: m.ID, Name: m.Name}
	}
	return GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		Members:   members,
		CreatedAt: group.CreatedAt,
	}
}

// Create creates a new group with an initial member roster.
func (h *GroupHandler) Create(c echo.Context) error {
	var req GroupRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}

	group, err := h.groups.Create(c.Request().Context(), req.Name, req.Members)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, toGroupResponse(group))
}

// Get retrieves one group.
func (h *GroupHandler) Get(c echo.Context) error {
	group, err := h.groups.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toGroupResponse(group))
}

// List retrieves all groups.
func (h *GroupHandler) List(c echo.Context) error {
	groups, err := h.groups.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	resp := make([]GroupResponse, len(groups))
	for i, group := range groups {
		resp[i] = toGroupResponse(group)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update renames a group.
func (h *GroupHandler) Update(c echo.Context) error {
	var req GroupRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}

	group, err := h.groups.Rename(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toGroupResponse(group))
}

// Delete removes a group.
func (h *GroupHandler) Delete(c echo.Context) error {
	if err := h.groups.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddMembers adds members to a group's roster.
func (h *GroupHandler) AddMembers(c echo.Context) error {
	var req MembersRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}
	if len(req.Members) == 0 {
		return NewValidationError(c, "At least one member name is required")
	}

	group, err := h.groups.AddMembers(c.Request().Context(), c.Param("id"), req.Members)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toGroupResponse(group))
}
