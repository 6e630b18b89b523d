package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkhare/settleup/internal/models"
	"github.com/nkhare/settleup/internal/service"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenses *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// ExpenseRequest is the JSON body for creating or updating an expense.
type ExpenseRequest struct {
	Description    string   `json:"description"`
	Amount         float64  `json:"amount"`
	PayerID        string   `json:"payerId"`
	ParticipantIDs []string `json:"participantIds"`
}

// ExpenseResponse is an expense in API responses.
type ExpenseResponse struct {
	ID             string   `json:"id"`
	GroupID        string   `json:"groupId"`
	Description    string   `json:"description"`
	Amount         float64  `json:"amount"`
	PayerID        string   `json:"payerId"`
	ParticipantIDs []string `json:"participantIds"`
	CreatedAt      int64    `json:"createdAt"`
}

func toExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:             e.ID,
		GroupID:        e.GroupID,
		Description:    e.Description,
		Amount:         e.Amount,
		PayerID:        e.PayerID,
		ParticipantIDs: e.ParticipantIDs,
		CreatedAt:      e.CreatedAt,
	}
}

// Create records a new expense for a group.
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}

	expense := &models.Expense{
		GroupID:        c.Param("id"),
		Description:    req.Description,
		Amount:         req.Amount,
		PayerID:        req.PayerID,
		ParticipantIDs: req.ParticipantIDs,
	}

	created, err := h.expenses.Create(c.Request().Context(), expense)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toExpenseResponse(created))
}

// Get retrieves one expense.
func (h *ExpenseHandler) Get(c echo.Context) error {
	expense, err := h.expenses.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// ListByGroup retrieves a group's expenses, newest first.
func (h *ExpenseHandler) ListByGroup(c echo.Context) error {
	expenses, err := h.expenses.ListByGroup(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}

	resp := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toExpenseResponse(e)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update replaces an existing expense.
func (h *ExpenseHandler) Update(c echo.Context) error {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}

	expense := &models.Expense{
		ID:             c.Param("id"),
		Description:    req.Description,
		Amount:         req.Amount,
		PayerID:        req.PayerID,
		ParticipantIDs: req.ParticipantIDs,
	}

	updated, err := h.expenses.Update(c.Request().Context(), expense)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toExpenseResponse(updated))
}

// Delete removes an expense.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	if err := h.expenses.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
