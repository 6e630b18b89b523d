package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkhare/settleup/internal/calculator"
	"github.com/nkhare/settleup/internal/export"
	"github.com/nkhare/settleup/internal/models"
	"github.com/nkhare/settleup/internal/service"
)

// SettlementHandler handles balance, settlement-plan and recorded-payment
// HTTP requests.
type SettlementHandler struct {
	settlements *service.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(settlements *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlements: settlements}
}

// BalanceResponse is one member's accrued position.
type BalanceResponse struct {
	MemberID  string  `json:"memberId"`
	Name      string  `json:"name"`
	TotalPaid float64 `json:"totalPaid"`
	TotalOwed float64 `json:"totalOwed"`
	Net       float64 `json:"net"`
}

// TransferResponse is one planned payment instruction.
type TransferResponse struct {
	FromID   string  `json:"fromId"`
	FromName string  `json:"fromName"`
	ToID     string  `json:"toId"`
	ToName   string  `json:"toName"`
	Amount   float64 `json:"amount"`
}

// SettlementRequest is the JSON body for recording a payment.
type SettlementRequest struct {
	FromID string  `json:"fromId"`
	ToID   string  `json:"toId"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

// SettlementResponse is a recorded payment in API responses.
type SettlementResponse struct {
	ID        string  `json:"id"`
	GroupID   string  `json:"groupId"`
	FromID    string  `json:"fromId"`
	ToID      string  `json:"toId"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note,omitempty"`
	CreatedAt int64   `json:"createdAt"`
}

func toTransferResponses(transfers []calculator.Transfer) []TransferResponse {
	resp := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		resp[i] = TransferResponse{
			FromID:   t.FromID,
			FromName: t.FromName,
			ToID:     t.ToID,
			ToName:   t.ToName,
			Amount:   t.Amount,
		}
	}
	return resp
}

func toSettlementResponse(s *models.Settlement) SettlementResponse {
	return SettlementResponse{
		ID:        s.ID,
		GroupID:   s.GroupID,
		FromID:    s.FromID,
		ToID:      s.ToID,
		Amount:    s.Amount,
		Note:      s.Note,
		CreatedAt: s.CreatedAt,
	}
}

// Balances returns per-member balances for a group.
func (h *SettlementHandler) Balances(c echo.Context) error {
	balances, err := h.settlements.Balances(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = BalanceResponse{
			MemberID:  b.UserID,
			Name:      b.Name,
			TotalPaid: b.TotalPaid,
			TotalOwed: b.TotalOwed,
			Net:       b.Net,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Plan returns the transfer list that settles the group's balances.
func (h *SettlementHandler) Plan(c echo.Context) error {
	transfers, err := h.settlements.Plan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toTransferResponses(transfers))
}

// ExportPlan streams the settlement plan as a CSV download.
func (h *SettlementHandler) ExportPlan(c echo.Context) error {
	transfers, err := h.settlements.Plan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="settlement-plan.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteTransfersCSV(c.Response(), transfers)
}

// Record validates and persists an actual payment between two members.
func (h *SettlementHandler) Record(c echo.Context) error {
	var req SettlementRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}

	settlement := &models.Settlement{
		GroupID: c.Param("id"),
		FromID:  req.FromID,
		ToID:    req.ToID,
		Amount:  req.Amount,
		Note:    req.Note,
	}

	created, err := h.settlements.Record(c.Request().Context(), settlement)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toSettlementResponse(created))
}

// History retrieves a group's recorded payments, newest first.
func (h *SettlementHandler) History(c echo.Context) error {
	settlements, err := h.settlements.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}

	resp := make([]SettlementResponse, len(settlements))
	for i, s := range settlements {
		resp[i] = toSettlementResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete removes a recorded payment.
func (h *SettlementHandler) Delete(c echo.Context) error {
	if err := h.settlements.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
