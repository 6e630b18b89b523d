package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkhare/settleup/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, groupHandler *GroupHandler, expenseHandler *ExpenseHandler, settlementHandler *SettlementHandler) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", middleware.MetricsHandler())

	// API version 1
	api := e.Group("/api/v1")

	// Group routes
	groups := api.Group("/groups")
	groups.POST("", groupHandler.Create)
	groups.GET("", groupHandler.List)
	groups.GET("/:id", groupHandler.Get)
	groups.PUT("/:id", groupHandler.Update)
	groups.DELETE("/:id", groupHandler.Delete)
	groups.POST("/:id/members", groupHandler.AddMembers)

	// Expense routes
	groups.POST("/:id/expenses", expenseHandler.Create)
	groups.GET("/:id/expenses", expenseHandler.ListByGroup)
	expenses := api.Group("/expenses")
	expenses.GET("/:id", expenseHandler.Get)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	// Balance and settlement routes
	groups.GET("/:id/balances", settlementHandler.Balances)
	groups.GET("/:id/settlements/plan", settlementHandler.Plan)
	groups.GET("/:id/settlements/plan/export", settlementHandler.ExportPlan)
	groups.POST("/:id/settlements", settlementHandler.Record)
	groups.GET("/:id/settlements", settlementHandler.History)
	settlements := api.Group("/settlements")
	settlements.DELETE("/:id", settlementHandler.Delete)
}
