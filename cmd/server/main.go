package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nkhare/settleup/internal/config"
	"github.com/nkhare/settleup/internal/handler"
	"github.com/nkhare/settleup/internal/middleware"
	"github.com/nkhare/settleup/internal/service"
	"github.com/nkhare/settleup/internal/storage/sqlite"
	"github.com/nkhare/settleup/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Metrics())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	groupHandler := handler.NewGroupHandler(service.NewGroupService(store))
	expenseHandler := handler.NewExpenseHandler(service.NewExpenseService(store))
	settlementHandler := handler.NewSettlementHandler(service.NewSettlementService(store))
	handler.RegisterRoutes(e, groupHandler, expenseHandler, settlementHandler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	go func() {
		slog.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
