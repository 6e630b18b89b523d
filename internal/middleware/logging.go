// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger logs every request with method, path, status and duration.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)
			if err != nil {
				// Let echo's error handler assign the status before logging.
				c.Error(err)
			}

			status := c.Response().Status
			attrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", status,
				"remote_addr", c.RealIP(),
				"duration_ms", time.Since(start).Milliseconds(),
			}

			switch {
			case err != nil || status >= 500:
				slog.Error("Request failed", append(attrs, "error", err)...)
			case status >= 400:
				slog.Warn("Request rejected", attrs...)
			default:
				slog.Info("Request completed", attrs...)
			}

			return nil
		}
	}
}
