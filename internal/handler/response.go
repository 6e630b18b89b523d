// Package handler exposes the HTTP API surface.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkhare/settleup/internal/calculator"
	"github.com/nkhare/settleup/internal/service"
	"github.com/nkhare/settleup/internal/storage"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Error types
const (
	ErrorTypeValidation = "https://settleup.dev/errors/validation"
	ErrorTypeNotFound   = "https://settleup.dev/errors/not-found"
	ErrorTypeInternal   = "https://settleup.dev/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal server error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// validationErrs are the service and calculator sentinels that indicate
// bad caller input rather than a server fault.
var validationErrs = []error{
	service.ErrEmptyGroupName,
	service.ErrEmptyMemberName,
	service.ErrDuplicateMember,
	service.ErrEmptyParticipants,
	service.ErrNegativeAmount,
	service.ErrNotAMember,
	service.ErrSelfSettlement,
	service.ErrNonPositiveAmount,
	calculator.ErrNoParticipants,
	calculator.ErrNegativeAmount,
	calculator.ErrUnknownUser,
}

// serviceError translates a service-layer error to a problem response.
func serviceError(c echo.Context, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return NewNotFoundError(c, err.Error())
	}
	for _, sentinel := range validationErrs {
		if errors.Is(err, sentinel) {
			return NewValidationError(c, err.Error())
		}
	}
	return NewInternalError(c, "Something went wrong")
}
