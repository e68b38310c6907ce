package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"sme-finance-engine/internal/domain/actor"
	"sme-finance-engine/internal/domain/creditscore"
	"sme-finance-engine/internal/domain/financerequest"
	"sme-finance-engine/internal/domain/invoice"
	"sme-finance-engine/internal/domain/sme"
	"sme-finance-engine/internal/domain/uow"
	"sme-finance-engine/internal/usecase/financing"
)

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// statusFor maps the domain error taxonomy to HTTP. Validation failures
// are 422 (safe to retry after correcting input), conflicts are 409 (not
// retryable with the same input), storage faults are 503 (retryable).
func statusFor(err error) int {
	switch {
	case errors.Is(err, financerequest.ErrInvalidAmount),
		errors.Is(err, financerequest.ErrInvoiceNotEligible),
		errors.Is(err, financing.ErrInvalidOutcome):
		return http.StatusUnprocessableEntity
	case errors.Is(err, financerequest.ErrDuplicateActiveRequest),
		errors.Is(err, financerequest.ErrAlreadyDecided):
		return http.StatusConflict
	case errors.Is(err, financerequest.ErrNotFound),
		errors.Is(err, invoice.ErrNotFound),
		errors.Is(err, sme.ErrNotFound),
		errors.Is(err, creditscore.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, actor.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, uow.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}
