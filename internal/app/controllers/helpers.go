package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"smartrent-http-service/internal/domain/services"
	"smartrent-http-service/internal/error/code"
	"smartrent-http-service/internal/error/response"
	"smartrent-http-service/pkg/logger"
)

// failFromService translates a service-layer error into an error response.
// Unrecognized errors are logged with context and surfaced as a generic
// storage failure so internal detail never reaches the client.
func failFromService(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		response.FailWithMessage(c, code.ErrValidation, err.Error(), nil)
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(c, "")
	case errors.Is(err, services.ErrNotPropertyOwner):
		response.Forbidden(c, "property does not belong to you")
	case errors.Is(err, services.ErrTenantNotScoped):
		response.Forbidden(c, "tenant is not registered with you")
	case errors.Is(err, services.ErrNotLeaseParty):
		response.Forbidden(c, "you are not a party to this lease")
	case errors.Is(err, services.ErrUserNotFound):
		response.Fail(c, code.ErrUserNotFound, nil)
	case errors.Is(err, services.ErrTenantNotFound):
		response.FailWithMessage(c, code.ErrUserNotFound, "tenant not found", nil)
	case errors.Is(err, services.ErrEmailTaken):
		response.Fail(c, code.ErrUserAlreadyExist, nil)
	case errors.Is(err, services.ErrPasswordMismatch):
		response.Fail(c, code.ErrPasswordIncorrect, nil)
	case errors.Is(err, services.ErrNotATenant):
		response.Fail(c, code.ErrNotATenant, nil)
	case errors.Is(err, services.ErrPropertyNotFound):
		response.Fail(c, code.ErrPropertyNotFound, nil)
	case errors.Is(err, services.ErrPropertyLeased):
		response.Fail(c, code.ErrPropertyLeased, nil)
	case errors.Is(err, services.ErrLeaseNotFound):
		response.Fail(c, code.ErrLeaseNotFound, nil)
	case errors.Is(err, services.ErrInvalidTransition):
		response.Fail(c, code.ErrInvalidTransition, nil)
	case errors.Is(err, services.ErrMaintenanceNotFound):
		response.Fail(c, code.ErrMaintenanceNotFound, nil)
	case errors.Is(err, services.ErrNotificationNotFound):
		response.Fail(c, code.ErrNotificationNotFound, nil)
	default:
		logger.Error("%s failed: %v", operation, err)
		response.ServerError(c)
	}
}

// coerceFloat parses a JSON value permissively: numbers pass through,
// numeric strings are parsed, anything else collapses to 0
func coerceFloat(v interface{}) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// coerceInt parses a JSON value permissively to an integer
func coerceInt(v interface{}) int {
	switch value := v.(type) {
	case float64:
		return int(value)
	case int:
		return value
	case string:
		i, err := strconv.Atoi(value)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// parseDate parses a date-only field (YYYY-MM-DD) in UTC
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
