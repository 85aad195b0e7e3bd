package handlers

import (
	stderrors "errors"
	"net/http"

	"pocketledger/internal/errors"
	"pocketledger/internal/models"
	"pocketledger/internal/services"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// All handlers must use the following standardized error response functions:
//
// 1. SendError - For client errors and business logic errors (4xx responses)
//    Use cases:
//    - Validation errors: SendError(c, errors.ValidationGeneral, errors.WithDetails("..."))
//    - Authentication errors: SendError(c, errors.AuthMissingToken)
//    - Not found errors: SendError(c, errors.AccountNotFound)
//    - Ledger consistency violations: SendError(c, errors.LedgerTypeMismatch)
//
// 2. SendServiceError - For errors coming back from the service layer; maps
//    known sentinel errors to their code and falls through to SendSystemError
//
// 3. SendSystemError - For system/internal errors (500 responses)
//
// DO NOT USE:
//    - echo.NewHTTPError() - Use SendError or SendSystemError instead
//    - Direct c.JSON() for errors - Use the helper functions
//    - return err without wrapping - Use SendSystemError to protect internal details

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errors.GetHTTPStatus(code), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, _ := errors.WrapSystemError(err, traceID)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// SendServiceError maps a service-layer error to its standardized error code.
// Unrecognized errors become SYSTEM_001 responses.
func SendServiceError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrReferenceNotFound):
		return SendError(c, errors.LedgerReferenceNotFound, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrTypeMismatch):
		return SendError(c, errors.LedgerTypeMismatch)
	case stderrors.Is(err, services.ErrTransactionAborted):
		return SendError(c, errors.LedgerTransactionAborted)
	case stderrors.Is(err, services.ErrTransactionNotFound):
		return SendError(c, errors.TransactionNotFound)
	case stderrors.Is(err, services.ErrAccountNotFound):
		return SendError(c, errors.AccountNotFound)
	case stderrors.Is(err, services.ErrCategoryNotFound):
		return SendError(c, errors.CategoryNotFound)
	case stderrors.Is(err, services.ErrBudgetNotFound):
		return SendError(c, errors.BudgetNotFound)
	case stderrors.Is(err, services.ErrGoalNotFound):
		return SendError(c, errors.GoalNotFound)
	case isModelValidationError(err):
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	default:
		return SendSystemError(c, err)
	}
}

// isModelValidationError reports whether err is one of the model-level
// validation sentinels that surface from gorm hooks.
func isModelValidationError(err error) bool {
	sentinels := []error{
		models.ErrInvalidTransactionType,
		models.ErrInvalidAmount,
		models.ErrTitleTooLong,
		models.ErrNoteTooLong,
		models.ErrNameRequired,
		models.ErrNameTooLong,
		models.ErrIconTooLong,
		models.ErrOwnerRequired,
		models.ErrInvalidBudgetAmount,
		models.ErrInvalidGoalAmount,
	}
	for _, sentinel := range sentinels {
		if stderrors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
