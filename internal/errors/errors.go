// Package errors provides custom error types for the BetMetric API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so wrapped
// copies of a sentinel still match it with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Bet errors.
var (
	ErrBetNotFound              = &AppError{Code: "BET_NOT_FOUND", Message: "Bet not found", StatusCode: http.StatusNotFound}
	ErrParentBetNotFound        = &AppError{Code: "PARENT_BET_NOT_FOUND", Message: "Parent bet not found", StatusCode: http.StatusNotFound}
	ErrDuplicateBetName         = &AppError{Code: "DUPLICATE_BET_NAME", Message: "Bet with this name already registered", StatusCode: http.StatusBadRequest}
	ErrInvalidBudget            = &AppError{Code: "INVALID_BUDGET", Message: "Budget must be greater than 0", StatusCode: http.StatusBadRequest}
	ErrInvalidBetStatus         = &AppError{Code: "INVALID_BET_STATUS", Message: "Unsupported bet status", StatusCode: http.StatusBadRequest}
	ErrBetCycle                 = &AppError{Code: "BET_CYCLE", Message: "A bet cannot be its own ancestor", StatusCode: http.StatusBadRequest}
	ErrParentBudgetExceeded     = &AppError{Code: "PARENT_BUDGET_EXCEEDED", Message: "Child budget exceeds parent remaining allocation", StatusCode: http.StatusBadRequest}
	ErrChildBudgetsExceedBudget = &AppError{Code: "CHILD_BUDGETS_EXCEED_BUDGET", Message: "Bet budget cannot be lower than allocated child budgets", StatusCode: http.StatusBadRequest}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
)

// Pipeline errors.
var (
	ErrPipelineNotConfigured = &AppError{Code: "PIPELINE_NOT_CONFIGURED", Message: "Pipeline endpoints are not configured", StatusCode: http.StatusServiceUnavailable}
	ErrInvalidAPIKey         = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
)
