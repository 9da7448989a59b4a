// Package errors provides custom error types for the Gastos API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
// Clients only ever see the message; the code is for logging and tests.
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

// Authentication & authorization errors.
var (
	ErrAccessDenied       = &AppError{Code: "ACCESS_DENIED", Message: "Access denied", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "INVALID_TOKEN", Message: "Invalid token", StatusCode: http.StatusForbidden}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Internal server error", StatusCode: http.StatusInternalServerError}
)

// User & tenant errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusBadRequest}
	ErrTenantNotFound = &AppError{Code: "TENANT_NOT_FOUND", Message: "Tenant not found", StatusCode: http.StatusNotFound}
	ErrFamilyNotFound = &AppError{Code: "FAMILY_NOT_FOUND", Message: "Family not found", StatusCode: http.StatusNotFound}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
)

// Expense errors.
var (
	ErrExpenseNotFound          = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrRecurringExpenseNotFound = &AppError{Code: "RECURRING_EXPENSE_NOT_FOUND", Message: "Recurring expense not found", StatusCode: http.StatusNotFound}
	ErrMerchantNotFound         = &AppError{Code: "MERCHANT_NOT_FOUND", Message: "Merchant not found", StatusCode: http.StatusNotFound}
)

// Family member errors.
var (
	ErrMemberNotFound  = &AppError{Code: "MEMBER_NOT_FOUND", Message: "Family member not found", StatusCode: http.StatusNotFound}
	ErrDuplicateMember = &AppError{Code: "DUPLICATE_MEMBER", Message: "Member already registered in this family", StatusCode: http.StatusBadRequest}
)

// Invitation errors.
var (
	ErrInvitationNotFound = &AppError{Code: "INVITATION_NOT_FOUND", Message: "Invitation not found", StatusCode: http.StatusNotFound}
	ErrInvitationExpired  = &AppError{Code: "INVITATION_EXPIRED", Message: "Invitation has expired", StatusCode: http.StatusBadRequest}
	ErrInvitationUsed     = &AppError{Code: "INVITATION_USED", Message: "Invitation has already been accepted", StatusCode: http.StatusBadRequest}
)
