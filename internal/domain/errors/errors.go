package errors

import (
	"net/http"

	"tycoon/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Account-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"No such account",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"This username is already registered",
		"",
	)

	ErrAccountLimitReached = NewBaseError(
		http.StatusConflict,
		"ACCOUNT_LIMIT_REACHED",
		"The maximum number of accounts has been reached",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Wrong username or password",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing error",
		"",
	)

	// Economy precondition failures. These signal unchanged state, never a crash.
	ErrInsufficientCoins = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_COINS",
		"Not enough bizCoins for this purchase",
		"",
	)

	ErrEnergyExhausted = NewBaseError(
		http.StatusConflict,
		"ENERGY_EXHAUSTED",
		"No energy left; wait for a refill or upgrade your plan",
		"",
	)

	ErrAlreadyOwned = NewBaseError(
		http.StatusConflict,
		"ALREADY_OWNED",
		"This unique item is already owned",
		"",
	)

	ErrNotOwned = NewBaseError(
		http.StatusConflict,
		"NOT_OWNED",
		"This item is not in the inventory",
		"",
	)

	ErrHQDowngrade = NewBaseError(
		http.StatusConflict,
		"HQ_DOWNGRADE",
		"Headquarters can only be upgraded to a higher rank",
		"",
	)

	ErrManagerAlreadyHired = NewBaseError(
		http.StatusConflict,
		"MANAGER_ALREADY_HIRED",
		"A manager already runs this business",
		"",
	)

	// Subscription gating
	ErrSubscriptionRequired = NewBaseError(
		http.StatusForbidden,
		"SUBSCRIPTION_REQUIRED",
		"This content requires a higher subscription tier",
		"",
	)

	ErrInvalidTier = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TIER",
		"Unknown subscription tier",
		"",
	)

	// Content / reference errors
	ErrCatalogEntryMissing = NewBaseError(
		http.StatusInternalServerError,
		"CATALOG_ENTRY_MISSING",
		"A required catalog entry does not exist",
		"",
	)

	ErrContentNotFound = NewBaseError(
		http.StatusNotFound,
		"CONTENT_NOT_FOUND",
		"No such lesson, game or book",
		"",
	)

	ErrClassroomNotFound = NewBaseError(
		http.StatusNotFound,
		"CLASSROOM_NOT_FOUND",
		"No such classroom",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// SnapshotWriteError represents a persistence failure, implementing the
// AppError interface.
type SnapshotWriteError struct {
	err     error
	details string
}

// NewSnapshotWriteError creates a persistence-related error
func NewSnapshotWriteError(err error, details string) AppError {
	return &SnapshotWriteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *SnapshotWriteError) Error() string {
	return errors.Wrap(e.err, "snapshot write failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *SnapshotWriteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *SnapshotWriteError) ErrorCode() string {
	return "SNAPSHOT_WRITE_FAILED"
}

// Message returns the user-friendly error message
func (e *SnapshotWriteError) Message() string {
	return "Saving progress failed"
}

// Details returns detailed error information
func (e *SnapshotWriteError) Details() string {
	return e.details
}
