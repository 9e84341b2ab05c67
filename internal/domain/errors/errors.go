package errors

import (
	"net/http"

	"friendlocator/internal/errors"
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

// Is matches any BaseError carrying the same business code, so copies made by
// WithDetails still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
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
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"No user found with that email",
		"",
	)

	ErrUserUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_UPDATE_FAILED",
		"Failed to update user",
		"",
	)

	// Authentication-related errors
	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token",
		"",
	)

	ErrEmailNotVerified = NewBaseError(
		http.StatusForbidden,
		"EMAIL_NOT_VERIFIED",
		"Sign in with a verified email address to create a profile",
		"",
	)

	ErrEmailMismatch = NewBaseError(
		http.StatusForbidden,
		"EMAIL_MISMATCH",
		"Email does not match the signed-in account",
		"",
	)

	// Friend request errors
	ErrRequestNotFound = NewBaseError(
		http.StatusNotFound,
		"FRIEND_REQUEST_NOT_FOUND",
		"Friend request not found",
		"",
	)

	ErrSelfRequest = NewBaseError(
		http.StatusBadRequest,
		"SELF_REQUEST",
		"You cannot send a friend request to yourself",
		"",
	)

	ErrDuplicateRequest = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_REQUEST",
		"Friend request already sent",
		"",
	)

	ErrAlreadyFriends = NewBaseError(
		http.StatusConflict,
		"ALREADY_FRIENDS",
		"You are already friends with this user",
		"",
	)

	ErrUnauthorizedRequest = NewBaseError(
		http.StatusForbidden,
		"UNAUTHORIZED_REQUEST",
		"You are not authorized to respond to this request",
		"",
	)

	ErrRequestNotPending = NewBaseError(
		http.StatusConflict,
		"REQUEST_NOT_PENDING",
		"Friend request has already been answered",
		"",
	)

	// Friendship errors
	ErrNotFriends = NewBaseError(
		http.StatusForbidden,
		"NOT_FRIENDS",
		"You are not friends with this user",
		"",
	)

	// Location errors
	ErrLocationNotFound = NewBaseError(
		http.StatusNotFound,
		"LOCATION_NOT_FOUND",
		"Location not available",
		"",
	)

	ErrLocationSharingDisabled = NewBaseError(
		http.StatusConflict,
		"LOCATION_SHARING_DISABLED",
		"Location sharing is turned off",
		"",
	)

	// Alert errors
	ErrAlertNotFound = NewBaseError(
		http.StatusNotFound,
		"ALERT_NOT_FOUND",
		"Alert not found",
		"",
	)

	ErrAlertForbidden = NewBaseError(
		http.StatusForbidden,
		"ALERT_FORBIDDEN",
		"You are not allowed to modify this alert",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Unwrap returns the underlying store error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// PushDeliveryError represents a failed push delivery. The fan-out logs and swallows it.
type PushDeliveryError struct {
	Token string
	Err   error
}

// Error implements the error interface
func (e *PushDeliveryError) Error() string {
	return errors.Wrap(e.Err, "push delivery failed").Error()
}

// Unwrap returns the underlying delivery error
func (e *PushDeliveryError) Unwrap() error {
	return e.Err
}
