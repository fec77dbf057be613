package apperrors

import "errors"

// Common errors
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrNoActiveSession    = errors.New("no active session")

	// Account errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Record errors
var (
	ErrRecordNotFound      = errors.New("student record not found")
	ErrSemesterNotFound    = errors.New("semester not found")
	ErrSemesterNumberTaken = errors.New("semester number already exists in record")
)

// Storage errors
var (
	ErrStorageFailure = errors.New("storage failure")
)

// NewValidationError creates a validation error carrying a field-level message.
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewStorageError wraps an underlying key-value store failure. The operation
// that hit it is aborted; nothing is retried.
func NewStorageError(cause error) error {
	return &CustomError{
		Err:     ErrStorageFailure,
		Message: cause.Error(),
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
