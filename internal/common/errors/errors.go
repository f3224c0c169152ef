// internal/common/errors/errors.go

// Package errors provides standardized error handling for the Workers Globe
// API client layer.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeNetworkFailure    ErrorCode = "NETWORK_FAILURE"
	ErrCodeSessionExpired    ErrorCode = "SESSION_EXPIRED"
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeAlreadyApplied    ErrorCode = "ALREADY_APPLIED"
	ErrCodeNotFound          ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeServerError       ErrorCode = "SERVER_ERROR"
	ErrCodeUserNotRegistered ErrorCode = "USER_NOT_REGISTERED"
	ErrCodeRequestInFlight   ErrorCode = "REQUEST_IN_FLIGHT"
	ErrCodeNoSession         ErrorCode = "NO_SESSION"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	HTTPStatus int       `json:"httpStatus,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// UserMessage returns the user-facing text for this error class. Views
// surface these verbatim; technical detail stays in logs.
func (e *StandardError) UserMessage() string {
	switch e.Code {
	case ErrCodeNetworkFailure:
		return "Cannot reach the server. Please check your connection and try again."
	case ErrCodeSessionExpired:
		return "Session expired. Please log in again."
	case ErrCodeValidationFailed:
		if e.Details != "" {
			return e.Details
		}
		return "Invalid data. Please check your information."
	case ErrCodeAlreadyApplied:
		return "You have already applied for this job."
	case ErrCodeNotFound:
		return "The requested item could not be found."
	case ErrCodeUserNotRegistered:
		return "User not found. Please register first."
	case ErrCodeRequestInFlight:
		return "A previous request is still being processed. Please wait."
	default:
		return "Something went wrong. Please try again."
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewNetworkFailureError wraps a transport-level failure (no response,
// timeout, connection refused).
func NewNetworkFailureError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkFailure,
		Message:   "Request could not reach the server",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionExpiredError creates the 401 error that tears down the session.
func NewSessionExpiredError(details string) *StandardError {
	return &StandardError{
		Code:       ErrCodeSessionExpired,
		Message:    "Authentication failed",
		Details:    details,
		HTTPStatus: 401,
		Timestamp:  time.Now().UTC(),
	}
}

// NewValidationError creates a 400 error carrying the server's detail text.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:       ErrCodeValidationFailed,
		Message:    "Request rejected by server validation",
		Details:    details,
		HTTPStatus: 400,
		Timestamp:  time.Now().UTC(),
	}
}

// NewAlreadyAppliedError marks a duplicate job application attempt.
func NewAlreadyAppliedError(jobID string) *StandardError {
	return &StandardError{
		Code:       ErrCodeAlreadyApplied,
		Message:    "Application already exists",
		Details:    fmt.Sprintf("jobId: %s", jobID),
		HTTPStatus: 400,
		Timestamp:  time.Now().UTC(),
	}
}

// NewNotFoundError creates a 404 error.
func NewNotFoundError(details string) *StandardError {
	return &StandardError{
		Code:       ErrCodeNotFound,
		Message:    "Resource not found",
		Details:    details,
		HTTPStatus: 404,
		Timestamp:  time.Now().UTC(),
	}
}

// NewServerError covers 5xx responses and unparseable bodies.
func NewServerError(status int, details string) *StandardError {
	return &StandardError{
		Code:       ErrCodeServerError,
		Message:    "Server error",
		Details:    details,
		HTTPStatus: status,
		Timestamp:  time.Now().UTC(),
	}
}

// NewUserNotRegisteredError is raised when OTP delivery is requested for an
// unknown email address.
func NewUserNotRegisteredError(email string) *StandardError {
	return &StandardError{
		Code:       ErrCodeUserNotRegistered,
		Message:    "No account exists for this email",
		Details:    fmt.Sprintf("email: %s", email),
		HTTPStatus: 404,
		Timestamp:  time.Now().UTC(),
	}
}

// NewRequestInFlightError blocks re-entrant submission of the same mutation.
func NewRequestInFlightError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestInFlight,
		Message:   "Operation already in progress",
		Details:   fmt.Sprintf("operation: %s", operation),
		Timestamp: time.Now().UTC(),
	}
}

// NewNoSessionError is returned by operations that require a login.
func NewNoSessionError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoSession,
		Message:   "No active session",
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}

// CodeOf returns the error code of err, or SERVER_ERROR for foreign errors.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Code
	}
	return ErrCodeServerError
}
