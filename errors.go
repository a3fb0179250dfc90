package youtrack

import (
	"errors"
	"fmt"
)

// ErrorCode classifies YouTrack client errors.
type ErrorCode int

const (
	// ErrCodeClient indicates a generic request failure: an unexpected
	// status code, a malformed response body, or a transport-level error.
	ErrCodeClient ErrorCode = iota
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeUnauthorized indicates the bearer token was rejected (401).
	ErrCodeUnauthorized
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeClient:
		return "client"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error is a structured YouTrack client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 for transport-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("youtrack: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("youtrack: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// newNotFoundError creates a not-found error.
func newNotFoundError(method, path string, body []byte) *Error {
	return &Error{
		StatusCode: 404,
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s %s", method, path),
		Body:       body,
	}
}

// newUnauthorizedError creates an unauthorized error.
func newUnauthorizedError(method, path string, body []byte) *Error {
	return &Error{
		StatusCode: 401,
		Code:       ErrCodeUnauthorized,
		Message:    fmt.Sprintf("%s %s", method, path),
		Body:       body,
	}
}

// newStatusError creates a generic error for an unexpected status code.
func newStatusError(statusCode int, method, path string, body []byte) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeClient,
		Message:    fmt.Sprintf("unexpected status for %s %s", method, path),
		Body:       body,
	}
}

// newTransportError creates an error for a failure below the HTTP layer.
func newTransportError(method, path string, err error) *Error {
	return &Error{
		Code:    ErrCodeClient,
		Message: fmt.Sprintf("%s %s: %v", method, path, err),
		Err:     err,
	}
}

// newDecodeError creates an error for a 2xx response whose body could not
// be decoded.
func newDecodeError(statusCode int, method, path string, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeClient,
		Message:    fmt.Sprintf("failed to decode response from %s %s: %v", method, path, err),
		Err:        err,
	}
}

// newRequestError creates an error for a request that could not be built.
func newRequestError(msg string) *Error {
	return &Error{
		Code:    ErrCodeClient,
		Message: msg,
	}
}

// classifyStatus converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func classifyStatus(statusCode int, method, path string, body []byte) *Error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == 401:
		return newUnauthorizedError(method, path, body)
	case statusCode == 404:
		return newNotFoundError(method, path, body)
	default:
		return newStatusError(statusCode, method, path, body)
	}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotFound
}

// IsUnauthorized checks if an error is an unauthorized error.
func IsUnauthorized(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeUnauthorized
}

// IsClientError checks if an error is a generic client error.
func IsClientError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeClient
}
