package types

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// ErrorTypeTransport covers network and decoding failures.
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeValidation covers client-side pre-submit failures.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeAuthorization covers 401-equivalent responses. These are
	// globally intercepted and force the logged-out state.
	ErrorTypeAuthorization ErrorType = "authorization"
	// ErrorTypeBusiness covers server-side rule rejections, surfaced
	// with the server-provided message.
	ErrorTypeBusiness ErrorType = "business"
)

// HMSError represents a structured error in the console
type HMSError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *HMSError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *HMSError) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a new transport error
func NewTransportError(code, message string, cause error) *HMSError {
	return &HMSError{Type: ErrorTypeTransport, Code: code, Message: message, Cause: cause}
}

// NewValidationError creates a new validation error
func NewValidationError(code, message string) *HMSError {
	return &HMSError{Type: ErrorTypeValidation, Code: code, Message: message}
}

// NewAuthorizationError creates a new authorization error
func NewAuthorizationError(code, message string) *HMSError {
	return &HMSError{Type: ErrorTypeAuthorization, Code: code, Message: message}
}

// NewBusinessError creates a new business-rule error carrying the
// server-provided message
func NewBusinessError(code, message string) *HMSError {
	return &HMSError{Type: ErrorTypeBusiness, Code: code, Message: message}
}

// IsAuthorization reports whether err is an authorization failure
// anywhere in its chain.
func IsAuthorization(err error) bool {
	var hmsErr *HMSError
	if errors.As(err, &hmsErr) {
		return hmsErr.Type == ErrorTypeAuthorization
	}
	return false
}

// UserMessage extracts the message to surface to the user, preferring a
// server-provided one and falling back to the supplied default.
func UserMessage(err error, fallback string) string {
	var hmsErr *HMSError
	if errors.As(err, &hmsErr) && hmsErr.Message != "" {
		return hmsErr.Message
	}
	return fallback
}
