// Package apierr defines the normalized error every gateway call rejects
// with. Application code never sees a raw transport error; it branches on
// the Code and StatusCode of an *Error instead.
package apierr

import "fmt"

// Code classifies a normalized API error.
type Code string

const (
	CodeNetwork      Code = "NETWORK_ERROR"
	CodeTimeout      Code = "TIMEOUT_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeServer       Code = "SERVER_ERROR"
	CodeUnknown      Code = "UNKNOWN_ERROR"
)

// FieldError carries a per-field validation message from the server.
type FieldError struct {
	Field      string `json:"field"`
	Message    string `json:"message"`
	Constraint string `json:"constraint,omitempty"`
}

// Error is the uniform error shape produced by the HTTP gateway.
type Error struct {
	Message    string       `json:"message"`
	Code       Code         `json:"code"`
	StatusCode int          `json:"statusCode"`
	Errors     []FieldError `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// New creates a normalized error.
func New(message string, code Code, statusCode int) *Error {
	return &Error{Message: message, Code: code, StatusCode: statusCode}
}

// Network creates the zero-status error used when no response was received.
func Network() *Error {
	return New("Network error. Please check your internet connection.", CodeNetwork, 0)
}

// Timeout creates the error used when the request deadline elapsed.
func Timeout() *Error {
	return New("Request timed out. Please try again.", CodeTimeout, 0)
}

// CodeForStatus maps an HTTP status code onto the taxonomy.
func CodeForStatus(status int) Code {
	switch status {
	case 401:
		return CodeUnauthorized
	case 403:
		return CodeForbidden
	case 404:
		return CodeNotFound
	case 422:
		return CodeValidation
	case 500, 503:
		return CodeServer
	default:
		return CodeUnknown
	}
}

// MessageForStatus returns the fixed human-readable message for statuses the
// gateway rewrites, or "" when the server-provided message should pass
// through verbatim.
func MessageForStatus(status int) string {
	switch status {
	case 403:
		return "You do not have permission to perform this action."
	case 404:
		return "The requested resource was not found."
	case 422:
		return "Validation failed. Please check your input."
	case 500:
		return "Server error. Please try again later."
	case 503:
		return "Service is temporarily unavailable."
	default:
		return ""
	}
}
