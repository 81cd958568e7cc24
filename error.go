package webextract

import (
	"errors"
	"fmt"
)

// Application error codes. These double as the wire-level codes of the
// response envelope, so no translation layer sits between domain errors
// and client-visible errors.
const (
	EINVALID     = "INVALID_INPUT"  // input validation failed
	EUPSTREAM    = "UPSTREAM_ERROR" // fetch collaborator returned a bad status or failed to connect
	ERATELIMITED = "RATE_LIMITED"   // upstream refused the request due to rate limiting
	ETIMEOUT     = "TIMEOUT"        // fetch abandoned before completion
	EPARSE       = "PARSE_ERROR"    // document loader could not recover a tree from the markup
	EINTERNAL    = "INTERNAL_ERROR" // anything unexpected
)

// Error represents an application error. Errors carry a machine-readable
// code, a human-readable message, and optional structured details.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string

	// Details holds optional structured context (offending URL,
	// configured timeout, etc.).
	Details map[string]any
}

// Error implements the error interface. Not used by the application itself,
// only for logging and interop with code that expects plain errors.
func (e *Error) Error() string {
	return fmt.Sprintf("webextract error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper for constructing an Error with formatting.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorDetails unwraps an application error and returns its details map.
// Returns nil for nil and non-application errors.
func ErrorDetails(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
