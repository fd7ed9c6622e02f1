// Package apperr provides the domain error kinds surfaced across the catalog
// mirror and matcher: bad input, not-found, upstream failure, and missing
// configuration.
//
// Usage:
//
//	// In a component - return typed errors
//	if id == 0 {
//	    return apperr.BadInput("No ID specified.")
//	}
//
//	// In a handler - check with errors.Is
//	if errors.Is(err, apperr.ErrNotFound) {
//	    response.HandleError(w, err, logger)
//	    return
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *apperr.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case apperr.CodeUpstreamFailure:
//	        log.Error("upstream failure", "error", domainErr)
//	    }
//	}
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error kind, one of the four kinds
// named in the error handling design: BadInput, NotFound, UpstreamFailure,
// ConfigMissing.
type Code string

const (
	CodeBadInput        Code = "BAD_INPUT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeUpstreamFailure Code = "UPSTREAM_FAILURE"
	CodeConfigMissing   Code = "CONFIG_MISSING"
)

// HTTPStatus returns the transport-level status code for a Code. The HTTP
// surface itself always answers 200 with an ErrorResponse envelope for
// application-level errors (see internal/response); HTTPStatus exists for
// transports that do want a distinct status (logging, non-JSON callers).
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeBadInput:
		return http.StatusBadRequest
	case CodeUpstreamFailure:
		return http.StatusBadGateway
	case CodeConfigMissing:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error carrying a Code and a client-facing message.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error  // unexported, for wrapping
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error. Matches if target is an
// *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause wraps an underlying error, preserving Code and Message.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrBadInput        = &Error{Code: CodeBadInput, Message: "bad input"}
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "not found"}
	ErrUpstreamFailure = &Error{Code: CodeUpstreamFailure, Message: "upstream failure"}
	ErrConfigMissing   = &Error{Code: CodeConfigMissing, Message: "configuration missing"}
)

// BadInput creates a bad-input error: missing body, missing required
// field, empty search term.
func BadInput(msg string) *Error {
	return &Error{Code: CodeBadInput, Message: msg}
}

// BadInputf creates a bad-input error with a formatted message.
func BadInputf(format string, args ...any) *Error {
	return &Error{Code: CodeBadInput, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not-found error: an unknown id in GetGame.
// GetMetadata never returns this kind; a non-match there is a nil payload.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// UpstreamFailure creates an upstream-failure error: non-2xx response,
// malformed body, or count-parse failure. Callers should log this before
// returning it; no partial data is committed alongside it.
func UpstreamFailure(msg string) *Error {
	return &Error{Code: CodeUpstreamFailure, Message: msg}
}

// UpstreamFailuref creates an upstream-failure error with a formatted message.
func UpstreamFailuref(format string, args ...any) *Error {
	return &Error{Code: CodeUpstreamFailure, Message: fmt.Sprintf(format, args...)}
}

// ConfigMissing creates a fatal configuration error, raised at startup or
// by ConfigureWebhooks when WebHookRootAddress/WebHookSecret are absent.
func ConfigMissing(msg string) *Error {
	return &Error{Code: CodeConfigMissing, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
