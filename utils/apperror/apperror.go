package apperror

import (
	"errors"
	"net/http"
)

// Codes rendered in the "code" field of error bodies.
const (
	CodeValidation = "validation"
	CodeNotFound   = "not_found"
	CodeAuth       = "unauthorized"
	CodeForbidden  = "forbidden"
	CodeConflict   = "conflict"
	CodeDuplicate  = "duplicate"
	CodeRateLimit  = "rate_limited"
	CodeInternal   = "internal"
)

// Error carries an HTTP status, a machine code and a message safe to show
// to clients. Cause is only ever logged.
type Error struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches sentinel errors by status, code and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Code == t.Code && e.Message == t.Message
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, CodeValidation, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, CodeNotFound, message)
}

func Auth(message string) *Error {
	return New(http.StatusUnauthorized, CodeAuth, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, CodeForbidden, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, CodeConflict, message)
}

// Duplicate is a conflict caused by an entry that already exists.
func Duplicate(message string) *Error {
	return New(http.StatusConflict, CodeDuplicate, message)
}

// Internal hides cause behind a generic message.
func Internal(cause error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "An unexpected error occurred.",
		Cause:   cause,
	}
}

// From returns err as an *Error, wrapping unknown errors as Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// StatusOf returns the HTTP status err maps to.
func StatusOf(err error) int {
	return From(err).Status
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Status == http.StatusNotFound
}

// IsConflict reports whether err is a conflict or duplicate error.
func IsConflict(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Status == http.StatusConflict
}
