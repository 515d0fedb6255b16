package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of application error.
type Code string

const (
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeAccountDeactivated  Code = "ACCOUNT_DEACTIVATED"
	CodeForbidden           Code = "FORBIDDEN"
	CodeNotFound            Code = "NOT_FOUND"
	CodeConflict            Code = "CONFLICT"
	CodeInvalidOtp          Code = "INVALID_OTP"
	CodeInvalidOrExpiredOtp Code = "INVALID_OR_EXPIRED_OTP"
	CodeInternal            Code = "INTERNAL_ERROR"
)

// Error is a typed application error carrying a code, a caller-facing
// message and an optional wrapped cause. The cause is for logs only and is
// never rendered to the caller.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error code to an HTTP status. Conflict maps to 400
// to match the existing API convention for duplicate email/phone.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation, CodeConflict, CodeInvalidOtp, CodeInvalidOrExpiredOtp:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeAccountDeactivated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (e *Error) IsInternal() bool {
	return e.Code == CodeInternal
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a cause to a new error of the given code.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Cause: err}
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

func AccountDeactivated() *Error {
	return New(CodeAccountDeactivated, "Account has been deactivated. Please contact support.")
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func Internal(message string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: message, Cause: cause}
}

// As extracts an *Error from err, if there is one in its chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
