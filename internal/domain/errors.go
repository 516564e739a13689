package domain

import (
	"errors"
	"net/http"
)

// ErrorCode classifies business errors so handlers can pick a response status
// without inspecting messages.
type ErrorCode int

const (
	CodeNotFound      ErrorCode = 1
	CodeAlreadyExists ErrorCode = 2
	CodeValidation    ErrorCode = 3
	CodeInternal      ErrorCode = 4
	CodeUnauthorized  ErrorCode = 5
	CodeForbidden     ErrorCode = 6
)

// AppError is a business error carrying a code, a client-safe message, and an
// optional wrapped cause.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Sentinel errors for the common categories.
//
// Match categories with the Is* helpers rather than errors.Is: the helpers
// compare codes through errors.As, so they also match wrapped errors and
// fresh NewAppError values, while errors.Is only matches these exact
// pointers.
var (
	ErrNotFound      = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists = &AppError{Code: CodeAlreadyExists, Message: "already exists"}
	ErrValidation    = &AppError{Code: CodeValidation, Message: "validation error"}
	ErrInternal      = &AppError{Code: CodeInternal, Message: "internal error"}
	ErrUnauthorized  = &AppError{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden     = &AppError{Code: CodeForbidden, Message: "forbidden"}
)

// NewAppError builds an AppError wrapping err. The message is what clients
// see; err is for logs.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// CodeOf extracts the ErrorCode from err, or CodeInternal when err carries no
// AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func IsNotFound(err error) bool      { return is(err, CodeNotFound) }
func IsAlreadyExists(err error) bool { return is(err, CodeAlreadyExists) }
func IsValidation(err error) bool    { return is(err, CodeValidation) }
func IsInternal(err error) bool      { return is(err, CodeInternal) }
func IsUnauthorized(err error) bool  { return is(err, CodeUnauthorized) }
func IsForbidden(err error) bool     { return is(err, CodeForbidden) }

func is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

var httpStatusByCode = map[ErrorCode]int{
	CodeNotFound:      http.StatusNotFound,
	CodeAlreadyExists: http.StatusConflict,
	CodeValidation:    http.StatusBadRequest,
	CodeUnauthorized:  http.StatusUnauthorized,
	CodeForbidden:     http.StatusForbidden,
	CodeInternal:      http.StatusInternalServerError,
}

// HTTPStatusCode maps err to a response status. Anything that is not an
// AppError with a known code is a 500.
func HTTPStatusCode(err error) int {
	if status, ok := httpStatusByCode[CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
