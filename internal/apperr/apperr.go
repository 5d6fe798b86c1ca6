package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Error codes carried alongside the status.
const (
	CodeInvalidInput = "invalid_input"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeInternal     = "internal"
)

// Error is the structured failure returned to RPC callers.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func InvalidInput(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeInvalidInput, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, CodeConflict, fmt.Errorf(format, args...))
}

// CodeFor returns the code matching an HTTP status.
func CodeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeInvalidInput
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	default:
		return CodeInternal
	}
}

// From converts any error into an *Error. Errors that are not already
// structured keep their message and get status 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return New(http.StatusNotFound, CodeNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return New(http.StatusConflict, CodeConflict, err)
	}
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// StatusOf returns the status an error maps to.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return From(err).Status
}

func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

func IsConflict(err error) bool { return StatusOf(err) == http.StatusConflict }

func IsInvalidInput(err error) bool { return StatusOf(err) == http.StatusBadRequest }
