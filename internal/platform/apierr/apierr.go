package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	for _, msg := range e.Fields {
		return msg
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation builds a 400 with field-keyed messages. Conflict-style domain
// errors (deleted parent, depth cap, name collisions) use this kind too.
func Validation(fields map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "validation_error", Fields: fields}
}

func ValidationField(field, msg string) *Error {
	return Validation(map[string]string{field: msg})
}

func NotFound(entity string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Err: fmt.Errorf("%s not found", entity)}
}

func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "unauthorized", Err: errors.New(msg)}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "forbidden", Err: errors.New(msg)}
}

// From extracts an *Error from err, or wraps it as a generic 500 so internal
// details never reach the caller.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Status: http.StatusInternalServerError, Code: "internal_error", Err: errors.New("internal server error")}
}
