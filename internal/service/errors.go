package service

import (
	"errors"
	"fmt"
)

// Error kinds, tested with errors.Is.
var (
	ErrBadInput     = errors.New("bad input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// Error is a domain failure with a client-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// BadInput returns an ErrBadInput failure.
func BadInput(format string, args ...any) error { return newError(ErrBadInput, format, args...) }

// NotFound returns an ErrNotFound failure.
func NotFound(format string, args ...any) error { return newError(ErrNotFound, format, args...) }

// Forbidden returns an ErrForbidden failure.
func Forbidden(format string, args ...any) error { return newError(ErrForbidden, format, args...) }

// Unauthorized returns an ErrUnauthorized failure.
func Unauthorized(format string, args ...any) error {
	return newError(ErrUnauthorized, format, args...)
}

// Conflict returns an ErrConflict failure.
func Conflict(format string, args ...any) error { return newError(ErrConflict, format, args...) }
