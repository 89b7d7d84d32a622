package model

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage error")
)

// Error is a domain failure with a client-safe message.
type Error struct {
	kind    error
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns one of ErrValidation, ErrNotFound, ErrConflict or ErrStorage.
func (e *Error) Kind() error {
	return e.kind
}

func NewValidationError(format string, args ...any) *Error {
	return &Error{kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *Error {
	return &Error{kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) *Error {
	return &Error{kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// NewStorageError wraps an unexpected backend failure. The cause is kept
// for logging and never shown to clients.
func NewStorageError(op string, cause error) *Error {
	return &Error{kind: ErrStorage, Message: op, cause: cause}
}
