package errors

import (
	"errors"
)

// Error kinds. Concrete errors wrap one of them so callers can classify
// with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrCapacity   = errors.New("capacity exceeded")
	ErrGeneration = errors.New("generation failure")
	ErrPermission = errors.New("permission denied")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// New returns an error with the given message that matches kind.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Kind reports which of the known kinds err belongs to, ErrInternal otherwise.
func Kind(err error) error {
	for _, kind := range []error{ErrValidation, ErrConflict, ErrCapacity, ErrGeneration, ErrPermission, ErrNotFound} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}
