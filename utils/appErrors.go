package utils

import (
	"errors"
	"fmt"
)

var (
	ErrValidationMissing = errors.New("required field missing")
	ErrAlreadyRegistered = errors.New("email already registered")
	ErrNotFound          = errors.New("not found")
	ErrPersistence       = errors.New("persistence failure")
	ErrInvalidInput      = errors.New("invalid input")
)

// PersistenceError wraps a storage failure. It matches ErrPersistence with errors.Is
// and still unwraps to the underlying driver error.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// Persistence returns nil for a nil err, otherwise a *PersistenceError for op.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// NotFound wraps ErrNotFound with the kind and id that could not be found.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
