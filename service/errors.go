package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound row missing or owned by another user
	ErrNotFound = errors.New("record not found")
	// ErrConflict unique key already taken
	ErrConflict = errors.New("already exists")
)

// ValidationError rejected input; nothing was written
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err wraps a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
