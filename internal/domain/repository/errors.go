package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict (duplicate, constraint violation).
	ErrConflict = errors.New("conflict")

	// ErrDuplicateEmail indicates account creation hit the unique email
	// index. Unwraps to ErrConflict so generic conflict handling still works.
	ErrDuplicateEmail = fmt.Errorf("email already registered: %w", ErrConflict)

	// ErrInvalidInput indicates the input data is invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// IsNotFound reports whether err is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateEmail reports whether err is ErrDuplicateEmail.
func IsDuplicateEmail(err error) bool {
	return errors.Is(err, ErrDuplicateEmail)
}

// IsConflict reports whether err is ErrConflict (including ErrDuplicateEmail).
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
