package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by repositories, services and transports.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateName      = errors.New("guest name already exists")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrUnidentified       = errors.New("connection has no resolved guest")
	ErrPlusOneNotAllowed  = errors.New("guest is not invited with a plus-one")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoResponse is a known guest without an RSVP. It matches ErrNotFound.
	ErrNoResponse = fmt.Errorf("no rsvp yet: %w", ErrNotFound)
)

// ValidationError lists the fields that failed validation. It matches
// ErrInvalidInput with errors.Is.
type ValidationError struct {
	Fields []string
}

// NewValidationError returns nil when there are no failing fields.
func NewValidationError(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// IsDuplicate reports whether err is one of the unique-key violations.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateName) || errors.Is(err, ErrDuplicateEmail)
}
