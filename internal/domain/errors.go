package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionRequired    = errors.New("you must be logged in to access this page")
	ErrTicketNotFound     = errors.New("ticket not found")
)

// FieldErrors maps a form field name to a human-readable rule violation.
type FieldErrors map[string]string

// ValidationError wraps field errors so they can travel as an error value.
type ValidationError struct {
	Fields FieldErrors
}

// NewValidationError returns nil when fields is empty.
func NewValidationError(fields FieldErrors) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
