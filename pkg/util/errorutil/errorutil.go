package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/persistence"
)

// LoginPath is where clients are sent when a protected view has no session.
const LoginPath = "/login"

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError carries a field mapping in its details.
func NewValidationError(message string, fields domain.FieldErrors) error {
	details := make(map[string]any, len(fields))
	for field, msg := range fields {
		details[field] = msg
	}
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

// NewSessionRequired tells the client to go to the login view.
func NewSessionRequired() error {
	return NewDomainError("UNAUTHORIZED", "You must be logged in to access this page.", http.StatusUnauthorized,
		map[string]any{"redirect": LoginPath})
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// Storage failure messages shown to the user.
const (
	MsgSaveFailed         = "Failed to save. Please try again."
	MsgStorageUnavailable = "Storage unavailable. Please try again."
)

// NewStorageFailure reports a write or read the store could not complete. Only failed writes
// say the save failed.
func NewStorageFailure(err error) error {
	message := MsgStorageUnavailable
	if errors.Is(err, persistence.ErrWriteFailed) {
		message = MsgSaveFailed
	}
	return &DomainError{
		Code:       "STORAGE_FAILURE",
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts domain and storage errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var validationErr *domain.ValidationError
	var mapped error
	switch {
	case errors.As(err, &validationErr):
		mapped = NewValidationError("Please fix the highlighted errors.", validationErr.Fields)
	case errors.Is(err, domain.ErrSessionRequired):
		mapped = NewSessionRequired()
	case errors.Is(err, domain.ErrInvalidCredentials):
		mapped = NewUnauthorized("Invalid email or password")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		mapped = NewConflict("Email already registered", nil)
	case errors.Is(err, domain.ErrTicketNotFound):
		mapped = NewNotFound("ticket", nil)
	case errors.Is(err, persistence.ErrStorageFailure):
		mapped = NewStorageFailure(err)
	default:
		mapped = NewInternalError(err)
	}
	return mapped.(*DomainError)
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
