// Package validation holds the pure form rules applied before every mutation.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/ticketapp/internal/domain"
)

// Ticket field names as used in error mappings.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldPriority    = "priority"
)

const (
	TitleMinLength       = 3
	TitleMaxLength       = 120
	DescriptionMaxLength = 2000
)

const (
	MsgTitleRequired   = "Title is required."
	MsgTitleTooShort   = "Title must be at least 3 characters."
	MsgTitleTooLong    = "Title must be at most 120 characters."
	MsgDescriptionLong = "Description is too long (max 2000 chars)."
	MsgInvalidPriority = "Invalid priority value."
)

// MsgInvalidStatus names the allowed status set.
var MsgInvalidStatus = "Status must be one of: " + joinStatuses()

// TicketFields is a partial ticket form. Nil fields are not validated.
type TicketFields struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// ValidateTicket checks only the fields present in f.
func ValidateTicket(f TicketFields) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if f.Title != nil {
		title := strings.TrimSpace(*f.Title)
		switch n := utf8.RuneCountInString(title); {
		case n == 0:
			errs[FieldTitle] = MsgTitleRequired
		case n < TitleMinLength:
			errs[FieldTitle] = MsgTitleTooShort
		case n > TitleMaxLength:
			errs[FieldTitle] = MsgTitleTooLong
		}
	}

	if f.Status != nil && !domain.TicketStatus(*f.Status).Valid() {
		errs[FieldStatus] = MsgInvalidStatus
	}

	if f.Description != nil && utf8.RuneCountInString(*f.Description) > DescriptionMaxLength {
		errs[FieldDescription] = MsgDescriptionLong
	}

	if f.Priority != nil && !domain.TicketPriority(*f.Priority).Valid() {
		errs[FieldPriority] = MsgInvalidPriority
	}

	return errs
}

func joinStatuses() string {
	names := make([]string, 0, len(domain.TicketStatuses))
	for _, s := range domain.TicketStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
