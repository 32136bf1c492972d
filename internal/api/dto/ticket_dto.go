package dto

import (
	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/validation"
)

// TicketRequest is the create, update and validate payload. Omitted fields stay nil.
type TicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

// Fields converts the payload for the validator and the ticket service.
func (r TicketRequest) Fields() validation.TicketFields {
	return validation.TicketFields{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
	}
}

// TicketResponse mirrors the stored ticket.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority,omitempty"`
	CreatedAt   string                `json:"createdAt"`
	UpdatedAt   *string               `json:"updatedAt,omitempty"`
	CreatedBy   string                `json:"createdBy,omitempty"`
}

// ValidationResponse reports the outcome of a dry-run validation.
type ValidationResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// DashboardResponse is the landing summary.
type DashboardResponse struct {
	UserName string             `json:"userName"`
	Stats    domain.TicketStats `json:"stats"`
}
