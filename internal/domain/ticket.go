package domain

import (
	"encoding/json"
	"time"
)

// TimestampLayout always writes three fractional digits, like JavaScript's toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in UTC with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketStatuses lists the allowed statuses in display order.
var TicketStatuses = []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed}

// Valid reports whether s is one of the allowed statuses.
func (s TicketStatus) Valid() bool {
	for _, allowed := range TicketStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// TicketPriority enumerates ticket urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// TicketPriorities lists the allowed priorities.
var TicketPriorities = []TicketPriority{TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh}

// Valid reports whether p is one of the allowed priorities.
func (p TicketPriority) Valid() bool {
	for _, allowed := range TicketPriorities {
		if p == allowed {
			return true
		}
	}
	return false
}

// Ticket is a unit of trackable work. JSON tags match the persisted layout.
type Ticket struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"priority,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   *time.Time     `json:"updatedAt,omitempty"`
	CreatedBy   string         `json:"createdBy,omitempty"`
}

// MarshalJSON writes createdAt and updatedAt with millisecond precision.
func (t Ticket) MarshalJSON() ([]byte, error) {
	type plain Ticket
	out := struct {
		plain
		CreatedAt string  `json:"createdAt"`
		UpdatedAt *string `json:"updatedAt,omitempty"`
	}{plain: plain(t), CreatedAt: FormatTimestamp(t.CreatedAt)}
	if t.UpdatedAt != nil {
		updated := FormatTimestamp(*t.UpdatedAt)
		out.UpdatedAt = &updated
	}
	return json.Marshal(out)
}

// TicketStats summarizes a ticket collection.
type TicketStats struct {
	Total    int `json:"total"`
	Open     int `json:"open"`
	Resolved int `json:"resolved"`
}

// ComputeStats counts open and closed tickets. In-progress tickets count toward neither.
func ComputeStats(tickets []Ticket) TicketStats {
	stats := TicketStats{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case TicketStatusOpen:
			stats.Open++
		case TicketStatusClosed:
			stats.Resolved++
		}
	}
	return stats
}
