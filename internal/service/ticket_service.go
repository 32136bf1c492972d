package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/repository"
	"github.com/spec-kit/ticketapp/internal/validation"
)

// TicketDefaults are applied to create and update alike.
type TicketDefaults struct {
	Status         domain.TicketStatus
	Priority       domain.TicketPriority
	UnknownCreator string
}

// DefaultTicketDefaults returns open/medium/"unknown".
func DefaultTicketDefaults() TicketDefaults {
	return TicketDefaults{
		Status:         domain.TicketStatusOpen,
		Priority:       domain.TicketPriorityMedium,
		UnknownCreator: "unknown",
	}
}

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets  repository.TicketRepository
	sessions repository.SessionRepository
	defaults TicketDefaults
	events   publisher
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string

	// mu serializes read-modify-write cycles on the collection.
	mu sync.Mutex
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	SessionRepo repository.SessionRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Defaults    TicketDefaults
	Clock       func() time.Time
	IDGenerator func() string
}

// Dashboard is the landing summary for the logged-in user.
type Dashboard struct {
	UserName string             `json:"userName"`
	Stats    domain.TicketStats `json:"stats"`
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := orNop(deps.Logger)
	defaults := deps.Defaults
	fallback := DefaultTicketDefaults()
	if defaults.Status == "" {
		defaults.Status = fallback.Status
	}
	if defaults.Priority == "" {
		defaults.Priority = fallback.Priority
	}
	if defaults.UnknownCreator == "" {
		defaults.UnknownCreator = fallback.UnknownCreator
	}
	now := deps.Clock
	if now == nil {
		now = utcMillis
	}
	newID := deps.IDGenerator
	if newID == nil {
		newID = uuid.NewString
	}
	return &TicketService{
		tickets:  deps.TicketRepo,
		sessions: deps.SessionRepo,
		defaults: defaults,
		events:   publisher{dispatcher: deps.Dispatcher, logger: logger, now: now},
		logger:   logger,
		now:      now,
		newID:    newID,
	}
}

// List returns the collection in stored order, newest first.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.List(ctx)
}

// Create validates fields, stamps id, createdAt and createdBy, and prepends the ticket.
func (s *TicketService) Create(ctx context.Context, fields validation.TicketFields) (*domain.Ticket, error) {
	form := validation.TicketFields{
		Title:       valueOr(fields.Title, ""),
		Description: valueOr(fields.Description, ""),
		Status:      valueOr(fields.Status, string(s.defaults.Status)),
		Priority:    valueOr(fields.Priority, string(s.defaults.Priority)),
	}
	if err := domain.NewValidationError(validation.ValidateTicket(form)); err != nil {
		return nil, err
	}

	createdBy, err := s.creator(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, err
	}

	ticket := domain.Ticket{
		ID:          s.newID(),
		Title:       strings.TrimSpace(*form.Title),
		Description: strings.TrimSpace(*form.Description),
		Status:      domain.TicketStatus(*form.Status),
		Priority:    domain.TicketPriority(*form.Priority),
		CreatedAt:   s.now(),
		CreatedBy:   createdBy,
	}

	next := make([]domain.Ticket, 0, len(tickets)+1)
	next = append(next, ticket)
	next = append(next, tickets...)
	if err := s.tickets.SaveAll(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("ticket created", zap.String("ticket_id", ticket.ID), zap.String("created_by", createdBy))
	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		Actor:    createdBy,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Status:   ticket.Status,
			Priority: ticket.Priority,
		},
	})
	return &ticket, nil
}

// Update replaces the mutable fields of ticket id with those present in fields and stamps
// updatedAt. id, createdAt and createdBy never change.
func (s *TicketService) Update(ctx context.Context, id string, fields validation.TicketFields) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(tickets, id)
	if idx < 0 {
		return nil, domain.ErrTicketNotFound
	}
	current := tickets[idx]

	status := current.Status
	if status == "" {
		status = s.defaults.Status
	}
	priority := current.Priority
	if priority == "" {
		priority = s.defaults.Priority
	}
	form := validation.TicketFields{
		Title:       valueOr(fields.Title, current.Title),
		Description: valueOr(fields.Description, current.Description),
		Status:      valueOr(fields.Status, string(status)),
		Priority:    valueOr(fields.Priority, string(priority)),
	}
	if err := domain.NewValidationError(validation.ValidateTicket(form)); err != nil {
		return nil, err
	}

	updatedAt := s.now()
	updated := current
	updated.Title = strings.TrimSpace(*form.Title)
	updated.Description = strings.TrimSpace(*form.Description)
	updated.Status = domain.TicketStatus(*form.Status)
	updated.Priority = domain.TicketPriority(*form.Priority)
	updated.UpdatedAt = &updatedAt

	next := make([]domain.Ticket, len(tickets))
	copy(next, tickets)
	next[idx] = updated
	if err := s.tickets.SaveAll(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("ticket updated", zap.String("ticket_id", id))
	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		Actor:    s.actor(ctx),
		TicketID: id,
		Payload: events.TicketUpdatedPayload{
			OldStatus:   current.Status,
			NewStatus:   updated.Status,
			OldPriority: current.Priority,
			NewPriority: updated.Priority,
		},
	})
	return &updated, nil
}

// Delete removes ticket id permanently. A missing id is not an error and writes nothing.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return err
	}

	next := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(tickets) {
		return nil
	}
	if err := s.tickets.SaveAll(ctx, next); err != nil {
		return err
	}

	s.logger.Info("ticket deleted", zap.String("ticket_id", id))
	s.events.publish(ctx, events.Event{Type: events.EventTicketDeleted, Actor: s.actor(ctx), TicketID: id})
	return nil
}

// Stats summarizes the current collection.
func (s *TicketService) Stats(ctx context.Context) (domain.TicketStats, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return domain.TicketStats{}, err
	}
	return domain.ComputeStats(tickets), nil
}

// Dashboard returns the session's display name with the ticket stats.
func (s *TicketService) Dashboard(ctx context.Context) (*Dashboard, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionRequired
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{UserName: session.DisplayName(), Stats: stats}, nil
}

func (s *TicketService) creator(ctx context.Context) (string, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		return "", err
	}
	if session == nil || session.Email == "" {
		return s.defaults.UnknownCreator, nil
	}
	return session.Email, nil
}

// actor falls back to the unknown creator when the session cannot be read.
func (s *TicketService) actor(ctx context.Context) string {
	name, err := s.creator(ctx)
	if err != nil {
		return s.defaults.UnknownCreator
	}
	return name
}

func indexOf(tickets []domain.Ticket, id string) int {
	for i := range tickets {
		if tickets[i].ID == id {
			return i
		}
	}
	return -1
}

func valueOr(v *string, fallback string) *string {
	if v != nil {
		return v
	}
	return &fallback
}
