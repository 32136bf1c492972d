package repository

import (
	"context"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/persistence"
)

// TicketRepository encapsulates ticket persistence. The collection is stored whole, in
// display order.
type TicketRepository interface {
	List(ctx context.Context) ([]domain.Ticket, error)
	SaveAll(ctx context.Context, tickets []domain.Ticket) error
}

type ticketRepository struct {
	store *persistence.JSONStore
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(store *persistence.JSONStore) TicketRepository {
	return &ticketRepository{store: store}
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	ok, err := r.store.Read(ctx, TicketsKey, &tickets)
	if err != nil {
		return nil, err
	}
	if !ok || tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

func (r *ticketRepository) SaveAll(ctx context.Context, tickets []domain.Ticket) error {
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return r.store.Write(ctx, TicketsKey, tickets)
}
