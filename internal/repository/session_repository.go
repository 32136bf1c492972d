package repository

import (
	"context"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/persistence"
)

// SessionRepository persists the single current session.
type SessionRepository interface {
	Get(ctx context.Context) (*domain.Session, error)
	Put(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context) error
}

type sessionRepository struct {
	store *persistence.JSONStore
}

// NewSessionRepository returns a repository keeping the session under SessionKey.
func NewSessionRepository(store *persistence.JSONStore) SessionRepository {
	return &sessionRepository{store: store}
}

// Get returns nil when no session is stored.
func (r *sessionRepository) Get(ctx context.Context) (*domain.Session, error) {
	// A stored JSON null decodes into a nil pointer and counts as no session.
	var session *domain.Session
	ok, err := r.store.Read(ctx, SessionKey, &session)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return session, nil
}

func (r *sessionRepository) Put(ctx context.Context, session domain.Session) error {
	return r.store.Write(ctx, SessionKey, session)
}

func (r *sessionRepository) Delete(ctx context.Context) error {
	return r.store.Remove(ctx, SessionKey)
}
