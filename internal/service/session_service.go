package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/repository"
)

// SessionService manages the single current session.
type SessionService struct {
	sessions repository.SessionRepository
	events   publisher
	logger   *zap.Logger
}

// SessionDependencies bundles requirements for the session service.
type SessionDependencies struct {
	SessionRepo repository.SessionRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewSessionService constructs the service.
func NewSessionService(deps SessionDependencies) *SessionService {
	logger := orNop(deps.Logger)
	return &SessionService{
		sessions: deps.SessionRepo,
		events:   publisher{dispatcher: deps.Dispatcher, logger: logger, now: utcMillis},
		logger:   logger,
	}
}

// Start stores a copy of user as the session, replacing any previous one.
func (s *SessionService) Start(ctx context.Context, user domain.User) (*domain.Session, error) {
	session := domain.Session(user)
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	s.events.publish(ctx, events.Event{Type: events.EventSessionStarted, Actor: user.Email})
	return &session, nil
}

// Current returns the active session or nil.
func (s *SessionService) Current(ctx context.Context) (*domain.Session, error) {
	return s.sessions.Get(ctx)
}

// End removes the session. Ending when nobody is logged in is a no-op.
func (s *SessionService) End(ctx context.Context) error {
	current, err := s.sessions.Get(ctx)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx); err != nil {
		return err
	}
	if current != nil {
		s.events.publish(ctx, events.Event{Type: events.EventSessionEnded, Actor: current.Email})
	}
	return nil
}

// HasSession reports whether someone is logged in.
func (s *SessionService) HasSession(ctx context.Context) (bool, error) {
	current, err := s.sessions.Get(ctx)
	if err != nil {
		return false, err
	}
	return current != nil, nil
}

// Require is the guard for protected views: it returns ErrSessionRequired when nobody is
// logged in.
func (s *SessionService) Require(ctx context.Context) (*domain.Session, error) {
	current, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrSessionRequired
	}
	return current, nil
}
