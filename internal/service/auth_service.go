package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/repository"
	"github.com/spec-kit/ticketapp/internal/validation"
)

// AuthService coordinates registration and credential checks.
type AuthService struct {
	users  repository.UserRepository
	events publisher
	logger *zap.Logger
	mu     sync.Mutex
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := orNop(deps.Logger)
	return &AuthService{
		users:  deps.UserRepo,
		events: publisher{dispatcher: deps.Dispatcher, logger: logger, now: utcMillis},
		logger: logger,
	}
}

// RegisterUser validates the signup form and appends a new user. The email must not match
// any registered email exactly.
func (s *AuthService) RegisterUser(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	if err := domain.NewValidationError(validation.ValidateSignup(fullName, email, password)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, domain.ErrAlreadyRegistered
		}
	}

	user := domain.User{FullName: fullName, Email: email, Password: password}
	if err := s.users.SaveAll(ctx, append(users, user)); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("email", email))
	s.events.publish(ctx, events.Event{Type: events.EventUserRegistered, Actor: email})
	return &user, nil
}

// Authenticate returns the first user whose email and password both match exactly.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if err := domain.NewValidationError(validation.ValidateLogin(email, password)); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			return &users[i], nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}
