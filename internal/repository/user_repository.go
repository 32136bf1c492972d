package repository

import (
	"context"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/persistence"
)

// UserRepository defines persistence access for registered users.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	SaveAll(ctx context.Context, users []domain.User) error
}

type userRepository struct {
	store *persistence.JSONStore
}

// NewUserRepository returns a repository keeping all users under UsersKey.
func NewUserRepository(store *persistence.JSONStore) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	ok, err := r.store.Read(ctx, UsersKey, &users)
	if err != nil {
		return nil, err
	}
	if !ok || users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (r *userRepository) SaveAll(ctx context.Context, users []domain.User) error {
	return r.store.Write(ctx, UsersKey, users)
}
