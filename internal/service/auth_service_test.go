package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/persistence"
	"github.com/spec-kit/ticketapp/internal/validation"
)

func TestAuth_RegisterUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, err := env.auth.RegisterUser(ctx, "Ada Lovelace", "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domain.User{FullName: "Ada Lovelace", Email: "ada@example.com", Password: "secret1"}, *user)

	users, err := env.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, []events.EventType{events.EventUserRegistered}, env.eventTypes())
}

func TestAuth_RegisterUser_Duplicate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.auth.RegisterUser(ctx, "Ada Lovelace", "ada@example.com", "secret1")
	require.NoError(t, err)

	_, err = env.auth.RegisterUser(ctx, "Someone Else", "ada@example.com", "another1")
	require.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	users, err := env.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAuth_RegisterUser_EmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.auth.RegisterUser(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)
	_, err = env.auth.RegisterUser(ctx, "Ada", "Ada@example.com", "secret1")
	require.NoError(t, err)

	users, err := env.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAuth_RegisterUser_Validation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.auth.RegisterUser(ctx, "", "not-an-email", "123")
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.FieldErrors{
		validation.FieldFullName: validation.MsgFullNameRequired,
		validation.FieldEmail:    validation.MsgEmailInvalid,
		validation.FieldPassword: validation.MsgPasswordTooShort,
	}, verr.Fields)

	users, err := env.users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAuth_RegisterUser_StorageFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.auth.RegisterUser(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	env.store.setFailing(true)
	_, err = env.auth.RegisterUser(ctx, "Grace", "grace@example.com", "secret1")
	require.ErrorIs(t, err, persistence.ErrStorageFailure)

	env.store.setFailing(false)
	users, err := env.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ada@example.com", users[0].Email)
}

func TestAuth_Authenticate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.auth.RegisterUser(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	user, err := env.auth.Authenticate(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FullName)

	_, err = env.auth.Authenticate(ctx, "ada@example.com", "wrong-pass")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = env.auth.Authenticate(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = env.auth.Authenticate(ctx, "", "")
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, validation.FieldEmail)
	assert.Contains(t, verr.Fields, validation.FieldPassword)
}
