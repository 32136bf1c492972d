package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/persistence"
	"github.com/spec-kit/ticketapp/internal/repository"
)

var errDiskFull = errors.New("disk full")

// flakyStore fails every Set while failSets is true.
type flakyStore struct {
	*persistence.MemoryStore
	mu       sync.Mutex
	failSets bool
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.failSets
	f.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func (f *flakyStore) setFailing(v bool) {
	f.mu.Lock()
	f.failSets = v
	f.mu.Unlock()
}

type testEnv struct {
	store    *flakyStore
	users    repository.UserRepository
	sessions repository.SessionRepository
	tickets  repository.TicketRepository
	auth     *AuthService
	session  *SessionService
	ticket   *TicketService
	clock    *fakeClock
	events   *[]events.Event
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithDefaults(t, TicketDefaults{})
}

func newTestEnvWithDefaults(t *testing.T, defaults TicketDefaults) *testEnv {
	t.Helper()

	store := &flakyStore{MemoryStore: persistence.NewMemoryStore(0)}
	js := persistence.NewJSONStore(store, zap.NewNop())
	dispatcher := events.NewInMemoryDispatcher()

	published := &[]events.Event{}
	for _, et := range events.AllEventTypes {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			*published = append(*published, e)
			return nil
		})
	}

	clock := &fakeClock{t: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)}
	seq := 0
	nextID := func() string {
		seq++
		return fmt.Sprintf("ticket-%d", seq)
	}

	env := &testEnv{
		store:    store,
		users:    repository.NewUserRepository(js),
		sessions: repository.NewSessionRepository(js),
		tickets:  repository.NewTicketRepository(js),
		clock:    clock,
		events:   published,
	}
	env.auth = NewAuthService(AuthDependencies{UserRepo: env.users, Dispatcher: dispatcher})
	env.session = NewSessionService(SessionDependencies{SessionRepo: env.sessions, Dispatcher: dispatcher})
	env.ticket = NewTicketService(TicketDependencies{
		TicketRepo:  env.tickets,
		SessionRepo: env.sessions,
		Dispatcher:  dispatcher,
		Defaults:    defaults,
		Clock:       clock.Now,
		IDGenerator: nextID,
	})
	return env
}

func (e *testEnv) login(t *testing.T, user domain.User) {
	t.Helper()
	_, err := e.session.Start(context.Background(), user)
	require.NoError(t, err)
}

func (e *testEnv) eventTypes() []events.EventType {
	out := make([]events.EventType, 0, len(*e.events))
	for _, ev := range *e.events {
		out = append(out, ev.Type)
	}
	return out
}

func strPtr(s string) *string { return &s }
