package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/api/http/handlers"
	"github.com/spec-kit/ticketapp/internal/auth"
	"github.com/spec-kit/ticketapp/internal/events"
	"github.com/spec-kit/ticketapp/internal/observability"
	"github.com/spec-kit/ticketapp/internal/persistence"
	"github.com/spec-kit/ticketapp/internal/repository"
	"github.com/spec-kit/ticketapp/internal/service"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWithStore(t, persistence.NewMemoryStore(0))
}

func newTestAppWithStore(t *testing.T, store persistence.Store) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	js := persistence.NewJSONStore(store, logger)
	dispatcher := events.NewInMemoryDispatcher()
	sessionRepo := repository.NewSessionRepository(js)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo: repository.NewUserRepository(js), Dispatcher: dispatcher, Logger: logger,
	})
	sessionService := service.NewSessionService(service.SessionDependencies{
		SessionRepo: sessionRepo, Dispatcher: dispatcher, Logger: logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repository.NewTicketRepository(js), SessionRepo: sessionRepo, Dispatcher: dispatcher, Logger: logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:   handlers.NewHealthHandler("ticketapp", "test", "memory", store, metrics),
		Users:    handlers.NewUsersHandler(authService, sessionService),
		Tickets:  handlers.NewTicketsHandler(ticketService),
		Sessions: auth.NewSessionMiddleware(sessionService),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func signupAndLogin(t *testing.T, app *fiber.App) {
	t.Helper()
	status, _ := do(t, app, http.MethodPost, "/auth/register", map[string]string{
		"fullName": "Ada Lovelace", "email": "ada@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, status)
	status, _ = do(t, app, http.MethodPost, "/auth/login", map[string]string{
		"email": "ada@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, status)
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(env.Data))

	signupAndLogin(t, app)

	status, env = do(t, app, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"fullName":"Ada Lovelace","email":"ada@example.com"}`, string(env.Data))
	assert.NotContains(t, string(env.Data), "password")

	status, env = do(t, app, http.MethodPost, "/auth/register", map[string]string{
		"fullName": "Someone", "email": "ada@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	status, _ = do(t, app, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, env = do(t, app, http.MethodGet, "/tickets", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "You must be logged in to access this page.", env.Error.Message)
	assert.Equal(t, "/login", env.Error.Details["redirect"])
}

func TestLogin_Failures(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodPost, "/auth/login", map[string]string{"email": "nope", "password": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Equal(t, "Email is invalid", env.Error.Details["email"])
	assert.Equal(t, "Password is required", env.Error.Details["password"])

	status, env = do(t, app, http.MethodPost, "/auth/login", map[string]string{"email": "x@y.io", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", env.Error.Message)
}

func TestTicketLifecycle(t *testing.T) {
	app := newTestApp(t)
	signupAndLogin(t, app)

	status, env := do(t, app, http.MethodPost, "/tickets", map[string]string{"title": "  Printer jam  ", "description": "paper everywhere"})
	require.Equal(t, http.StatusCreated, status)
	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Printer jam", created["title"])
	assert.Equal(t, "open", created["status"])
	assert.Equal(t, "medium", created["priority"])
	assert.Equal(t, "ada@example.com", created["createdBy"])
	assert.NotContains(t, created, "updatedAt")
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, created["createdAt"])
	id := created["id"].(string)

	status, env = do(t, app, http.MethodPut, "/tickets/"+id, map[string]string{"status": "closed"})
	require.Equal(t, http.StatusOK, status)
	var updated map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "closed", updated["status"])
	assert.Equal(t, "Printer jam", updated["title"])
	assert.Contains(t, updated, "updatedAt")

	status, env = do(t, app, http.MethodGet, "/tickets/stats", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total":1,"open":0,"resolved":1}`, string(env.Data))

	status, env = do(t, app, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"userName":"Ada Lovelace","stats":{"total":1,"open":0,"resolved":1}}`, string(env.Data))

	status, _ = do(t, app, http.MethodDelete, "/tickets/"+id, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, app, http.MethodDelete, "/tickets/"+id, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, env = do(t, app, http.MethodGet, "/tickets", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", string(env.Data))
}

func TestTicketErrors(t *testing.T) {
	app := newTestApp(t)
	signupAndLogin(t, app)

	status, env := do(t, app, http.MethodPost, "/tickets", map[string]string{"title": "ab", "priority": "urgent"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Title must be at least 3 characters.", env.Error.Details["title"])
	assert.Equal(t, "Invalid priority value.", env.Error.Details["priority"])

	status, env = do(t, app, http.MethodPut, "/tickets/missing", map[string]string{"title": "Valid title"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	status, env = do(t, app, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestValidateIsPublic(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodPost, "/tickets/validate", map[string]string{
		"title": strings.Repeat("x", 121), "status": "pending",
	})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"valid":false,"errors":{
		"title":"Title must be at most 120 characters.",
		"status":"Status must be one of: open, in_progress, closed"}}`, string(env.Data))

	status, env = do(t, app, http.MethodPost, "/tickets/validate", map[string]string{"title": "abc"})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"valid":true,"errors":{}}`, string(env.Data))
}

func TestStorageFailure(t *testing.T) {
	app := newTestAppWithStore(t, persistence.NewMemoryStore(300))
	signupAndLogin(t, app)

	status, env := do(t, app, http.MethodPost, "/tickets", map[string]string{"title": "Big one", "description": strings.Repeat("d", 500)})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "STORAGE_FAILURE", env.Error.Code)
	assert.Equal(t, "Failed to save. Please try again.", env.Error.Message)

	status, env = do(t, app, http.MethodGet, "/tickets", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", string(env.Data))
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, status)

	status, env := do(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, status)
	var snap observability.MetricsSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, int64(1), snap.Requests["/health/live|GET|200"])
}
