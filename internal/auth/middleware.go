package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/service"
	apperrors "github.com/spec-kit/ticketapp/pkg/util/errorutil"
)

const sessionKey = "auth_session"

// SessionMiddleware loads the current session into the request context.
type SessionMiddleware struct {
	sessions *service.SessionService
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(sessions *service.SessionService) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Handle attaches the session, if any, and continues. Guards decide what to do when absent.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	session, err := m.sessions.Current(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	if session != nil {
		c.Locals(sessionKey, session)
	}
	return c.Next()
}

// SessionFromContext retrieves the logged-in user.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*domain.Session)
	return session, ok
}
