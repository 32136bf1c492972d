package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/ticketapp/pkg/util/errorutil"
)

// RequireSession rejects requests that arrive without a logged-in user.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SessionFromContext(c); !ok {
			return apperrors.NewSessionRequired()
		}
		return c.Next()
	}
}
