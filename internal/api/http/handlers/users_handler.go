package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketapp/internal/api/dto"
	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/service"
	apperrors "github.com/spec-kit/ticketapp/pkg/util/errorutil"
)

// UsersHandler exposes signup, login, logout and the current session.
type UsersHandler struct {
	auth     *service.AuthService
	sessions *service.SessionService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, sessionService *service.SessionService) *UsersHandler {
	return &UsersHandler{auth: authService, sessions: sessionService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.RegisterUser(c.UserContext(), req.FullName, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user.FullName, user.Email)})
}

// Login handles POST /auth/login: it checks the credentials and starts the session.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	session, err := h.sessions.Start(c.UserContext(), *user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(session)})
}

// Logout handles POST /auth/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.End(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Session handles GET /session. Data is null when nobody is logged in.
func (h *UsersHandler) Session(c *fiber.Ctx) error {
	session, err := h.sessions.Current(c.UserContext())
	if err != nil {
		return err
	}
	if session == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": sessionResponse(session)})
}

func sessionResponse(s *domain.Session) dto.UserResponse {
	return userResponse(s.FullName, s.Email)
}

func userResponse(fullName, email string) dto.UserResponse {
	return dto.UserResponse{FullName: fullName, Email: email}
}
