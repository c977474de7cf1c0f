package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/access"
	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/domain"
)

// AuthHandler login, logout y estado de sesión de la consola.
type AuthHandler struct {
	m *session.Manager
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(m *session.Manager) *AuthHandler {
	return &AuthHandler{m: m}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResult
// @Failure      400   {object}  dto.LoginResult
// @Failure      401   {object}  dto.LoginResult
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.m.Login(c.UserContext(), in.Email, in.Password)
	out := dto.LoginResult{Session: dto.ToSessionResponse(s), Feedback: dto.ToFeedback(session.LoginFeedback(err))}
	if err != nil {
		status := fiber.StatusUnauthorized
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(out)
	}
	out.Redirect = access.RouteHome
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.LoginResult
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.m.Logout(c.UserContext())
	return c.JSON(dto.LoginResult{Redirect: access.RouteLogin})
}

// Session godoc
// @Summary      Sesión actual (sin token)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(dto.ToSessionResponse(h.m.Current()))
}

// Forbidden vista de acceso denegado con enlace de vuelta a empresas.
func (h *AuthHandler) Forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"code":    "FORBIDDEN",
		"message": "Acceso denegado",
		"link":    access.RouteHome,
	})
}
