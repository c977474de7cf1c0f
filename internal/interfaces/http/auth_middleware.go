package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/access"
	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// LocalSession key de c.Locals con la *entity.Session de la petición.
const LocalSession = "session"

// SessionSource entrega la sesión publicada por el Manager.
type SessionSource interface {
	Current() *entity.Session
}

// GuardRoute protege una vista con la tabla de rutas: sin sesión redirige (302) a "/",
// con un rol no permitido a "/forbidden". Si pasa, deja la sesión en LocalSession.
func GuardRoute(src SessionSource, path string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := src.Current()
		if d := access.Guard(s, path); !d.Allowed {
			return c.Redirect(d.Redirect, fiber.StatusFound)
		}
		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// RequireRole protege un control (no una vista): responde 401/403 en JSON en lugar de redirigir.
// Debe usarse DESPUÉS de GuardRoute.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		d := access.Authorize(s, roles...)
		if d.Allowed {
			return c.Next()
		}
		if d.Redirect == access.RouteLogin {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "Debe iniciar sesión"})
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Acceso denegado"})
	}
}

// GetSession devuelve la sesión del contexto (después de GuardRoute).
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}
