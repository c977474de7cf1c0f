package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/pkg/nit"
)

// LocalCompanyNIT key de c.Locals con el NIT de empresa de la petición ("" = sin filtro).
const LocalCompanyNIT = "company_nit"

// CompanyScope lee el NIT de la query param y lo deja en LocalCompanyNIT.
//
// Comportamiento:
//   - sin parámetro → sigue sin filtro (o 400 si required).
//   - NIT con caracteres no numéricos o demasiado largo → 400, sin llamar a la API.
func CompanyScope(param string, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := strings.TrimSpace(c.Query(param))
		if value == "" {
			if required {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Code:    "VALIDATION",
					Message: msgSelectCompany,
				})
			}
			return c.Next()
		}
		if !nit.IsDigits(value) || len(value) > nit.MaxDigits {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "El NIT solo admite dígitos",
			})
		}
		c.Locals(LocalCompanyNIT, value)
		return c.Next()
	}
}

// GetCompanyNIT devuelve el NIT fijado por CompanyScope.
func GetCompanyNIT(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalCompanyNIT).(string)
	return v
}
