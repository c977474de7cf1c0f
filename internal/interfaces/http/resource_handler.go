package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/resource"
)

// ResourceHandler expone un controlador de recursos por HTTP. Cada petición usa un controlador
// nuevo: el servidor no guarda estado de listado entre peticiones.
type ResourceHandler[E any] struct {
	// controller construye el controlador de la petición; confirm es la respuesta de la
	// compuerta de confirmación (?confirm=true).
	controller func(c *fiber.Ctx, confirm bool) *resource.Controller[E, string]
	// withKey fija la clave de la URL en el cuerpo recibido.
	withKey func(e E, key string) E
	param   string
}

// List GET: recarga y devuelve el listado. 502 si la API falló.
func (h *ResourceHandler[E]) List(c *fiber.Ctx) error {
	ctl := h.controller(c, false)
	ctl.Refresh(c.UserContext())
	st := ctl.State()
	status := fiber.StatusOK
	if st.Feedback.IsError() {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(listResponse(st))
}

// Create POST: valida y crea; devuelve el listado recargado.
func (h *ResourceHandler[E]) Create(c *fiber.Ctx) error {
	var in E
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ctl := h.controller(c, false)
	ctl.OpenCreateFrom(in)
	ctl.Submit(c.UserContext())
	return h.mutation(c, ctl, fiber.StatusCreated)
}

// Update PUT /:key: la clave de la URL manda sobre la del cuerpo.
func (h *ResourceHandler[E]) Update(c *fiber.Ctx) error {
	var in E
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ctl := h.controller(c, false)
	ctl.OpenEdit(h.withKey(in, c.Params(h.param)))
	ctl.Submit(c.UserContext())
	return h.mutation(c, ctl, fiber.StatusOK)
}

// Delete DELETE /:key?confirm=true. Sin confirmación responde 428 y no borra nada.
func (h *ResourceHandler[E]) Delete(c *fiber.Ctx) error {
	ctl := h.controller(c, c.QueryBool("confirm"))
	ctl.Remove(c.UserContext(), c.Params(h.param))
	if ctl.State().Feedback.IsZero() {
		return c.Status(fiber.StatusPreconditionRequired).JSON(dto.ErrorResponse{
			Code:    "CONFIRMATION_REQUIRED",
			Message: "Confirme el borrado con ?confirm=true",
		})
	}
	return h.mutation(c, ctl, fiber.StatusOK)
}

func (h *ResourceHandler[E]) mutation(c *fiber.Ctx, ctl *resource.Controller[E, string], okStatus int) error {
	st := ctl.State()
	status := okStatus
	switch {
	case st.Committed:
		// el cambio ya se aplicó; un fallo de la recarga viaja solo en el feedback
	case !ctl.CanMutate():
		status = fiber.StatusForbidden
	case st.Feedback.IsError():
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(listResponse(st))
}

func listResponse[E any](st resource.State[E]) dto.ListResponse[E] {
	items := st.Items
	if items == nil {
		items = []E{}
	}
	return dto.ListResponse[E]{Items: items, Feedback: dto.ToFeedback(st.Feedback)}
}
