package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/inventory"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/validation"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/export"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

const msgSelectCompany = "Seleccione una empresa"

// InventoryHandler vista de inventario por empresa (solo ADMIN, protegida por GuardRoute).
type InventoryHandler struct {
	gw       ports.InventoryGateway
	renderer ports.ReportRenderer
	session  SessionSource
	log      *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(gw ports.InventoryGateway, renderer ports.ReportRenderer, session SessionSource, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{gw: gw, renderer: renderer, session: session, log: log}
}

func (h *InventoryHandler) view(saver ports.Saver) *inventory.View {
	return inventory.NewView(inventory.Deps{
		Gateway:  h.gw,
		Saver:    saver,
		Renderer: h.renderer,
		Session:  h.session,
		Logger:   h.log,
	})
}

// Get godoc
// @Summary      Empresas del selector e inventario de la seleccionada
// @Tags         inventario
// @Produce      json
// @Param        nit  query  string  false  "NIT de la empresa"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      502  {object}  dto.InventoryResponse
// @Router       /inventario [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	v := h.view(nil)
	ctx := c.UserContext()
	v.LoadCompanies(ctx)
	if nit := GetCompanyNIT(c); nit != "" {
		v.SelectCompany(ctx, nit)
	}
	st := v.State()
	status := fiber.StatusOK
	if st.Feedback.IsError() {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(dto.InventoryResponse{
		Empresas:    st.Companies,
		SelectedNIT: st.SelectedNIT,
		Rows:        dto.ToInventoryRows(st.Rows),
		Feedback:    dto.ToFeedback(st.Feedback),
	})
}

// PDF godoc
// @Summary      Descargar el PDF de inventario generado por la API
// @Tags         inventario
// @Produce      application/pdf
// @Param        nit  query  string  true  "NIT de la empresa"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.FeedbackResponse
// @Router       /inventario/pdf [get]
func (h *InventoryHandler) PDF(c *fiber.Ctx) error {
	nit := GetCompanyNIT(c)
	saver := &export.MemorySaver{}
	v := h.view(saver)
	v.Preselect(nit)
	doc, ok := v.ExportDocument(c.UserContext())
	if !ok {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ToFeedback(v.State().Feedback))
	}
	return sendDocument(c, doc.Filename, saver.Content)
}

// Email godoc
// @Summary      Enviar el PDF de inventario por correo
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmailInventoryRequest  true  "emailDestino, empresaNIT"
// @Success      200   {object}  dto.FeedbackResponse
// @Failure      400   {object}  dto.FeedbackResponse
// @Failure      502   {object}  dto.FeedbackResponse
// @Router       /inventario/email [post]
func (h *InventoryHandler) Email(c *fiber.Ctx) error {
	var in dto.EmailInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.EmpresaNIT) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msgSelectCompany})
	}
	v := h.view(nil)
	v.Preselect(in.EmpresaNIT)
	ok := v.DispatchByEmail(c.UserContext(), in.EmailDestino)
	fb := dto.ToFeedback(v.State().Feedback)
	switch {
	case ok:
		return c.JSON(fb)
	case validation.Email(strings.TrimSpace(in.EmailDestino)) != nil:
		return c.Status(fiber.StatusBadRequest).JSON(fb)
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fb)
	}
}

// Report godoc
// @Summary      Generar localmente el reporte PDF de las filas de inventario
// @Tags         inventario
// @Produce      application/pdf
// @Param        nit  query  string  true  "NIT de la empresa"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.FeedbackResponse
// @Router       /inventario/reporte [post]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	nit := GetCompanyNIT(c)
	saver := &export.MemorySaver{}
	v := h.view(saver)
	ctx := c.UserContext()
	v.LoadCompanies(ctx)
	v.SelectCompany(ctx, nit)
	if st := v.State(); st.Feedback.IsError() {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ToFeedback(st.Feedback))
	}
	doc, ok := v.RenderReport(ctx)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ToFeedback(v.State().Feedback))
	}
	return sendDocument(c, doc.Filename, saver.Content)
}

func sendDocument(c *fiber.Ctx, filename string, content []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(content)
}
