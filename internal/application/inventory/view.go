// Package inventory camino de lectura del inventario por empresa: selector de empresas,
// filas de solo lectura, exportación del PDF y envío por correo.
package inventory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/jhoicas/Inventario-console/internal/application/access"
	"github.com/jhoicas/Inventario-console/internal/application/feedback"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/resource"
	"github.com/jhoicas/Inventario-console/internal/application/validation"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// Mensajes de la vista de inventario.
const (
	MsgCompaniesFailed = "Error cargando empresas"
	MsgInventoryFailed = "Error cargando inventario"
	MsgExportFailed    = "No se pudo descargar el PDF"
	MsgExported        = "PDF descargado"
	MsgEmailFailed     = "Error enviando correo"
	MsgEmailSent       = "Correo enviado"
	MsgReportFailed    = "No se pudo generar el reporte"
	MsgReportRendered  = "Reporte generado"
	MsgRowsStale       = "El inventario mostrado no es el de la empresa seleccionada"
)

// Document documento entregado al usuario.
type Document struct {
	Filename string
	Location string
	Size     int
}

// State foto de la vista.
type State struct {
	Companies    []entity.Company
	SelectedNIT  string
	Rows         []entity.InventoryRow
	EmailAddress string
	Busy         bool
	Feedback     feedback.State
}

// Deps colaboradores de la vista. Renderer es opcional (sin él no hay reporte local).
type Deps struct {
	Gateway  ports.InventoryGateway
	Saver    ports.Saver
	Renderer ports.ReportRenderer
	Session  resource.SessionSource
	Notifier feedback.Notifier
	Logger   *logger.Logger
}

// View vista de inventario. Exportar, enviar y el reporte local son solo para ADMIN.
type View struct {
	gw       ports.InventoryGateway
	saver    ports.Saver
	renderer ports.ReportRenderer
	session  resource.SessionSource
	notify   feedback.Notifier
	log      *logger.Logger

	mu       sync.Mutex
	state    State
	rowsNIT  string // empresa a la que pertenecen state.Rows
	seq      uint64
	detached bool
}

// NewView construye la vista.
func NewView(deps Deps) *View {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	return &View{
		gw:       deps.Gateway,
		saver:    deps.Saver,
		renderer: deps.Renderer,
		session:  deps.Session,
		notify:   deps.Notifier,
		log:      deps.Logger.Named("inventario"),
	}
}

// State devuelve una copia del estado.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Companies = slices.Clone(v.state.Companies)
	s.Rows = slices.Clone(v.state.Rows)
	return s
}

// Rows filas mostradas, en el orden de la API.
func (v *View) Rows() []entity.InventoryRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.state.Rows)
}

// SetEmail actualiza el destino del envío.
func (v *View) SetEmail(address string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.EmailAddress = address
}

// LoadCompanies carga las opciones del selector.
func (v *View) LoadCompanies(ctx context.Context) {
	if !access.Can(v.current()) {
		v.setFeedback(feedback.Error(domain.UserMessage(domain.ErrUnauthenticated, "")))
		return
	}
	companies, err := v.gw.ListCompanies(ctx)
	if err != nil {
		v.log.Warn().Err(err).Msg("no se pudieron cargar las empresas")
		v.setFeedback(feedback.Error(MsgCompaniesFailed))
		return
	}
	v.mu.Lock()
	if !v.detached {
		v.state.Companies = companies
	}
	v.mu.Unlock()
}

// SelectCompany selecciona una empresa y carga su inventario. Un NIT vacío limpia las filas
// sin llamar a la API. Si una selección posterior gana la carrera, el resultado anterior se descarta.
func (v *View) SelectCompany(ctx context.Context, nit string) {
	nit = strings.TrimSpace(nit)
	v.mu.Lock()
	v.seq++
	seq := v.seq
	v.state.SelectedNIT = nit
	if nit == "" {
		v.state.Rows = nil
		v.rowsNIT = ""
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	if !access.Can(v.current()) {
		v.setFeedback(feedback.Error(domain.UserMessage(domain.ErrUnauthenticated, "")))
		return
	}

	products, err := v.gw.Inventory(ctx, nit)

	v.mu.Lock()
	if v.detached || seq != v.seq {
		v.mu.Unlock()
		return
	}
	if err != nil {
		v.mu.Unlock()
		v.log.Warn().Err(err).Str("nit", nit).Msg("no se pudo cargar el inventario")
		v.setFeedback(feedback.Error(MsgInventoryFailed))
		return
	}
	v.state.Rows = entity.NewInventoryRows(nit, products)
	v.rowsNIT = nit
	v.mu.Unlock()
}

// Preselect fija la empresa sin cargar sus filas. Lo usan los accesos que actúan directamente
// sobre un NIT (exportar o enviar desde la CLI o el servidor de consola).
func (v *View) Preselect(nit string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	v.state.SelectedNIT = strings.TrimSpace(nit)
	v.state.Rows = nil
	v.rowsNIT = ""
}

// ExportDocument descarga el PDF de la empresa seleccionada y lo entrega por el Saver
// como inventario_<nit>.pdf.
func (v *View) ExportDocument(ctx context.Context) (Document, bool) {
	nit, ok := v.begin()
	if !ok {
		return Document{}, false
	}
	defer v.release()

	content, err := v.gw.InventoryPDF(ctx, nit)
	if err != nil {
		v.log.Warn().Err(err).Str("nit", nit).Msg("descarga de PDF fallida")
		v.setFeedback(feedback.Error(MsgExportFailed))
		return Document{}, false
	}
	doc, err := v.save(ctx, "inventario_"+nit+".pdf", content)
	if err != nil {
		v.setFeedback(feedback.Error(MsgExportFailed))
		return Document{}, false
	}
	v.setFeedback(feedback.Success(MsgExported))
	return doc, true
}

// DispatchByEmail pide a la API que envíe el PDF a address. El destino solo se limpia
// si el envío tuvo éxito.
func (v *View) DispatchByEmail(ctx context.Context, address string) bool {
	address = strings.TrimSpace(address)
	v.SetEmail(address)
	if err := validation.Email(address); err != nil {
		v.setFeedback(feedback.Error(domain.UserMessage(err, "")))
		return false
	}
	nit, ok := v.begin()
	if !ok {
		return false
	}
	defer v.release()

	if err := v.gw.SendInventoryEmail(ctx, address, nit); err != nil {
		v.log.Warn().Err(err).Str("nit", nit).Msg("envío de correo fallido")
		v.setFeedback(feedback.Error(domain.UserMessage(err, MsgEmailFailed)))
		return false
	}
	v.mu.Lock()
	v.state.EmailAddress = ""
	v.mu.Unlock()
	v.log.Info().Str("nit", nit).Str("to", address).Msg("inventario enviado")
	v.setFeedback(feedback.Success(MsgEmailSent))
	return true
}

// RenderReport genera en local el PDF con las filas que se están mostrando y lo guarda
// como inventario_<nit>_local.pdf. No usa la red. Si las filas no son de la empresa
// seleccionada (la última selección falló) no genera nada.
func (v *View) RenderReport(ctx context.Context) (Document, bool) {
	if v.renderer == nil {
		v.setFeedback(feedback.Error(MsgReportFailed))
		return Document{}, false
	}
	nit, ok := v.begin()
	if !ok {
		return Document{}, false
	}
	defer v.release()

	v.mu.Lock()
	if owner := v.rowsNIT; owner != nit {
		v.mu.Unlock()
		v.log.Warn().Str("nit", nit).Str("rows", owner).Msg("reporte con filas de otra empresa")
		v.setFeedback(feedback.Error(MsgRowsStale))
		return Document{}, false
	}
	rows := slices.Clone(v.state.Rows)
	company := entity.Company{NIT: nit}
	for _, c := range v.state.Companies {
		if c.NIT == nit {
			company = c
			break
		}
	}
	v.mu.Unlock()

	content, err := v.renderer.RenderInventory(company, rows)
	if err != nil {
		v.log.Error().Err(err).Str("nit", nit).Msg("render de reporte fallido")
		v.setFeedback(feedback.Error(MsgReportFailed))
		return Document{}, false
	}
	doc, err := v.save(ctx, "inventario_"+nit+"_local.pdf", content)
	if err != nil {
		v.setFeedback(feedback.Error(MsgReportFailed))
		return Document{}, false
	}
	v.setFeedback(feedback.Success(MsgReportRendered))
	return doc, true
}

// DismissFeedback vacía el slot de feedback.
func (v *View) DismissFeedback() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Feedback = feedback.State{}
}

// Detach desmonta la vista: los resultados que lleguen después no cambian el estado ni avisan.
func (v *View) Detach() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.detached = true
	v.seq++
}

// begin comprueba rol ADMIN, empresa seleccionada y que no haya otra acción en curso.
func (v *View) begin() (string, bool) {
	if !access.Can(v.current(), entity.RoleAdmin) {
		err := domain.ErrForbidden
		if v.current() == nil {
			err = domain.ErrUnauthenticated
		}
		v.setFeedback(feedback.Error(domain.UserMessage(err, "")))
		return "", false
	}
	v.mu.Lock()
	nit := v.state.SelectedNIT
	if nit == "" {
		v.mu.Unlock()
		v.setFeedback(feedback.Error(domain.UserMessage(domain.ErrNoCompanySelected, "")))
		return "", false
	}
	if v.state.Busy {
		v.mu.Unlock()
		v.setFeedback(feedback.Error(domain.UserMessage(domain.ErrBusy, "")))
		return "", false
	}
	v.state.Busy = true
	v.mu.Unlock()
	return nit, true
}

func (v *View) release() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Busy = false
}

func (v *View) save(ctx context.Context, filename string, content []byte) (Document, error) {
	location, err := v.saver.Save(ctx, filename, content)
	if err != nil {
		v.log.Error().Err(err).Str("file", filename).Msg("no se pudo guardar el documento")
		return Document{}, err
	}
	v.log.Info().Str("file", location).Int("bytes", len(content)).Msg("documento guardado")
	return Document{Filename: filename, Location: location, Size: len(content)}, nil
}

func (v *View) current() *entity.Session {
	if v.session == nil {
		return nil
	}
	return v.session.Current()
}

func (v *View) setFeedback(s feedback.State) {
	v.mu.Lock()
	if v.detached {
		v.mu.Unlock()
		return
	}
	v.state.Feedback = s
	v.mu.Unlock()
	if v.notify != nil {
		v.notify.Notify(s)
	}
}
