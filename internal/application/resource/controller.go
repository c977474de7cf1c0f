// Package resource orquestación genérica de un listado administrable:
// cargar → validar y mutar → confirmar y borrar → recargar, con el rol del usuario
// como compuerta y un único slot de feedback por controlador.
package resource

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/Inventario-console/internal/application/access"
	"github.com/jhoicas/Inventario-console/internal/application/feedback"
	"github.com/jhoicas/Inventario-console/internal/application/validation"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// Client capacidades de la API que necesita un controlador.
type Client[E any, K comparable] interface {
	List(ctx context.Context) ([]E, error)
	Create(ctx context.Context, e E) error
	Update(ctx context.Context, key K, e E) error
	Remove(ctx context.Context, key K) error
}

// SessionSource entrega la sesión publicada. Se inyecta; el controlador nunca la busca por su cuenta.
type SessionSource interface {
	Current() *entity.Session
}

// Field campo editable del borrador con su política de entrada.
type Field[E any] struct {
	Policy validation.FieldPolicy
	Get    func(E) string
	Set    func(*E, string)
}

// MsgMissingKey la entidad no tiene clave asignada por el servidor y no se puede mutar.
const MsgMissingKey = "El registro no tiene identificador asignado"

// Messages textos de feedback de una entidad.
type Messages struct {
	LoadFailed    string
	Created       string
	Updated       string
	Deleted       string
	SaveFailed    string
	DeleteFailed  string
	ConfirmDelete string
}

// Spec parametriza el controlador para una entidad concreta.
type Spec[E any, K comparable] struct {
	Noun        string
	KeyField    string
	Key         func(E) K
	New         func() E
	Clone       func(E) E
	Validate    func(E) error
	Fields      map[string]Field[E]
	Messages    Messages
	MutateRoles []entity.Role
}

// State foto del estado del controlador. Committed indica que la API aceptó la última
// mutación, aunque la recarga posterior fallara.
type State[E any] struct {
	Items      []E
	Draft      E
	IsEditing  bool
	DialogOpen bool
	Busy       bool
	Committed  bool
	Feedback   feedback.State
}

// Deps colaboradores del controlador.
type Deps struct {
	Session   SessionSource
	Confirmer feedback.Confirmer
	Notifier  feedback.Notifier
	Logger    *logger.Logger
}

// Controller orquesta listado, creación, edición y borrado de una entidad.
// Admite como máximo una mutación en curso: mientras Submit o Remove (incluida la recarga
// final) no terminan, las demás acciones se rechazan con domain.ErrBusy.
type Controller[E any, K comparable] struct {
	spec    Spec[E, K]
	client  Client[E, K]
	session SessionSource
	confirm feedback.Confirmer
	notify  feedback.Notifier
	log     *logger.Logger

	mu       sync.Mutex
	state    State[E]
	seq      uint64
	detached bool
}

// New construye el controlador. Sin Confirmer, los borrados se tratan como no confirmados.
func New[E any, K comparable](spec Spec[E, K], client Client[E, K], deps Deps) *Controller[E, K] {
	if deps.Confirmer == nil {
		deps.Confirmer = feedback.Always(false)
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	c := &Controller[E, K]{
		spec:    spec,
		client:  client,
		session: deps.Session,
		confirm: deps.Confirmer,
		notify:  deps.Notifier,
		log:     deps.Logger.Named(spec.Noun),
	}
	c.state.Draft = spec.New()
	return c
}

// State devuelve una copia del estado actual.
func (c *Controller[E, K]) State() State[E] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Items = slices.Clone(c.state.Items)
	s.Draft = c.spec.Clone(c.state.Draft)
	return s
}

// Items atajo a State().Items.
func (c *Controller[E, K]) Items() []E {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.state.Items)
}

// Find busca un elemento del último listado por su clave.
func (c *Controller[E, K]) Find(key K) (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.state.Items {
		if c.spec.Key(it) == key {
			return c.spec.Clone(it), true
		}
	}
	var zero E
	return zero, false
}

// CanMutate indica si la sesión actual ve los controles de creación/edición/borrado.
func (c *Controller[E, K]) CanMutate() bool {
	return access.Can(c.current(), c.spec.MutateRoles...)
}

// Refresh recarga el listado. Si falla, conserva los elementos anteriores y deja un error.
func (c *Controller[E, K]) Refresh(ctx context.Context) {
	c.mu.Lock()
	if c.detached {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	if d := access.Authorize(c.current()); !d.Allowed {
		c.setFeedback(feedback.Error(domain.UserMessage(domain.ErrUnauthenticated, c.spec.Messages.LoadFailed)))
		return
	}

	items, err := c.client.List(ctx)

	c.mu.Lock()
	if c.detached || seq != c.seq {
		c.mu.Unlock()
		c.log.Debug().Msg("resultado de listado descartado")
		return
	}
	if err != nil {
		c.mu.Unlock()
		c.log.Warn().Err(err).Msg("listado fallido")
		c.setFeedback(feedback.Error(c.spec.Messages.LoadFailed))
		return
	}
	c.state.Items = slices.Clone(items)
	c.mu.Unlock()
}

// OpenCreate abre el diálogo con un borrador vacío.
func (c *Controller[E, K]) OpenCreate() {
	c.open(c.spec.New(), false)
}

// OpenCreateFrom abre el diálogo de creación con un borrador ya lleno (formularios enviados de una vez).
func (c *Controller[E, K]) OpenCreateFrom(e E) {
	c.open(c.spec.Clone(e), false)
}

// OpenEdit abre el diálogo con una copia profunda de e. La clave queda bloqueada.
func (c *Controller[E, K]) OpenEdit(e E) {
	c.open(c.spec.Clone(e), true)
}

func (c *Controller[E, K]) open(draft E, editing bool) {
	if err := c.guardMutation(); err != nil {
		c.setFeedback(feedback.Error(domain.UserMessage(err, "")))
		return
	}
	c.mu.Lock()
	if c.state.Busy {
		c.mu.Unlock()
		c.setFeedback(feedback.Error(domain.UserMessage(domain.ErrBusy, "")))
		return
	}
	c.state.Draft = draft
	c.state.IsEditing = editing
	c.state.DialogOpen = true
	c.mu.Unlock()
}

// Close cierra el diálogo sin enviar. No tiene efecto durante una mutación.
func (c *Controller[E, K]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy {
		return
	}
	c.state.DialogOpen = false
}

// Input aplica una edición al campo del borrador según su política y devuelve el valor resultante.
// Con el diálogo cerrado, un campo desconocido o la clave en edición, no cambia nada.
func (c *Controller[E, K]) Input(field, value string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.spec.Fields[field]
	if !ok {
		return ""
	}
	current := f.Get(c.state.Draft)
	if !c.state.DialogOpen || c.state.Busy {
		return current
	}
	if c.state.IsEditing && field == c.spec.KeyField {
		return current
	}
	next := f.Policy.Apply(current, value)
	f.Set(&c.state.Draft, next)
	return next
}

// Submit valida el borrador y crea o actualiza. Solo recarga si la API aceptó el cambio.
func (c *Controller[E, K]) Submit(ctx context.Context) {
	if err := c.guardMutation(); err != nil {
		c.setFeedback(feedback.Error(domain.UserMessage(err, "")))
		return
	}

	c.mu.Lock()
	if c.detached || !c.state.DialogOpen {
		c.mu.Unlock()
		return
	}
	if c.state.Busy {
		c.mu.Unlock()
		c.setFeedback(feedback.Error(domain.UserMessage(domain.ErrBusy, "")))
		return
	}
	c.state.Committed = false
	draft := c.spec.Clone(c.state.Draft)
	editing := c.state.IsEditing
	err := c.spec.Validate(draft)
	if err == nil && editing {
		err = c.keyPresent(c.spec.Key(draft))
	}
	if err != nil {
		c.mu.Unlock()
		c.setFeedback(feedback.Error(domain.UserMessage(err, c.spec.Messages.SaveFailed)))
		return
	}
	c.state.Busy = true
	c.mu.Unlock()
	defer c.release()

	if editing {
		err = c.client.Update(ctx, c.spec.Key(draft), draft)
	} else {
		err = c.client.Create(ctx, draft)
	}
	if err != nil {
		c.log.Warn().Err(err).Bool("editing", editing).Msg("guardado fallido")
		c.setFeedback(feedback.Error(domain.UserMessage(err, c.spec.Messages.SaveFailed)))
		return
	}

	c.mu.Lock()
	c.state.Committed = true
	c.state.DialogOpen = false
	c.state.IsEditing = false
	c.state.Draft = c.spec.New()
	c.mu.Unlock()

	msg := c.spec.Messages.Created
	if editing {
		msg = c.spec.Messages.Updated
	}
	c.log.Info().Bool("editing", editing).Msg("guardado")
	c.setFeedback(feedback.Success(msg))
	c.Refresh(ctx)
}

// Remove borra por clave tras la confirmación. Si no se confirma, no hace nada ni avisa.
func (c *Controller[E, K]) Remove(ctx context.Context, key K) {
	if err := c.guardMutation(); err != nil {
		c.setFeedback(feedback.Error(domain.UserMessage(err, "")))
		return
	}

	if err := c.keyPresent(key); err != nil {
		c.setFeedback(feedback.Error(domain.UserMessage(err, "")))
		return
	}

	c.mu.Lock()
	if c.detached {
		c.mu.Unlock()
		return
	}
	if c.state.Busy {
		c.mu.Unlock()
		c.setFeedback(feedback.Error(domain.UserMessage(domain.ErrBusy, "")))
		return
	}
	c.state.Busy = true
	c.state.Committed = false
	c.mu.Unlock()
	defer c.release()

	ok, err := c.confirm.Confirm(ctx, c.spec.Messages.ConfirmDelete)
	if err != nil || !ok {
		c.log.Debug().Err(err).Msg("borrado no confirmado")
		return
	}

	if err := c.client.Remove(ctx, key); err != nil {
		c.log.Warn().Err(err).Msg("borrado fallido")
		c.setFeedback(feedback.Error(domain.UserMessage(err, c.spec.Messages.DeleteFailed)))
		return
	}
	c.mu.Lock()
	c.state.Committed = true
	c.mu.Unlock()
	c.log.Info().Msg("borrado")
	c.setFeedback(feedback.Success(c.spec.Messages.Deleted))
	c.Refresh(ctx)
}

// DismissFeedback vacía el slot de feedback.
func (c *Controller[E, K]) DismissFeedback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Feedback = feedback.State{}
}

// Detach desmonta el controlador: los resultados que lleguen después se descartan.
func (c *Controller[E, K]) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detached = true
	c.seq++
}

func (c *Controller[E, K]) current() *entity.Session {
	if c.session == nil {
		return nil
	}
	return c.session.Current()
}

func (c *Controller[E, K]) guardMutation() error {
	d := access.Authorize(c.current(), c.spec.MutateRoles...)
	if d.Allowed {
		return nil
	}
	if d.Redirect == access.RouteLogin {
		return domain.ErrUnauthenticated
	}
	return domain.ErrForbidden
}

// keyPresent rechaza la clave vacía: sin ID del servidor la URL de la mutación no existe.
func (c *Controller[E, K]) keyPresent(key K) error {
	var zero K
	if key == zero {
		return &domain.ValidationError{Field: c.spec.KeyField, Message: MsgMissingKey}
	}
	return nil
}

func (c *Controller[E, K]) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Busy = false
}

func (c *Controller[E, K]) setFeedback(s feedback.State) {
	c.mu.Lock()
	if c.detached {
		c.mu.Unlock()
		return
	}
	c.state.Feedback = s
	c.mu.Unlock()
	if c.notify != nil {
		c.notify.Notify(s)
	}
}
