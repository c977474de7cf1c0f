// Package feedback convención única para mostrar el resultado de una operación
// (éxito, error) y para confirmar acciones destructivas.
package feedback

import (
	"context"
	"time"
)

// Kind tipo de aviso.
type Kind string

// Tipos de aviso. KindNone es el slot vacío.
const (
	KindNone    Kind = ""
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// SuccessDismiss tiempo tras el cual un aviso de éxito se oculta solo.
const SuccessDismiss = 3 * time.Second

// State aviso actual de un controlador. DismissAfter en cero significa que el usuario
// debe cerrarlo (errores).
type State struct {
	Kind         Kind
	Message      string
	DismissAfter time.Duration
}

// Success aviso transitorio de éxito.
func Success(msg string) State {
	return State{Kind: KindSuccess, Message: msg, DismissAfter: SuccessDismiss}
}

// Error aviso persistente de error.
func Error(msg string) State {
	return State{Kind: KindError, Message: msg}
}

// IsError indica si el aviso es un error.
func (s State) IsError() bool { return s.Kind == KindError }

// IsZero indica que no hay aviso.
func (s State) IsZero() bool { return s.Kind == KindNone }

// Notifier recibe cada aviso emitido por un controlador (la vista decide cómo mostrarlo).
type Notifier interface {
	Notify(State)
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(State)

// Notify implementa Notifier.
func (f NotifierFunc) Notify(s State) { f(s) }

// Confirmer compuerta de confirmación para acciones destructivas.
// Un error se trata igual que una respuesta negativa.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmFunc adapta una función a Confirmer.
type ConfirmFunc func(ctx context.Context, message string) (bool, error)

// Confirm implementa Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// Always confirmador fijo (flags --yes, ?confirm=true).
type Always bool

// Confirm implementa Confirmer.
func (a Always) Confirm(context.Context, string) (bool, error) { return bool(a), nil }
