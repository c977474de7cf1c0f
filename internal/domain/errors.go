package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrUnauthenticated   = errors.New("no hay sesión activa")
	ErrForbidden         = errors.New("acceso denegado")
	ErrBusy              = errors.New("hay una operación en curso")
	ErrNoCompanySelected = errors.New("no hay empresa seleccionada")
)

// ValidationError entrada rechazada localmente; nunca llega a la API.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError atajo para construir un *ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthError el login fue rechazado (credenciales o fallo de red durante el login).
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Message, e.Err)
	}
	return "auth: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError respuesta no 2xx de la API remota. Message trae el mensaje del servidor si vino.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: HTTP %d: %s", e.Status, e.Message)
}

// NetworkError la petición no pudo completarse.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("red: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage elige el texto a mostrar: mensaje de validación, mensaje del servidor, o fallback.
func UserMessage(err error, fallback string) string {
	var verr *ValidationError
	if errors.As(err, &verr) && verr.Message != "" {
		return verr.Message
	}
	var aerr *APIError
	if errors.As(err, &aerr) && aerr.Message != "" {
		return aerr.Message
	}
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	switch {
	case errors.Is(err, ErrForbidden):
		return "Acceso denegado"
	case errors.Is(err, ErrUnauthenticated):
		return "Debe iniciar sesión"
	case errors.Is(err, ErrBusy):
		return "Hay una operación en curso"
	case errors.Is(err, ErrNoCompanySelected):
		return "Seleccione una empresa"
	}
	return fallback
}
