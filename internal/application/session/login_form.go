package session

import (
	"context"
	"errors"

	"github.com/jhoicas/Inventario-console/internal/application/feedback"
	"github.com/jhoicas/Inventario-console/internal/domain"
)

// LoginForm uso del Manager desde la pantalla de login.
type LoginForm struct {
	m *Manager
}

// NewLoginForm crea el formulario sobre m.
func NewLoginForm(m *Manager) *LoginForm {
	return &LoginForm{m: m}
}

// Submit intenta iniciar sesión y devuelve el aviso a mostrar.
func (f *LoginForm) Submit(ctx context.Context, email, password string) feedback.State {
	_, err := f.m.Login(ctx, email, password)
	return LoginFeedback(err)
}

// LoginFeedback aviso de la pantalla de login para el resultado de Manager.Login.
// El detalle del rechazo queda en el log; al usuario solo se le dice que las credenciales fallaron.
func LoginFeedback(err error) feedback.State {
	if err == nil {
		return feedback.Success(MsgLoginOK)
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return feedback.Error(verr.Message)
	}
	return feedback.Error(MsgBadCredentials)
}
