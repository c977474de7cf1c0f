// Package session dueño único de la sesión autenticada: login, logout, restauración
// desde el almacén de credenciales y publicación a los suscriptores.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/Inventario-console/internal/application/access"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/validation"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	pkgjwt "github.com/jhoicas/Inventario-console/pkg/jwt"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// Mensajes de login.
const (
	MsgBadCredentials = "Credenciales incorrectas"
	MsgLoginOK        = "Inicio de sesión exitoso"
	MsgBadToken       = "Token de sesión inválido"
	MsgUnknownRole    = "Rol de usuario no reconocido"
)

// Manager publica la sesión actual y es el único que escribe el CredentialStore.
type Manager struct {
	auth  ports.AuthGateway
	store repository.CredentialStore
	nav   ports.Navigator
	log   *logger.Logger

	mu      sync.RWMutex
	current *entity.Session
	subs    map[int]func(*entity.Session)
	nextSub int
}

// NewManager crea el Manager. nav puede ser nil (sin navegación).
func NewManager(auth ports.AuthGateway, store repository.CredentialStore, nav ports.Navigator, log *logger.Logger) *Manager {
	if nav == nil {
		nav = ports.NavigatorFunc(func(string) {})
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		auth:  auth,
		store: store,
		nav:   nav,
		log:   log.Named("session"),
		subs:  make(map[int]func(*entity.Session)),
	}
}

// Login valida localmente, autentica contra la API y publica la sesión nueva.
// Los errores de validación no tocan la red; el resto se devuelve como *domain.AuthError.
func (m *Manager) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	email = strings.TrimSpace(email)
	if err := validation.Login(email, password); err != nil {
		return nil, err
	}

	token, role, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.log.Warn().Err(err).Str("email", email).Msg("login rechazado")
		return nil, &domain.AuthError{Message: domain.UserMessage(err, MsgBadCredentials), Err: err}
	}

	claims, err := pkgjwt.Decode(token)
	if err != nil {
		return nil, &domain.AuthError{Message: MsgBadToken, Err: err}
	}
	r, ok := entity.ParseRole(role)
	if !ok {
		// algunas versiones de la API solo traen el rol dentro del token
		r, ok = entity.ParseRole(claims.Role)
	}
	if !ok {
		return nil, &domain.AuthError{Message: MsgUnknownRole}
	}

	s := &entity.Session{Token: token, Role: r, Identity: claims.Subject}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, &domain.AuthError{Message: "No se pudo guardar la sesión", Err: err}
	}
	m.log.Info().Str("email", s.Identity).Str("role", string(s.Role)).Msg("sesión iniciada")
	m.publish(s)
	m.nav.Navigate(access.RouteHome)
	return s, nil
}

// Logout borra el almacén, publica sesión anónima y vuelve al login.
// Un fallo del almacén se registra pero no impide cerrar la sesión en memoria.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error().Err(err).Msg("no se pudo limpiar el almacén de credenciales")
	}
	m.publish(nil)
	m.log.Info().Msg("sesión cerrada")
	m.nav.Navigate(access.RouteLogin)
}

// Restore reconstruye la sesión desde el almacén sin usar la red. El token no se valida
// contra su expiración: la API lo rechaza en la siguiente petición si ya no sirve.
// Un fallo de lectura se registra y deja la sesión anónima.
func (m *Manager) Restore(ctx context.Context) (*entity.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("no se pudo leer la sesión guardada")
		m.publish(nil)
		return nil, nil
	}
	if s == nil {
		m.publish(nil)
		return nil, nil
	}
	if !s.Valid() {
		m.log.Warn().Msg("sesión guardada incompleta, se descarta")
		if err := m.store.Clear(ctx); err != nil {
			m.log.Error().Err(err).Msg("no se pudo limpiar el almacén de credenciales")
		}
		m.publish(nil)
		return nil, nil
	}
	m.publish(s)
	return s, nil
}

// Current sesión publicada; nil si es anónima.
func (m *Manager) Current() *entity.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Token token de la sesión actual o "" si no hay.
func (m *Manager) Token() string {
	if s := m.Current(); s != nil {
		return s.Token
	}
	return ""
}

// Subscribe registra fn para cada cambio de sesión. Devuelve la función para cancelar.
func (m *Manager) Subscribe(fn func(*entity.Session)) (cancel func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) publish(s *entity.Session) {
	m.mu.Lock()
	m.current = s
	subs := make([]func(*entity.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()
	for _, fn := range subs {
		fn(s)
	}
}
