package dto

import "github.com/jhoicas/Inventario-console/internal/domain/entity"

// LoginRequest entrada de POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida de POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// SessionResponse sesión publicada, sin el token.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
}

// LoginResult respuesta del login de la consola: sesión, aviso y a dónde navegar.
type LoginResult struct {
	Session  SessionResponse   `json:"session"`
	Feedback *FeedbackResponse `json:"feedback,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

// ToSessionResponse proyección pública de la sesión (sin token).
func ToSessionResponse(s *entity.Session) SessionResponse {
	if s == nil {
		return SessionResponse{}
	}
	return SessionResponse{Authenticated: true, Email: s.Identity, Role: string(s.Role)}
}
