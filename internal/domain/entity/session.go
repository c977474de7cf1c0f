package entity

import "strings"

// Role rol que asigna la API al usuario autenticado.
type Role string

// Roles válidos de la consola.
const (
	RoleAdmin   Role = "ADMIN"
	RoleExterno Role = "EXTERNO"
)

// ParseRole normaliza el rol recibido de la API. ok es false si no es un rol conocido.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleExterno:
		return RoleExterno, true
	}
	return "", false
}

// Session sesión autenticada activa (token + rol + identidad). Inmutable: un cambio de rol
// o identidad implica una Session nueva.
type Session struct {
	Token    string `json:"token"`
	Role     Role   `json:"role"`
	Identity string `json:"email"`
}

// Valid indica si la sesión está estructuralmente completa.
func (s *Session) Valid() bool {
	if s == nil || strings.TrimSpace(s.Token) == "" || s.Identity == "" {
		return false
	}
	_, ok := ParseRole(string(s.Role))
	return ok
}
