package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// CredentialStore define el puerto de persistencia de la sesión (token, rol e identidad).
// Debe sobrevivir a reinicios del proceso. Solo el Session Manager escribe en él.
type CredentialStore interface {
	// Load devuelve la sesión guardada o (nil, nil) si no hay ninguna.
	Load(ctx context.Context) (*entity.Session, error)
	// Save reemplaza la sesión guardada.
	Save(ctx context.Context, session *entity.Session) error
	// Clear borra token y usuario de forma atómica.
	Clear(ctx context.Context) error
}
