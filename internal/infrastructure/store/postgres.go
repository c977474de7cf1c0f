package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/postgres"
)

var _ repository.CredentialStore = (*PostgresStore)(nil)

// PostgresStore guarda la sesión en la tabla console_sessions, una fila por contexto.
type PostgresStore struct {
	pool    *pgxpool.Pool
	context string
}

// NewPostgresStore crea el almacén para sessionContext. El esquema se crea con
// postgres.EnsureSessionSchema antes de usarlo.
func NewPostgresStore(pool *pgxpool.Pool, sessionContext string) *PostgresStore {
	return &PostgresStore{pool: pool, context: sessionContext}
}

// Load devuelve la sesión del contexto o nil si no hay.
func (s *PostgresStore) Load(ctx context.Context) (*entity.Session, error) {
	query := `SELECT token, role, email FROM console_sessions WHERE context = $1`
	var out entity.Session
	var role string
	err := s.pool.QueryRow(ctx, query, s.context).Scan(&out.Token, &role, &out.Identity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || postgres.IsUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	out.Role = entity.Role(role)
	return &out, nil
}

// Save inserta o reemplaza la fila del contexto.
func (s *PostgresStore) Save(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return s.Clear(ctx)
	}
	query := `
		INSERT INTO console_sessions (context, token, role, email, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (context) DO UPDATE
		SET token = EXCLUDED.token, role = EXCLUDED.role, email = EXCLUDED.email, updated_at = now()`
	if _, err := s.pool.Exec(ctx, query, s.context, session.Token, string(session.Role), session.Identity); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Clear borra la fila del contexto.
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM console_sessions WHERE context = $1`, s.context); err != nil {
		if postgres.IsUndefinedTable(err) {
			return nil
		}
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}
