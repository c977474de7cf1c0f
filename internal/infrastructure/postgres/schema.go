package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionTable tabla del almacén de credenciales. Una fila por contexto de sesión.
const SessionTable = "console_sessions"

const sessionDDL = `
	CREATE TABLE IF NOT EXISTS console_sessions (
		context    TEXT PRIMARY KEY,
		token      TEXT NOT NULL,
		role       TEXT NOT NULL,
		email      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// EnsureSessionSchema crea la tabla si no existe. Dos consolas arrancando a la vez pueden chocar
// en el catálogo (23505); ese caso se trata como éxito.
func EnsureSessionSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, sessionDDL); err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("crear tabla %s: %w", SessionTable, err)
	}
	return nil
}
