package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que la consola distingue.
const (
	codeUniqueViolation = "23505"
	codeUndefinedTable  = "42P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }

// IsUndefinedTable indica que la tabla consultada no existe (esquema aún sin crear).
func IsUndefinedTable(err error) bool { return pgCode(err) == codeUndefinedTable }
