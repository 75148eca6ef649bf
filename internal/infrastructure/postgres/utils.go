package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Namespaces de advisory locks (primer argumento de pg_advisory_xact_lock(int, int)).
const (
	lockNamespaceSummaries  int32 = 72001
	lockNamespaceProduction int32 = 72002
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// pageArgs normaliza limit/offset; limit 0 = sin límite (NULL en LIMIT).
func pageArgs(limit, offset int) (any, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return nil, offset
	}
	return limit, offset
}
