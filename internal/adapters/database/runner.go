package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
)

// builder renders queries for the postgres dialect. Adapters build SQL with
// it and execute against whichever runner they are scoped to.
var builder = goqu.Dialect("postgres")

// runner is the intersection of *sql.DB and *sql.Tx the adapters need.
// The same adapter code serves both pooled access and the transactional
// access handed out by the unit of work.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (duplicate pending deal, duplicate review)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// isSerializationFailure reports whether err is a postgres serialization
// failure (SQLSTATE 40001). Under serializable isolation a race loser can
// surface this way instead of a zero-row compare-and-swap.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001"
	}
	return false
}
