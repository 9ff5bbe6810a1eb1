// Package dbx holds the small database helpers the repositories share: the
// handle they run queries on, optional-column mapping and driver-neutral
// constraint error classification.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is what a repository needs to run its queries. *sql.DB and *sql.Tx
// both satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NullString maps "" to SQL NULL so optional text columns stay NULL instead
// of holding empty strings.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
