// Package storetest opens throwaway migrated SQLite databases for tests.
package storetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/bluecup/internal/server/config"
	"github.com/dmitrijs2005/bluecup/internal/server/migrations"
)

// NewSQLite returns a database in t.TempDir() with every migration applied.
// The handle is closed when the test ends.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bluecup.db")
	db, err := sql.Open("sqlite", config.SQLiteDSN(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.SQLite())
	require.NoError(t, err)
	_, err = provider.Up(context.Background())
	require.NoError(t, err)

	return db
}
