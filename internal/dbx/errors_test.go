package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	dup := fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505"})
	other := fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, IsUniqueViolation(dup))
	assert.False(t, IsUniqueViolation(other))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS u (email TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM u`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO u(email) VALUES ('a@b.c')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO u(email) VALUES ('a@b.c')`)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(fmt.Errorf("db error: %w", err)))
}

func TestIsUniqueViolation_Other(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}

func TestIsUniqueViolation_SQLiteNotNull(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS n (v TEXT NOT NULL)`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO n(v) VALUES (NULL)`)
	require.Error(t, err)
	assert.False(t, IsUniqueViolation(err))
}

func TestNullString(t *testing.T) {
	assert.Equal(t, sql.NullString{}, NullString(""))
	assert.Equal(t, sql.NullString{String: "Kent", Valid: true}, NullString("Kent"))
}

func TestNullString_RoundTrip(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS o (id INTEGER PRIMARY KEY, v TEXT)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO o(id, v) VALUES (1, ?), (2, ?)`, NullString(""), NullString("Club"))
	require.NoError(t, err)

	var v sql.NullString
	require.NoError(t, db.QueryRowContext(ctx, `SELECT v FROM o WHERE id = 1`).Scan(&v))
	assert.False(t, v.Valid)
	require.NoError(t, db.QueryRowContext(ctx, `SELECT v FROM o WHERE id = 2`).Scan(&v))
	assert.Equal(t, "Club", v.String)
}
