package repomanager

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/bluecup/internal/dbx"
	"github.com/dmitrijs2005/bluecup/internal/server/migrations"
	"github.com/dmitrijs2005/bluecup/internal/server/repositories/activities"
	"github.com/dmitrijs2005/bluecup/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/bluecup/internal/server/repositories/users"
)

// SQLiteRepositoryManager vends SQLite-backed repositories for local runs.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Activities(db dbx.DBTX) activities.Repository {
	return activities.NewSQLiteRepository(db)
}

// RunMigrations runs the embedded SQLite migrations against db.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runGoose(ctx, db, migrations.SQLite(), "sqlite3")
}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}
