package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bluecup/internal/dbx"
	"github.com/dmitrijs2005/bluecup/internal/server/config"
	"github.com/dmitrijs2005/bluecup/internal/server/repositories/activities"
	"github.com/dmitrijs2005/bluecup/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/bluecup/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Activities(db dbx.DBTX) activities.Repository
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// Open connects to the database selected by cfg, applies pending migrations
// and returns the handle with the matching RepositoryManager.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, RepositoryManager, error) {
	driver, dsn := cfg.Database()

	var m RepositoryManager
	switch driver {
	case config.DriverPostgres:
		m = NewPostgresRepositoryManager()
	case config.DriverSQLite:
		m = NewSQLiteRepositoryManager()
	default:
		return nil, nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db migration error: %w", err)
	}
	return db, m, nil
}
