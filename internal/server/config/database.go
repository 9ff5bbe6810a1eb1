package config

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Driver names registered by the pgx stdlib and modernc sqlite packages.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Database returns the database/sql driver name and DSN selected by Mode.
func (c *Config) Database() (driver, dsn string) {
	if c.IsProduction() {
		return DriverPostgres, NormalizePostgresDSN(c.DatabaseDSN)
	}
	return DriverSQLite, SQLiteDSN(c.SQLitePath)
}

// NormalizePostgresDSN rewrites the legacy "postgres://" scheme that some
// hosting providers still hand out to "postgresql://".
func NormalizePostgresDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if rest, ok := strings.CutPrefix(dsn, "postgres://"); ok {
		return "postgresql://" + rest
	}
	return dsn
}

// SQLiteDSN turns a file path into a modernc sqlite DSN with foreign keys
// enforced and a busy timeout for concurrent writers. Timestamps are written
// in the sortable sqlite text format.
func SQLiteDSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Set("_time_format", "sqlite")
	return "file:" + filepath.ToSlash(filepath.Clean(path)) + "?" + q.Encode()
}
