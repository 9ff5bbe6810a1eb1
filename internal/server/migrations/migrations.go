// Package migrations embeds the goose schema migrations, one directory per
// SQL dialect.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Postgres returns the PostgreSQL migrations rooted at ".".
func Postgres() fs.FS {
	return mustSub("postgres")
}

// SQLite returns the SQLite migrations rooted at ".".
func SQLite() fs.FS {
	return mustSub("sqlite")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
