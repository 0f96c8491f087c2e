package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory catalog.
const MemoryPath = ":memory:"

// BusyTimeoutMillis is how long a connection waits on a locked catalog, e.g.
// `catalog load` running while `watch` reads from it.
const BusyTimeoutMillis = 5000

// connPragmas run on every pooled connection, not just the first one.
var connPragmas = []string{
	fmt.Sprintf("busy_timeout(%d)", BusyTimeoutMillis),
	"foreign_keys(1)",
}

// dsn appends the per-connection pragmas in the modernc `_pragma` form.
func dsn(path string) string {
	q := url.Values{}
	for _, p := range connPragmas {
		q.Add("_pragma", p)
	}
	return path + "?" + q.Encode()
}

// OpenDB opens the record catalog at path, creating its directory, and runs
// migrations. File catalogs use WAL so readers keep a consistent snapshot
// while a load rewrites the records. ":memory:" is pinned to one connection
// so every query sees the same database.
func OpenDB(path string) (*sql.DB, error) {
	memory := path == MemoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	if memory {
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}
