package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/rfpwatch/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory catalog, closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openCatalog(t, db.MemoryPath)
}

// NewTestDBFile opens a migrated catalog file under t.TempDir(). Use it when
// a test needs more than one connection.
func NewTestDBFile(t *testing.T) *sql.DB {
	t.Helper()
	return openCatalog(t, filepath.Join(t.TempDir(), "catalog.db"))
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

func openCatalog(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test catalog")
	t.Cleanup(func() { database.Close() })
	return database
}
