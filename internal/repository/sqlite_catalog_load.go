package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/db"
	"github.com/alexanderramin/rfpwatch/internal/domain"
)

// SQLiteCatalogLoadRepo implements CatalogLoadRepo using a SQLite database.
type SQLiteCatalogLoadRepo struct {
	db db.DBTX
}

func NewSQLiteCatalogLoadRepo(conn db.DBTX) *SQLiteCatalogLoadRepo {
	return &SQLiteCatalogLoadRepo{db: conn}
}

func (r *SQLiteCatalogLoadRepo) Create(ctx context.Context, l *domain.CatalogLoad) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO catalog_loads (id, source, record_count, loaded_at) VALUES (?, ?, ?, ?)`,
		l.ID, l.Source, l.RecordCount, formatUTC(l.LoadedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting catalog load: %w", err)
	}
	return nil
}

// Latest returns the most recent load, or ErrNotFound for an empty catalog.
func (r *SQLiteCatalogLoadRepo) Latest(ctx context.Context) (*domain.CatalogLoad, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, source, record_count, loaded_at FROM catalog_loads ORDER BY loaded_at DESC, rowid DESC LIMIT 1`)
	l, err := scanCatalogLoad(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("catalog load: %w", ErrNotFound)
		}
		return nil, err
	}
	return l, nil
}

// List returns up to limit loads, newest first.
func (r *SQLiteCatalogLoadRepo) List(ctx context.Context, limit int) ([]*domain.CatalogLoad, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source, record_count, loaded_at FROM catalog_loads ORDER BY loaded_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing catalog loads: %w", err)
	}
	defer rows.Close()

	var loads []*domain.CatalogLoad
	for rows.Next() {
		l, err := scanCatalogLoad(rows)
		if err != nil {
			return nil, err
		}
		loads = append(loads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog loads: %w", err)
	}
	return loads, nil
}

func scanCatalogLoad(row rowScanner) (*domain.CatalogLoad, error) {
	var l domain.CatalogLoad
	var loadedAt string
	if err := row.Scan(&l.ID, &l.Source, &l.RecordCount, &loadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning catalog load: %w", err)
	}
	t, err := time.Parse(time.RFC3339, loadedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing loaded_at: %w", err)
	}
	l.LoadedAt = t
	return &l, nil
}
