package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/rfpwatch/internal/domain"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("not found")

// RecordRepo reads and rewrites the record catalog. List always returns
// records in the order they were loaded.
type RecordRepo interface {
	List(ctx context.Context) ([]domain.Record, error)
	GetByID(ctx context.Context, id string) (*domain.Record, error)
	Count(ctx context.Context) (int, error)
	ReplaceAll(ctx context.Context, loadID string, records []domain.Record) error
}

type CatalogLoadRepo interface {
	Create(ctx context.Context, l *domain.CatalogLoad) error
	Latest(ctx context.Context) (*domain.CatalogLoad, error)
	List(ctx context.Context, limit int) ([]*domain.CatalogLoad, error)
}
