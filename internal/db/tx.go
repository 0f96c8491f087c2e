package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so a repository reads the
// catalog directly or inside a transaction with the same code.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// UnitOfWork scopes catalog access to a transaction. Callers build
// tx-scoped repositories from the DBTX handed to fn.
type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	// A catalog load replaces every record inside one call.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
	// WithinSnapshot runs fn against one consistent view of the catalog and
	// always rolls back.
	WithinSnapshot(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork on database/sql transactions.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return u.run(ctx, fn, true)
}

func (u *SQLiteUnitOfWork) WithinSnapshot(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return u.run(ctx, fn, false)
}

func (u *SQLiteUnitOfWork) run(ctx context.Context, fn func(ctx context.Context, tx DBTX) error, commit bool) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if !commit {
		return tx.Rollback()
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
