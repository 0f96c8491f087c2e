package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/rfpwatch/internal/db"
)

// FailingUoW wraps a real UnitOfWork and makes the Nth ExecContext inside a
// WithinTx call fail, so a catalog load can be broken after the old records
// are cleared but before every new record is written. Exec calls count from
// 1 per transaction; queries are not counted. Snapshots pass through.
type FailingUoW struct {
	Inner  db.UnitOfWork
	FailOn int32
	Err    error
}

// NewFailingUoW wraps the SQLite unit of work for database.
func NewFailingUoW(database *sql.DB, failOn int32, err error) *FailingUoW {
	return &FailingUoW{Inner: db.NewSQLiteUnitOfWork(database), FailOn: failOn, Err: err}
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

func (u *FailingUoW) WithinSnapshot(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinSnapshot(ctx, fn)
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
