package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillSeq(db); err != nil {
		return fmt.Errorf("backfilling seq values: %w", err)
	}
	return nil
}

// migrateBackfillSeq assigns seq values to rows written before the seq
// column existed, keeping their rowid order.
func migrateBackfillSeq(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rfp_records WHERE seq = 0`).Scan(&count); err != nil {
		return fmt.Errorf("checking rfp_records seq: %w", err)
	}
	if count == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting backfill transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT id FROM rfp_records ORDER BY CASE WHEN seq = 0 THEN 1 ELSE 0 END, seq, rowid`)
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning record id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating records: %w", err)
	}

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE rfp_records SET seq = ? WHERE id = ?`, i+1, id); err != nil {
			return fmt.Errorf("setting seq for %s: %w", id, err)
		}
	}
	return tx.Commit()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS catalog_loads (
		id           TEXT PRIMARY KEY,
		source       TEXT NOT NULL,
		record_count INTEGER NOT NULL CHECK(record_count >= 0),
		loaded_at    TEXT NOT NULL
	)`,

	// status is unconstrained; the stage set is configured at runtime.
	`CREATE TABLE IF NOT EXISTS rfp_records (
		id               TEXT PRIMARY KEY,
		seq              INTEGER NOT NULL DEFAULT 0,
		title            TEXT NOT NULL DEFAULT '',
		category         TEXT NOT NULL DEFAULT '',
		site             TEXT NOT NULL DEFAULT '',
		owner            TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL DEFAULT '',
		due_date         TEXT NOT NULL DEFAULT '',
		budget_aed       REAL,
		vendors_invited  INTEGER NOT NULL DEFAULT 0 CHECK(vendors_invited >= 0),
		submissions      INTEGER NOT NULL DEFAULT 0 CHECK(submissions >= 0),
		last_activity    TEXT NOT NULL DEFAULT '',
		approval_finance INTEGER NOT NULL DEFAULT 0,
		approval_legal   INTEGER NOT NULL DEFAULT 0,
		approval_head    INTEGER NOT NULL DEFAULT 0,
		risk             TEXT NOT NULL DEFAULT 'None'
	)`,

	// v2: records remember which catalog load wrote them.
	`ALTER TABLE rfp_records ADD COLUMN load_id TEXT REFERENCES catalog_loads(id) ON DELETE SET NULL`,

	`CREATE INDEX IF NOT EXISTS idx_rfp_records_seq ON rfp_records(seq)`,
	`CREATE INDEX IF NOT EXISTS idx_rfp_records_site ON rfp_records(site)`,
	`CREATE INDEX IF NOT EXISTS idx_rfp_records_status ON rfp_records(status)`,
	`CREATE INDEX IF NOT EXISTS idx_catalog_loads_loaded_at ON catalog_loads(loaded_at)`,
}
