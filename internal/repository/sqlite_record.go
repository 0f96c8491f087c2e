package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/rfpwatch/internal/db"
	"github.com/alexanderramin/rfpwatch/internal/domain"
)

// SQLiteRecordRepo implements RecordRepo using a SQLite database.
type SQLiteRecordRepo struct {
	db db.DBTX
}

// NewSQLiteRecordRepo creates a new SQLiteRecordRepo. Pass a *sql.Tx from a
// UnitOfWork to make ReplaceAll atomic.
func NewSQLiteRecordRepo(conn db.DBTX) *SQLiteRecordRepo {
	return &SQLiteRecordRepo{db: conn}
}

const recordColumns = `id, title, category, site, owner, status, due_date, budget_aed,
	vendors_invited, submissions, last_activity, approval_finance, approval_legal, approval_head, risk`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRecordRepo) List(ctx context.Context) ([]domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM rfp_records ORDER BY seq, id`)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

func (r *SQLiteRecordRepo) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM rfp_records WHERE UPPER(id) = UPPER(?)`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRecordRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rfp_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// ReplaceAll deletes every record and inserts records in order, tagging each
// with loadID. Callers run it inside a UnitOfWork.
func (r *SQLiteRecordRepo) ReplaceAll(ctx context.Context, loadID string, records []domain.Record) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rfp_records`); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	query := `INSERT INTO rfp_records (` + recordColumns + `, seq, load_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range records {
		rec := &records[i]
		_, err := r.db.ExecContext(ctx, query,
			rec.ID,
			rec.Title,
			rec.Category,
			rec.Site,
			rec.Owner,
			string(rec.Status),
			rec.DueDate,
			nullableFloatToValue(rec.BudgetAED),
			rec.VendorsInvited,
			rec.Submissions,
			rec.LastActivity,
			boolToInt(rec.Approvals.Finance),
			boolToInt(rec.Approvals.Legal),
			boolToInt(rec.Approvals.Head),
			string(rec.Risk),
			i+1,
			nullableString(loadID),
		)
		if err != nil {
			return fmt.Errorf("inserting record %s: %w", rec.ID, err)
		}
	}
	return nil
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var rec domain.Record
	var status, risk string
	var budget sql.NullFloat64
	var finance, legal, head int

	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Category, &rec.Site, &rec.Owner,
		&status, &rec.DueDate, &budget,
		&rec.VendorsInvited, &rec.Submissions, &rec.LastActivity,
		&finance, &legal, &head, &risk,
	)
	if err != nil {
		return nil, err
	}

	rec.Status = domain.Status(status)
	rec.Risk = domain.Risk(risk)
	rec.BudgetAED = parseNullableFloat(budget)
	rec.Approvals = domain.Approvals{
		Finance: intToBool(finance),
		Legal:   intToBool(legal),
		Head:    intToBool(head),
	}
	return &rec, nil
}
