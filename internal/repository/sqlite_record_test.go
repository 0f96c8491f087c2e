package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/db"
	"github.com/alexanderramin/rfpwatch/internal/domain"
	"github.com/alexanderramin/rfpwatch/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRepo_ReplaceAllAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRecordRepo(database)
	ctx := context.Background()

	records := []domain.Record{
		testutil.NewTestRecord("RFP-2026-002", testutil.WithBudget(1_250_000.5), testutil.WithStatus(domain.StatusQA)),
		testutil.NewTestRecord("RFP-2026-001", testutil.WithApprovals(true, false, true), testutil.WithRisk(domain.RiskAtRisk)),
		testutil.NewTestRecord("RFP-2026-003", testutil.WithDueDate("not-a-date"), testutil.WithStatus("Cancelled")),
	}
	require.NoError(t, repo.ReplaceAll(ctx, "", records))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordRepo_ReplaceAllDropsPrevious(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRecordRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, "", []domain.Record{
		testutil.NewTestRecord("OLD-1"), testutil.NewTestRecord("OLD-2"),
	}))
	require.NoError(t, repo.ReplaceAll(ctx, "", []domain.Record{testutil.NewTestRecord("NEW-1")}))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.GetByID(ctx, "OLD-1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRecordRepo_ListEmpty(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecordRepo_GetByID_CaseInsensitive(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRecordRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, "", []domain.Record{testutil.NewTestRecord("RFP-2026-003")}))

	rec, err := repo.GetByID(ctx, "rfp-2026-003")
	require.NoError(t, err)
	assert.Equal(t, "RFP-2026-003", rec.ID)
	assert.Nil(t, rec.BudgetAED)
}

func TestRecordRepo_ReplaceAllRejectsDuplicateIDs(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	require.NoError(t, NewSQLiteRecordRepo(database).ReplaceAll(ctx, "", []domain.Record{testutil.NewTestRecord("KEEP")}))

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteRecordRepo(tx).ReplaceAll(ctx, "", []domain.Record{
			testutil.NewTestRecord("DUP"), testutil.NewTestRecord("DUP"),
		})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting record DUP")

	got, err := NewSQLiteRecordRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "KEEP", got[0].ID, "failed replace must roll back")
}

func TestRecordRepo_ReplaceAllRollbackMidway(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewSQLiteRecordRepo(database).ReplaceAll(ctx, "", []domain.Record{
		testutil.NewTestRecord("KEEP-1"), testutil.NewTestRecord("KEEP-2"),
	}))

	boom := errors.New("disk full")
	uow := testutil.NewFailingUoW(database, 3, boom)
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteRecordRepo(tx).ReplaceAll(ctx, "", []domain.Record{
			testutil.NewTestRecord("NEW-1"), testutil.NewTestRecord("NEW-2"), testutil.NewTestRecord("NEW-3"),
		})
	})
	require.ErrorIs(t, err, boom)

	n, err := NewSQLiteRecordRepo(database).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCatalogLoadRepo_CreateAndLatest(t *testing.T) {
	database := testutil.NewTestDB(t)
	loads := NewSQLiteCatalogLoadRepo(database)
	ctx := context.Background()

	_, err := loads.Latest(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	first := &domain.CatalogLoad{ID: "load-1", Source: "a.json", RecordCount: 4, LoadedAt: testutil.RefNow}
	second := &domain.CatalogLoad{ID: "load-2", Source: "b.yaml", RecordCount: 2, LoadedAt: testutil.RefNow.Add(time.Hour)}
	require.NoError(t, loads.Create(ctx, first))
	require.NoError(t, loads.Create(ctx, second))

	latest, err := loads.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "load-2", latest.ID)
	assert.Equal(t, "b.yaml", latest.Source)
	assert.True(t, second.LoadedAt.Equal(latest.LoadedAt))

	all, err := loads.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "load-1", all[1].ID)
}

func TestCatalogLoadRepo_RecordsReferenceLoad(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	err := NewSQLiteRecordRepo(database).ReplaceAll(ctx, "missing-load", []domain.Record{testutil.NewTestRecord("A")})
	assert.Error(t, err, "load_id must reference an existing catalog load")

	require.NoError(t, NewSQLiteCatalogLoadRepo(database).Create(ctx,
		&domain.CatalogLoad{ID: "load-1", Source: "x.json", RecordCount: 1, LoadedAt: testutil.RefNow}))
	require.NoError(t, NewSQLiteRecordRepo(database).ReplaceAll(ctx, "load-1", []domain.Record{testutil.NewTestRecord("A")}))

	var loadID string
	require.NoError(t, database.QueryRow(`SELECT load_id FROM rfp_records WHERE id = 'A'`).Scan(&loadID))
	assert.Equal(t, "load-1", loadID)
}
