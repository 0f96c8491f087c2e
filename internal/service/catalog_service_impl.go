package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/contract"
	"github.com/alexanderramin/rfpwatch/internal/db"
	"github.com/alexanderramin/rfpwatch/internal/domain"
	"github.com/alexanderramin/rfpwatch/internal/importer"
	"github.com/alexanderramin/rfpwatch/internal/repository"
	"github.com/google/uuid"
)

type catalogService struct {
	uow      db.UnitOfWork
	stages   domain.StageSet
	observer UseCaseObserver
	clock    func() time.Time
}

// NewCatalogService builds the catalog use cases. Every read and write goes
// through uow; strict loads check statuses against stages.
func NewCatalogService(uow db.UnitOfWork, stages domain.StageSet, observers ...UseCaseObserver) CatalogService {
	return &catalogService{
		uow:      uow,
		stages:   stages,
		observer: useCaseObserverOrNoop(observers),
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

// LoadCatalog replaces the whole catalog with the contents of a record file.
// Validation runs before any write; the replacement is a single transaction.
func (s *catalogService) LoadCatalog(ctx context.Context, req contract.LoadCatalogRequest) (result *contract.LoadCatalogResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": req.Path, "strict": req.Strict}
	defer func() {
		observe(ctx, s.observer, "catalog-load", startedAt, fields, err)
	}()

	f, err := importer.LoadRecordFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("loading record file: %w", err)
	}
	if errs := importer.ValidateRecordFile(f, s.stages, req.Strict); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}
	records := importer.Convert(f)

	load := domain.CatalogLoad{
		ID:          uuid.New().String(),
		Source:      f.Source,
		RecordCount: len(records),
		LoadedAt:    s.clock(),
	}
	fields["load_id"] = load.ID
	fields["records"] = load.RecordCount

	var replaced int
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRecords := repository.NewSQLiteRecordRepo(tx)
		txLoads := repository.NewSQLiteCatalogLoadRepo(tx)

		n, err := txRecords.Count(ctx)
		if err != nil {
			return err
		}
		replaced = n

		if err := txLoads.Create(ctx, &load); err != nil {
			return err
		}
		return txRecords.ReplaceAll(ctx, load.ID, records)
	})
	if err != nil {
		return nil, fmt.Errorf("replacing catalog: %w", err)
	}

	return &contract.LoadCatalogResult{Load: load, Replaced: replaced}, nil
}

// CatalogInfo reads the record count and load history from one snapshot, so
// a load committing halfway through cannot pair new counts with old history.
func (s *catalogService) CatalogInfo(ctx context.Context, historyLimit int) (*contract.CatalogInfo, error) {
	info := &contract.CatalogInfo{}
	err := s.uow.WithinSnapshot(ctx, func(ctx context.Context, tx db.DBTX) error {
		loads := repository.NewSQLiteCatalogLoadRepo(tx)

		count, err := repository.NewSQLiteRecordRepo(tx).Count(ctx)
		if err != nil {
			return err
		}
		info.RecordCount = count

		latest, err := loads.Latest(ctx)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil
		case err != nil:
			return err
		}
		info.Latest = latest

		if historyLimit > 0 {
			info.History, err = loads.List(ctx, historyLimit)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reading catalog info: %w", err)
	}
	return info, nil
}
