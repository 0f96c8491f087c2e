package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/rfpwatch/internal/domain"
	"github.com/alexanderramin/rfpwatch/internal/importer"
	"github.com/alexanderramin/rfpwatch/internal/repository"
	"github.com/alexanderramin/rfpwatch/internal/sample"
)

// SampleSource serves the embedded demonstration records.
type SampleSource struct{}

func (SampleSource) Name() string { return sample.SourceName }

func (SampleSource) LoadRecords(context.Context) ([]domain.Record, error) {
	return sample.Records()
}

// FileSource reads a JSON or YAML record file on every load so edits are
// picked up without restarting. Only structural problems fail the load;
// bad statuses and dates surface as aggregation issues.
type FileSource struct {
	Path   string
	Stages domain.StageSet
}

func NewFileSource(path string, stages domain.StageSet) *FileSource {
	return &FileSource{Path: path, Stages: stages}
}

func (s *FileSource) Name() string { return "file:" + s.Path }

func (s *FileSource) LoadRecords(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := importer.LoadRecordFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("loading record file: %w", err)
	}
	if errs := importer.ValidateRecordFile(f, s.Stages, false); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	return importer.Convert(f), nil
}

// CatalogSource reads the records of the latest catalog load.
type CatalogSource struct {
	records repository.RecordRepo
}

func NewCatalogSource(records repository.RecordRepo) *CatalogSource {
	return &CatalogSource{records: records}
}

func (s *CatalogSource) Name() string { return "catalog" }

func (s *CatalogSource) LoadRecords(ctx context.Context) ([]domain.Record, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return records, nil
}

// ErrValidation wraps every record file validation failure.
var ErrValidation = errors.New("record validation failed")

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf(" (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w%s", ErrValidation, msg)
}
