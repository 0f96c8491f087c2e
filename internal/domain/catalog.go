package domain

import "time"

// CatalogLoad records one wholesale replacement of the record catalog.
type CatalogLoad struct {
	ID          string
	Source      string
	RecordCount int
	LoadedAt    time.Time
}
