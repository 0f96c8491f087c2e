package app

import "github.com/alexanderramin/rfpwatch/internal/domain"

type LoadCatalogRequest struct {
	Path   string
	Strict bool
}

type LoadCatalogResult struct {
	Load domain.CatalogLoad
	// Replaced is the number of records the load removed.
	Replaced int
}

type CatalogInfo struct {
	RecordCount int
	Latest      *domain.CatalogLoad
	History     []*domain.CatalogLoad
}
