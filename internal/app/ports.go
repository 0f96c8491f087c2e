package app

import (
	"context"

	"github.com/alexanderramin/rfpwatch/internal/domain"
)

// RecordSource supplies the full record set for one dashboard computation.
type RecordSource interface {
	Name() string
	LoadRecords(ctx context.Context) ([]domain.Record, error)
}

type DashboardUseCase interface {
	GetDashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error)
}

type LoadCatalogUseCase interface {
	LoadCatalog(ctx context.Context, req LoadCatalogRequest) (*LoadCatalogResult, error)
}

type CatalogInfoUseCase interface {
	CatalogInfo(ctx context.Context, historyLimit int) (*CatalogInfo, error)
}
