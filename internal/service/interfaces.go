package service

import (
	"context"

	"github.com/alexanderramin/rfpwatch/internal/contract"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, req contract.DashboardRequest) (*contract.DashboardResponse, error)
}

type CatalogService interface {
	LoadCatalog(ctx context.Context, req contract.LoadCatalogRequest) (*contract.LoadCatalogResult, error)
	CatalogInfo(ctx context.Context, historyLimit int) (*contract.CatalogInfo, error)
}
