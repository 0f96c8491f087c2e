package contract

import "github.com/alexanderramin/rfpwatch/internal/app"

type DashboardRequest = app.DashboardRequest

func NewDashboardRequest() DashboardRequest {
	return app.NewDashboardRequest()
}

type DashboardResponse = app.DashboardResponse

type LoadCatalogRequest = app.LoadCatalogRequest

type LoadCatalogResult = app.LoadCatalogResult

type CatalogInfo = app.CatalogInfo
