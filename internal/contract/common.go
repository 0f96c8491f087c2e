package contract

import "github.com/alexanderramin/rfpwatch/internal/app"

type RecordView = app.RecordView

type RecordSource = app.RecordSource

type DashboardErrorCode = app.DashboardErrorCode

const (
	DashboardErrInvalidStatus     DashboardErrorCode = app.DashboardErrInvalidStatus
	DashboardErrInvalidSource     DashboardErrorCode = app.DashboardErrInvalidSource
	DashboardErrSourceUnavailable DashboardErrorCode = app.DashboardErrSourceUnavailable
	DashboardErrInvalidRecords    DashboardErrorCode = app.DashboardErrInvalidRecords
)

type DashboardError = app.DashboardError
