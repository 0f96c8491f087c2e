package app

import "github.com/alexanderramin/rfpwatch/internal/domain"

// RecordView pairs a record with the values the presentation layer derives
// from it, so formatters never re-parse dates.
type RecordView struct {
	Record     domain.Record
	DaysUntil  *int
	StatusTone domain.Tone
	RiskTone   domain.Tone
	Bucket     domain.RiskBucket
	Missing    []string
}

type DashboardErrorCode string

const (
	DashboardErrInvalidStatus     DashboardErrorCode = "INVALID_STATUS"
	DashboardErrInvalidSource     DashboardErrorCode = "INVALID_SOURCE"
	DashboardErrSourceUnavailable DashboardErrorCode = "SOURCE_UNAVAILABLE"
	DashboardErrInvalidRecords    DashboardErrorCode = "INVALID_RECORDS"
)

// DashboardError is a request-level failure with a stable code. Err, when
// set, is the underlying cause.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

func (e *DashboardError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *DashboardError) Unwrap() error { return e.Err }
