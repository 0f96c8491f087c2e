package app

import (
	"time"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/domain"
)

type DashboardRequest struct {
	Now    *time.Time
	Filter aggregator.FilterCriteria
}

func NewDashboardRequest() DashboardRequest {
	return DashboardRequest{Filter: aggregator.NewFilterCriteria()}
}

type DashboardResponse struct {
	GeneratedAt   time.Time
	Source        string
	Filter        aggregator.FilterCriteria
	SiteOptions   []string
	StatusOptions []string
	TotalRecords  int
	DueWindowDays int
	Records       []RecordView
	Aggregates    aggregator.DashboardAggregates
	Warnings      []string
}

// Stages returns the stage order the aggregates were computed with.
func (r *DashboardResponse) Stages() []domain.Status {
	out := make([]domain.Status, 0, len(r.Aggregates.PipelineCounts))
	for _, sc := range r.Aggregates.PipelineCounts {
		out = append(out, sc.Stage)
	}
	return out
}
