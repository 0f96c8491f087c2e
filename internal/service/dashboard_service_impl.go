package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/app"
	"github.com/alexanderramin/rfpwatch/internal/contract"
	"github.com/alexanderramin/rfpwatch/internal/domain"
)

type dashboardService struct {
	source   app.RecordSource
	agg      *aggregator.Aggregator
	observer UseCaseObserver
}

func NewDashboardService(source app.RecordSource, cfg aggregator.Config, observers ...UseCaseObserver) DashboardService {
	return &dashboardService{
		source:   source,
		agg:      aggregator.New(cfg),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, req contract.DashboardRequest) (resp *contract.DashboardResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"source": s.source.Name(),
		"query":  req.Filter.TextQuery,
		"site":   req.Filter.Site,
		"status": req.Filter.Status,
	}
	defer func() {
		observe(ctx, s.observer, "dashboard", startedAt, fields, err)
	}()

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}

	stages := s.agg.Config().Stages
	if st := req.Filter.Status; st != "" && st != aggregator.All && !stages.Contains(domain.Status(st)) {
		return nil, &app.DashboardError{
			Code:    app.DashboardErrInvalidStatus,
			Message: fmt.Sprintf("unknown status %q (want All or one of %v)", st, stages.Stages()),
		}
	}

	records, err := s.source.LoadRecords(ctx)
	if err != nil {
		code := app.DashboardErrSourceUnavailable
		if errors.Is(err, ErrValidation) {
			code = app.DashboardErrInvalidRecords
		}
		return nil, &app.DashboardError{Code: code, Message: "loading records from " + s.source.Name(), Err: err}
	}

	filtered := aggregator.FilterRecords(records, req.Filter)
	aggregates := s.agg.Compute(filtered, now)
	fields["records"] = len(records)
	fields["matched"] = len(filtered)
	fields["issues"] = len(aggregates.Issues)

	resp = &contract.DashboardResponse{
		GeneratedAt:   now,
		Source:        s.source.Name(),
		Filter:        req.Filter,
		SiteOptions:   aggregator.SiteOptions(records),
		StatusOptions: aggregator.StatusOptions(stages),
		TotalRecords:  len(records),
		DueWindowDays: s.agg.Config().DueWindowDays,
		Records:       buildRecordViews(filtered, now),
		Aggregates:    aggregates,
		Warnings:      buildWarnings(req.Filter, records, aggregates),
	}
	return resp, nil
}

func buildRecordViews(records []domain.Record, now time.Time) []app.RecordView {
	views := make([]app.RecordView, 0, len(records))
	for _, r := range records {
		views = append(views, NewRecordView(r, now))
	}
	return views
}

// NewRecordView derives the presentation values for one record.
func NewRecordView(r domain.Record, now time.Time) app.RecordView {
	v := app.RecordView{Record: r, Missing: r.Approvals.Missing()}
	if days, err := aggregator.DaysUntil(r.DueDate, now); err == nil {
		v.DaysUntil = &days
	}
	v.StatusTone, _ = domain.StatusTone(r.Status)
	v.RiskTone, _ = domain.RiskTone(r.Risk)
	v.Bucket, _ = r.Risk.Bucket()
	return v
}

func buildWarnings(filter aggregator.FilterCriteria, records []domain.Record, agg aggregator.DashboardAggregates) []string {
	var warnings []string
	if site := filter.Site; site != "" && site != aggregator.All && !slices.Contains(aggregator.SiteOptions(records), site) {
		warnings = append(warnings, fmt.Sprintf("site %q does not appear in any record", site))
	}
	for _, issue := range agg.Issues {
		warnings = append(warnings, issue.Error())
	}
	return warnings
}
