package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/app"
	"github.com/alexanderramin/rfpwatch/internal/contract"
	"github.com/alexanderramin/rfpwatch/internal/domain"
	"github.com/alexanderramin/rfpwatch/internal/sample"
	"github.com/alexanderramin/rfpwatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticSource serves a fixed record list, or err when set.
type staticSource struct {
	records []domain.Record
	err     error
	calls   int
}

func (s *staticSource) Name() string { return "static" }

func (s *staticSource) LoadRecords(context.Context) ([]domain.Record, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

// recordingObserver keeps every event it receives.
type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func dashboardRequest(filter aggregator.FilterCriteria) contract.DashboardRequest {
	req := contract.NewDashboardRequest()
	now := testutil.RefNow
	req.Now = &now
	req.Filter = filter
	return req
}

func TestGetDashboard_SampleSource(t *testing.T) {
	svc := NewDashboardService(SampleSource{}, aggregator.DefaultConfig())
	req := contract.NewDashboardRequest()
	now := sample.RefDate
	req.Now = &now

	resp, err := svc.GetDashboard(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "sample", resp.Source)
	assert.Equal(t, 8, resp.TotalRecords)
	assert.Equal(t, 8, resp.Aggregates.Total)
	assert.Len(t, resp.Records, 8)
	assert.Equal(t, []string{"All", "AUH", "DXB", "ALN", "SHJ"}, resp.SiteOptions)
	assert.Len(t, resp.StatusOptions, 8)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, now, resp.GeneratedAt)
}

func TestGetDashboard_FilterNarrowsAggregatesNotOptions(t *testing.T) {
	src := &staticSource{records: []domain.Record{
		testutil.NewTestRecord("RFP-2026-001", testutil.WithSite("AUH")),
		testutil.NewTestRecord("RFP-2026-003", testutil.WithSite("DXB")),
	}}
	svc := NewDashboardService(src, aggregator.DefaultConfig())

	resp, err := svc.GetDashboard(context.Background(), dashboardRequest(aggregator.FilterCriteria{TextQuery: "rfp-2026-003"}))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalRecords)
	assert.Equal(t, 1, resp.Aggregates.Total)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "RFP-2026-003", resp.Records[0].Record.ID)
	assert.Equal(t, []string{"All", "AUH", "DXB"}, resp.SiteOptions)
}

func TestGetDashboard_RecordViews(t *testing.T) {
	src := &staticSource{records: []domain.Record{
		testutil.NewTestRecord("A", testutil.WithDueIn(3), testutil.WithStatus(domain.StatusEvaluation),
			testutil.WithRisk(domain.RiskOverdue), testutil.WithApprovals(true, false, false)),
		testutil.NewTestRecord("B", testutil.WithDueDate("TBD")),
	}}
	svc := NewDashboardService(src, aggregator.DefaultConfig())

	resp, err := svc.GetDashboard(context.Background(), dashboardRequest(aggregator.NewFilterCriteria()))
	require.NoError(t, err)

	a := resp.Records[0]
	require.NotNil(t, a.DaysUntil)
	assert.Equal(t, 3, *a.DaysUntil)
	assert.Equal(t, domain.ToneWarn, a.StatusTone)
	assert.Equal(t, domain.ToneDanger, a.RiskTone)
	assert.Equal(t, domain.BucketOverdue, a.Bucket)
	assert.Equal(t, []string{"legal", "head"}, a.Missing)

	assert.Nil(t, resp.Records[1].DaysUntil)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], `record B: dueDate "TBD"`)
}

func TestGetDashboard_UnknownSiteWarns(t *testing.T) {
	src := &staticSource{records: []domain.Record{testutil.NewTestRecord("A")}}
	svc := NewDashboardService(src, aggregator.DefaultConfig())

	resp, err := svc.GetDashboard(context.Background(), dashboardRequest(aggregator.FilterCriteria{Site: "RUH"}))
	require.NoError(t, err)
	assert.Zero(t, resp.Aggregates.Total)
	assert.Equal(t, []string{`site "RUH" does not appear in any record`}, resp.Warnings)
}

func TestGetDashboard_InvalidStatusFilter(t *testing.T) {
	src := &staticSource{}
	svc := NewDashboardService(src, aggregator.DefaultConfig())

	_, err := svc.GetDashboard(context.Background(), dashboardRequest(aggregator.FilterCriteria{Status: "Cancelled"}))
	require.Error(t, err)

	var de *app.DashboardError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, app.DashboardErrInvalidStatus, de.Code)
	assert.Zero(t, src.calls, "source must not be read for an invalid request")
}

func TestGetDashboard_SourceFailure(t *testing.T) {
	cause := errors.New("disk gone")
	obs := &recordingObserver{}
	svc := NewDashboardService(&staticSource{err: cause}, aggregator.DefaultConfig(), obs)

	_, err := svc.GetDashboard(context.Background(), dashboardRequest(aggregator.NewFilterCriteria()))
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	var de *app.DashboardError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, app.DashboardErrSourceUnavailable, de.Code)

	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "dashboard", obs.events[0].Name)
}

func TestGetDashboard_ValidationFailureCode(t *testing.T) {
	src := &staticSource{err: formatValidationErrors([]error{errors.New("records[0].id is required")})}
	svc := NewDashboardService(src, aggregator.DefaultConfig())

	_, err := svc.GetDashboard(context.Background(), dashboardRequest(aggregator.NewFilterCriteria()))
	var de *app.DashboardError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, app.DashboardErrInvalidRecords, de.Code)
	assert.Contains(t, err.Error(), "records[0].id is required")
}

func TestGetDashboard_ObserverFields(t *testing.T) {
	obs := &recordingObserver{}
	src := &staticSource{records: []domain.Record{testutil.NewTestRecord("A"), testutil.NewTestRecord("B", testutil.WithSite("DXB"))}}
	svc := NewDashboardService(src, aggregator.DefaultConfig(), obs)

	_, err := svc.GetDashboard(context.Background(), dashboardRequest(aggregator.FilterCriteria{Site: "DXB"}))
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	e := obs.events[0]
	assert.True(t, e.Success)
	assert.Equal(t, 2, e.Fields["records"])
	assert.Equal(t, 1, e.Fields["matched"])
	assert.Equal(t, "DXB", e.Fields["site"])
}

func TestGetDashboard_CustomStagesFromConfig(t *testing.T) {
	stages, err := domain.NewStageSet([]domain.Status{"Open", "Closed"})
	require.NoError(t, err)
	src := &staticSource{records: []domain.Record{
		testutil.NewTestRecord("A", testutil.WithStatus("Open")),
		testutil.NewTestRecord("B", testutil.WithStatus("Closed")),
	}}
	svc := NewDashboardService(src, aggregator.Config{Stages: stages})

	resp, err := svc.GetDashboard(context.Background(), dashboardRequest(aggregator.FilterCriteria{Status: "Closed"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "Open", "Closed"}, resp.StatusOptions)
	assert.Equal(t, 1, resp.Aggregates.Total)
	assert.Zero(t, resp.Aggregates.ActiveCount)
	assert.Equal(t, []domain.Status{"Open", "Closed"}, resp.Stages())
}
