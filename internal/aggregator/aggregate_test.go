package aggregator

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/alexanderramin/rfpwatch/internal/domain"
	"github.com/alexanderramin/rfpwatch/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = testutil.RefNow

func TestCompute_AwardedExcludedFromActiveAndOverdue(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("A", testutil.WithStatus(domain.StatusDraft), testutil.WithDueIn(3),
			testutil.WithBudget(100), testutil.WithSite("X")),
		testutil.NewTestRecord("B", testutil.WithStatus(domain.StatusAwarded), testutil.WithDueIn(-5),
			testutil.WithBudget(200), testutil.WithSite("X")),
	}

	agg := New(DefaultConfig()).Compute(records, now)

	assert.Equal(t, 2, agg.Total)
	assert.Equal(t, 1, agg.ActiveCount)
	assert.Empty(t, agg.Overdue)
	assert.Equal(t, []string{"A"}, ids(agg.DueThisWeek))
	assert.Equal(t, []SiteBudget{{Site: "X", Total: 300}}, agg.BudgetBySite)
	assert.Empty(t, agg.Issues)
}

func TestCompute_MissingApprovalRaisesAlert(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("A", testutil.WithDueIn(30)),
		testutil.NewTestRecord("B", testutil.WithDueIn(30), testutil.WithApprovals(true, false, true)),
	}

	agg := New(DefaultConfig()).Compute(records, now)

	assert.Equal(t, []string{"B"}, ids(agg.MissingApprovals))
	require.Len(t, agg.Alerts, 1)
	assert.Equal(t, Alert{Type: AlertWarn, Text: "1 RFP(s) missing one or more approvals", Count: 1}, agg.Alerts[0])
}

func TestCompute_EmptySet(t *testing.T) {
	agg := New(DefaultConfig()).Compute(nil, now)

	assert.Zero(t, agg.Total)
	assert.Zero(t, agg.ActiveCount)
	require.Len(t, agg.PipelineCounts, 7)
	for _, sc := range agg.PipelineCounts {
		assert.Zero(t, sc.Count, "stage %s", sc.Stage)
	}
	require.Len(t, agg.RiskDistribution, 3)
	for _, bc := range agg.RiskDistribution {
		assert.Zero(t, bc.Count)
	}
	assert.NotNil(t, agg.CategoryCounts)
	assert.NotNil(t, agg.BudgetBySite)
	assert.NotNil(t, agg.VendorParticipation)
	assert.NotNil(t, agg.DueThisWeek)
	assert.NotNil(t, agg.Overdue)
	assert.NotNil(t, agg.MissingApprovals)
	assert.NotNil(t, agg.DueSoon)
	assert.NotNil(t, agg.Issues)
	assert.Equal(t, []Alert{{Type: AlertInfo, Text: NoCriticalAlerts}}, agg.Alerts)
}

func TestCompute_AlertOrder(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("MISSING", testutil.WithDueIn(40), testutil.WithApprovals(false, false, false)),
		testutil.NewTestRecord("LATE", testutil.WithDueIn(-2), testutil.WithStatus(domain.StatusEvaluation)),
		testutil.NewTestRecord("SOON", testutil.WithDueIn(7)),
	}

	agg := New(DefaultConfig()).Compute(records, now)

	want := []Alert{
		{Type: AlertWarn, Text: "1 RFP(s) due within 7 days", Count: 1},
		{Type: AlertDanger, Text: "1 RFP(s) overdue", Count: 1},
		{Type: AlertWarn, Text: "1 RFP(s) missing one or more approvals", Count: 1},
	}
	if diff := cmp.Diff(want, agg.Alerts); diff != "" {
		t.Errorf("alerts mismatch (-want +got):\n%s", diff)
	}
}

func TestCompute_DueWindowBoundaries(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("TODAY", testutil.WithDueIn(0)),
		testutil.NewTestRecord("EDGE", testutil.WithDueIn(7)),
		testutil.NewTestRecord("PAST_EDGE", testutil.WithDueIn(8)),
		testutil.NewTestRecord("YESTERDAY", testutil.WithDueIn(-1)),
	}

	agg := New(DefaultConfig()).Compute(records, now)

	assert.Equal(t, []string{"TODAY", "EDGE"}, ids(agg.DueThisWeek))
	assert.Equal(t, []string{"YESTERDAY"}, ids(agg.Overdue))
}

func TestCompute_CustomDueWindow(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("A", testutil.WithDueIn(3)),
		testutil.NewTestRecord("B", testutil.WithDueIn(10)),
	}
	cfg := DefaultConfig()
	cfg.DueWindowDays = 14

	agg := New(cfg).Compute(records, now)

	assert.Equal(t, []string{"A", "B"}, ids(agg.DueThisWeek))
	assert.Equal(t, "2 RFP(s) due within 14 days", agg.Alerts[0].Text)
}

func TestCompute_PipelineCountsFollowStageOrder(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("A", testutil.WithStatus(domain.StatusQA)),
		testutil.NewTestRecord("B", testutil.WithStatus(domain.StatusQA)),
		testutil.NewTestRecord("C", testutil.WithStatus(domain.StatusAwarded)),
		testutil.NewTestRecord("D", testutil.WithStatus(domain.StatusDraft)),
	}

	agg := New(DefaultConfig()).Compute(records, now)

	want := []StageCount{
		{Stage: domain.StatusDraft, Count: 1},
		{Stage: domain.StatusInternalReview, Count: 0},
		{Stage: domain.StatusPublished, Count: 0},
		{Stage: domain.StatusQA, Count: 2},
		{Stage: domain.StatusSubmissionClosed, Count: 0},
		{Stage: domain.StatusEvaluation, Count: 0},
		{Stage: domain.StatusAwarded, Count: 1},
	}
	assert.Equal(t, want, agg.PipelineCounts)
	assert.Equal(t, agg.PipelineCounts, agg.StatusDistribution)
}

func TestCompute_CustomStageSet(t *testing.T) {
	stages, err := domain.NewStageSet([]domain.Status{"Open", "Closed"})
	require.NoError(t, err)
	records := []domain.Record{
		testutil.NewTestRecord("A", testutil.WithStatus("Open"), testutil.WithDueIn(-3)),
		testutil.NewTestRecord("B", testutil.WithStatus("Closed"), testutil.WithDueIn(-3)),
		testutil.NewTestRecord("C", testutil.WithStatus(domain.StatusAwarded), testutil.WithDueIn(-3)),
	}

	agg := New(Config{Stages: stages}).Compute(records, now)

	assert.Equal(t, []StageCount{{Stage: "Open", Count: 1}, {Stage: "Closed", Count: 1}}, agg.PipelineCounts)
	assert.Equal(t, 2, agg.ActiveCount)
	assert.Equal(t, []string{"A", "C"}, ids(agg.Overdue))
	require.Len(t, agg.Issues, 1)
	assert.Equal(t, IssueInvalidStatus, agg.Issues[0].Kind)
}

func TestCompute_RiskDistribution(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("A"),
		testutil.NewTestRecord("B", testutil.WithRisk(domain.RiskAtRisk)),
		testutil.NewTestRecord("C", testutil.WithRisk(domain.RiskOverdue)),
		testutil.NewTestRecord("D", testutil.WithRisk(domain.RiskOverdue)),
		testutil.NewTestRecord("E", testutil.WithRisk("Critical")),
	}

	agg := New(DefaultConfig()).Compute(records, now)

	want := []BucketCount{
		{Bucket: domain.BucketOnTrack, Count: 1},
		{Bucket: domain.BucketAtRisk, Count: 1},
		{Bucket: domain.BucketOverdue, Count: 2},
	}
	assert.Equal(t, want, agg.RiskDistribution)
	require.Len(t, agg.Issues, 1)
	assert.Equal(t, Issue{RecordID: "E", Field: "risk", Kind: IssueInvalidRisk, Value: "Critical"}, agg.Issues[0])
}

func TestCompute_CategoryCountsFirstSeen(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("A", testutil.WithCategory("Electrical")),
		testutil.NewTestRecord("B", testutil.WithCategory("M&E/HVAC")),
		testutil.NewTestRecord("C", testutil.WithCategory("Electrical")),
		testutil.NewTestRecord("D", testutil.WithCategory("Brand New Category")),
	}

	agg := New(DefaultConfig()).Compute(records, now)

	want := []CategoryCount{
		{Category: "Electrical", Count: 2},
		{Category: "M&E/HVAC", Count: 1},
		{Category: "Brand New Category", Count: 1},
	}
	assert.Equal(t, want, agg.CategoryCounts)
}

func TestCompute_BudgetBySiteSortedDescending(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("A", testutil.WithSite("ALN"), testutil.WithBudget(500)),
		testutil.NewTestRecord("B", testutil.WithSite("AUH"), testutil.WithBudget(2000)),
		testutil.NewTestRecord("C", testutil.WithSite("DXB")),
		testutil.NewTestRecord("D", testutil.WithSite("ALN"), testutil.WithBudget(700)),
		testutil.NewTestRecord("E", testutil.WithSite("SHJ"), testutil.WithBudget(1200)),
		testutil.NewTestRecord("F", testutil.WithSite("RAK"), testutil.WithBudget(0)),
	}

	agg := New(DefaultConfig()).Compute(records, now)

	want := []SiteBudget{
		{Site: "AUH", Total: 2000},
		{Site: "ALN", Total: 1200},
		{Site: "SHJ", Total: 1200},
		{Site: "RAK", Total: 0},
	}
	assert.Equal(t, want, agg.BudgetBySite)
	assert.InDelta(t, 4400, agg.TotalBudget(), 1e-9)
}

func TestCompute_VendorParticipationMostRecentFirst(t *testing.T) {
	var records []domain.Record
	for i, id := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		records = append(records, testutil.NewTestRecord(id,
			testutil.WithLastActivity(testutil.DaysFrom(now, -i)),
			testutil.WithVendors(4, i)))
	}
	records[0].LastActivity = "unknown"

	agg := New(DefaultConfig()).Compute(records, now)

	require.Len(t, agg.VendorParticipation, 6)
	got := make([]string, 0, 6)
	for _, vp := range agg.VendorParticipation {
		got = append(got, vp.RecordID)
		assert.GreaterOrEqual(t, vp.NotSubmitted, 0)
	}
	assert.Equal(t, []string{"B", "C", "D", "E", "F", "G"}, got)
	assert.Equal(t, VendorParticipation{RecordID: "F", Invited: 4, Submitted: 5, NotSubmitted: 0}, agg.VendorParticipation[4])
}

func TestCompute_DueSoonAscending(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("BROKEN", testutil.WithDueDate("next week")),
		testutil.NewTestRecord("D20", testutil.WithDueIn(20)),
		testutil.NewTestRecord("D2", testutil.WithDueIn(2)),
		testutil.NewTestRecord("LATE", testutil.WithDueIn(-4)),
		testutil.NewTestRecord("D9", testutil.WithDueIn(9)),
		testutil.NewTestRecord("D5", testutil.WithDueIn(5)),
	}

	agg := New(DefaultConfig()).Compute(records, now)

	assert.Equal(t, []string{"LATE", "D2", "D5", "D9"}, ids(agg.DueSoon))
}

func TestCompute_MalformedDateReportedNotFatal(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("BAD", testutil.WithDueDate("2026-02-31"), testutil.WithBudget(50),
			testutil.WithLastActivity("yesterday")),
		testutil.NewTestRecord("GOOD", testutil.WithDueIn(1)),
	}

	agg := New(DefaultConfig()).Compute(records, now)

	assert.Equal(t, 2, agg.Total)
	assert.Equal(t, 2, agg.ActiveCount)
	assert.Equal(t, []string{"GOOD"}, ids(agg.DueThisWeek))
	assert.Empty(t, agg.Overdue)
	assert.Equal(t, []SiteBudget{{Site: "AUH", Total: 50}}, agg.BudgetBySite)

	require.Len(t, agg.Issues, 2)
	assert.Equal(t, "dueDate", agg.Issues[0].Field)
	assert.Equal(t, "lastActivity", agg.Issues[1].Field)
	for _, issue := range agg.Issues {
		assert.True(t, errors.Is(issue, ErrInvalidDate))
	}
}

func TestCompute_UnknownStatusExcludedFromPipelineOnly(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("A", testutil.WithStatus("Cancelled"), testutil.WithDueIn(-1),
			testutil.WithCategory("Civil"), testutil.WithBudget(10)),
	}

	agg := New(DefaultConfig()).Compute(records, now)

	for _, sc := range agg.PipelineCounts {
		assert.Zero(t, sc.Count)
	}
	assert.Equal(t, 1, agg.ActiveCount)
	assert.Equal(t, []string{"A"}, ids(agg.Overdue))
	assert.Equal(t, []CategoryCount{{Category: "Civil", Count: 1}}, agg.CategoryCounts)
	require.Len(t, agg.Issues, 1)
	assert.ErrorIs(t, agg.Issues[0], ErrInvalidStatus)
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	records := randomRecords(rand.New(rand.NewSource(7)), 12)
	before := make([]domain.Record, len(records))
	copy(before, records)

	_ = New(DefaultConfig()).Compute(records, now)

	if diff := cmp.Diff(before, records); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestRun_FiltersThenAggregates(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestRecord("RFP-2026-001", testutil.WithSite("AUH")),
		testutil.NewTestRecord("RFP-2026-003", testutil.WithSite("DXB")),
	}

	agg := New(DefaultConfig()).Run(records, FilterCriteria{TextQuery: "RFP-2026-003"}, now)

	assert.Equal(t, 1, agg.Total)
	assert.Equal(t, "RFP-2026-003", agg.DueSoon[0].ID)
}

func TestNew_FillsDefaults(t *testing.T) {
	a := New(Config{DueWindowDays: 3})
	cfg := a.Config()
	assert.Equal(t, 3, cfg.DueWindowDays)
	assert.Equal(t, DefaultVendorTopN, cfg.VendorTopN)
	assert.Equal(t, DefaultDueSoonLimit, cfg.DueSoonLimit)
	assert.Equal(t, 7, cfg.Stages.Len())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.DueWindowDays = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.VendorTopN = -1
	assert.Error(t, cfg.Validate())

	assert.Error(t, Config{DueWindowDays: 1, VendorTopN: 1, DueSoonLimit: 1}.Validate())
}

var (
	propSites      = []string{"AUH", "DXB", "ALN", "SHJ"}
	propCategories = []string{"Electrical", "M&E/HVAC", "Energy/Solar", "Civil", "IT"}
	propStatuses   = append(domain.DefaultStageSet().Stages(), "Cancelled")
	propRisks      = append(append([]domain.Risk{}, domain.AllRisks...), "Bogus")
)

func randomRecords(rng *rand.Rand, n int) []domain.Record {
	records := make([]domain.Record, n)
	for i := range records {
		opts := []testutil.RecordOption{
			testutil.WithSite(propSites[rng.Intn(len(propSites))]),
			testutil.WithCategory(propCategories[rng.Intn(len(propCategories))]),
			testutil.WithStatus(propStatuses[rng.Intn(len(propStatuses))]),
			testutil.WithRisk(propRisks[rng.Intn(len(propRisks))]),
			testutil.WithDueIn(rng.Intn(40) - 15),
			testutil.WithLastActivity(testutil.DaysFrom(now, -rng.Intn(30))),
			testutil.WithVendors(rng.Intn(8), rng.Intn(10)),
			testutil.WithApprovals(rng.Intn(4) > 0, rng.Intn(4) > 0, rng.Intn(4) > 0),
		}
		if rng.Intn(3) > 0 {
			opts = append(opts, testutil.WithBudget(float64(rng.Intn(5_000_000))))
		}
		if rng.Intn(10) == 0 {
			opts = append(opts, testutil.WithDueDate("bad-date"))
		}
		records[i] = testutil.NewTestRecord(randomID(rng, i), opts...)
	}
	return records
}

func randomID(rng *rand.Rand, i int) string {
	return "RFP-" + string(rune('A'+i%26)) + string(rune('0'+rng.Intn(10)))
}

// TestCompute_Invariants property-tests the aggregate invariants over random
// record sets and filters.
func TestCompute_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	agg := New(DefaultConfig())
	stages := agg.Config().Stages

	for trial := 0; trial < 200; trial++ {
		records := randomRecords(rng, rng.Intn(25))
		criteria := FilterCriteria{Site: All, Status: All}
		if rng.Intn(2) == 0 {
			criteria.Site = propSites[rng.Intn(len(propSites))]
		}
		if rng.Intn(3) == 0 {
			criteria.Status = string(propStatuses[rng.Intn(len(propStatuses))])
		}
		if rng.Intn(3) == 0 {
			criteria.TextQuery = propCategories[rng.Intn(len(propCategories))]
		}

		filtered := FilterRecords(records, criteria)

		// Invariant 1: filtered is an order-preserving subsequence
		j := 0
		for _, r := range records {
			if j < len(filtered) && cmp.Equal(r, filtered[j]) {
				j++
			}
		}
		assert.Equal(t, len(filtered), j, "trial %d: filter output is not a subsequence", trial)

		got := agg.Compute(filtered, now)

		// Invariant 2: pipeline counts cover every record with a known status
		known := 0
		for _, r := range filtered {
			if stages.Contains(r.Status) {
				known++
			}
		}
		sum := 0
		for _, sc := range got.PipelineCounts {
			sum += sc.Count
		}
		assert.Equal(t, known, sum, "trial %d: pipeline sum", trial)
		assert.Len(t, got.PipelineCounts, stages.Len())

		// Invariant 3: budget by site sums to total defined budget
		var budget float64
		for _, r := range filtered {
			if r.HasBudget() {
				budget += *r.BudgetAED
			}
		}
		assert.InDelta(t, budget, got.TotalBudget(), 1e-6, "trial %d: budget sum", trial)
		for k := 1; k < len(got.BudgetBySite); k++ {
			assert.GreaterOrEqual(t, got.BudgetBySite[k-1].Total, got.BudgetBySite[k].Total)
		}

		// Invariant 4: vendor participation bounded and non-negative
		assert.LessOrEqual(t, len(got.VendorParticipation), DefaultVendorTopN)
		for _, vp := range got.VendorParticipation {
			assert.GreaterOrEqual(t, vp.NotSubmitted, 0)
		}

		// Invariant 5: nothing terminal is overdue or active
		for _, r := range got.Overdue {
			assert.NotEqual(t, domain.StatusAwarded, r.Status)
		}
		assert.LessOrEqual(t, got.ActiveCount, got.Total)
		assert.LessOrEqual(t, len(got.DueSoon), DefaultDueSoonLimit)
		assert.NotEmpty(t, got.Alerts)

		// Invariant 6: idempotence
		again := agg.Compute(filtered, now)
		if diff := cmp.Diff(got, again); diff != "" {
			t.Fatalf("trial %d: compute is not idempotent:\n%s", trial, diff)
		}
	}
}
