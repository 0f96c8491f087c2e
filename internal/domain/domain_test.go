package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStageSet_Order(t *testing.T) {
	set := DefaultStageSet()
	require.Equal(t, 7, set.Len())
	assert.Equal(t, DefaultStages, set.Stages())
	assert.Equal(t, StatusAwarded, set.Terminal())
	assert.Equal(t, 3, set.Index(StatusQA))
	assert.Equal(t, -1, set.Index("Cancelled"))
}

func TestNewStageSet_Rejects(t *testing.T) {
	_, err := NewStageSet(nil)
	assert.Error(t, err)

	_, err = NewStageSet([]Status{"Open", ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")

	_, err = NewStageSet([]Status{"Open", "Closed", "Open"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestStageSet_StagesIsCopy(t *testing.T) {
	set := DefaultStageSet()
	stages := set.Stages()
	stages[0] = "Mutated"
	assert.Equal(t, StatusDraft, set.Stages()[0])
}

func TestStageSet_CustomTerminal(t *testing.T) {
	set, err := NewStageSet([]Status{"Open", "Closed"})
	require.NoError(t, err)
	assert.True(t, set.IsTerminal("Closed"))
	assert.False(t, set.IsTerminal(StatusAwarded))
}

func TestStatusTone_CoversDefaultStages(t *testing.T) {
	for _, s := range DefaultStages {
		_, ok := StatusTone(s)
		assert.True(t, ok, "status %q has no tone", s)
	}

	tone, _ := StatusTone(StatusAwarded)
	assert.Equal(t, ToneOK, tone)
	tone, _ = StatusTone(StatusEvaluation)
	assert.Equal(t, ToneWarn, tone)
	tone, _ = StatusTone(StatusSubmissionClosed)
	assert.Equal(t, ToneWarn, tone)
	tone, _ = StatusTone(StatusDraft)
	assert.Equal(t, ToneNeutral, tone)

	tone, ok := StatusTone("Cancelled")
	assert.False(t, ok)
	assert.Equal(t, ToneNeutral, tone)
}

func TestRiskTone_CoversAllRisks(t *testing.T) {
	want := map[Risk]Tone{RiskNone: ToneNeutral, RiskAtRisk: ToneWarn, RiskOverdue: ToneDanger}
	for _, r := range AllRisks {
		tone, ok := RiskTone(r)
		require.True(t, ok, "risk %q has no tone", r)
		assert.Equal(t, want[r], tone)
	}
}

func TestRisk_Bucket(t *testing.T) {
	b, ok := RiskNone.Bucket()
	assert.True(t, ok)
	assert.Equal(t, BucketOnTrack, b)

	b, _ = RiskAtRisk.Bucket()
	assert.Equal(t, BucketAtRisk, b)

	b, _ = RiskOverdue.Bucket()
	assert.Equal(t, BucketOverdue, b)

	_, ok = Risk("Unknown").Bucket()
	assert.False(t, ok)
	assert.Len(t, RiskBuckets, len(AllRisks))
}

func TestApprovals_Missing(t *testing.T) {
	assert.True(t, Approvals{Finance: true, Legal: true, Head: true}.Complete())
	assert.Empty(t, Approvals{Finance: true, Legal: true, Head: true}.Missing())

	a := Approvals{Finance: true}
	assert.False(t, a.Complete())
	assert.Equal(t, []string{"legal", "head"}, a.Missing())
}

func TestRecord_SearchText(t *testing.T) {
	r := Record{ID: "RFP-2026-001", Title: "Solar PV", Category: "Energy/Solar", Owner: "Procurement", Site: "AUH"}
	text := r.SearchText()
	assert.Equal(t, "rfp-2026-001 solar pv energy/solar procurement", text)
	assert.NotContains(t, text, "auh")
}

func TestRecord_NotSubmitted(t *testing.T) {
	r := Record{VendorsInvited: 5, Submissions: 2}
	assert.Equal(t, 3, r.NotSubmitted())

	r = Record{VendorsInvited: 2, Submissions: 4}
	assert.Equal(t, 0, r.NotSubmitted())
}

func TestRecord_ValidateShape(t *testing.T) {
	neg := -1.0
	cases := []struct {
		name    string
		rec     Record
		wantMsg string
	}{
		{"missing id", Record{ID: "  "}, "id is required"},
		{"negative invited", Record{ID: "A", VendorsInvited: -1}, "vendorsInvited"},
		{"negative submissions", Record{ID: "A", Submissions: -2}, "submissions"},
		{"negative budget", Record{ID: "A", BudgetAED: &neg}, "budgetAed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.ValidateShape()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}

	ok := Record{ID: "A", Status: "Anything", DueDate: "not-a-date"}
	assert.NoError(t, ok.ValidateShape())
}

func TestCoalesceHelpers(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr())
	assert.Equal(t, 7, IntOr(7, 0, -1))
	assert.Equal(t, 3, IntOr(7, 0, 3))
}
