package domain

// Status is a workflow stage of an RFP.
type Status string

const (
	StatusDraft            Status = "Draft"
	StatusInternalReview   Status = "Internal Review"
	StatusPublished        Status = "Published"
	StatusQA               Status = "Q&A"
	StatusSubmissionClosed Status = "Submission Closed"
	StatusEvaluation       Status = "Evaluation"
	StatusAwarded          Status = "Awarded"
)

// Risk is the externally supplied health flag of an RFP.
type Risk string

const (
	RiskNone    Risk = "None"
	RiskAtRisk  Risk = "At Risk"
	RiskOverdue Risk = "Overdue"
)

// AllRisks lists every accepted risk value.
var AllRisks = []Risk{RiskNone, RiskAtRisk, RiskOverdue}

// RiskBucket is the display label a risk value is counted under.
type RiskBucket string

const (
	BucketOnTrack RiskBucket = "On track"
	BucketAtRisk  RiskBucket = "At risk"
	BucketOverdue RiskBucket = "Overdue"
)

// RiskBuckets is the fixed display order of the risk distribution.
var RiskBuckets = []RiskBucket{BucketOnTrack, BucketAtRisk, BucketOverdue}

var riskBuckets = map[Risk]RiskBucket{
	RiskNone:    BucketOnTrack,
	RiskAtRisk:  BucketAtRisk,
	RiskOverdue: BucketOverdue,
}

// Bucket maps a risk value to its display bucket. The second result is
// false for values outside AllRisks.
func (r Risk) Bucket() (RiskBucket, bool) {
	b, ok := riskBuckets[r]
	return b, ok
}

// Valid reports whether r is one of AllRisks.
func (r Risk) Valid() bool {
	_, ok := riskBuckets[r]
	return ok
}

// Tone is the visual emphasis used when rendering a status or risk.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneOK      Tone = "ok"
	ToneWarn    Tone = "warn"
	ToneDanger  Tone = "danger"
)
