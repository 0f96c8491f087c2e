package aggregator

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/domain"
)

// StageCount is the number of records in one workflow stage.
type StageCount struct {
	Stage domain.Status `json:"stage" yaml:"stage"`
	Count int           `json:"count" yaml:"count"`
}

// BucketCount is the number of records in one risk bucket.
type BucketCount struct {
	Bucket domain.RiskBucket `json:"bucket" yaml:"bucket"`
	Count  int               `json:"count" yaml:"count"`
}

// CategoryCount is the number of records in one category.
type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// SiteBudget is the summed budget of one site.
type SiteBudget struct {
	Site  string  `json:"site" yaml:"site"`
	Total float64 `json:"total" yaml:"total"`
}

// VendorParticipation summarizes vendor response for one record.
type VendorParticipation struct {
	RecordID     string `json:"recordId" yaml:"recordId"`
	Invited      int    `json:"invited" yaml:"invited"`
	Submitted    int    `json:"submitted" yaml:"submitted"`
	NotSubmitted int    `json:"notSubmitted" yaml:"notSubmitted"`
}

// AlertType is the severity of a dashboard alert.
type AlertType string

const (
	AlertWarn   AlertType = "warn"
	AlertDanger AlertType = "danger"
	AlertInfo   AlertType = "info"
)

// NoCriticalAlerts is the text of the fallback alert.
const NoCriticalAlerts = "No critical alerts"

// Alert is an advisory derived from aggregate thresholds.
type Alert struct {
	Type  AlertType `json:"type" yaml:"type"`
	Text  string    `json:"text" yaml:"text"`
	Count int       `json:"count" yaml:"count"`
}

// DashboardAggregates is the complete derived view of a filtered record set.
// Every slice is non-nil so encoded output is stable.
type DashboardAggregates struct {
	Total               int                   `json:"total" yaml:"total"`
	PipelineCounts      []StageCount          `json:"pipelineCounts" yaml:"pipelineCounts"`
	StatusDistribution  []StageCount          `json:"statusDistribution" yaml:"statusDistribution"`
	RiskDistribution    []BucketCount         `json:"riskDistribution" yaml:"riskDistribution"`
	CategoryCounts      []CategoryCount       `json:"categoryCounts" yaml:"categoryCounts"`
	BudgetBySite        []SiteBudget          `json:"budgetBySite" yaml:"budgetBySite"`
	VendorParticipation []VendorParticipation `json:"vendorParticipation" yaml:"vendorParticipation"`
	ActiveCount         int                   `json:"activeCount" yaml:"activeCount"`
	DueThisWeek         []domain.Record       `json:"dueThisWeek" yaml:"dueThisWeek"`
	Overdue             []domain.Record       `json:"overdue" yaml:"overdue"`
	MissingApprovals    []domain.Record       `json:"missingApprovals" yaml:"missingApprovals"`
	Alerts              []Alert               `json:"alerts" yaml:"alerts"`
	DueSoon             []domain.Record       `json:"dueSoon" yaml:"dueSoon"`
	Issues              []Issue               `json:"issues" yaml:"issues"`
}

// TotalBudget returns the sum of BudgetBySite.
func (a *DashboardAggregates) TotalBudget() float64 {
	var sum float64
	for _, sb := range a.BudgetBySite {
		sum += sb.Total
	}
	return sum
}

// Aggregator derives dashboard aggregates from a record list. It holds only
// configuration and is safe for concurrent use.
type Aggregator struct {
	cfg Config
}

// New creates an Aggregator. Unset fields of cfg fall back to DefaultConfig.
func New(cfg Config) *Aggregator {
	def := DefaultConfig()
	if cfg.Stages.Len() == 0 {
		cfg.Stages = def.Stages
	}
	cfg.DueWindowDays = domain.IntOr(def.DueWindowDays, cfg.DueWindowDays)
	cfg.VendorTopN = domain.IntOr(def.VendorTopN, cfg.VendorTopN)
	cfg.DueSoonLimit = domain.IntOr(def.DueSoonLimit, cfg.DueSoonLimit)
	return &Aggregator{cfg: cfg}
}

// Config returns the effective configuration.
func (a *Aggregator) Config() Config { return a.cfg }

// Run filters records with c and aggregates the result.
func (a *Aggregator) Run(records []domain.Record, c FilterCriteria, now time.Time) DashboardAggregates {
	return a.Compute(FilterRecords(records, c), now)
}

// dated pairs a record with its parsed due date. ok is false for malformed dates.
type dated struct {
	rec  domain.Record
	days int
	ok   bool
}

// Compute derives every aggregate from records. records is not modified and
// the same input always yields the same output for the same now.
func (a *Aggregator) Compute(records []domain.Record, now time.Time) DashboardAggregates {
	var issues []Issue
	report := func(r *domain.Record, field string, kind IssueKind, value string) {
		issues = append(issues, Issue{RecordID: r.ID, Field: field, Kind: kind, Value: value})
	}

	rows := make([]dated, len(records))
	for i := range records {
		r := &records[i]
		days, err := DaysUntil(r.DueDate, now)
		rows[i] = dated{rec: *r, days: days, ok: err == nil}
		if err != nil {
			report(r, "dueDate", IssueInvalidDate, r.DueDate)
		}
		if _, err := ParseDate(r.LastActivity); err != nil {
			report(r, "lastActivity", IssueInvalidDate, r.LastActivity)
		}
		if !a.cfg.Stages.Contains(r.Status) {
			report(r, "status", IssueInvalidStatus, string(r.Status))
		}
		if !r.Risk.Valid() {
			report(r, "risk", IssueInvalidRisk, string(r.Risk))
		}
	}

	out := DashboardAggregates{
		Total:               len(records),
		PipelineCounts:      a.stageCounts(records),
		StatusDistribution:  a.stageCounts(records),
		RiskDistribution:    riskDistribution(records),
		CategoryCounts:      categoryCounts(records),
		BudgetBySite:        budgetBySite(records),
		VendorParticipation: vendorParticipation(records, a.cfg.VendorTopN),
		DueThisWeek:         []domain.Record{},
		Overdue:             []domain.Record{},
		MissingApprovals:    []domain.Record{},
		DueSoon:             dueSoon(rows, a.cfg.DueSoonLimit),
		Issues:              []Issue{},
	}

	for _, row := range rows {
		terminal := a.cfg.Stages.IsTerminal(row.rec.Status)
		if !terminal {
			out.ActiveCount++
		}
		if row.ok && row.days >= 0 && row.days <= a.cfg.DueWindowDays {
			out.DueThisWeek = append(out.DueThisWeek, row.rec)
		}
		if row.ok && row.days < 0 && !terminal {
			out.Overdue = append(out.Overdue, row.rec)
		}
		if !row.rec.Approvals.Complete() {
			out.MissingApprovals = append(out.MissingApprovals, row.rec)
		}
	}

	out.Alerts = buildAlerts(len(out.DueThisWeek), len(out.Overdue), len(out.MissingApprovals), a.cfg.DueWindowDays)
	if len(issues) > 0 {
		out.Issues = issues
	}
	return out
}

func (a *Aggregator) stageCounts(records []domain.Record) []StageCount {
	stages := a.cfg.Stages.Stages()
	counts := make([]StageCount, len(stages))
	for i, s := range stages {
		counts[i].Stage = s
	}
	for _, r := range records {
		if i := a.cfg.Stages.Index(r.Status); i >= 0 {
			counts[i].Count++
		}
	}
	return counts
}

func riskDistribution(records []domain.Record) []BucketCount {
	dist := make([]BucketCount, len(domain.RiskBuckets))
	pos := make(map[domain.RiskBucket]int, len(domain.RiskBuckets))
	for i, b := range domain.RiskBuckets {
		dist[i].Bucket = b
		pos[b] = i
	}
	for _, r := range records {
		if b, ok := r.Risk.Bucket(); ok {
			dist[pos[b]].Count++
		}
	}
	return dist
}

// categoryCounts keeps categories in first-seen order.
func categoryCounts(records []domain.Record) []CategoryCount {
	out := []CategoryCount{}
	pos := make(map[string]int)
	for _, r := range records {
		i, ok := pos[r.Category]
		if !ok {
			i = len(out)
			pos[r.Category] = i
			out = append(out, CategoryCount{Category: r.Category})
		}
		out[i].Count++
	}
	return out
}

// budgetBySite sorts by total descending; equal totals keep first-seen order.
func budgetBySite(records []domain.Record) []SiteBudget {
	out := []SiteBudget{}
	pos := make(map[string]int)
	for _, r := range records {
		if !r.HasBudget() {
			continue
		}
		i, ok := pos[r.Site]
		if !ok {
			i = len(out)
			pos[r.Site] = i
			out = append(out, SiteBudget{Site: r.Site})
		}
		out[i].Total += *r.BudgetAED
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

// vendorParticipation takes the most recently active records. Records with a
// malformed lastActivity sort after every valid one.
func vendorParticipation(records []domain.Record, limit int) []VendorParticipation {
	type activity struct {
		rec domain.Record
		at  time.Time
		ok  bool
	}
	rows := make([]activity, len(records))
	for i, r := range records {
		at, err := ParseDate(r.LastActivity)
		rows[i] = activity{rec: r, at: at, ok: err == nil}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ok != rows[j].ok {
			return rows[i].ok
		}
		return rows[i].at.After(rows[j].at)
	})

	n := min(limit, len(rows))
	out := make([]VendorParticipation, 0, n)
	for _, row := range rows[:n] {
		out = append(out, VendorParticipation{
			RecordID:     row.rec.ID,
			Invited:      row.rec.VendorsInvited,
			Submitted:    row.rec.Submissions,
			NotSubmitted: row.rec.NotSubmitted(),
		})
	}
	return out
}

// dueSoon returns the earliest due records. Malformed due dates sort last.
func dueSoon(rows []dated, limit int) []domain.Record {
	sorted := make([]dated, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ok != sorted[j].ok {
			return sorted[i].ok
		}
		return sorted[i].days < sorted[j].days
	})

	n := min(limit, len(sorted))
	out := make([]domain.Record, 0, n)
	for _, row := range sorted[:n] {
		out = append(out, row.rec)
	}
	return out
}

// buildAlerts emits alerts in fixed order: due soon, overdue, missing
// approvals, then the fallback when nothing else fired.
func buildAlerts(dueThisWeek, overdue, missingApprovals, window int) []Alert {
	var alerts []Alert
	if dueThisWeek > 0 {
		alerts = append(alerts, Alert{
			Type:  AlertWarn,
			Text:  fmt.Sprintf("%d RFP(s) due within %d days", dueThisWeek, window),
			Count: dueThisWeek,
		})
	}
	if overdue > 0 {
		alerts = append(alerts, Alert{
			Type:  AlertDanger,
			Text:  fmt.Sprintf("%d RFP(s) overdue", overdue),
			Count: overdue,
		})
	}
	if missingApprovals > 0 {
		alerts = append(alerts, Alert{
			Type:  AlertWarn,
			Text:  fmt.Sprintf("%d RFP(s) missing one or more approvals", missingApprovals),
			Count: missingApprovals,
		})
	}
	if len(alerts) == 0 {
		alerts = append(alerts, Alert{Type: AlertInfo, Text: NoCriticalAlerts})
	}
	return alerts
}
