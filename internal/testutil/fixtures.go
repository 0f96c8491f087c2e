package testutil

import (
	"time"

	"github.com/alexanderramin/rfpwatch/internal/domain"
)

// RefNow is the fixed reference clock used across tests: mid-morning on
// Wednesday 14 January 2026.
var RefNow = time.Date(2026, 1, 14, 9, 30, 0, 0, time.UTC)

// DaysFrom returns the ISO date n calendar days after ref.
func DaysFrom(ref time.Time, n int) string {
	return ref.AddDate(0, 0, n).Format(domain.DateLayout)
}

// Record options
type RecordOption func(*domain.Record)

func WithTitle(title string) RecordOption {
	return func(r *domain.Record) {
		r.Title = title
	}
}

func WithCategory(c string) RecordOption {
	return func(r *domain.Record) {
		r.Category = c
	}
}

func WithSite(s string) RecordOption {
	return func(r *domain.Record) {
		r.Site = s
	}
}

func WithOwner(o string) RecordOption {
	return func(r *domain.Record) {
		r.Owner = o
	}
}

func WithStatus(s domain.Status) RecordOption {
	return func(r *domain.Record) {
		r.Status = s
	}
}

func WithDueDate(d string) RecordOption {
	return func(r *domain.Record) {
		r.DueDate = d
	}
}

// WithDueIn sets the due date n days after RefNow.
func WithDueIn(n int) RecordOption {
	return func(r *domain.Record) {
		r.DueDate = DaysFrom(RefNow, n)
	}
}

func WithBudget(amount float64) RecordOption {
	return func(r *domain.Record) {
		r.BudgetAED = &amount
	}
}

func WithVendors(invited, submitted int) RecordOption {
	return func(r *domain.Record) {
		r.VendorsInvited = invited
		r.Submissions = submitted
	}
}

func WithLastActivity(d string) RecordOption {
	return func(r *domain.Record) {
		r.LastActivity = d
	}
}

func WithApprovals(finance, legal, head bool) RecordOption {
	return func(r *domain.Record) {
		r.Approvals = domain.Approvals{Finance: finance, Legal: legal, Head: head}
	}
}

func WithRisk(risk domain.Risk) RecordOption {
	return func(r *domain.Record) {
		r.Risk = risk
	}
}

// NewTestRecord returns a fully approved Draft record at site AUH, due ten
// days after RefNow, with no budget.
func NewTestRecord(id string, opts ...RecordOption) domain.Record {
	r := domain.Record{
		ID:             id,
		Title:          "RFP " + id,
		Category:       "General",
		Site:           "AUH",
		Owner:          "Procurement",
		Status:         domain.StatusDraft,
		DueDate:        DaysFrom(RefNow, 10),
		VendorsInvited: 3,
		Submissions:    1,
		LastActivity:   DaysFrom(RefNow, -2),
		Approvals:      domain.Approvals{Finance: true, Legal: true, Head: true},
		Risk:           domain.RiskNone,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
