package aggregator

import (
	"strings"

	"github.com/alexanderramin/rfpwatch/internal/domain"
)

// All is the filter value that disables the site or status predicate.
const All = "All"

// FilterCriteria narrows the record set shown on the dashboard.
// An empty Site or Status behaves like All.
type FilterCriteria struct {
	TextQuery string `json:"textQuery" yaml:"textQuery"`
	Site      string `json:"site" yaml:"site"`
	Status    string `json:"status" yaml:"status"`
}

// NewFilterCriteria returns the identity filter.
func NewFilterCriteria() FilterCriteria {
	return FilterCriteria{Site: All, Status: All}
}

// IsIdentity reports whether the criteria match every record.
func (c FilterCriteria) IsIdentity() bool {
	return c.query() == "" && isAll(c.Site) && isAll(c.Status)
}

// Matches reports whether r satisfies all three predicates.
func (c FilterCriteria) Matches(r *domain.Record) bool {
	if q := c.query(); q != "" && !strings.Contains(r.SearchText(), q) {
		return false
	}
	if !isAll(c.Site) && r.Site != c.Site {
		return false
	}
	if !isAll(c.Status) && string(r.Status) != c.Status {
		return false
	}
	return true
}

func (c FilterCriteria) query() string {
	return strings.ToLower(strings.TrimSpace(c.TextQuery))
}

func isAll(v string) bool {
	return v == "" || v == All
}

// FilterRecords returns the records matching c in their input order.
// The input slice is never modified.
func FilterRecords(records []domain.Record, c FilterCriteria) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for i := range records {
		if c.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// SiteOptions returns All followed by each distinct site in first-seen order.
func SiteOptions(records []domain.Record) []string {
	opts := []string{All}
	seen := make(map[string]bool)
	for _, r := range records {
		if seen[r.Site] {
			continue
		}
		seen[r.Site] = true
		opts = append(opts, r.Site)
	}
	return opts
}

// StatusOptions returns All followed by the stages in workflow order.
func StatusOptions(stages domain.StageSet) []string {
	opts := make([]string, 0, stages.Len()+1)
	opts = append(opts, All)
	for _, s := range stages.Stages() {
		opts = append(opts, string(s))
	}
	return opts
}
