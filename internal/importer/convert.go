package importer

import (
	"strings"

	"github.com/alexanderramin/rfpwatch/internal/domain"
)

// Convert transforms a validated RecordFile into domain records in file order.
// Call ValidateRecordFile first; Convert assumes the file is valid.
//
// Text fields are trimmed. A missing risk becomes None, missing counts
// become zero and missing approvals are all false.
func Convert(f *RecordFile) []domain.Record {
	records := make([]domain.Record, 0, len(f.Records))
	for _, in := range f.Records {
		rec := domain.Record{
			ID:           strings.TrimSpace(in.ID),
			Title:        strings.TrimSpace(in.Title),
			Category:     strings.TrimSpace(in.Category),
			Site:         strings.TrimSpace(in.Site),
			Owner:        strings.TrimSpace(in.Owner),
			Status:       domain.Status(strings.TrimSpace(in.Status)),
			DueDate:      strings.TrimSpace(in.DueDate),
			LastActivity: strings.TrimSpace(in.LastActivity),
			Risk:         domain.Risk(domain.CoalesceStr(strings.TrimSpace(in.Risk), string(domain.RiskNone))),
		}
		if in.BudgetAED != nil {
			b := *in.BudgetAED
			rec.BudgetAED = &b
		}
		if in.VendorsInvited != nil {
			rec.VendorsInvited = *in.VendorsInvited
		}
		if in.Submissions != nil {
			rec.Submissions = *in.Submissions
		}
		if in.Approvals != nil {
			rec.Approvals = domain.Approvals{
				Finance: in.Approvals.Finance,
				Legal:   in.Approvals.Legal,
				Head:    in.Approvals.Head,
			}
		}
		records = append(records, rec)
	}
	return records
}

// FromRecords builds a RecordFile from domain records, the inverse of Convert.
func FromRecords(source string, records []domain.Record) *RecordFile {
	f := &RecordFile{Version: 1, Source: source, Records: make([]RecordImport, 0, len(records))}
	for _, r := range records {
		invited, submitted := r.VendorsInvited, r.Submissions
		in := RecordImport{
			ID:             r.ID,
			Title:          r.Title,
			Category:       r.Category,
			Site:           r.Site,
			Owner:          r.Owner,
			Status:         string(r.Status),
			DueDate:        r.DueDate,
			VendorsInvited: &invited,
			Submissions:    &submitted,
			LastActivity:   r.LastActivity,
			Approvals:      &ApprovalsImport{Finance: r.Approvals.Finance, Legal: r.Approvals.Legal, Head: r.Approvals.Head},
			Risk:           string(r.Risk),
		}
		if r.BudgetAED != nil {
			b := *r.BudgetAED
			in.BudgetAED = &b
		}
		f.Records = append(f.Records, in)
	}
	return f
}
