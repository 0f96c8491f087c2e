package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/domain"
)

// ValidateRecordFile checks a record file before conversion.
// Returns a slice of all validation errors found.
//
// Structural problems (missing or duplicate ids, negative counts or budgets)
// are always errors. Status, date and risk values are only checked when
// strict is set; otherwise they pass through and surface later as
// aggregation issues.
func ValidateRecordFile(f *RecordFile, stages domain.StageSet, strict bool) []error {
	var errs []error

	seen := make(map[string]int, len(f.Records))
	for i := range f.Records {
		rec := &f.Records[i]
		prefix := fmt.Sprintf("records[%d]", i)

		id := strings.TrimSpace(rec.ID)
		if id == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else {
			key := strings.ToUpper(id)
			if first, dup := seen[key]; dup {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q (first seen at records[%d])", prefix, rec.ID, first))
			} else {
				seen[key] = i
			}
		}

		if rec.VendorsInvited != nil && *rec.VendorsInvited < 0 {
			errs = append(errs, fmt.Errorf("%s.vendorsInvited must be >= 0, got %d", prefix, *rec.VendorsInvited))
		}
		if rec.Submissions != nil && *rec.Submissions < 0 {
			errs = append(errs, fmt.Errorf("%s.submissions must be >= 0, got %d", prefix, *rec.Submissions))
		}
		if rec.BudgetAED != nil && *rec.BudgetAED < 0 {
			errs = append(errs, fmt.Errorf("%s.budgetAed must be >= 0, got %g", prefix, *rec.BudgetAED))
		}

		if strict {
			errs = append(errs, validateStrict(prefix, rec, stages)...)
		}
	}

	return errs
}

func validateStrict(prefix string, rec *RecordImport, stages domain.StageSet) []error {
	var errs []error

	if !stages.Contains(domain.Status(rec.Status)) {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, rec.Status))
	}
	if _, err := time.Parse(domain.DateLayout, rec.DueDate); err != nil {
		errs = append(errs, fmt.Errorf("%s.dueDate: invalid date format %q (expected YYYY-MM-DD)", prefix, rec.DueDate))
	}
	if _, err := time.Parse(domain.DateLayout, rec.LastActivity); err != nil {
		errs = append(errs, fmt.Errorf("%s.lastActivity: invalid date format %q (expected YYYY-MM-DD)", prefix, rec.LastActivity))
	}
	if rec.Risk != "" && !domain.Risk(rec.Risk).Valid() {
		errs = append(errs, fmt.Errorf("%s.risk: invalid value %q", prefix, rec.Risk))
	}

	return errs
}
