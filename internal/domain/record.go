package domain

import (
	"fmt"
	"strings"
)

// DateLayout is the ISO calendar date format used for due and activity dates.
const DateLayout = "2006-01-02"

// Approvals are the three sign-offs an RFP needs before award.
type Approvals struct {
	Finance bool `json:"finance" yaml:"finance"`
	Legal   bool `json:"legal" yaml:"legal"`
	Head    bool `json:"head" yaml:"head"`
}

// Complete reports whether every approval has been granted.
func (a Approvals) Complete() bool {
	return a.Finance && a.Legal && a.Head
}

// Missing returns the names of the approvals not yet granted.
func (a Approvals) Missing() []string {
	var out []string
	if !a.Finance {
		out = append(out, "finance")
	}
	if !a.Legal {
		out = append(out, "legal")
	}
	if !a.Head {
		out = append(out, "head")
	}
	return out
}

// Record is one procurement request-for-proposal. Dates are kept in their
// source form so a malformed value can be reported instead of dropped.
type Record struct {
	ID             string    `json:"id" yaml:"id"`
	Title          string    `json:"title" yaml:"title"`
	Category       string    `json:"category" yaml:"category"`
	Site           string    `json:"site" yaml:"site"`
	Owner          string    `json:"owner" yaml:"owner"`
	Status         Status    `json:"status" yaml:"status"`
	DueDate        string    `json:"dueDate" yaml:"dueDate"`
	BudgetAED      *float64  `json:"budgetAed,omitempty" yaml:"budgetAed,omitempty"`
	VendorsInvited int       `json:"vendorsInvited" yaml:"vendorsInvited"`
	Submissions    int       `json:"submissions" yaml:"submissions"`
	LastActivity   string    `json:"lastActivity" yaml:"lastActivity"`
	Approvals      Approvals `json:"approvals" yaml:"approvals"`
	Risk           Risk      `json:"risk" yaml:"risk"`
}

// SearchText is the lower-cased text a free-text query is matched against.
func (r *Record) SearchText() string {
	return strings.ToLower(r.ID + " " + r.Title + " " + r.Category + " " + r.Owner)
}

// HasBudget reports whether a budget amount is set.
func (r *Record) HasBudget() bool {
	return r.BudgetAED != nil
}

// NotSubmitted returns invited vendors that have not submitted, floored at zero.
func (r *Record) NotSubmitted() int {
	return max(0, r.VendorsInvited-r.Submissions)
}

// ValidateShape checks the structural invariants that hold regardless of the
// configured workflow: an identifier and non-negative amounts.
func (r *Record) ValidateShape() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("record id is required")
	}
	if r.VendorsInvited < 0 {
		return fmt.Errorf("record %s: vendorsInvited must be non-negative", r.ID)
	}
	if r.Submissions < 0 {
		return fmt.Errorf("record %s: submissions must be non-negative", r.ID)
	}
	if r.BudgetAED != nil && *r.BudgetAED < 0 {
		return fmt.Errorf("record %s: budgetAed must be non-negative", r.ID)
	}
	return nil
}
