package aggregator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate indicates a date field could not be parsed as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidStatus indicates a status outside the configured stage set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidRisk indicates a risk value outside None, At Risk and Overdue.
	ErrInvalidRisk = errors.New("invalid risk")
)

// IssueKind classifies a record-scoped condition found during aggregation.
type IssueKind string

const (
	IssueInvalidDate   IssueKind = "invalid_date"
	IssueInvalidStatus IssueKind = "invalid_status"
	IssueInvalidRisk   IssueKind = "invalid_risk"
)

// Issue is a recoverable problem with a single record. The record stays in
// every aggregate the problem does not affect.
type Issue struct {
	RecordID string    `json:"recordId" yaml:"recordId"`
	Field    string    `json:"field" yaml:"field"`
	Kind     IssueKind `json:"kind" yaml:"kind"`
	Value    string    `json:"value" yaml:"value"`
}

func (i Issue) Error() string {
	reason := string(i.Kind)
	if err := i.Unwrap(); err != nil {
		reason = err.Error()
	}
	return fmt.Sprintf("record %s: %s %q: %s", i.RecordID, i.Field, i.Value, reason)
}

// Unwrap returns the sentinel error for the issue kind, so callers can use
// errors.Is(issue, ErrInvalidDate). Unknown kinds unwrap to nil.
func (i Issue) Unwrap() error {
	switch i.Kind {
	case IssueInvalidDate:
		return ErrInvalidDate
	case IssueInvalidStatus:
		return ErrInvalidStatus
	case IssueInvalidRisk:
		return ErrInvalidRisk
	default:
		return nil
	}
}
