package repository

import (
	"database/sql"
	"time"
)

// parseNullableFloat converts a sql.NullFloat64 into a *float64.
// Returns nil if the value is NULL.
func parseNullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// nullableFloatToValue converts a *float64 to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the float value.
func nullableFloatToValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nullableString maps the empty string to SQL NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// formatUTC formats t as RFC3339 in UTC.
func formatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
