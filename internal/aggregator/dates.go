package aggregator

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/domain"
)

// ParseDate parses an ISO calendar date. Failures wrap ErrInvalidDate.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// DaysUntil returns the number of calendar days from now's date to date.
// Only calendar days count: a date equal to today yields 0, yesterday -1.
func DaysUntil(date string, now time.Time) (int, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(d.Sub(today).Hours() / 24)), nil
}
