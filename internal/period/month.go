// Package period implements the YYYY-MM month identifier used by every
// month-scoped query in the dashboard.
package period

import (
	"errors"
	"time"
)

// ErrInvalidMonthFormat is returned for month strings that are shorter
// than seven characters or do not denote a valid calendar month.
var ErrInvalidMonthFormat = errors.New("invalid_month_format")

// Month is a calendar month with canonical text form YYYY-MM.
type Month struct {
	t time.Time
}

// NormalizeMonth derives a Month from any date-like string of length >= 7
// by taking its first seven characters. This is the single admission
// point for month input; NormalizeMonth(m.String()) returns m.
func NormalizeMonth(s string) (Month, error) {
	if len(s) < 7 {
		return Month{}, ErrInvalidMonthFormat
	}
	t, err := time.Parse("2006-01-02", s[:7]+"-01")
	if err != nil {
		return Month{}, ErrInvalidMonthFormat
	}
	return Month{t: t}, nil
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month{t: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

// String returns the canonical YYYY-MM form.
func (m Month) String() string {
	return m.t.Format("2006-01")
}

// Start returns the first day of the month at midnight UTC.
func (m Month) Start() time.Time {
	return m.t
}

// Days returns the number of calendar days in the month.
func (m Month) Days() int {
	return m.t.AddDate(0, 1, -1).Day()
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.t.Year() && t.Month() == m.t.Month()
}

// IsZero reports whether m is the zero value.
func (m Month) IsZero() bool {
	return m.t.IsZero()
}
