package domain

import (
	"fmt"
	"strconv"
	"time"
)

// TimeFilter selects a dashboard time window.
type TimeFilter string

const (
	FilterToday       TimeFilter = "today"
	FilterThisWeek    TimeFilter = "this_week"
	FilterThisMonth   TimeFilter = "this_month"
	FilterLastMonth   TimeFilter = "last_month"
	FilterLast3Months TimeFilter = "last_3_months"
	FilterCustom      TimeFilter = "custom"
)

// IsValid reports whether f is a recognized time filter.
func (f TimeFilter) IsValid() bool {
	switch f {
	case FilterToday, FilterThisWeek, FilterThisMonth, FilterLastMonth, FilterLast3Months, FilterCustom:
		return true
	}
	return false
}

// Bucket is one concrete (year, month[, day]) unit of a resolved window.
// Day is 0 for month-granularity buckets.
type Bucket struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day,omitempty"`
}

// YearKey returns the document-tree year key for the bucket.
func (b Bucket) YearKey() string { return strconv.Itoa(b.Year) }

// MonthKey returns the document-tree month key ("1".."12", no leading zero).
func (b Bucket) MonthKey() string { return strconv.Itoa(b.Month) }

// Label is the human-readable bucket label used to group aggregation results,
// e.g. "2026-02" or "2026-02-14" for day-level buckets.
func (b Bucket) Label() string {
	if b.Day > 0 {
		return fmt.Sprintf("%04d-%02d-%02d", b.Year, b.Month, b.Day)
	}
	return fmt.Sprintf("%04d-%02d", b.Year, b.Month)
}

// SameMonth reports whether two buckets address the same year and month,
// ignoring the day component.
func (b Bucket) SameMonth(o Bucket) bool {
	return b.Year == o.Year && b.Month == o.Month
}

// NormalizeBucketKeys validates a (year, month) pair and canonicalizes it
// into document-tree keys: numeric year, month "1".."12" without a leading
// zero. Fails with ErrValidation on anything else.
func NormalizeBucketKeys(year, month string) (string, string, error) {
	var errs []FieldError

	y, err := strconv.Atoi(year)
	if err != nil || y <= 0 {
		errs = append(errs, FieldError{Field: "year", Message: "must be a positive number"})
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		errs = append(errs, FieldError{Field: "month", Message: "must be a number in 1..12"})
	}

	if len(errs) > 0 {
		return "", "", NewValidationErrors(errs)
	}
	return strconv.Itoa(y), strconv.Itoa(m), nil
}

// Window is a resolved dashboard time window: the instant bounds plus the
// month (or day) buckets the window covers.
type Window struct {
	Filter TimeFilter `json:"filter"`
	Start  time.Time  `json:"start"`
	End    time.Time  `json:"end"`
	Months []Bucket   `json:"months"`
}

// MonthBuckets returns the window's buckets deduplicated to month
// granularity, preserving order. Day-level windows (today, this_week) collapse
// to their containing months.
func (w Window) MonthBuckets() []Bucket {
	var out []Bucket
	for _, b := range w.Months {
		mb := Bucket{Year: b.Year, Month: b.Month}
		if len(out) == 0 || !out[len(out)-1].SameMonth(mb) {
			out = append(out, mb)
		}
	}
	return out
}
