package domain

import (
	"time"

	appErrors "github.com/mcgigglepop/react-native-macro-tracker/pkg/errors"
)

// DayFormat is the canonical calendar-day layout used everywhere a date is
// stored or passed on the wire.
const DayFormat = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string into a UTC midnight instant. All day
// arithmetic runs on these date-only values so daylight-saving transitions
// and timezone offsets cannot shift a day boundary.
func ParseDay(s string) (time.Time, error) {
	if !ValidDay(s) {
		return time.Time{}, appErrors.NewValidation("date must be in YYYY-MM-DD format")
	}
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, appErrors.NewValidation("date must be a valid calendar day")
	}
	return t, nil
}

// FormatDay renders a date-only value back to YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// Today returns the current UTC calendar day.
func Today() string {
	return time.Now().UTC().Format(DayFormat)
}

// AddDays moves a date-only value by n whole calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns end minus start in whole calendar days. Negative when
// end precedes start.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// EnumerateDays lists every calendar day from start to end inclusive,
// iterating one day at a time. Returns nil when start is after end.
func EnumerateDays(start, end time.Time) []string {
	if start.After(end) {
		return nil
	}
	days := make([]string, 0, DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = AddDays(d, 1) {
		days = append(days, FormatDay(d))
	}
	return days
}

// MinDay returns the earlier of two date-only values.
func MinDay(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
