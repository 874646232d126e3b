// Package datetime provides date utility functions. All lease dates are
// day-precision and timezone-naive; they are normalized to midnight UTC so
// that comparisons behave like plain calendar-date comparisons.
package datetime

import (
	"time"

	"github.com/leaseledger/leaseledger/pkg/constants"
)

// DateLayout is the format expected for dates in lease records and is also
// the canonical output date format.
const DateLayout = constants.DateLayout

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a day-precision date string in the canonical layout and
// returns it normalized.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

// Normalize truncates a time to its calendar date at midnight UTC.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FirstOfMonth returns the first day of the month containing t.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths returns the date offset by the given number of calendar months.
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// MonthsBetween returns the number of whole calendar months from start to
// end, ignoring the day-of-month.
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*constants.MonthsPerYear + int(end.Month()) - int(start.Month())
}

// SameMonth reports whether two dates fall in the same calendar month and year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// DaysBetween returns the number of calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(Normalize(end).Sub(Normalize(start)).Hours() / 24)
}

// FormatShort formats a date as e.g. "May-22", the period label used in the
// asset and liability schedules.
func FormatShort(t time.Time) string {
	return t.Format("Jan-06")
}

// FormatDMY formats a date as dd/mm/yyyy, the header style used in reports.
func FormatDMY(t time.Time) string {
	return t.Format("02/01/2006")
}
