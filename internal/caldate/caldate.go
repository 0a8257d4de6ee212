// Package caldate implements the calendar arithmetic used by the grid builder:
// Monday-first week alignment, day offsets and month/year day counts. All
// values are local-midnight time.Time; date identity is the "2006-01-02" string.
package caldate

import (
	"fmt"
	"time"
)

// Layout is the ISO date form used as the identity of a calendar day.
const Layout = "2006-01-02"

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	if month == time.February && IsLeap(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// Midnight truncates t to local midnight of its wall-clock day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekdayIndex returns the Monday-indexed weekday of t (Monday=0 .. Sunday=6).
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns the Monday of the week containing t, at midnight.
func WeekStart(t time.Time) time.Time {
	return AddDays(t, -WeekdayIndex(t))
}

// AddDays returns the midnight date n days away from t.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// AddMonths moves t by n months. The day is clamped to the last day of the
// target month, so Jan 31 + 1 month is the last day of February.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	return time.Date(first.Year(), first.Month(), clampDay(first.Year(), first.Month(), d), 0, 0, 0, 0, t.Location())
}

// AddYears moves t by n years, clamping Feb 29 to Feb 28 in common years.
func AddYears(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y+n, m, clampDay(y+n, m, d), 0, 0, 0, 0, t.Location())
}

func clampDay(year int, month time.Month, day int) int {
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// FirstOfMonth returns day 1 of t's month at midnight.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Format renders t as "YYYY-MM-DD" using its wall-clock fields.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse parses a strict "YYYY-MM-DD" calendar date into local midnight.
func Parse(s string) (time.Time, error) {
	return ParseIn(s, time.Local)
}

// ParseIn is Parse for an explicit location.
func ParseIn(s string, loc *time.Location) (time.Time, error) {
	if len(s) != len(Layout) {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD", s)
	}
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, err)
	}
	return t, nil
}

// Valid reports whether s is a well-formed calendar date.
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return len(s) == len(Layout) && err == nil
}
