// Package clock supplies the current time and UTC calendar-day arithmetic.
package clock

import "time"

// Clock supplies the current time. The engine takes a Clock so tests can pin "today".
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Day normalizes t to midnight UTC of its own calendar date.
// Only the year/month/day of t in its location matter.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative if b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// AddDays returns the calendar day n days after t.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DayKey formats t's calendar date as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return Day(t).Format(time.DateOnly)
}
