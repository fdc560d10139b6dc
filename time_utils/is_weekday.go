package timeutils

import "time"

// IsWeekday reports whether t falls on Monday to Friday in t's own location.
// Callers that care about a particular timezone should convert t first, as DayedPeriod.IsOnDay does.
func IsWeekday(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}
