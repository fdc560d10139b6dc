package timeutils

import (
	"fmt"
	"time"
)

// These constants define the names of days used by `DayedPeriod`.
const (
	WeekendDays = "weekends"
	WeekdayDays = "weekdays"
	AllDays     = "all"
)

// DayedPeriod gives a period of clock time on particular days, e.g. "7am to 9am on weekdays".
type DayedPeriod struct {
	ClockTimePeriod `yaml:",inline"`
	Days            string `yaml:"days"` // "weekends", "weekdays", or "all"
}

// Validate checks the clock times and the day specification.
func (d DayedPeriod) Validate() error {
	switch d.Days {
	case AllDays, WeekdayDays, WeekendDays:
	default:
		return fmt.Errorf("unknown day specification: '%s'", d.Days)
	}
	return d.ClockTimePeriod.Validate()
}

// IsOnDay returns true if `t` falls on one of the days of the period. A time instant may be a Friday in UTC but a
// Saturday elsewhere, so `loc` is required.
func (d DayedPeriod) IsOnDay(t time.Time, loc *time.Location) bool {
	t = t.In(loc)
	switch d.Days {
	case AllDays:
		return true
	case WeekdayDays:
		return IsWeekday(t)
	case WeekendDays:
		return !IsWeekday(t)
	default:
		return false
	}
}

// AbsoluteRange is like ClockTimePeriod.AbsoluteRange but also returns false if `t` is on the wrong day.
func (d DayedPeriod) AbsoluteRange(t time.Time, loc *time.Location) (DateRange, bool) {
	if !d.IsOnDay(t, loc) {
		return DateRange{}, false
	}
	return d.ClockTimePeriod.AbsoluteRange(t, loc)
}

// Contains returns true if the given t is contained in the DayedPeriod
func (d DayedPeriod) Contains(t time.Time, loc *time.Location) bool {
	_, contains := d.AbsoluteRange(t, loc)
	return contains
}
