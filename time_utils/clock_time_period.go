package timeutils

import (
	"fmt"
	"time"
)

// ClockTimePeriod represents a period of time that is defined by local clock time, without any date information, e.g. "7am to 9am".
type ClockTimePeriod struct {
	Start ClockTime `yaml:"start"`
	End   ClockTime `yaml:"end"`
}

// Validate returns an error if the period crosses midnight, which is not currently supported.
func (p ClockTimePeriod) Validate() error {
	if p.End.sinceMidnight() < p.Start.sinceMidnight() {
		return fmt.Errorf("clock time period %s to %s must end after it starts", p.Start, p.End)
	}
	return nil
}

// AbsoluteRange returns the DateRange that the ClockTimePeriod covers on the date of `t`, using `loc` to determine
// both the date and the clock times. If `t` is outside of the period then the `ok` boolean is returned as false.
//
// The period is inclusive of its start and exclusive of its end.
//
// For example, calling on a ClockTimePeriod of "7am to 9am" using a reference `t` of "2023/10/19 07:53:00" would
// yield the range: "2023/10/19 07:00:00 to 2023/10/19 09:00:00".
func (p ClockTimePeriod) AbsoluteRange(t time.Time, loc *time.Location) (DateRange, bool) {

	// Make sure that `t` is in the relevant timezone, otherwise the day can be wrong if it is near midnight
	t = t.In(loc)
	year, month, day := t.Date()

	start := p.Start.OnDate(year, month, day, loc)
	end := p.End.OnDate(year, month, day, loc)

	if t.Before(start) || !t.Before(end) {
		return DateRange{}, false
	}

	return NewDateRange(start, end), true
}

// Contains returns true if the given t is contained in the ClockTimePeriod
func (p ClockTimePeriod) Contains(t time.Time, loc *time.Location) bool {
	_, contains := p.AbsoluteRange(t, loc)
	return contains
}
