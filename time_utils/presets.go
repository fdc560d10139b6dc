package timeutils

import "time"

// Today returns the range from midnight today until midnight tomorrow, where "today" is determined by `now` in `loc`.
func Today(now time.Time, loc *time.Location) DateRange {
	return LastDays(now, loc, 1)
}

// Yesterday returns the whole day before Today.
func Yesterday(now time.Time, loc *time.Location) DateRange {
	today := Today(now, loc)
	return NewDateRange(today.Start.AddDate(0, 0, -1), today.Start)
}

// LastDays returns the `n` whole days ending at midnight tomorrow, so that today is included.
// Days are stepped by calendar date so daylight saving changes give 23 or 25 hour days.
func LastDays(now time.Time, loc *time.Location, n int) DateRange {
	startOfToday := FloorDay(now.In(loc))
	return NewDateRange(startOfToday.AddDate(0, 0, 1-n), startOfToday.AddDate(0, 0, 1))
}

// ThisWeek returns the range from Monday midnight of the current week until the following Monday midnight.
func ThisWeek(now time.Time, loc *time.Location) DateRange {
	monday := FloorWeek(now.In(loc))
	return NewDateRange(monday, monday.AddDate(0, 0, 7))
}
