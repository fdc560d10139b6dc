package timeutils

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ClockTime represents a time of day, without a date or timezone, e.g. "07:30".
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// OnDate returns a time with the given clock time on the given date in `loc`
func (c ClockTime) OnDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, c.Hour, c.Minute, c.Second, 0, loc)
}

// sinceMidnight returns the offset of the clock time from the start of the day
func (c ClockTime) sinceMidnight() time.Duration {
	return time.Duration(c.Hour)*time.Hour + time.Duration(c.Minute)*time.Minute + time.Duration(c.Second)*time.Second
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// ParseClockTime parses strings of the form "HH:MM" or "HH:MM:SS".
func ParseClockTime(str string) (ClockTime, error) {
	var t time.Time
	var err error
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err = time.Parse(layout, str)
		if err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("parse clock time '%s': %w", str, err)
}

// UnmarshalYAML allows clock times to be given as strings in configuration files
func (c *ClockTime) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}
	parsed, err := ParseClockTime(str)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
