package explorer

import (
	"errors"
	"fmt"
	"time"

	timeutils "github.com/briancroom/StepCounterIntervalExplorer/time_utils"
)

var ErrUnknownGranularity = errors.New("unknown granularity")

// Granularity is the size of the buckets that samples are grouped into.
type Granularity string

const (
	Hourly Granularity = "hour"
	Daily  Granularity = "day"
	Weekly Granularity = "week"
)

func ParseGranularity(str string) (Granularity, error) {
	switch g := Granularity(str); g {
	case Hourly, Daily, Weekly:
		return g, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnknownGranularity, str)
	}
}

// floor returns the start of the bucket that contains `t`.
func (g Granularity) floor(t time.Time) (time.Time, error) {
	switch g {
	case Hourly:
		return timeutils.FloorHour(t), nil
	case Daily:
		return timeutils.FloorDay(t), nil
	case Weekly:
		return timeutils.FloorWeek(t), nil
	default:
		return time.Time{}, fmt.Errorf("%w: '%s'", ErrUnknownGranularity, g)
	}
}

// next returns the start of the bucket after the one starting at `t`. Days and weeks step by calendar date so that
// buckets stay aligned to local midnight across daylight saving changes.
func (g Granularity) next(t time.Time) time.Time {
	switch g {
	case Hourly:
		return t.Add(time.Hour)
	case Daily:
		return t.AddDate(0, 0, 1)
	default:
		return t.AddDate(0, 0, 7)
	}
}
