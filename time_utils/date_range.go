package timeutils

import (
	"fmt"
	"time"
)

// DateRange holds a start and end instant, e.g. "2023/01/01 00:00:00 to 2023/01/31 23:59:59".
//
// No ordering is enforced: an End before Start is stored as given. Whether the range is closed or half-open is
// left to the code that tests membership.
type DateRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// NewDateRange returns a DateRange holding the given start and end.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		Start: start,
		End:   end,
	}
}

// Equal returns true if the two ranges have the same start and end instants.
// These may be in different timezones but must be at the same instant in time.
func (r DateRange) Equal(r2 DateRange) bool {
	return r.Start.Equal(r2.Start) && r.End.Equal(r2.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}
