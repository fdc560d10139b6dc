package explorer

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	timeutils "github.com/briancroom/StepCounterIntervalExplorer/time_utils"
	"github.com/briancroom/StepCounterIntervalExplorer/telemetry"
)

var ErrUnknownInterval = errors.New("unknown interval")

// SampleSource provides the samples with a time inside a range, inclusive of the start and exclusive of the end.
type SampleSource interface {
	SamplesInRange(dateRange timeutils.DateRange) ([]telemetry.StepSample, error)
}

// NamedInterval is a recurring daily window that step totals can be reported for, e.g. "commute".
type NamedInterval struct {
	Name                  string `yaml:"name"`
	timeutils.DayedPeriod `yaml:",inline"`
}

// Bucket holds the totals of the samples within one bucket of a summary.
type Bucket struct {
	Range          timeutils.DateRange
	Steps          int
	DistanceMeters float64
	SampleCount    int
}

// Summary holds the step totals for a date range, split into buckets.
type Summary struct {
	Range               timeutils.DateRange
	Granularity         Granularity
	TotalSteps          int
	TotalDistanceMeters float64
	Buckets             []Bucket
}

// Explorer answers questions about how many steps were taken over date ranges.
// All date ranges are treated as half-open: a sample at the start of a range is inside it, a sample at the end is not.
type Explorer struct {
	source    SampleSource
	location  *time.Location
	intervals map[string]timeutils.DayedPeriod
	logger    *slog.Logger
}

func New(source SampleSource, location *time.Location, intervals []NamedInterval) *Explorer {
	byName := make(map[string]timeutils.DayedPeriod, len(intervals))
	for _, interval := range intervals {
		byName[interval.Name] = interval.DayedPeriod
	}
	return &Explorer{
		source:    source,
		location:  location,
		intervals: byName,
		logger:    slog.Default(),
	}
}

// Summarise returns the step totals for the given range, bucketed by `granularity` in the explorer's location.
func (e *Explorer) Summarise(dateRange timeutils.DateRange, granularity Granularity) (Summary, error) {
	samples, err := e.source.SamplesInRange(dateRange)
	if err != nil {
		return Summary{}, fmt.Errorf("get samples: %w", err)
	}

	buckets, err := BucketSamples(samples, dateRange, granularity, e.location)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Range:       dateRange,
		Granularity: granularity,
		Buckets:     buckets,
	}
	for _, bucket := range buckets {
		summary.TotalSteps += bucket.Steps
		summary.TotalDistanceMeters += bucket.DistanceMeters
	}

	e.logger.Debug("Summarised steps", "range", dateRange, "granularity", granularity, "samples", len(samples), "steps", summary.TotalSteps)

	return summary, nil
}

// IntervalSteps returns the number of steps taken inside the named interval, on any day within the given range.
func (e *Explorer) IntervalSteps(name string, dateRange timeutils.DateRange) (int, error) {
	period, ok := e.intervals[name]
	if !ok {
		return 0, fmt.Errorf("%w: '%s'", ErrUnknownInterval, name)
	}

	samples, err := e.source.SamplesInRange(dateRange)
	if err != nil {
		return 0, fmt.Errorf("get samples: %w", err)
	}

	steps := 0
	for _, sample := range samples {
		if inRange(dateRange, sample.Time) && period.Contains(sample.Time, e.location) {
			steps += sample.Steps
		}
	}
	return steps, nil
}

// IntervalNames returns the names of the configured intervals, sorted.
func (e *Explorer) IntervalNames() []string {
	names := make([]string, 0, len(e.intervals))
	for name := range e.intervals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BucketSamples groups the samples that are inside `dateRange` into buckets of the given granularity.
//
// The first bucket starts at the beginning of the hour, day or week (in `loc`) containing the start of the range, and
// buckets continue until one would start at or after the end of the range. Empty buckets are included so callers can
// chart a continuous series. A reversed or empty range gives no buckets.
func BucketSamples(samples []telemetry.StepSample, dateRange timeutils.DateRange, granularity Granularity, loc *time.Location) ([]Bucket, error) {
	bucketStart, err := granularity.floor(dateRange.Start.In(loc))
	if err != nil {
		return nil, err
	}

	buckets := []Bucket{}
	if !dateRange.Start.Before(dateRange.End) {
		return buckets, nil
	}
	for bucketStart.Before(dateRange.End) {
		bucketEnd := granularity.next(bucketStart)
		buckets = append(buckets, Bucket{Range: timeutils.NewDateRange(bucketStart, bucketEnd)})
		bucketStart = bucketEnd
	}

	for _, sample := range samples {
		if !inRange(dateRange, sample.Time) {
			continue
		}
		for i := range buckets {
			if inRange(buckets[i].Range, sample.Time) {
				buckets[i].Steps += sample.Steps
				buckets[i].SampleCount++
				if sample.DistanceMeters != nil {
					buckets[i].DistanceMeters += *sample.DistanceMeters
				}
				break
			}
		}
	}

	return buckets, nil
}

// inRange returns true if `t` is within the range, inclusive of `Start` but exclusive of `End`.
func inRange(r timeutils.DateRange, t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}
