package explorer

import (
	"fmt"
	"sort"

	timeutils "github.com/briancroom/StepCounterIntervalExplorer/time_utils"
	"github.com/briancroom/StepCounterIntervalExplorer/telemetry"
	"github.com/google/uuid"
)

// MergedSource combines several sample sources, e.g. the local upload buffer and the remote data platform. Samples
// move from one to the other as they are uploaded, so a sample seen in more than one source is only counted once.
type MergedSource struct {
	sources []SampleSource
}

func NewMergedSource(sources ...SampleSource) *MergedSource {
	return &MergedSource{sources: sources}
}

// SamplesInRange returns the union of the samples from every source, de-duplicated by ID and ordered by time.
// An error from any source fails the whole query, as a partial total would be silently wrong.
func (m *MergedSource) SamplesInRange(dateRange timeutils.DateRange) ([]telemetry.StepSample, error) {
	seen := make(map[uuid.UUID]bool)
	var merged []telemetry.StepSample

	for i, source := range m.sources {
		samples, err := source.SamplesInRange(dateRange)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		for _, sample := range samples {
			if seen[sample.ID] {
				continue
			}
			seen[sample.ID] = true
			merged = append(merged, sample)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Time.Before(merged[j].Time)
	})
	return merged, nil
}
