package repository

import "github.com/briancroom/StepCounterIntervalExplorer/telemetry"

// StoredStepSample represents a step sample that is persisted to the SQLite database, and includes a count of upload attempts.
type StoredStepSample struct {
	telemetry.StepSample
	UploadAttemptCount uint
}

func newStoredStepSample(sample telemetry.StepSample) StoredStepSample {
	sample.Time = sample.Time.UTC()
	return StoredStepSample{
		StepSample:         sample,
		UploadAttemptCount: 0,
	}
}

// Samples strips the upload bookkeeping from the given stored samples.
func Samples(stored []StoredStepSample) []telemetry.StepSample {
	samples := make([]telemetry.StepSample, 0, len(stored))
	for _, s := range stored {
		samples = append(samples, s.StepSample)
	}
	return samples
}

func ids(stored []StoredStepSample) []string {
	ids := make([]string, 0, len(stored))
	for _, s := range stored {
		ids = append(ids, s.ID.String())
	}
	return ids
}
