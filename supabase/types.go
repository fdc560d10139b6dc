package supabase

import (
	"time"

	"github.com/briancroom/StepCounterIntervalExplorer/telemetry"
	"github.com/google/uuid"
)

const (
	SUPABASE_STEP_SAMPLE_TABLE_NAME = "step_samples"
)

// supabaseStepSample holds the json encoding schema for a step sample in supabase.
type supabaseStepSample struct {
	ID             uuid.UUID `json:"id"`
	DeviceID       uuid.UUID `json:"device_id"`
	Time           time.Time `json:"time"`
	Steps          int       `json:"steps"`
	DistanceMeters *float64  `json:"distance_meters"`
	FloorsAscended *int      `json:"floors_ascended"`
}

func convertSamplesForSupabase(samples []telemetry.StepSample) []supabaseStepSample {
	supabaseSamples := make([]supabaseStepSample, 0, len(samples))
	for _, sample := range samples {
		supabaseSamples = append(supabaseSamples, supabaseStepSample{
			ID:             sample.ID,
			DeviceID:       sample.DeviceID,
			Time:           sample.Time,
			Steps:          sample.Steps,
			DistanceMeters: sample.DistanceMeters,
			FloorsAscended: sample.FloorsAscended,
		})
	}
	return supabaseSamples
}

func convertSamplesFromSupabase(supabaseSamples []supabaseStepSample) []telemetry.StepSample {
	samples := make([]telemetry.StepSample, 0, len(supabaseSamples))
	for _, s := range supabaseSamples {
		samples = append(samples, telemetry.StepSample{
			ReadingMeta: telemetry.ReadingMeta{
				ID:       s.ID,
				DeviceID: s.DeviceID,
				Time:     s.Time,
			},
			Steps:          s.Steps,
			DistanceMeters: s.DistanceMeters,
			FloorsAscended: s.FloorsAscended,
		})
	}
	return samples
}
