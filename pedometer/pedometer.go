package pedometer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/briancroom/StepCounterIntervalExplorer/telemetry"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

const (
	// strideMeters is the assumed average stride length used to derive distance from steps
	strideMeters = 0.75
	// stepsPerFloor is roughly how many steps it takes to climb one storey of stairs
	stepsPerFloor = 16
)

// Mock looks like a pedometer but produces fake data at a configured cadence.
// Samples are sent onto the `samples` channel every poll period.
type Mock struct {
	samples        chan<- telemetry.StepSample
	id             uuid.UUID
	stepsPerMinute float64
	stairFraction  float64 // the fraction of steps taken on stairs
	rand           *rand.Rand
	logger         *slog.Logger
}

func NewMock(samples chan<- telemetry.StepSample, id uuid.UUID, stepsPerMinute float64) *Mock {
	return &Mock{
		samples:        samples,
		id:             id,
		stepsPerMinute: stepsPerMinute,
		stairFraction:  0.05,
		rand:           rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:         slog.Default().With("device_id", id),
	}
}

// Run loops forever producing a sample every `period`. Exits when the context is cancelled.
func (m *Mock) Run(ctx context.Context, period time.Duration) error {

	readingTicker := time.NewTicker(period)
	defer readingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-readingTicker.C:

			sample, err := m.metricsToStepSample(m.readMetrics(period), t)
			if err != nil {
				m.logger.Error("Failed to convert metrics", "error", err)
				continue // try again next time
			}

			select {
			case m.samples <- sample:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// readMetrics returns the raw metrics for the last `period`, in the same shape that a real device reports them.
func (m *Mock) readMetrics(period time.Duration) map[string]interface{} {
	expected := m.stepsPerMinute * period.Minutes()
	jitter := 1 + (m.rand.Float64()*0.4 - 0.2) // +/- 20%
	steps := int(math.Round(expected * jitter))

	return map[string]interface{}{
		"steps":           steps,
		"distance_meters": float64(steps) * strideMeters,
		"floors_ascended": int(float64(steps) * m.stairFraction / stepsPerFloor),
	}
}

// metricsToStepSample converts the given map of metrics into a concrete `telemetry.StepSample` instance.
func (m *Mock) metricsToStepSample(metrics map[string]interface{}, t time.Time) (telemetry.StepSample, error) {

	sample := telemetry.StepSample{
		ReadingMeta: telemetry.ReadingMeta{
			ID:       uuid.New(),
			DeviceID: m.id,
			Time:     t,
		},
	}

	err := mapstructure.Decode(metrics, &sample)
	if err != nil {
		return telemetry.StepSample{}, fmt.Errorf("decode metric map: %w", err)
	}

	return sample, nil
}
