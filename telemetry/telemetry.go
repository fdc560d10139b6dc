package telemetry

import (
	"time"

	"github.com/google/uuid"
)

// ReadingMeta holds the fields common to every reading taken from a device
type ReadingMeta struct {
	ID       uuid.UUID
	DeviceID uuid.UUID
	Time     time.Time
}

// StepSample holds the activity counted by a pedometer since its previous sample
type StepSample struct {
	ReadingMeta    `mapstructure:",squash"`
	Steps          int      `mapstructure:"steps"`
	DistanceMeters *float64 `mapstructure:"distance_meters"` // nil if the device doesn't measure distance
	FloorsAscended *int     `mapstructure:"floors_ascended"` // nil if the device has no barometer
}
