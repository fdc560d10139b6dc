package explorer

import (
	"errors"
	"testing"

	"github.com/briancroom/StepCounterIntervalExplorer/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergedSource(t *testing.T) {
	early := sample("2023-01-01T08:00:00Z", 1)
	middle := sample("2023-01-01T09:00:00Z", 2)
	late := sample("2023-01-01T10:00:00Z", 4)
	outside := sample("2023-01-02T10:00:00Z", 8)

	buffer := &mockSource{samples: []telemetry.StepSample{late, middle}}
	remote := &mockSource{samples: []telemetry.StepSample{middle, early, outside}}

	merged := NewMergedSource(buffer, remote)
	samples, err := merged.SamplesInRange(rangeOf("2023-01-01T00:00:00Z", "2023-01-02T00:00:00Z"))
	require.NoError(t, err)

	steps := []int{}
	for _, s := range samples {
		steps = append(steps, s.Steps)
	}
	assert.Equal(t, []int{1, 2, 4}, steps)

	remote.err = errors.New("connection refused")
	_, err = merged.SamplesInRange(rangeOf("2023-01-01T00:00:00Z", "2023-01-02T00:00:00Z"))
	assert.ErrorIs(t, err, remote.err)
}
