package repository

import (
	"path/filepath"
	"testing"
	"time"

	timeutils "github.com/briancroom/StepCounterIntervalExplorer/time_utils"
	"github.com/briancroom/StepCounterIntervalExplorer/telemetry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	repo, err := New(filepath.Join(t.TempDir(), "steps.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newSample(timeStr string, steps int) telemetry.StepSample {
	tm, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		panic(err)
	}
	return telemetry.StepSample{
		ReadingMeta: telemetry.ReadingMeta{
			ID:       uuid.New(),
			DeviceID: uuid.MustParse("f780594f-cbc2-462d-b845-4aa060d5bbe5"),
			Time:     tm,
		},
		Steps: steps,
	}
}

func TestSamplesInRange(t *testing.T) {
	repo := newTestRepository(t)

	for _, s := range []telemetry.StepSample{
		newSample("2023-01-01T00:00:00Z", 1),
		newSample("2023-01-01T12:00:00Z", 2),
		newSample("2023-01-02T00:00:00Z", 4),
		// stored in UTC, so this is 2022-12-31T23:30:00Z
		newSample("2023-01-01T00:30:00+01:00", 8),
	} {
		require.NoError(t, repo.AddSample(s))
	}

	type subTest struct {
		name          string
		dateRange     timeutils.DateRange
		expectedSteps []int
	}

	subTests := []subTest{
		{"Whole day includes start, excludes end", rangeOf("2023-01-01T00:00:00Z", "2023-01-02T00:00:00Z"), []int{1, 2}},
		{"Ordered by time", rangeOf("2022-12-31T00:00:00Z", "2023-01-03T00:00:00Z"), []int{8, 1, 2, 4}},
		{"Range in another timezone", rangeOf("2023-01-01T00:00:00+01:00", "2023-01-01T01:00:00+01:00"), []int{8}},
		{"Reversed range", rangeOf("2023-01-02T00:00:00Z", "2023-01-01T00:00:00Z"), []int{}},
		{"Empty range", rangeOf("2023-01-01T00:00:00Z", "2023-01-01T00:00:00Z"), []int{}},
	}
	for _, subTest := range subTests {
		t.Run(subTest.name, func(t *testing.T) {
			samples, err := repo.SamplesInRange(subTest.dateRange)
			require.NoError(t, err)
			steps := []int{}
			for _, s := range samples {
				steps = append(steps, s.Steps)
			}
			assert.Equal(t, subTest.expectedSteps, steps)
		})
	}
}

func TestUploadBookkeeping(t *testing.T) {
	repo := newTestRepository(t)

	distance := 12.5
	first := newSample("2023-01-01T09:00:00Z", 10)
	first.DistanceMeters = &distance
	second := newSample("2023-01-01T10:00:00Z", 20)
	require.NoError(t, repo.AddSample(first))
	require.NoError(t, repo.AddSample(second))

	fresh, err := repo.GetSamples(100, true)
	require.NoError(t, err)
	require.Len(t, fresh, 2)
	// newest first
	assert.Equal(t, second.ID, fresh[0].ID)
	assert.Equal(t, &distance, fresh[1].DistanceMeters)
	assert.Nil(t, fresh[0].FloorsAscended)

	old, err := repo.GetSamples(100, false)
	require.NoError(t, err)
	assert.Empty(t, old)

	require.NoError(t, repo.IncrementUploadAttemptCount(fresh[:1]))

	fresh, err = repo.GetSamples(100, true)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, first.ID, fresh[0].ID)

	old, err = repo.GetSamples(100, false)
	require.NoError(t, err)
	require.Len(t, old, 1)
	assert.Equal(t, second.ID, old[0].ID)
	assert.Equal(t, uint(1), old[0].UploadAttemptCount)

	require.NoError(t, repo.DeleteSamples(old))
	require.NoError(t, repo.DeleteSamples(nil))

	remaining, err := repo.SamplesInRange(rangeOf("2023-01-01T00:00:00Z", "2023-01-02T00:00:00Z"))
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, first.ID, remaining[0].ID)
}

func TestGetSamplesLimit(t *testing.T) {
	repo := newTestRepository(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AddSample(newSample("2023-01-01T09:00:00Z", i)))
	}
	samples, err := repo.GetSamples(3, true)
	require.NoError(t, err)
	assert.Len(t, samples, 3)
}

func rangeOf(start, end string) timeutils.DateRange {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		panic(err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		panic(err)
	}
	return timeutils.NewDateRange(s, e)
}
