package timeutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPresets(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Fatalf("Failed to load London time: %v", err)
	}

	// 23:30 UTC on Saturday 25th March is 23:30 GMT, the clocks go forward early on Sunday 26th.
	now := mustParseTime("2023-03-25T23:30:00Z")

	type subTest struct {
		name     string
		actual   DateRange
		expected DateRange
	}

	subTests := []subTest{
		{"Today", Today(now, london), NewDateRange(mustParseTime("2023-03-25T00:00:00Z"), mustParseTime("2023-03-26T00:00:00Z"))},
		{"Yesterday", Yesterday(now, london), NewDateRange(mustParseTime("2023-03-24T00:00:00Z"), mustParseTime("2023-03-25T00:00:00Z"))},
		{"LastDays crossing DST", LastDays(mustParseTime("2023-03-26T12:00:00Z"), london, 2), NewDateRange(mustParseTime("2023-03-25T00:00:00Z"), mustParseTime("2023-03-26T23:00:00Z"))},
		{"ThisWeek", ThisWeek(now, london), NewDateRange(mustParseTime("2023-03-20T00:00:00Z"), mustParseTime("2023-03-26T23:00:00Z"))},
		{"Today in UTC", Today(now, time.UTC), NewDateRange(mustParseTime("2023-03-25T00:00:00Z"), mustParseTime("2023-03-26T00:00:00Z"))},
	}
	for _, subTest := range subTests {
		t.Run(subTest.name, func(t *testing.T) {
			assert.True(t, subTest.expected.Equal(subTest.actual), "got %s, expected %s", subTest.actual, subTest.expected)
		})
	}
}
