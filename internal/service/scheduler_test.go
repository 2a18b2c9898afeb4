package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreviousMonth(t *testing.T) {
	cases := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2025, time.January, 1, 2, 0, 0, 0, time.UTC), "2024-12"},
		{time.Date(2025, time.March, 31, 23, 59, 0, 0, time.UTC), "2025-02"},
		{time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC), "2025-06"},
		{time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), "2024-11"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PreviousMonth(tc.now), "now=%s", tc.now)
	}
}

func TestNextRun(t *testing.T) {
	// Mid-month: next run is the first of next month at 02:00.
	now := time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.August, 1, 2, 0, 0, 0, time.UTC), nextRun(now))

	// Before 02:00 on the first: run later today.
	now = time.Date(2025, time.July, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.July, 1, 2, 0, 0, 0, time.UTC), nextRun(now))

	// Exactly at 02:00 on the first: already fired, schedule next month.
	now = time.Date(2025, time.July, 1, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.August, 1, 2, 0, 0, 0, time.UTC), nextRun(now))

	// December rolls over the year.
	now = time.Date(2025, time.December, 20, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.January, 1, 2, 0, 0, 0, time.UTC), nextRun(now))
}
