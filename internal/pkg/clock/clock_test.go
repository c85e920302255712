//go:build unit

package clock_test

import (
	"testing"
	"time"

	"travel-booking/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntil(t *testing.T) {
	ist := time.FixedZone("IST", 19800)
	travel := time.Date(2026, 11, 14, 0, 0, 0, 0, ist)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"morning three days before", time.Date(2026, 11, 11, 10, 0, 0, 0, ist), 3},
		{"late evening three days before", time.Date(2026, 11, 11, 23, 59, 0, 0, ist), 3},
		{"same day", time.Date(2026, 11, 14, 8, 0, 0, 0, ist), 0},
		{"already past", time.Date(2026, 11, 20, 8, 0, 0, 0, ist), 0},
		{"now in another zone is judged in the travel date's zone", time.Date(2026, 11, 10, 20, 0, 0, 0, time.UTC), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clock.DaysUntil(tt.now, travel))
		})
	}
}

func TestStartOfDay(t *testing.T) {
	ist := time.FixedZone("IST", 19800)
	got := clock.StartOfDay(time.Date(2026, 10, 15, 17, 42, 5, 9, ist))
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, ist), got)
}

func TestMockClock(t *testing.T) {
	start := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	c := clock.NewMockClock(start)

	c.Add(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}
