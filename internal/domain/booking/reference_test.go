//go:build unit

package booking_test

import (
	"regexp"
	"testing"
	"time"

	"travel-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestRandomReferenceGenerator(t *testing.T) {
	pattern := regexp.MustCompile(`^WW-\d{8}-\d{4}$`)
	now := time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC)

	t.Run("matches the reference pattern", func(t *testing.T) {
		g := booking.NewRandomReferenceGenerator()
		for range 200 {
			ref := g.Generate(now)
			assert.Regexp(t, pattern, ref)
			assert.True(t, booking.IsValidReference(ref))
		}
	})

	t.Run("suffix covers 1000 to 9999", func(t *testing.T) {
		low := booking.NewReferenceGeneratorWithSource(func(int) int { return 0 })
		high := booking.NewReferenceGeneratorWithSource(func(n int) int { return n - 1 })

		assert.Equal(t, "WW-20260105-1000", low.Generate(now))
		assert.Equal(t, "WW-20260105-9999", high.Generate(now))
	})
}

func TestNormalizeReference(t *testing.T) {
	assert.Equal(t, "WW-20260105-1234", booking.NormalizeReference("  ww-20260105-1234 "))
	assert.False(t, booking.IsValidReference("WW-2026015-1234"))
	assert.False(t, booking.IsValidReference("XX-20260105-1234"))
}
