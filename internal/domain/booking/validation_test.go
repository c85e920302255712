//go:build unit

package booking_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/clock"
	"travel-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func validSubmission() booking.Submission {
	return builder.NewBookingBuilder().
		WithTravelDate(fixedNow.AddDate(0, 0, 30)).
		BuildSubmission()
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verr *booking.ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	fields := make([]string, len(verr.Violations))
	for i, v := range verr.Violations {
		fields[i] = v.Field
	}
	return fields
}

func TestValidator(t *testing.T) {
	v := booking.NewValidator(clock.NewMockClock(fixedNow), booking.NewDefaultPriceCalculator())
	emailOfLength := func(n int) string {
		const domain = "@example.com"
		return strings.Repeat("a", n-len(domain)) + domain
	}

	t.Run("normalizes a valid submission", func(t *testing.T) {
		sub := validSubmission()
		sub.Name = "  Asha Verma  "
		sub.Email = " Asha@Example.COM "
		sub.Phone = " (987) 654-3210 "
		sub.SpecialRequests = ptr("  window seat  ")
		sub.Source = ptr("  instagram ")

		got, err := v.Validate(sub)
		require.NoError(t, err)
		assert.Equal(t, "Asha Verma", got.Customer.Name())
		assert.Equal(t, "asha@example.com", got.Customer.Email())
		assert.Equal(t, "9876543210", got.Customer.Phone())
		assert.Equal(t, "instagram", got.Source)
		assert.Equal(t, "Agra", got.Trip.Destination())
		assert.Equal(t, 2, got.Trip.TravelerCount())
		assert.Equal(t, "window seat", got.SpecialRequests)
		require.NotNil(t, got.TotalAmount)
		assert.Equal(t, 24000.0, got.TotalAmount.Amount())
	})

	t.Run("collects every violation at once", func(t *testing.T) {
		_, err := v.Validate(booking.Submission{})
		assert.ElementsMatch(t, []string{
			booking.FieldName, booking.FieldEmail, booking.FieldPhone,
			booking.FieldDestination, booking.FieldTravelDate, booking.FieldTravelerCount,
		}, fieldsOf(t, err))
	})

	t.Run("blank source falls back to the website", func(t *testing.T) {
		sub := validSubmission()
		sub.Source = ptr("   ")

		got, err := v.Validate(sub)
		require.NoError(t, err)
		assert.Equal(t, booking.DefaultSource, got.Source)
	})

	t.Run("missing amount for an unpriced destination is reported with other violations", func(t *testing.T) {
		sub := validSubmission()
		sub.Email = "not-an-email"
		sub.Destination = "Leh"
		sub.TotalAmount = nil

		_, err := v.Validate(sub)
		assert.Equal(t, []string{booking.FieldEmail, booking.FieldTotalAmount}, fieldsOf(t, err))
	})

	cases := []struct {
		name      string
		mutate    func(*booking.Submission)
		wantField string
	}{
		{name: "name too short", mutate: func(s *booking.Submission) { s.Name = "A" }, wantField: booking.FieldName},
		{name: "name too long", mutate: func(s *booking.Submission) { s.Name = strings.Repeat("a", 51) }, wantField: booking.FieldName},
		{name: "name max length", mutate: func(s *booking.Submission) { s.Name = strings.Repeat("a", 50) }},
		{name: "email at max length", mutate: func(s *booking.Submission) { s.Email = emailOfLength(254) }},
		{name: "email over max length", mutate: func(s *booking.Submission) { s.Email = emailOfLength(255) }, wantField: booking.FieldEmail},
		{name: "malformed email", mutate: func(s *booking.Submission) { s.Email = "asha@example" }, wantField: booking.FieldEmail},
		{name: "phone with separators", mutate: func(s *booking.Submission) { s.Phone = "(987) 654-3210" }},
		{name: "phone too short", mutate: func(s *booking.Submission) { s.Phone = "98765" }, wantField: booking.FieldPhone},
		{name: "phone with letters", mutate: func(s *booking.Submission) { s.Phone = "98765abcde1" }, wantField: booking.FieldPhone},
		{name: "phone at max digits", mutate: func(s *booking.Submission) { s.Phone = "1234 5678 9012 3456" }},
		{name: "phone over max digits", mutate: func(s *booking.Submission) { s.Phone = "12345678901234567" }, wantField: booking.FieldPhone},
		{name: "phone with country code plus", mutate: func(s *booking.Submission) { s.Phone = "+91 98765 43210" }, wantField: booking.FieldPhone},
		{name: "destination at max length", mutate: func(s *booking.Submission) { s.Destination = strings.Repeat("d", 100) }},
		{name: "destination over max length", mutate: func(s *booking.Submission) { s.Destination = strings.Repeat("d", 101) }, wantField: booking.FieldDestination},
		{name: "destination too short", mutate: func(s *booking.Submission) { s.Destination = "X" }, wantField: booking.FieldDestination},
		{name: "travel date in the past", mutate: func(s *booking.Submission) { s.TravelDate = "2026-10-14" }, wantField: booking.FieldTravelDate},
		{name: "travel date today", mutate: func(s *booking.Submission) { s.TravelDate = "2026-10-15" }},
		{name: "travel date as RFC 3339", mutate: func(s *booking.Submission) { s.TravelDate = "2026-12-01T09:30:00Z" }},
		{name: "travel date garbage", mutate: func(s *booking.Submission) { s.TravelDate = "next tuesday" }, wantField: booking.FieldTravelDate},
		{name: "zero travelers", mutate: func(s *booking.Submission) { s.TravelerCount = ptr(0.0) }, wantField: booking.FieldTravelerCount},
		{name: "one traveler", mutate: func(s *booking.Submission) { s.TravelerCount = ptr(1.0) }},
		{name: "twenty travelers", mutate: func(s *booking.Submission) { s.TravelerCount = ptr(20.0) }},
		{name: "twenty one travelers", mutate: func(s *booking.Submission) { s.TravelerCount = ptr(21.0) }, wantField: booking.FieldTravelerCount},
		{name: "fractional travelers", mutate: func(s *booking.Submission) { s.TravelerCount = ptr(2.5) }, wantField: booking.FieldTravelerCount},
		{name: "negative amount", mutate: func(s *booking.Submission) { s.TotalAmount = ptr(-1.0) }, wantField: booking.FieldTotalAmount},
		{name: "infinite amount", mutate: func(s *booking.Submission) { s.TotalAmount = ptr(math.Inf(1)) }, wantField: booking.FieldTotalAmount},
		{name: "amount omitted for a catalog destination", mutate: func(s *booking.Submission) { s.TotalAmount = nil }},
		{
			name: "amount omitted for an unpriced destination",
			mutate: func(s *booking.Submission) {
				s.Destination = "Leh"
				s.TotalAmount = nil
			},
			wantField: booking.FieldTotalAmount,
		},
		{name: "amount at storable maximum", mutate: func(s *booking.Submission) { s.TotalAmount = ptr(9_999_999_999.99) }},
		{name: "amount over storable maximum", mutate: func(s *booking.Submission) { s.TotalAmount = ptr(1e10) }, wantField: booking.FieldTotalAmount},
		{name: "amount with cents", mutate: func(s *booking.Submission) { s.TotalAmount = ptr(24000.05) }},
		{name: "amount with sub-cent precision", mutate: func(s *booking.Submission) { s.TotalAmount = ptr(0.004) }, wantField: booking.FieldTotalAmount},
		{name: "source at max length", mutate: func(s *booking.Submission) { s.Source = ptr(strings.Repeat("s", 32)) }},
		{name: "source over max length", mutate: func(s *booking.Submission) { s.Source = ptr(strings.Repeat("s", 33)) }, wantField: booking.FieldSource},
		{name: "special requests at limit", mutate: func(s *booking.Submission) { s.SpecialRequests = ptr(strings.Repeat("a", 500)) }},
		{name: "special requests over limit", mutate: func(s *booking.Submission) { s.SpecialRequests = ptr(strings.Repeat("a", 501)) }, wantField: booking.FieldSpecialRequests},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission()
			tc.mutate(&sub)

			_, err := v.Validate(sub)
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, []string{tc.wantField}, fieldsOf(t, err))
		})
	}
}
