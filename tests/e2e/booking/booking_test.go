//go:build e2e

package booking_test

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"travel-booking/internal/handler/dto/response"
	"travel-booking/tests/common/builder"
	"travel-booking/tests/common/dbtest"
	"travel-booking/tests/common/httptest"
	"travel-booking/tests/common/testutil"
	"travel-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL  = "/api/bookings"
	bookingURL   = "/api/bookings/%s"
	referenceURL = "/api/bookings/reference/%s"
	paymentURL   = "/api/bookings/%s/payment"
	statusURL    = "/api/bookings/%s/status"
	statsURL     = "/api/bookings/stats"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) createBooking(t *testing.T, body any) response.CreateBookingResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.CreateBookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	return created
}

// =============================================================================
// TestBookingLifecycle - create, read, pay and cancel through the API
// =============================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: created booking is priced from the catalog and readable by id and reference", func() {
		t := s.T()
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

		created := s.createBooking(t, testutil.DtoMap(t, reqBody, testutil.Field("totalAmount", 1)))
		require.Regexp(t, `^WW-\d{8}-\d{4}$`, created.Reference)
		require.Equal(t, "http://localhost:3000/payment/"+created.Reference, created.PaymentURL)
		require.Equal(t, 24000.0, created.Booking.TotalAmount)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, created.Booking.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var byID response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &byID))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(referenceURL, created.Reference), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var byRef response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &byRef))

		ignore := cmpopts.IgnoreFields(response.BookingResponse{},
			"ConfirmationSent", "TeamNotificationSent", "CreatedAt", "UpdatedAt", "TravelDate")
		if diff := cmp.Diff(byID, byRef, ignore); diff != "" {
			t.Errorf("booking by id and by reference differ (-id +ref):\n%s", diff)
		}
		require.Equal(t, "pending", byID.BookingStatus)
		require.Equal(t, "pending", byID.PaymentStatus)
		require.Equal(t, "asha@example.com", byID.CustomerEmail)
	})

	s.Run("Normal case: confirmation and team alert flags flip once delivered", func() {
		t := s.T()
		created := s.createBooking(t, builder.NewBookingBuilder().BuildCreateRequestDTO())

		require.Eventually(t, func() bool {
			flags, err := dbtest.ReadNotificationFlags(t.Context(), s.DB, created.Booking.ID)
			return err == nil && flags.Confirmation && flags.Team && !flags.Reminder
		}, 5*time.Second, 50*time.Millisecond)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, created.Booking.ID), nil)
		var b response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &b))
		require.True(t, b.ConfirmationSent)
		require.True(t, b.TeamNotificationSent)
	})

	s.Run("Normal case: payment confirms the booking and a second payment is refused", func() {
		t := s.T()
		created := s.createBooking(t, builder.NewBookingBuilder().BuildCreateRequestDTO())
		url := fmt.Sprintf(paymentURL, created.Booking.ID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var paid response.PaymentResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &paid))
		require.Regexp(t, `^TXN-[0-9A-F]{16}$`, paid.TransactionID)
		require.Equal(t, "confirmed", paid.Booking.BookingStatus)
		require.Equal(t, "paid", paid.Booking.PaymentStatus)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "cannot be paid")
	})

	s.Run("Normal case: cancel succeeds once then is refused", func() {
		t := s.T()
		created := s.createBooking(t, builder.NewBookingBuilder().BuildCreateRequestDTO())
		url := fmt.Sprintf(bookingURL, created.Booking.ID)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var cancelled response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cancelled))
		require.Equal(t, "cancelled", cancelled.BookingStatus)
		require.Equal(t, "cancelled", cancelled.PaymentStatus)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Booking cannot be cancelled")
	})

	s.Run("Abnormal case: cancellation inside 24 hours of travel", func() {
		t := s.T()
		id := dbtest.InsertBooking(t, s.DB, dbtest.BookingFixture{
			Reference:     "WW-20261015-5001",
			Name:          "Ravi Kumar",
			Email:         "ravi@example.com",
			Destination:   "Agra",
			TravelDate:    time.Now().Add(12 * time.Hour),
			TravelerCount: 1,
			TotalAmount:   12000,
		})

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(bookingURL, id), nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Booking cannot be cancelled")
	})

	s.Run("Normal case: status update", func() {
		t := s.T()
		created := s.createBooking(t, builder.NewBookingBuilder().BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(statusURL, created.Booking.ID),
			map[string]any{"paymentStatus": "failed"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var updated response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
		require.Equal(t, "failed", updated.PaymentStatus)
		require.Equal(t, "pending", updated.BookingStatus)
	})

	s.Run("Abnormal case: unknown id and reference", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, uuid.New()), nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(referenceURL, "WW-20000101-1000"), nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")
	})

	s.Run("Abnormal case: invalid submission is rejected with every field", func() {
		t := s.T()
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, testutil.DtoMap(t, reqBody,
			testutil.Field("travelerCount", 21),
			testutil.Field("travelDate", "2000-01-01"),
			testutil.Field("phone", "123"),
		))
		httptest.AssertValidationResponse(t, w, "travelerCount", "travelDate", "phone")

		var count int
		require.NoError(t, s.DB.QueryRow(t.Context(), "SELECT COUNT(*) FROM bookings").Scan(&count))
		require.Zero(t, count)
	})

	s.Run("Normal case: values at the column limits are stored as echoed", func() {
		t := s.T()
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		destination := strings.Repeat("d", 100)
		email := strings.Repeat("a", 254-len("@example.com")) + "@example.com"

		created := s.createBooking(t, testutil.DtoMap(t, reqBody,
			testutil.Field("destination", destination),
			testutil.Field("email", email),
			testutil.Field("phone", "(1234) 5678-9012 3456"),
			testutil.Field("totalAmount", 9_999_999_999.99),
			testutil.Field("source", strings.Repeat("s", 32)),
		))
		require.Equal(t, "1234567890123456", created.Booking.CustomerPhone)
		require.Equal(t, 9_999_999_999.99, created.Booking.TotalAmount)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, created.Booking.ID), nil)
		var stored response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &stored)
		require.Equal(t, destination, stored.Destination)
		require.Equal(t, email, stored.CustomerEmail)
		require.Equal(t, "1234567890123456", stored.CustomerPhone)
		require.Equal(t, 9_999_999_999.99, stored.TotalAmount)
		require.Equal(t, strings.Repeat("s", 32), stored.Source)
	})

	s.Run("Abnormal case: values past the column limits are a 400, not a 500", func() {
		t := s.T()
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, testutil.DtoMap(t, reqBody,
			testutil.Field("destination", strings.Repeat("d", 256)),
			testutil.Field("email", strings.Repeat("a", 250)+"@example.com"),
			testutil.Field("totalAmount", 1e10),
			testutil.Field("source", strings.Repeat("s", 33)),
		))
		httptest.AssertValidationResponse(t, w, "destination", "email", "totalAmount", "source")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, testutil.DtoMap(t, reqBody,
			testutil.Field("destination", "Leh"),
			testutil.Field("totalAmount", 0.004),
		))
		httptest.AssertValidationResponse(t, w, "totalAmount")
	})
}

// =============================================================================
// TestSearchBookings - pagination, filters and sorting
// =============================================================================

func (s *BookingSuite) TestSearchBookings() {
	seed := func(t *testing.T, n int, paymentStatus string) {
		t.Helper()
		base := time.Now().Add(-time.Duration(n) * time.Minute)
		for i := range n {
			dbtest.InsertBooking(t, s.DB, dbtest.BookingFixture{
				Reference:     fmt.Sprintf("WW-20261015-%04d", 1000+i),
				Name:          fmt.Sprintf("Traveller %02d", i),
				Email:         fmt.Sprintf("t%02d@example.com", i),
				Destination:   "Jaisalmer",
				TravelDate:    time.Now().AddDate(0, 1, i),
				TravelerCount: 1 + i%3,
				TotalAmount:   float64(18000 * (1 + i%3)),
				PaymentStatus: paymentStatus,
				CreatedAt:     base.Add(time.Duration(i) * time.Minute),
			})
		}
	}

	s.Run("Normal case: 23 bookings at limit 10 gives 3 pages and a short last page", func() {
		t := s.T()
		seed(t, 23, "pending")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?page=3&limit=10", nil)
		var page response.BookingListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Items, 3)
		require.Equal(t, response.PaginationResponse{Page: 3, Limit: 10, Total: 23, Pages: 3}, page.Pagination)
		// newest first by default, so the last page holds the oldest rows
		require.Equal(t, "WW-20261015-1000", page.Items[2].Reference)
	})

	s.Run("Normal case: payment status filter and free-text search", func() {
		t := s.T()
		seed(t, 4, "paid")
		dbtest.InsertBooking(t, s.DB, dbtest.BookingFixture{
			Reference: "WW-20261015-9000", Name: "Meera Iyer", Email: "meera@example.com",
			Destination: "Kullu Manali", TravelDate: time.Now().AddDate(0, 2, 0), TravelerCount: 2, TotalAmount: 40000,
		})

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?status=paid", nil)
		var paid response.BookingListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &paid)
		require.Equal(t, int64(4), paid.Pagination.Total)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?status=all&search=manali", nil)
		var found response.BookingListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &found)
		require.Len(t, found.Items, 1)
		require.Equal(t, "WW-20261015-9000", found.Items[0].Reference)
	})

	s.Run("Normal case: wildcard characters are matched literally", func() {
		t := s.T()
		seed(t, 3, "pending")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?search=%25", nil)
		var page response.BookingListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Zero(t, page.Pagination.Total)
	})

	s.Run("Abnormal case: unsupported sort field", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?sortBy=customer_email", nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid query parameters")
	})

	s.Run("Abnormal case: page beyond the addressable range", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"?page="+strconv.Itoa(math.MaxInt64), nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid query parameters")
	})
}

// =============================================================================
// TestBookingStats - aggregates across all bookings
// =============================================================================

func (s *BookingSuite) TestBookingStats() {
	s.Run("Normal case: totals and per-status counts", func() {
		t := s.T()
		for i, f := range []dbtest.BookingFixture{
			{TravelerCount: 2, TotalAmount: 24000, BookingStatus: "confirmed", PaymentStatus: "paid"},
			{TravelerCount: 1, TotalAmount: 15000},
			{TravelerCount: 3, TotalAmount: 60000, BookingStatus: "cancelled", PaymentStatus: "cancelled"},
		} {
			f.Reference = fmt.Sprintf("WW-20261015-%04d", 7000+i)
			f.Name = "Stats Traveller"
			f.Email = "stats@example.com"
			f.Destination = "Ayodhya"
			f.TravelDate = time.Now().AddDate(0, 1, 0)
			dbtest.InsertBooking(t, s.DB, f)
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, statsURL, nil)
		var stats response.StatsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &stats)

		want := response.StatsResponse{
			TotalBookings:   3,
			TotalRevenue:    99000,
			AvgBookingValue: 33000,
			TotalTravelers:  6,
			ByBookingStatus: map[string]int64{"confirmed": 1, "pending": 1, "cancelled": 1},
			ByPaymentStatus: map[string]int64{"paid": 1, "pending": 1, "cancelled": 1},
		}
		if diff := cmp.Diff(want, stats); diff != "" {
			t.Errorf("stats mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: empty range", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, statsURL+"?from=2000-01-01&to=2000-01-31", nil)
		var stats response.StatsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &stats)
		require.Zero(t, stats.TotalBookings)
		require.Empty(t, stats.ByBookingStatus)
	})

	s.Run("Abnormal case: reversed range", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, statsURL+"?from=2026-02-01&to=2026-01-01", nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid query parameters")
	})
}
