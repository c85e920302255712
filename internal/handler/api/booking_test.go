//go:build unit

package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/handler/api"
	resdto "travel-booking/internal/handler/dto/response"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"
	"travel-booking/tests/common/builder"
	"travel-booking/tests/common/httptest"
	"travel-booking/tests/common/testutil"
	commandsmock "travel-booking/tests/mock/commands"
	queriesmock "travel-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupSuite() {
	gin.EnableJsonDecoderDisallowUnknownFields()
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	bookings := s.router.Group("/api/bookings")
	bookings.POST("", s.handler.Create)
	bookings.GET("", s.handler.List)
	bookings.GET("/stats", s.handler.Stats)
	bookings.POST("/validate", s.handler.Validate)
	bookings.GET("/reference/:reference", s.handler.GetByReference)
	bookings.GET("/:id", s.handler.Get)
	bookings.DELETE("/:id", s.handler.Cancel)
	bookings.PUT("/:id/status", s.handler.UpdateStatus)
	bookings.POST("/:id/payment", s.handler.Pay)
	s.router.GET("/api/destinations", s.handler.Destinations)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/bookings"
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
	view := builder.NewBookingBuilder().BuildView()
	result := &commands.CreateBookingResult{
		Booking:    view,
		Reference:  view.Reference,
		PaymentURL: booking.PaymentURL("http://localhost:3000", view.Reference),
	}

	s.Run("success: returns 201 with reference and payment link", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, sub booking.Submission, meta booking.Metadata) (*commands.CreateBookingResult, error) {
				s.Equal(reqBody.Name, sub.Name)
				s.Nil(sub.Source)
				s.Empty(meta.Source)
				s.Equal("integration-test", meta.UserAgent)
				return result, nil
			})

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"User-Agent": "integration-test"})

		var body resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.Reference, body.Reference)
		s.Equal("http://localhost:3000/payment/"+view.Reference, body.PaymentURL)
		s.Equal(view.ID, body.Booking.ID)
		s.NotContains(rec.Body.String(), "ipAddress")
	})

	s.Run("source travels with the submission", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, sub booking.Submission, _ booking.Metadata) (*commands.CreateBookingResult, error) {
				s.Require().NotNil(sub.Source)
				s.Equal("instagram", *sub.Source)
				return result, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("source", "instagram")))
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("error: validation failures list every field", func() {
		verr := booking.NewValidationError(
			booking.FieldError{Field: booking.FieldEmail, Message: "Please provide a valid email address"},
			booking.FieldError{Field: booking.FieldTravelerCount, Message: "Number of travelers is required"},
		)
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, verr)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("travelerCount", nil), testutil.Field("email", "nope")))
		httptest.AssertValidationResponse(s.T(), rec, booking.FieldEmail, booking.FieldTravelerCount)
	})

	s.Run("error: 400 on malformed JSON", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, `{"name":`)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 on unknown fields", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("bookingStatus", "confirmed")))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 on wrongly typed fields", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("travelerCount", "two")))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 409 when references run out", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(commands.ErrReferenceCollisionExhausted, "after 5 attempts"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "booking reference")
	})

	s.Run("error: 500 hides internal details", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("pq: connection refused"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
		s.NotContains(rec.Body.String(), "connection refused")
	})
}

// ================================================================================
// TestValidate
// ================================================================================

func (s *BookingHandlerTestSuite) TestValidate() {
	url := "/api/bookings/validate"
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

	s.Run("success: returns the normalized submission", func() {
		s.mockCommands.EXPECT().ValidateSubmission(gomock.Any(), gomock.Any()).
			Return(&commands.ValidationResult{Name: "Asha Verma", Email: "asha@example.com", TotalAmount: 24000, CatalogPriced: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.ValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Valid)
		s.Equal(24000.0, body.TotalAmount)
	})

	s.Run("error: 400 with field errors", func() {
		s.mockCommands.EXPECT().ValidateSubmission(gomock.Any(), gomock.Any()).
			Return(nil, booking.NewValidationError(booking.FieldError{Field: booking.FieldTravelDate, Message: "Travel date cannot be in the past"}))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertValidationResponse(s.T(), rec, booking.FieldTravelDate)
	})
}

// ================================================================================
// TestGet / TestGetByReference
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("success: returns 200", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/"+view.ID.String(), nil)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.Reference, body.Reference)
		s.Equal(view.CustomerName, body.CustomerName)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/not-a-uuid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: 404 when missing", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, queries.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/"+id.String(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestGetByReference() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("success: returns 200", func() {
		s.mockQueries.EXPECT().GetByReference(gomock.Any(), view.Reference).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/reference/"+view.Reference, nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 404 for unknown reference", func() {
		s.mockQueries.EXPECT().GetByReference(gomock.Any(), "WW-1").Return(nil, queries.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/reference/WW-1", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

// ================================================================================
// TestList / TestStats
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("success: query parameters reach the search", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), queries.SearchParams{
			Query:         "agra",
			PaymentStatus: "paid",
			BookingStatus: "confirmed",
			Page:          3,
			Limit:         10,
			SortBy:        "travelDate",
			Order:         "asc",
		}).Return(&queries.BookingPage{
			Items:      []*queries.BookingView{builder.NewBookingBuilder().BuildView()},
			Pagination: queries.Pagination{Page: 3, Limit: 10, Total: 21, Pages: 3},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/bookings?search=agra&status=paid&bookingStatus=confirmed&page=3&limit=10&sortBy=travelDate&order=asc", nil)

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Equal(resdto.PaginationResponse{Page: 3, Limit: 10, Total: 21, Pages: 3}, body.Pagination)
	})

	s.Run("error: 400 on non-numeric page", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?page=two", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
	})

	s.Run("error: 400 on unsupported sort field", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrapf(queries.ErrInvalidSearchParams, "unsupported sortBy %q", "password"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?sortBy=password", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
	})
}

func (s *BookingHandlerTestSuite) TestStats() {
	s.Run("success: empty maps are objects", func() {
		s.mockQueries.EXPECT().Stats(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, r queries.DateRange) (*queries.BookingStats, error) {
				s.Require().NotNil(r.From)
				s.Require().NotNil(r.To)
				s.Equal(23, r.To.Hour())
				return &queries.BookingStats{}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/stats?from=2026-10-01&to=2026-10-31", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"byBookingStatus":{}`)
	})

	s.Run("error: 400 on bad date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/stats?from=last-week", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date range")
	})
}

// ================================================================================
// TestUpdateStatus / TestCancel / TestPay
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdateStatus() {
	id := uuid.New()
	url := fmt.Sprintf("/api/bookings/%s/status", id)

	s.Run("success: returns the updated booking", func() {
		view := builder.NewBookingBuilder().WithID(id).AsPaid().BuildView()
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, upd commands.StatusUpdate) (*queries.BookingView, error) {
				s.Require().NotNil(upd.PaymentStatus)
				s.Equal("paid", *upd.PaymentStatus)
				s.Nil(upd.BookingStatus)
				return view, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"paymentStatus": "paid"})

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("paid", body.PaymentStatus)
	})

	s.Run("error: 409 on forbidden transition", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), id, gomock.Any()).
			Return(nil, commands.ErrStatusTransitionNotAllowed)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"bookingStatus": "confirmed"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Status transition not allowed")
	})

	s.Run("error: 400 on invalid enum", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), id, gomock.Any()).
			Return(nil, booking.NewValidationError(booking.FieldError{Field: booking.FieldPaymentStatus, Message: "Invalid payment status"}))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"paymentStatus": "settled"})
		httptest.AssertValidationResponse(s.T(), rec, booking.FieldPaymentStatus)
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/api/bookings/" + id.String()

	s.Run("success: returns the cancelled booking", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), id).
			Return(builder.NewBookingBuilder().WithID(id).AsCancelled().BuildView(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.BookingStatus)
	})

	s.Run("error: 400 inside the cancellation window", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), id).Return(nil, commands.ErrCancellationNotAllowed)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Booking cannot be cancelled")
	})

	s.Run("error: 404 when missing", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), id).Return(nil, commands.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestPay() {
	id := uuid.New()
	url := fmt.Sprintf("/api/bookings/%s/payment", id)

	s.Run("success: returns transaction id", func() {
		view := builder.NewBookingBuilder().WithID(id).AsPaid().BuildView()
		s.mockCommands.EXPECT().PayBooking(gomock.Any(), id).
			Return(&commands.PaymentResult{Booking: view, TransactionID: *view.TransactionID}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		var body resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("TXN-0123456789ABCDEF", body.TransactionID)
		s.Equal("confirmed", body.Booking.BookingStatus)
	})

	s.Run("error: 409 when not payable", func() {
		s.mockCommands.EXPECT().PayBooking(gomock.Any(), id).Return(nil, commands.ErrPaymentNotAllowed)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "cannot be paid")
	})
}

func (s *BookingHandlerTestSuite) TestDestinations() {
	s.mockQueries.EXPECT().Destinations(gomock.Any()).Return(booking.DefaultDestinations())

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/destinations", nil)

	var body []resdto.DestinationResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Len(body, 4)
	s.Equal(resdto.DestinationResponse{Name: "Agra", UnitPrice: 12000}, body[1])
}

