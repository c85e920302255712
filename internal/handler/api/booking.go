package api

import (
	"net/http"
	"time"

	"travel-booking/internal/domain/booking"
	reqdto "travel-booking/internal/handler/dto/request"
	resdto "travel-booking/internal/handler/dto/response"
	"travel-booking/internal/handler/httperr"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
	loc  *time.Location
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, loc: time.Local}
}

// @Summary Create booking
// @Description Validate, price and store a booking request, then notify the customer and the team
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	meta := req.Metadata(c.ClientIP(), c.GetHeader("User-Agent"))
	result, err := h.cmds.CreateBooking(c.Request.Context(), req.ToSubmission(), meta)
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreateBookingResult(result))
}

// @Summary Validate booking
// @Description Run booking validation and pricing without persisting anything
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 200 {object} resdto.ValidationResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings/validate [post]
func (h *BookingHandler) Validate(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.ValidateSubmission(c.Request.Context(), req.ToSubmission())
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidationResult(result))
}

// @Summary List bookings
// @Description Search, filter, sort and paginate bookings
// @Tags bookings
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param status query string false "Payment status filter, or all"
// @Param bookingStatus query string false "Booking status filter, or all"
// @Param search query string false "Case-insensitive match on name, email, destination or reference"
// @Param sortBy query string false "createdAt | travelDate | totalAmount | customerName | destination"
// @Param order query string false "asc | desc"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var q reqdto.SearchBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	page, err := h.q.Search(c.Request.Context(), q.ToParams())
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}

// @Summary Booking statistics
// @Description Aggregate counts and revenue, optionally limited to a creation date range
// @Tags bookings
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD or RFC 3339)"
// @Param to query string false "End date (YYYY-MM-DD or RFC 3339)"
// @Success 200 {object} resdto.StatsResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings/stats [get]
func (h *BookingHandler) Stats(c *gin.Context) {
	var q reqdto.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	r, err := q.ToDateRange(h.loc)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
		return
	}

	stats, err := h.q.Stats(c.Request.Context(), r)
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingStats(stats))
}

// @Summary Get booking
// @Description Get a booking by ID
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking by reference
// @Description Get a booking by its WW-YYYYMMDD-NNNN reference
// @Tags bookings
// @Produce json
// @Param reference path string true "Booking reference"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/reference/{reference} [get]
func (h *BookingHandler) GetByReference(c *gin.Context) {
	view, err := h.q.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Update booking status
// @Description Change payment and/or booking status
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateStatusRequest true "Status update"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/status [put]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.UpdateStatus(c.Request.Context(), id, req.ToCommand())
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancel a booking more than 24 hours before travel
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}
	view, err := h.cmds.CancelBooking(c.Request.Context(), id)
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Pay booking
// @Description Simulate a successful payment and confirm the booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/payment [post]
func (h *BookingHandler) Pay(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}
	result, err := h.cmds.PayBooking(c.Request.Context(), id)
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentResult(result))
}

// @Summary List destinations
// @Description Destinations with a catalog unit price
// @Tags bookings
// @Produce json
// @Success 200 {array} resdto.DestinationResponse
// @Router /destinations [get]
func (h *BookingHandler) Destinations(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromDestinations(h.q.Destinations(c.Request.Context())))
}

func (h *BookingHandler) bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *BookingHandler) abortWithBookingError(c *gin.Context, err error) {
	if verr, ok := errs.As[*booking.ValidationError](err); ok {
		httperr.AbortWithValidation(c, err, verr.Violations)
		return
	}

	switch {
	case errs.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.Is(err, commands.ErrCancellationNotAllowed):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Booking cannot be cancelled", nil)
	case errs.Is(err, commands.ErrStatusTransitionNotAllowed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Status transition not allowed", nil)
	case errs.Is(err, commands.ErrPaymentNotAllowed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking cannot be paid in its current state", nil)
	case errs.Is(err, commands.ErrReferenceCollisionExhausted):
		httperr.AbortWithError(c, http.StatusConflict, err, "Could not allocate a booking reference, please retry", nil)
	case errs.Is(err, queries.ErrInvalidSearchParams):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
