package request

import (
	"strings"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"
)

var ErrInvalidDate = errs.New("invalid date")

// CreateBookingRequest has no binding rules; the domain validator reports every field at once.
type CreateBookingRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Destination     string   `json:"destination"`
	TravelDate      string   `json:"travelDate"`
	TravelerCount   *float64 `json:"travelerCount"`
	TotalAmount     *float64 `json:"totalAmount"`
	SpecialRequests *string  `json:"specialRequests"`
	Source          *string  `json:"source"`
}

func (r *CreateBookingRequest) ToSubmission() booking.Submission {
	return booking.Submission{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Destination:     r.Destination,
		TravelDate:      r.TravelDate,
		TravelerCount:   r.TravelerCount,
		TotalAmount:     r.TotalAmount,
		SpecialRequests: r.SpecialRequests,
		Source:          r.Source,
	}
}

// Metadata carries request context. The source travels with the submission so it is validated.
func (r *CreateBookingRequest) Metadata(ip, userAgent string) booking.Metadata {
	return booking.Metadata{
		IPAddress: ip,
		UserAgent: userAgent,
	}
}

type UpdateStatusRequest struct {
	PaymentStatus *string `json:"paymentStatus"`
	BookingStatus *string `json:"bookingStatus"`
}

func (r *UpdateStatusRequest) ToCommand() commands.StatusUpdate {
	return commands.StatusUpdate{
		PaymentStatus: r.PaymentStatus,
		BookingStatus: r.BookingStatus,
	}
}

type SearchBookingsQuery struct {
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
	Status        string `form:"status"`
	BookingStatus string `form:"bookingStatus"`
	Search        string `form:"search"`
	SortBy        string `form:"sortBy"`
	Order         string `form:"order"`
}

func (q *SearchBookingsQuery) ToParams() queries.SearchParams {
	return queries.SearchParams{
		Query:         q.Search,
		PaymentStatus: q.Status,
		BookingStatus: q.BookingStatus,
		Page:          q.Page,
		Limit:         q.Limit,
		SortBy:        q.SortBy,
		Order:         q.Order,
	}
}

type StatsQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// ToDateRange accepts RFC 3339 or YYYY-MM-DD. A bare date in `to` covers that whole day.
func (q *StatsQuery) ToDateRange(loc *time.Location) (queries.DateRange, error) {
	var r queries.DateRange
	if s := strings.TrimSpace(q.From); s != "" {
		t, _, err := parseDate(s, loc)
		if err != nil {
			return r, errs.Wrapf(ErrInvalidDate, "from %q", s)
		}
		r.From = &t
	}
	if s := strings.TrimSpace(q.To); s != "" {
		t, dateOnly, err := parseDate(s, loc)
		if err != nil {
			return r, errs.Wrapf(ErrInvalidDate, "to %q", s)
		}
		if dateOnly {
			t = clock.StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		r.To = &t
	}
	return r, nil
}

func parseDate(s string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}
