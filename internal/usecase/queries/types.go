package queries

import (
	"time"

	"travel-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingView is the read model served by every booking endpoint.
type BookingView struct {
	ID                   uuid.UUID `json:"id"`
	Reference            string    `json:"reference"`
	CustomerName         string    `json:"name"`
	CustomerEmail        string    `json:"email"`
	CustomerPhone        string    `json:"phone"`
	Destination          string    `json:"destination"`
	TravelDate           time.Time `json:"travelDate"`
	TravelerCount        int       `json:"travelerCount"`
	TotalAmount          float64   `json:"totalAmount"`
	SpecialRequests      string    `json:"specialRequests,omitempty"`
	BookingStatus        string    `json:"bookingStatus"`
	PaymentStatus        string    `json:"paymentStatus"`
	ConfirmationSent     bool      `json:"confirmationSent"`
	TeamNotificationSent bool      `json:"teamNotificationSent"`
	ReminderSent         bool      `json:"reminderSent"`
	Source               string    `json:"source"`
	IPAddress            string    `json:"ipAddress,omitempty"`
	UserAgent            string    `json:"userAgent,omitempty"`
	TransactionID        *string   `json:"transactionId,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func NewBookingView(b *booking.Booking) *BookingView {
	n := b.Notifications()
	m := b.Metadata()
	return &BookingView{
		ID:                   b.ID(),
		Reference:            b.Reference(),
		CustomerName:         b.Customer().Name(),
		CustomerEmail:        b.Customer().Email(),
		CustomerPhone:        b.Customer().Phone(),
		Destination:          b.Trip().Destination(),
		TravelDate:           b.Trip().TravelDate(),
		TravelerCount:        b.Trip().TravelerCount(),
		TotalAmount:          b.TotalAmount().Amount(),
		SpecialRequests:      b.SpecialRequests(),
		BookingStatus:        b.BookingStatus().String(),
		PaymentStatus:        b.PaymentStatus().String(),
		ConfirmationSent:     n.ConfirmationSent,
		TeamNotificationSent: n.TeamNotificationSent,
		ReminderSent:         n.ReminderSent,
		Source:               m.Source,
		IPAddress:            m.IPAddress,
		UserAgent:            m.UserAgent,
		TransactionID:        b.TransactionID(),
		CreatedAt:            b.CreatedAt(),
		UpdatedAt:            b.UpdatedAt(),
	}
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type BookingPage struct {
	Items      []*BookingView `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

type BookingStats struct {
	TotalBookings   int64            `json:"totalBookings"`
	TotalRevenue    float64          `json:"totalRevenue"`
	AvgBookingValue float64          `json:"avgBookingValue"`
	TotalTravelers  int64            `json:"totalTravelers"`
	ByBookingStatus map[string]int64 `json:"byBookingStatus"`
	ByPaymentStatus map[string]int64 `json:"byPaymentStatus"`
}

// DateRange bounds createdAt; a nil end is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}
