package shared

import (
	"context"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

//go:generate mockgen -source=notifier.go -destination=../../../tests/mock/shared/notifier.go -package=sharedmock

// Notifier delivers a single message. Implementations own their timeouts and retries.
type Notifier interface {
	Send(ctx context.Context, kind booking.NotificationKind, payload NotificationPayload) (Receipt, error)
}

type Receipt struct {
	ID string
}

// NotificationPayload is everything a template needs; recipients are resolved by the notifier.
type NotificationPayload struct {
	BookingID       uuid.UUID `json:"bookingId"`
	Reference       string    `json:"reference"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	CustomerPhone   string    `json:"customerPhone"`
	Destination     string    `json:"destination"`
	TravelDate      time.Time `json:"travelDate"`
	TravelerCount   int       `json:"travelerCount"`
	TotalAmount     float64   `json:"totalAmount"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	BookingStatus   string    `json:"bookingStatus"`
	PaymentStatus   string    `json:"paymentStatus"`
	PaymentURL      string    `json:"paymentUrl"`
	// DaysUntilTravel is only meaningful for reminders.
	DaysUntilTravel int `json:"daysUntilTravel,omitempty"`
}

func NewNotificationPayload(b *booking.Booking, clientURL string, now time.Time) NotificationPayload {
	return NotificationPayload{
		BookingID:       b.ID(),
		Reference:       b.Reference(),
		CustomerName:    b.Customer().Name(),
		CustomerEmail:   b.Customer().Email(),
		CustomerPhone:   b.Customer().Phone(),
		Destination:     b.Trip().Destination(),
		TravelDate:      b.Trip().TravelDate(),
		TravelerCount:   b.Trip().TravelerCount(),
		TotalAmount:     b.TotalAmount().Amount(),
		SpecialRequests: b.SpecialRequests(),
		BookingStatus:   b.BookingStatus().String(),
		PaymentStatus:   b.PaymentStatus().String(),
		PaymentURL:      b.PaymentURL(clientURL),
		DaysUntilTravel: clock.DaysUntil(now, b.Trip().TravelDate()),
	}
}
