package booking

import (
	"strings"
	"time"

	"travel-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

const DefaultCancellationWindow = 24 * time.Hour

type Services struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
	Policy          TransitionPolicy
}

type Booking struct {
	id              uuid.UUID
	reference       string
	customer        Customer
	trip            Trip
	totalAmount     Money
	specialRequests string
	bookingStatus   BookingStatus
	paymentStatus   PaymentStatus
	notifications   NotificationState
	metadata        Metadata
	transactionID   *string
	createdAt       time.Time
	updatedAt       time.Time
}

// NewBooking builds a pending booking from a validated submission. The reference is
// supplied by the caller so that it can be regenerated on a uniqueness conflict.
func NewBooking(services *Services, v *ValidatedSubmission, reference string, meta Metadata) (*Booking, error) {
	reference = NormalizeReference(reference)
	if !IsValidReference(reference) {
		return nil, ErrInvalidReference
	}

	total, err := ResolveTotal(services.PriceCalculator, v)
	if err != nil {
		return nil, err
	}

	if v.Source != "" {
		meta.Source = v.Source
	}

	now := services.Clock.Now()
	return &Booking{
		id:              uuid.New(),
		reference:       reference,
		customer:        v.Customer,
		trip:            v.Trip,
		totalAmount:     total,
		specialRequests: v.SpecialRequests,
		bookingStatus:   StatusPending,
		paymentStatus:   PaymentPending,
		metadata:        meta.withDefaults(),
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

type ReconstructParams struct {
	ID              uuid.UUID
	Reference       string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Destination     string
	TravelDate      time.Time
	TravelerCount   int
	TotalAmount     float64
	SpecialRequests string
	BookingStatus   BookingStatus
	PaymentStatus   PaymentStatus
	Notifications   NotificationState
	Metadata        Metadata
	TransactionID   *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func ReconstructBooking(p ReconstructParams) *Booking {
	return &Booking{
		id:              p.ID,
		reference:       p.Reference,
		customer:        Customer{name: p.CustomerName, email: p.CustomerEmail, phone: p.CustomerPhone},
		trip:            Trip{destination: p.Destination, travelDate: p.TravelDate, travelerCount: p.TravelerCount},
		totalAmount:     Money{amount: p.TotalAmount},
		specialRequests: p.SpecialRequests,
		bookingStatus:   p.BookingStatus,
		paymentStatus:   p.PaymentStatus,
		notifications:   p.Notifications,
		metadata:        p.Metadata,
		transactionID:   p.TransactionID,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}
}

// CanBeCancelled requires more than window left before travel and a booking that has not
// already been cancelled or refunded.
func (b *Booking) CanBeCancelled(now time.Time, window time.Duration) bool {
	return b.trip.travelDate.Sub(now) > window &&
		b.bookingStatus != StatusCancelled &&
		b.paymentStatus != PaymentRefunded &&
		b.paymentStatus != PaymentCancelled
}

func (b *Booking) Cancel(now time.Time, window time.Duration) error {
	if !b.CanBeCancelled(now, window) {
		return ErrCancellationNotAllowed
	}
	b.bookingStatus = StatusCancelled
	b.paymentStatus = PaymentCancelled
	b.updatedAt = now
	return nil
}

// ChangeStatus applies whichever statuses are non-nil. Nothing changes unless both pass the policy.
func (b *Booking) ChangeStatus(policy TransitionPolicy, payment *PaymentStatus, status *BookingStatus, now time.Time) error {
	if payment == nil && status == nil {
		return ErrEmptyStatusUpdate
	}
	if payment != nil {
		if !payment.IsValid() {
			return ErrInvalidPaymentStatus
		}
		if !policy.CanChangePaymentStatus(b.paymentStatus, *payment) {
			return ErrStatusTransitionNotAllowed
		}
	}
	if status != nil {
		if !status.IsValid() {
			return ErrInvalidBookingStatus
		}
		if !policy.CanChangeBookingStatus(b.bookingStatus, *status) {
			return ErrStatusTransitionNotAllowed
		}
	}

	if payment != nil {
		b.paymentStatus = *payment
	}
	if status != nil {
		b.bookingStatus = *status
	}
	b.updatedAt = now
	return nil
}

func (b *Booking) CanBePaid() bool {
	return b.bookingStatus == StatusPending &&
		(b.paymentStatus == PaymentPending || b.paymentStatus == PaymentFailed)
}

// MarkPaid records a successful simulated payment and confirms the booking.
func (b *Booking) MarkPaid(transactionID string, now time.Time) error {
	if !b.CanBePaid() {
		return ErrPaymentNotAllowed
	}
	b.paymentStatus = PaymentPaid
	b.bookingStatus = StatusConfirmed
	b.transactionID = &transactionID
	b.updatedAt = now
	return nil
}

func (b *Booking) PaymentURL(clientURL string) string {
	return PaymentURL(clientURL, b.reference)
}

func PaymentURL(clientURL, reference string) string {
	return strings.TrimRight(clientURL, "/") + "/payment/" + reference
}

func (b *Booking) ID() uuid.UUID                    { return b.id }
func (b *Booking) Reference() string                { return b.reference }
func (b *Booking) Customer() Customer               { return b.customer }
func (b *Booking) Trip() Trip                       { return b.trip }
func (b *Booking) TotalAmount() Money               { return b.totalAmount }
func (b *Booking) SpecialRequests() string          { return b.specialRequests }
func (b *Booking) BookingStatus() BookingStatus     { return b.bookingStatus }
func (b *Booking) PaymentStatus() PaymentStatus     { return b.paymentStatus }
func (b *Booking) Notifications() NotificationState { return b.notifications }
func (b *Booking) Metadata() Metadata               { return b.metadata }
func (b *Booking) TransactionID() *string           { return b.transactionID }
func (b *Booking) CreatedAt() time.Time             { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time             { return b.updatedAt }
