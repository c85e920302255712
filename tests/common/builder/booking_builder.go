//go:build unit || e2e

package builder

import (
	"fmt"
	"time"

	"travel-booking/internal/domain/booking"
	reqdto "travel-booking/internal/handler/dto/request"
	"travel-booking/internal/infra/pgquery"
	"travel-booking/internal/pkg/pgconv"
	"travel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingBuilder struct {
	ID              uuid.UUID
	Reference       string
	Name            string
	Email           string
	Phone           string
	Destination     string
	TravelDate      time.Time
	TravelerCount   int
	TotalAmount     float64
	SpecialRequests string
	BookingStatus   booking.BookingStatus
	PaymentStatus   booking.PaymentStatus
	Notifications   booking.NotificationState
	Metadata        booking.Metadata
	TransactionID   *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	return &BookingBuilder{
		ID:            uuid.New(),
		Reference:     "WW-" + now.Format("20060102") + "-4821",
		Name:          "Asha Verma",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		Destination:   "Agra",
		TravelDate:    now.AddDate(0, 0, 30),
		TravelerCount: 2,
		TotalAmount:   24000,
		BookingStatus: booking.StatusPending,
		PaymentStatus: booking.PaymentPending,
		Metadata:      booking.Metadata{Source: booking.DefaultSource, IPAddress: "203.0.113.7", UserAgent: "test-agent"},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.ReconstructBooking(booking.ReconstructParams{
		ID:              b.ID,
		Reference:       b.Reference,
		CustomerName:    b.Name,
		CustomerEmail:   b.Email,
		CustomerPhone:   b.Phone,
		Destination:     b.Destination,
		TravelDate:      b.TravelDate,
		TravelerCount:   b.TravelerCount,
		TotalAmount:     b.TotalAmount,
		SpecialRequests: b.SpecialRequests,
		BookingStatus:   b.BookingStatus,
		PaymentStatus:   b.PaymentStatus,
		Notifications:   b.Notifications,
		Metadata:        b.Metadata,
		TransactionID:   b.TransactionID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	})
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return queries.NewBookingView(b.BuildDomain())
}

func (b *BookingBuilder) BuildInfra() pgquery.Booking {
	return pgquery.Booking{
		ID:                   b.ID,
		Reference:            b.Reference,
		CustomerName:         b.Name,
		CustomerEmail:        b.Email,
		CustomerPhone:        b.Phone,
		Destination:          b.Destination,
		TravelDate:           pgtype.Timestamptz{Time: b.TravelDate, Valid: true},
		TravelerCount:        int32(b.TravelerCount),
		TotalAmount:          mustNumeric(b.TotalAmount),
		SpecialRequests:      pgconv.OptionalStringToPgtype(b.SpecialRequests),
		BookingStatus:        b.BookingStatus.String(),
		PaymentStatus:        b.PaymentStatus.String(),
		ConfirmationSent:     b.Notifications.ConfirmationSent,
		TeamNotificationSent: b.Notifications.TeamNotificationSent,
		ReminderSent:         b.Notifications.ReminderSent,
		Source:               b.Metadata.Source,
		IpAddress:            pgconv.OptionalStringToPgtype(b.Metadata.IPAddress),
		UserAgent:            pgconv.OptionalStringToPgtype(b.Metadata.UserAgent),
		TransactionID:        pgconv.StringPtrToPgtype(b.TransactionID),
		CreatedAt:            pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:            pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	travelers := float64(b.TravelerCount)
	amount := b.TotalAmount
	req := reqdto.CreateBookingRequest{
		Name:          b.Name,
		Email:         b.Email,
		Phone:         b.Phone,
		Destination:   b.Destination,
		TravelDate:    b.TravelDate.Format("2006-01-02"),
		TravelerCount: &travelers,
		TotalAmount:   &amount,
	}
	if b.SpecialRequests != "" {
		sr := b.SpecialRequests
		req.SpecialRequests = &sr
	}
	return req
}

func (b *BookingBuilder) BuildSubmission() booking.Submission {
	req := b.BuildCreateRequestDTO()
	return req.ToSubmission()
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithReference(ref string) *BookingBuilder {
	b.Reference = ref
	return b
}

func (b *BookingBuilder) WithSeq(n int) *BookingBuilder {
	b.Reference = fmt.Sprintf("WW-%s-%04d", b.CreatedAt.Format("20060102"), 1000+n)
	return b
}

func (b *BookingBuilder) WithDestination(destination string, travelers int) *BookingBuilder {
	b.Destination = destination
	b.TravelerCount = travelers
	return b
}

func (b *BookingBuilder) WithTravelDate(t time.Time) *BookingBuilder {
	b.TravelDate = t
	return b
}

func (b *BookingBuilder) WithStatuses(status booking.BookingStatus, payment booking.PaymentStatus) *BookingBuilder {
	b.BookingStatus = status
	b.PaymentStatus = payment
	return b
}

func (b *BookingBuilder) WithNotifications(n booking.NotificationState) *BookingBuilder {
	b.Notifications = n
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	return b.WithStatuses(booking.StatusCancelled, booking.PaymentCancelled)
}

func (b *BookingBuilder) AsPaid() *BookingBuilder {
	txn := "TXN-0123456789ABCDEF"
	b.TransactionID = &txn
	return b.WithStatuses(booking.StatusConfirmed, booking.PaymentPaid)
}

func mustNumeric(f float64) pgtype.Numeric {
	n, err := pgconv.NumericFromFloat64(f)
	if err != nil {
		panic(err)
	}
	return n
}
