package pgquery

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Booking struct {
	ID                   uuid.UUID
	Reference            string
	CustomerName         string
	CustomerEmail        string
	CustomerPhone        string
	Destination          string
	TravelDate           pgtype.Timestamptz
	TravelerCount        int32
	TotalAmount          pgtype.Numeric
	SpecialRequests      pgtype.Text
	BookingStatus        string
	PaymentStatus        string
	ConfirmationSent     bool
	TeamNotificationSent bool
	ReminderSent         bool
	Source               string
	IpAddress            pgtype.Text
	UserAgent            pgtype.Text
	TransactionID        pgtype.Text
	CreatedAt            pgtype.Timestamptz
	UpdatedAt            pgtype.Timestamptz
}

type BookingStatsRow struct {
	TotalBookings   int64
	TotalRevenue    pgtype.Numeric
	AvgBookingValue pgtype.Numeric
	TotalTravelers  int64
}

type StatusCountRow struct {
	Status string
	Count  int64
}
