package shared

import (
	"context"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/pgquery"

	"github.com/google/uuid"
)

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow.go -package=sharedmock

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Reads() CommandReads
	DB() pgquery.DBTX
}

type CommandReads interface {
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// BookingByIDForUpdate locks the row until the surrounding transaction ends.
	BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ReminderCandidates(ctx context.Context, after, before time.Time, limit int) ([]*booking.Booking, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx pgquery.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx pgquery.DBTX, b *booking.Booking) error
	MarkNotificationSent(ctx context.Context, tx pgquery.DBTX, id uuid.UUID, kind booking.NotificationKind) error
}
