package repository

import (
	"context"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra"
	"travel-booking/internal/infra/pgquery"
	"travel-booking/internal/infra/repository/converter"
	"travel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/repository/booking.go -package=repositorymock

type BookingWriteQueries interface {
	InsertBooking(ctx context.Context, db pgquery.DBTX, arg pgquery.InsertBookingParams) (pgquery.Booking, error)
	UpdateBookingStatus(ctx context.Context, db pgquery.DBTX, arg pgquery.UpdateBookingStatusParams) (int64, error)
	MarkConfirmationSent(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (int64, error)
	MarkTeamNotificationSent(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (int64, error)
	MarkReminderSent(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
}

func NewBookingRepository(queries BookingWriteQueries) *BookingRepository {
	return &BookingRepository{
		queries: queries,
	}
}

func (r *BookingRepository) Create(ctx context.Context, tx pgquery.DBTX, b *booking.Booking) (uuid.UUID, error) {
	params, err := converter.BookingToInsertParams(b)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to convert booking")
	}
	row, err := r.queries.InsertBooking(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return row.ID, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx pgquery.DBTX, b *booking.Booking) error {
	n, err := r.queries.UpdateBookingStatus(ctx, tx, converter.BookingToUpdateStatusParams(b))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// MarkNotificationSent flips the flag for a tracked kind; untracked kinds are a no-op.
func (r *BookingRepository) MarkNotificationSent(ctx context.Context, tx pgquery.DBTX, id uuid.UUID, kind booking.NotificationKind) error {
	var (
		n   int64
		err error
	)
	switch kind {
	case booking.NotificationConfirmation:
		n, err = r.queries.MarkConfirmationSent(ctx, tx, id)
	case booking.NotificationTeamAlert:
		n, err = r.queries.MarkTeamNotificationSent(ctx, tx, id)
	case booking.NotificationReminder:
		n, err = r.queries.MarkReminderSent(ctx, tx, id)
	default:
		return nil
	}
	if err != nil {
		return infra.WrapRepoErr("failed to mark "+kind.String()+" sent", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
