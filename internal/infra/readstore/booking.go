package readstore

import (
	"context"
	"strings"
	"time"

	"travel-booking/internal/infra"
	"travel-booking/internal/infra/pgquery"
	"travel-booking/internal/infra/repository/converter"
	"travel-booking/internal/pkg/pgconv"
	"travel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/readstore/booking.go -package=readstoremock

type BookingViewQueries interface {
	GetBookingByID(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.Booking, error)
	GetBookingByIDForUpdate(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.Booking, error)
	GetBookingByReference(ctx context.Context, db pgquery.DBTX, reference string) (pgquery.Booking, error)
	SearchBookings(ctx context.Context, db pgquery.DBTX, arg pgquery.SearchBookingsParams) ([]pgquery.Booking, error)
	CountBookings(ctx context.Context, db pgquery.DBTX, arg pgquery.CountBookingsParams) (int64, error)
	GetBookingStats(ctx context.Context, db pgquery.DBTX, arg pgquery.CreatedRangeParams) (pgquery.BookingStatsRow, error)
	CountByBookingStatus(ctx context.Context, db pgquery.DBTX, arg pgquery.CreatedRangeParams) ([]pgquery.StatusCountRow, error)
	CountByPaymentStatus(ctx context.Context, db pgquery.DBTX, arg pgquery.CreatedRangeParams) ([]pgquery.StatusCountRow, error)
	ListReminderCandidates(ctx context.Context, db pgquery.DBTX, arg pgquery.ListReminderCandidatesParams) ([]pgquery.Booking, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      pgquery.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db pgquery.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking by id", err)
	}
	return toView(row)
}

// FindByIDForUpdate must run on a transaction handle; the row lock lasts until commit.
func (r *BookingReadStore) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingByIDForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return toView(row)
}

func (r *BookingReadStore) FindByReference(ctx context.Context, reference string) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingByReference(ctx, r.db, reference)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking by reference", err)
	}
	return toView(row)
}

func (r *BookingReadStore) Search(ctx context.Context, c queries.SearchCriteria) ([]*queries.BookingView, int64, error) {
	query := pgconv.OptionalStringToPgtype(escapeLike(c.Query))
	paymentStatus := pgtype.Text{}
	if c.PaymentStatus != nil {
		paymentStatus = pgconv.StringToPgtype(c.PaymentStatus.String())
	}
	bookingStatus := pgtype.Text{}
	if c.BookingStatus != nil {
		bookingStatus = pgconv.StringToPgtype(c.BookingStatus.String())
	}

	total, err := r.queries.CountBookings(ctx, r.db, pgquery.CountBookingsParams{
		Query:         query,
		PaymentStatus: paymentStatus,
		BookingStatus: bookingStatus,
	})
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}
	if total == 0 || int64(c.Offset) >= total {
		return []*queries.BookingView{}, total, nil
	}

	rows, err := r.queries.SearchBookings(ctx, r.db, pgquery.SearchBookingsParams{
		Query:         query,
		PaymentStatus: paymentStatus,
		BookingStatus: bookingStatus,
		SortBy:        c.SortBy,
		Desc:          c.Desc,
		Limit:         int32(c.Limit),
		Offset:        int32(c.Offset),
	})
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to search bookings", err)
	}

	items, err := toViews(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *BookingReadStore) Stats(ctx context.Context, rng queries.DateRange) (*queries.BookingStats, error) {
	params := pgquery.CreatedRangeParams{
		From: pgconv.TimePtrToPgtype(rng.From),
		To:   pgconv.TimePtrToPgtype(rng.To),
	}

	row, err := r.queries.GetBookingStats(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get booking stats", err)
	}
	revenue, err := pgconv.Float64FromNumeric(row.TotalRevenue)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid total revenue", err)
	}
	avg, err := pgconv.Float64FromNumeric(row.AvgBookingValue)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid average booking value", err)
	}

	byBooking, err := r.queries.CountByBookingStatus(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count bookings by status", err)
	}
	byPayment, err := r.queries.CountByPaymentStatus(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count bookings by payment status", err)
	}

	return &queries.BookingStats{
		TotalBookings:   row.TotalBookings,
		TotalRevenue:    revenue,
		AvgBookingValue: avg,
		TotalTravelers:  row.TotalTravelers,
		ByBookingStatus: toCountMap(byBooking),
		ByPaymentStatus: toCountMap(byPayment),
	}, nil
}

// FindReminderCandidates lists unreminded, live bookings travelling in (after, before].
func (r *BookingReadStore) FindReminderCandidates(ctx context.Context, after, before time.Time, limit int) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListReminderCandidates(ctx, r.db, pgquery.ListReminderCandidatesParams{
		After:  after,
		Before: before,
		Limit:  int32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reminder candidates", err)
	}
	return toViews(rows)
}

func toView(row pgquery.Booking) (*queries.BookingView, error) {
	v, err := converter.BookingRowToView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid booking row", err)
	}
	return v, nil
}

func toViews(rows []pgquery.Booking) ([]*queries.BookingView, error) {
	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		v, err := toView(row)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

func toCountMap(rows []pgquery.StatusCountRow) map[string]int64 {
	m := make(map[string]int64, len(rows))
	for _, row := range rows {
		m[row.Status] = row.Count
	}
	return m
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
