package pgquery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, reference, customer_name, customer_email, customer_phone, destination,
	travel_date, traveler_count, total_amount, special_requests, booking_status, payment_status,
	confirmation_sent, team_notification_sent, reminder_sent, source, ip_address, user_agent,
	transaction_id, created_at, updated_at`

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.Destination,
		&b.TravelDate,
		&b.TravelerCount,
		&b.TotalAmount,
		&b.SpecialRequests,
		&b.BookingStatus,
		&b.PaymentStatus,
		&b.ConfirmationSent,
		&b.TeamNotificationSent,
		&b.ReminderSent,
		&b.Source,
		&b.IpAddress,
		&b.UserAgent,
		&b.TransactionID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

func collectBookings(rows pgx.Rows) ([]Booking, error) {
	defer rows.Close()
	var items []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertBooking = `-- name: InsertBooking :one
INSERT INTO bookings (
	id, reference, customer_name, customer_email, customer_phone, destination,
	travel_date, traveler_count, total_amount, special_requests, booking_status, payment_status,
	source, ip_address, user_agent, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
)
RETURNING ` + bookingColumns

type InsertBookingParams struct {
	ID              uuid.UUID
	Reference       string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Destination     string
	TravelDate      pgtype.Timestamptz
	TravelerCount   int32
	TotalAmount     pgtype.Numeric
	SpecialRequests pgtype.Text
	BookingStatus   string
	PaymentStatus   string
	Source          string
	IpAddress       pgtype.Text
	UserAgent       pgtype.Text
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

func (q *Queries) InsertBooking(ctx context.Context, db DBTX, arg InsertBookingParams) (Booking, error) {
	row := db.QueryRow(ctx, insertBooking,
		arg.ID,
		arg.Reference,
		arg.CustomerName,
		arg.CustomerEmail,
		arg.CustomerPhone,
		arg.Destination,
		arg.TravelDate,
		arg.TravelerCount,
		arg.TotalAmount,
		arg.SpecialRequests,
		arg.BookingStatus,
		arg.PaymentStatus,
		arg.Source,
		arg.IpAddress,
		arg.UserAgent,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanBooking(row)
}

const getBookingByID = `-- name: GetBookingByID :one
SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

func (q *Queries) GetBookingByID(ctx context.Context, db DBTX, id uuid.UUID) (Booking, error) {
	return scanBooking(db.QueryRow(ctx, getBookingByID, id))
}

const getBookingByIDForUpdate = `-- name: GetBookingByIDForUpdate :one
SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

func (q *Queries) GetBookingByIDForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Booking, error) {
	return scanBooking(db.QueryRow(ctx, getBookingByIDForUpdate, id))
}

const getBookingByReference = `-- name: GetBookingByReference :one
SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1`

func (q *Queries) GetBookingByReference(ctx context.Context, db DBTX, reference string) (Booking, error) {
	return scanBooking(db.QueryRow(ctx, getBookingByReference, reference))
}

const updateBookingStatus = `-- name: UpdateBookingStatus :execrows
UPDATE bookings
SET booking_status = $2,
	payment_status = $3,
	transaction_id = COALESCE($4, transaction_id),
	updated_at = $5
WHERE id = $1`

type UpdateBookingStatusParams struct {
	ID            uuid.UUID
	BookingStatus string
	PaymentStatus string
	TransactionID pgtype.Text
	UpdatedAt     pgtype.Timestamptz
}

func (q *Queries) UpdateBookingStatus(ctx context.Context, db DBTX, arg UpdateBookingStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, updateBookingStatus,
		arg.ID,
		arg.BookingStatus,
		arg.PaymentStatus,
		arg.TransactionID,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// The flag updates touch a single column so they never overwrite a concurrent status change.

const markConfirmationSent = `-- name: MarkConfirmationSent :execrows
UPDATE bookings SET confirmation_sent = TRUE WHERE id = $1`

func (q *Queries) MarkConfirmationSent(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	return execRows(ctx, db, markConfirmationSent, id)
}

const markTeamNotificationSent = `-- name: MarkTeamNotificationSent :execrows
UPDATE bookings SET team_notification_sent = TRUE WHERE id = $1`

func (q *Queries) MarkTeamNotificationSent(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	return execRows(ctx, db, markTeamNotificationSent, id)
}

const markReminderSent = `-- name: MarkReminderSent :execrows
UPDATE bookings SET reminder_sent = TRUE WHERE id = $1`

func (q *Queries) MarkReminderSent(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	return execRows(ctx, db, markReminderSent, id)
}

func execRows(ctx context.Context, db DBTX, sql string, args ...interface{}) (int64, error) {
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// bookingFilter is shared by SearchBookings and CountBookings. NULL parameters disable a predicate.
const bookingFilter = `
WHERE ($1::text IS NULL OR customer_name ILIKE '%' || $1 || '%' ESCAPE '\'
		OR destination ILIKE '%' || $1 || '%' ESCAPE '\'
		OR reference ILIKE '%' || $1 || '%' ESCAPE '\'
		OR customer_email ILIKE '%' || $1 || '%' ESCAPE '\')
	AND ($2::text IS NULL OR payment_status = $2)
	AND ($3::text IS NULL OR booking_status = $3)`

// sortColumns maps API sort fields onto columns. Anything not listed falls back to created_at.
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"travelDate":    "travel_date",
	"totalAmount":   "total_amount",
	"travelerCount": "traveler_count",
	"name":          "customer_name",
	"destination":   "destination",
	"reference":     "reference",
	"bookingStatus": "booking_status",
	"paymentStatus": "payment_status",
}

func SortColumn(field string) (string, bool) {
	col, ok := sortColumns[field]
	return col, ok
}

type SearchBookingsParams struct {
	// Query must already have LIKE wildcards escaped.
	Query         pgtype.Text
	PaymentStatus pgtype.Text
	BookingStatus pgtype.Text
	SortBy        string
	Desc          bool
	Limit         int32
	Offset        int32
}

func (q *Queries) SearchBookings(ctx context.Context, db DBTX, arg SearchBookingsParams) ([]Booking, error) {
	col, ok := SortColumn(arg.SortBy)
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if arg.Desc {
		dir = "DESC"
	}
	sql := fmt.Sprintf(`-- name: SearchBookings :many
SELECT %s FROM bookings %s
ORDER BY %s %s, id %s
LIMIT $4 OFFSET $5`, bookingColumns, bookingFilter, col, dir, dir)

	rows, err := db.Query(ctx, sql, arg.Query, arg.PaymentStatus, arg.BookingStatus, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

type CountBookingsParams struct {
	Query         pgtype.Text
	PaymentStatus pgtype.Text
	BookingStatus pgtype.Text
}

const countBookings = `-- name: CountBookings :one
SELECT COUNT(*) FROM bookings` + bookingFilter

func (q *Queries) CountBookings(ctx context.Context, db DBTX, arg CountBookingsParams) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, countBookings, arg.Query, arg.PaymentStatus, arg.BookingStatus).Scan(&n)
	return n, err
}

type CreatedRangeParams struct {
	From pgtype.Timestamptz
	To   pgtype.Timestamptz
}

const createdRangeFilter = `
WHERE ($1::timestamptz IS NULL OR created_at >= $1)
	AND ($2::timestamptz IS NULL OR created_at <= $2)`

const getBookingStats = `-- name: GetBookingStats :one
SELECT
	COUNT(*)::bigint,
	COALESCE(SUM(total_amount), 0)::numeric,
	COALESCE(AVG(total_amount), 0)::numeric,
	COALESCE(SUM(traveler_count), 0)::bigint
FROM bookings` + createdRangeFilter

func (q *Queries) GetBookingStats(ctx context.Context, db DBTX, arg CreatedRangeParams) (BookingStatsRow, error) {
	var s BookingStatsRow
	err := db.QueryRow(ctx, getBookingStats, arg.From, arg.To).Scan(
		&s.TotalBookings,
		&s.TotalRevenue,
		&s.AvgBookingValue,
		&s.TotalTravelers,
	)
	return s, err
}

const countByBookingStatus = `-- name: CountByBookingStatus :many
SELECT booking_status, COUNT(*) FROM bookings` + createdRangeFilter + `
GROUP BY booking_status ORDER BY booking_status`

func (q *Queries) CountByBookingStatus(ctx context.Context, db DBTX, arg CreatedRangeParams) ([]StatusCountRow, error) {
	return q.statusCounts(ctx, db, countByBookingStatus, arg)
}

const countByPaymentStatus = `-- name: CountByPaymentStatus :many
SELECT payment_status, COUNT(*) FROM bookings` + createdRangeFilter + `
GROUP BY payment_status ORDER BY payment_status`

func (q *Queries) CountByPaymentStatus(ctx context.Context, db DBTX, arg CreatedRangeParams) ([]StatusCountRow, error) {
	return q.statusCounts(ctx, db, countByPaymentStatus, arg)
}

func (q *Queries) statusCounts(ctx context.Context, db DBTX, sql string, arg CreatedRangeParams) ([]StatusCountRow, error) {
	rows, err := db.Query(ctx, sql, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []StatusCountRow
	for rows.Next() {
		var r StatusCountRow
		if err := rows.Scan(&r.Status, &r.Count); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReminderCandidates = `-- name: ListReminderCandidates :many
SELECT ` + bookingColumns + ` FROM bookings
WHERE booking_status IN ('pending', 'confirmed')
	AND reminder_sent = FALSE
	AND travel_date > $1
	AND travel_date <= $2
ORDER BY travel_date, id
LIMIT $3`

type ListReminderCandidatesParams struct {
	After  time.Time
	Before time.Time
	Limit  int32
}

func (q *Queries) ListReminderCandidates(ctx context.Context, db DBTX, arg ListReminderCandidatesParams) ([]Booking, error) {
	rows, err := db.Query(ctx, listReminderCandidates, arg.After, arg.Before, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}
