//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type BookingFixture struct {
	Reference     string
	Name          string
	Email         string
	Destination   string
	TravelDate    time.Time
	TravelerCount int
	TotalAmount   float64
	BookingStatus string
	PaymentStatus string
	CreatedAt     time.Time
}

// InsertBooking writes a row directly, bypassing the API, and returns its id.
func InsertBooking(t *testing.T, db DBLike, f BookingFixture) uuid.UUID {
	t.Helper()

	if f.BookingStatus == "" {
		f.BookingStatus = "pending"
	}
	if f.PaymentStatus == "" {
		f.PaymentStatus = "pending"
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO bookings (
			id, reference, customer_name, customer_email, customer_phone, destination,
			travel_date, traveler_count, total_amount, booking_status, payment_status,
			source, created_at, updated_at
		) VALUES ($1, $2, $3, $4, '9876543210', $5, $6, $7, $8, $9, $10, 'website', $11, $11)`,
		id, f.Reference, f.Name, f.Email, f.Destination, f.TravelDate, f.TravelerCount,
		f.TotalAmount, f.BookingStatus, f.PaymentStatus, f.CreatedAt)
	require.NoError(t, err)

	return id
}

type NotificationFlags struct {
	Confirmation bool
	Team         bool
	Reminder     bool
}

// ReadNotificationFlags reads the delivery flags straight from the table. It does not fail the
// test itself so it can be polled from require.Eventually.
func ReadNotificationFlags(ctx context.Context, db DBLike, id uuid.UUID) (NotificationFlags, error) {
	var f NotificationFlags
	err := db.QueryRow(ctx,
		`SELECT confirmation_sent, team_notification_sent, reminder_sent FROM bookings WHERE id = $1`, id,
	).Scan(&f.Confirmation, &f.Team, &f.Reminder)
	return f, err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
