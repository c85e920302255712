package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/pgquery"
	"travel-booking/internal/infra/readstore"
	"travel-booking/internal/infra/repository"
	"travel-booking/internal/infra/repository/converter"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeLockNotAvailable     = "55P03"

	maxTxRetries = 3
	retryBase    = 100 * time.Millisecond

	// a booking row held longer than this by another writer fails the statement instead of queueing
	lockTimeout = "5s"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// PostgresUoW runs booking writes in a transaction and retries on serialization
// failures, deadlocks and lock timeouts.
type PostgresUoW struct {
	pool *pgxpool.Pool
	q    *pgquery.Queries
}

func NewPostgresUoW(pool *pgxpool.Pool, q *pgquery.Queries) shared.UnitOfWork {
	return &PostgresUoW{
		pool: pool,
		q:    q,
	}
}

// Within uses ReadCommitted; write paths lock their row with SELECT ... FOR UPDATE.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	var err error
	for attempt := range maxTxRetries + 1 {
		if err = u.attempt(ctx, opts, fn); err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		if attempt == maxTxRetries {
			break
		}

		wait := backoff(attempt)
		slog.Warn("retrying booking transaction",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	slog.Error("booking transaction failed after retries", "attempts", maxTxRetries+1, "error", err.Error())
	return errs.Mark(err, errMaxRetriesExceeded)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, dbtx: u.pool}
}

// attempt runs fn in a single transaction; the rollback runs here so retries never stack defers.
func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rbErr.Error())
		}
	}()

	if _, err = pgxTx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		return err
	}
	if err = fn(ctx, &pgTx{dbtx: pgxTx, uow: u}); err != nil {
		return err
	}
	if err = pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// backoff doubles per attempt with up to 20% jitter.
func backoff(attempt int) time.Duration {
	wait := retryBase << attempt
	return wait + rand.N(wait/5+1)
}

func isRetryable(err error) bool {
	pgErr, ok := errs.As[*pgconn.PgError](err)
	if !ok {
		return false
	}
	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected, pgErrCodeLockNotAvailable:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx pgquery.DBTX
	uow  *PostgresUoW

	bookingRepo  shared.BookingRepository
	commandReads shared.CommandReads
}

func (t *pgTx) DB() pgquery.DBTX {
	return t.dbtx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.uow.q)
	}
	return t.bookingRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			uow:  t.uow,
			dbtx: t.dbtx,
		}
	}
	return t.commandReads
}

type commandReads struct {
	uow  *PostgresUoW
	dbtx pgquery.DBTX

	bookingStore *readstore.BookingReadStore
}

func (r *commandReads) store() *readstore.BookingReadStore {
	if r.bookingStore == nil {
		r.bookingStore = readstore.NewBookingReadStore(r.uow.q, r.dbtx)
	}
	return r.bookingStore
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	v, err := r.store().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.BookingViewToDomain(v), nil
}

func (r *commandReads) BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	v, err := r.store().FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.BookingViewToDomain(v), nil
}

func (r *commandReads) ReminderCandidates(ctx context.Context, after, before time.Time, limit int) ([]*booking.Booking, error) {
	views, err := r.store().FindReminderCandidates(ctx, after, before, limit)
	if err != nil {
		return nil, err
	}
	result := make([]*booking.Booking, len(views))
	for i, v := range views {
		result[i] = converter.BookingViewToDomain(v)
	}
	return result, nil
}
