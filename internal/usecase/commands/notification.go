package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// NotificationDispatcherImpl delivers notifications at most once per tracked kind.
// Flags are re-read before every send and flipped with a single-column update afterwards;
// a failed send is logged and leaves its flag false for a later attempt.
type NotificationDispatcherImpl struct {
	uow       shared.UnitOfWork
	notifier  shared.Notifier
	clock     clock.Clock
	clientURL string
	timeout   time.Duration

	wg sync.WaitGroup
}

func NewNotificationDispatcher(uow shared.UnitOfWork, notifier shared.Notifier, clk clock.Clock, cfg config.Config) *NotificationDispatcherImpl {
	return &NotificationDispatcherImpl{
		uow:       uow,
		notifier:  notifier,
		clock:     clk,
		clientURL: cfg.App.ClientURL,
		timeout:   cfg.Notifier.Timeout,
	}
}

// Dispatch detaches from the caller's cancellation so a finished HTTP request does not abort delivery.
func (d *NotificationDispatcherImpl) Dispatch(ctx context.Context, bookingID uuid.UUID, kinds ...booking.NotificationKind) {
	if len(kinds) == 0 {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.Deliver(context.WithoutCancel(ctx), bookingID, kinds...)
	}()
}

// Deliver sends synchronously and returns the number of kinds delivered.
func (d *NotificationDispatcherImpl) Deliver(ctx context.Context, bookingID uuid.UUID, kinds ...booking.NotificationKind) int {
	b, err := d.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		slog.Error("failed to load booking for notification",
			"booking_id", bookingID.String(),
			"error", err.Error())
		return 0
	}

	payload := shared.NewNotificationPayload(b, d.clientURL, d.clock.Now())
	delivered := 0
	for _, kind := range b.Notifications().Pending(kinds...) {
		if d.send(ctx, b.ID(), kind, payload) {
			delivered++
		}
	}
	return delivered
}

func (d *NotificationDispatcherImpl) send(ctx context.Context, id uuid.UUID, kind booking.NotificationKind, payload shared.NotificationPayload) bool {
	sendCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	receipt, err := d.notifier.Send(sendCtx, kind, payload)
	if err != nil {
		slog.Warn("notification failed",
			"booking_id", id.String(),
			"reference", payload.Reference,
			"kind", kind.String(),
			"error", err.Error())
		return false
	}

	if kind.Tracked() {
		err = d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Bookings().MarkNotificationSent(ctx, tx.DB(), id, kind)
		})
		if err != nil {
			slog.Error("notification sent but flag not recorded",
				"booking_id", id.String(),
				"kind", kind.String(),
				"error", err.Error())
		}
	}

	slog.Info("notification sent",
		"booking_id", id.String(),
		"reference", payload.Reference,
		"kind", kind.String(),
		"receipt", receipt.ID)
	return true
}

// Drain blocks until in-flight deliveries finish or ctx is done.
func (d *NotificationDispatcherImpl) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
