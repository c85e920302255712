//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/shared"
	"travel-booking/tests/common/builder"
	commandsmock "travel-booking/tests/mock/commands"
	sharedmock "travel-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newDispatcher(t *testing.T) (commandMocks, *sharedmock.MockNotifier, *commands.NotificationDispatcherImpl) {
	t.Helper()
	m := newCommandMocks(t)
	n := sharedmock.NewMockNotifier(gomock.NewController(t))
	return m, n, commands.NewNotificationDispatcher(m.uow, n, m.clock, config.NewTestConfig())
}

func TestNotificationDispatcher_Deliver(t *testing.T) {
	ctx := context.Background()

	t.Run("sends pending kinds and flips their flags", func(t *testing.T) {
		m, n, d := newDispatcher(t)
		b := builder.NewBookingBuilder().BuildDomain()
		m.reads.EXPECT().BookingByID(ctx, b.ID()).Return(b, nil)

		n.EXPECT().Send(gomock.Any(), booking.NotificationConfirmation, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ booking.NotificationKind, p shared.NotificationPayload) (shared.Receipt, error) {
				assert.Equal(t, b.Reference(), p.Reference)
				assert.Equal(t, "http://localhost:3000/payment/"+b.Reference(), p.PaymentURL)
				return shared.Receipt{ID: "r1"}, nil
			})
		n.EXPECT().Send(gomock.Any(), booking.NotificationTeamAlert, gomock.Any()).Return(shared.Receipt{ID: "r2"}, nil)
		m.repo.EXPECT().MarkNotificationSent(gomock.Any(), nil, b.ID(), booking.NotificationConfirmation).Return(nil)
		m.repo.EXPECT().MarkNotificationSent(gomock.Any(), nil, b.ID(), booking.NotificationTeamAlert).Return(nil)

		assert.Equal(t, 2, d.Deliver(ctx, b.ID(), booking.NotificationConfirmation, booking.NotificationTeamAlert))
	})

	t.Run("already sent kinds are skipped", func(t *testing.T) {
		m, n, d := newDispatcher(t)
		b := builder.NewBookingBuilder().
			WithNotifications(booking.NotificationState{ConfirmationSent: true}).
			BuildDomain()
		m.reads.EXPECT().BookingByID(ctx, b.ID()).Return(b, nil)
		n.EXPECT().Send(gomock.Any(), booking.NotificationTeamAlert, gomock.Any()).Return(shared.Receipt{}, nil)
		m.repo.EXPECT().MarkNotificationSent(gomock.Any(), nil, b.ID(), booking.NotificationTeamAlert).Return(nil)

		assert.Equal(t, 1, d.Deliver(ctx, b.ID(), booking.NotificationConfirmation, booking.NotificationTeamAlert))
	})

	t.Run("failed send leaves the flag alone", func(t *testing.T) {
		m, n, d := newDispatcher(t)
		b := builder.NewBookingBuilder().BuildDomain()
		m.reads.EXPECT().BookingByID(ctx, b.ID()).Return(b, nil)
		n.EXPECT().Send(gomock.Any(), booking.NotificationConfirmation, gomock.Any()).
			Return(shared.Receipt{}, errors.New("smtp 421"))

		assert.Equal(t, 0, d.Deliver(ctx, b.ID(), booking.NotificationConfirmation))
	})

	t.Run("cancellation is sent every time", func(t *testing.T) {
		m, n, d := newDispatcher(t)
		b := builder.NewBookingBuilder().AsCancelled().BuildDomain()
		m.reads.EXPECT().BookingByID(ctx, b.ID()).Return(b, nil)
		n.EXPECT().Send(gomock.Any(), booking.NotificationCancellation, gomock.Any()).Return(shared.Receipt{}, nil)

		assert.Equal(t, 1, d.Deliver(ctx, b.ID(), booking.NotificationCancellation))
	})

	t.Run("flag write failure still counts the send", func(t *testing.T) {
		m, n, d := newDispatcher(t)
		b := builder.NewBookingBuilder().BuildDomain()
		m.reads.EXPECT().BookingByID(ctx, b.ID()).Return(b, nil)
		n.EXPECT().Send(gomock.Any(), booking.NotificationReminder, gomock.Any()).Return(shared.Receipt{}, nil)
		m.repo.EXPECT().MarkNotificationSent(gomock.Any(), nil, b.ID(), booking.NotificationReminder).
			Return(errors.New("db down"))

		assert.Equal(t, 1, d.Deliver(ctx, b.ID(), booking.NotificationReminder))
	})

	t.Run("missing booking", func(t *testing.T) {
		m, _, d := newDispatcher(t)
		id := uuid.New()
		m.reads.EXPECT().BookingByID(ctx, id).Return(nil, errors.New("not found"))

		assert.Equal(t, 0, d.Deliver(ctx, id, booking.NotificationConfirmation))
	})

	t.Run("each send gets a deadline", func(t *testing.T) {
		m, n, d := newDispatcher(t)
		b := builder.NewBookingBuilder().AsCancelled().BuildDomain()
		m.reads.EXPECT().BookingByID(ctx, b.ID()).Return(b, nil)
		n.EXPECT().Send(gomock.Any(), booking.NotificationCancellation, gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ booking.NotificationKind, _ shared.NotificationPayload) (shared.Receipt, error) {
				_, ok := ctx.Deadline()
				assert.True(t, ok)
				return shared.Receipt{}, nil
			})

		d.Deliver(ctx, b.ID(), booking.NotificationCancellation)
	})
}

func TestNotificationDispatcher_DispatchAndDrain(t *testing.T) {
	m, n, d := newDispatcher(t)
	b := builder.NewBookingBuilder().AsCancelled().BuildDomain()
	var sent atomic.Int32

	m.reads.EXPECT().BookingByID(gomock.Any(), b.ID()).Return(b, nil)
	n.EXPECT().Send(gomock.Any(), booking.NotificationCancellation, gomock.Any()).
		DoAndReturn(func(context.Context, booking.NotificationKind, shared.NotificationPayload) (shared.Receipt, error) {
			sent.Add(1)
			return shared.Receipt{}, nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	d.Dispatch(ctx, b.ID(), booking.NotificationCancellation)
	cancel()

	drainCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
	defer stop()
	require.NoError(t, d.Drain(drainCtx))
	assert.Equal(t, int32(1), sent.Load())
}

func TestReminderUseCase_SendTravelReminders(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers a reminder per candidate", func(t *testing.T) {
		m := newCommandMocks(t)
		deliverer := commandsmock.NewMockNotificationDeliverer(gomock.NewController(t))
		first := builder.NewBookingBuilder().WithTravelDate(fixedNow.Add(48 * time.Hour)).BuildDomain()
		second := builder.NewBookingBuilder().WithTravelDate(fixedNow.Add(70 * time.Hour)).BuildDomain()

		m.reads.EXPECT().ReminderCandidates(ctx, fixedNow, fixedNow.Add(72*time.Hour), 200).
			Return([]*booking.Booking{first, second}, nil)
		deliverer.EXPECT().Deliver(ctx, first.ID(), booking.NotificationReminder).Return(1)
		deliverer.EXPECT().Deliver(ctx, second.ID(), booking.NotificationReminder).Return(0)

		uc := commands.NewReminderUseCase(m.uow, m.clock, deliverer, config.NewTestConfig())
		sent, err := uc.SendTravelReminders(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("candidate query failure", func(t *testing.T) {
		m := newCommandMocks(t)
		deliverer := commandsmock.NewMockNotificationDeliverer(gomock.NewController(t))
		m.reads.EXPECT().ReminderCandidates(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("db down"))

		uc := commands.NewReminderUseCase(m.uow, m.clock, deliverer, config.NewTestConfig())
		_, err := uc.SendTravelReminders(ctx)
		assert.Error(t, err)
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		m := newCommandMocks(t)
		deliverer := commandsmock.NewMockNotificationDeliverer(gomock.NewController(t))
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		m.reads.EXPECT().ReminderCandidates(cctx, gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]*booking.Booking{builder.NewBookingBuilder().BuildDomain()}, nil)

		uc := commands.NewReminderUseCase(m.uow, m.clock, deliverer, config.NewTestConfig())
		sent, err := uc.SendTravelReminders(cctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, sent)
	})
}
