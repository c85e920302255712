package commands

import (
	"context"
	"log/slog"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reminder.go -destination=../../../tests/mock/commands/reminder.go -package=commandsmock

const reminderBatchSize = 200

type ReminderCommands interface {
	SendTravelReminders(ctx context.Context) (int, error)
}

type NotificationDeliverer interface {
	Deliver(ctx context.Context, bookingID uuid.UUID, kinds ...booking.NotificationKind) int
}

type reminderUseCaseImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	deliverer NotificationDeliverer
	leadTime  time.Duration
}

func NewReminderUseCase(uow shared.UnitOfWork, clk clock.Clock, deliverer NotificationDeliverer, cfg config.Config) ReminderCommands {
	return &reminderUseCaseImpl{
		uow:       uow,
		clock:     clk,
		deliverer: deliverer,
		leadTime:  cfg.Booking.ReminderLeadTime,
	}
}

// SendTravelReminders covers live bookings travelling within the lead time that have no reminder yet.
func (uc *reminderUseCaseImpl) SendTravelReminders(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	candidates, err := uc.uow.CommandReads().ReminderCandidates(ctx, now, now.Add(uc.leadTime), reminderBatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, b := range candidates {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		sent += uc.deliverer.Deliver(ctx, b.ID(), booking.NotificationReminder)
	}

	if len(candidates) > 0 {
		slog.Info("travel reminders processed", "candidates", len(candidates), "sent", sent)
	}
	return sent, nil
}
