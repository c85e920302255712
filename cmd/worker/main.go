package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"travel-booking/cmd/bootstrap"
	"travel-booking/internal/infra/messaging"
	"travel-booking/internal/infra/notifier"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

const shutdownTimeout = 30 * time.Second

// runReminders sends travel reminders on every tick until the app stops.
func runReminders(lc fx.Lifecycle, reminders commands.ReminderCommands, cfg config.Config, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.Booking.ReminderInterval)
				defer ticker.Stop()

				for {
					sent, err := reminders.SendTravelReminders(ctx)
					if err != nil {
						logger.Error("reminder sweep failed", "error", err)
					} else if sent > 0 {
						logger.Info("reminder sweep finished", "sent", sent)
					}

					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
					}
				}
			}()
			logger.Info("reminder scheduler started", "interval", cfg.Booking.ReminderInterval, "lead_time", cfg.Booking.ReminderLeadTime)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

// runMailer drains the notification topic when the API publishes to Kafka. Mail goes out
// over SMTP when credentials exist and to the log otherwise.
func runMailer(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) {
	if cfg.Notifier.Driver != bootstrap.NotifierDriverKafka {
		logger.Info("kafka mailer disabled", "notifier_driver", cfg.Notifier.Driver)
		return
	}

	var mailer shared.Notifier = notifier.NewLogNotifier(cfg.TeamRecipient())
	if cfg.SMTP.Configured() {
		mailer = notifier.NewSMTPNotifier(cfg)
	}

	consumer := messaging.NewConsumer(cfg.Kafka)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := consumer.Consume(ctx, notifier.EventHandler(mailer)); err != nil {
					logger.Error("notification consumer stopped", "error", err)
				}
			}()
			logger.Info("kafka mailer started", "topic", cfg.Kafka.NotificationsTopic, "group_id", cfg.Kafka.GroupID)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return consumer.Close()
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.InfraModule,
		fx.Invoke(
			runReminders,
			runMailer,
		),
		fx.StopTimeout(shutdownTimeout),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start worker", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		slog.Error("failed to stop worker cleanly", "error", err)
	}

	slog.Info("worker stopped")
}
