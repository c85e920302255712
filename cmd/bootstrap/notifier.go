package bootstrap

import (
	"context"
	"log/slog"

	"travel-booking/internal/infra/messaging"
	"travel-booking/internal/infra/notifier"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

const (
	NotifierDriverLog   = "log"
	NotifierDriverSMTP  = "smtp"
	NotifierDriverKafka = "kafka"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewNotifier,
	),
)

func NewNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.Notifier, error) {
	switch cfg.Notifier.Driver {
	case NotifierDriverLog, "":
		return notifier.NewLogNotifier(cfg.TeamRecipient()), nil
	case NotifierDriverSMTP:
		if !cfg.SMTP.Configured() {
			logger.Warn("smtp notifier selected without credentials; emails will fail and stay unsent")
		}
		return notifier.NewSMTPNotifier(cfg), nil
	case NotifierDriverKafka:
		producer := messaging.NewProducer(cfg.Kafka, cfg.Notifier.Timeout)
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return producer.Close()
			},
		})
		return notifier.NewKafkaNotifier(producer), nil
	default:
		return nil, errs.Newf("unknown NOTIFIER_DRIVER %q", cfg.Notifier.Driver)
	}
}
