package bootstrap

import (
	"log/slog"

	"travel-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logConfigSummary),
)

// logConfigSummary records which optional integrations are active. Secrets are never logged.
func logConfigSummary(cfg config.Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_host", cfg.DB.Host,
		"db_name", cfg.DB.DBName,
		"notifier_driver", cfg.Notifier.Driver,
		"smtp_configured", cfg.SMTP.Configured(),
		"redis_enabled", cfg.Redis.Enabled,
		"strict_transitions", cfg.Booking.StrictTransitions,
		"pricing_catalog", cfg.Pricing.CatalogPath != "",
		"team_recipient_set", cfg.TeamRecipient() != "",
	)
}
