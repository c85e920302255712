package components

import (
	"context"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/catalog"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"
	"travel-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseNotificationModule,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) (*booking.CatalogPriceCalculator, error) {
		return catalog.Load(cfg.Pricing.CatalogPath)
	},
	func(c *booking.CatalogPriceCalculator) booking.PriceCalculator { return c },
	func(c *booking.CatalogPriceCalculator) queries.DestinationCatalog { return c },
	fx.Annotate(
		booking.NewRandomReferenceGenerator,
		fx.As(new(booking.ReferenceGenerator)),
	),
)

var usecaseNotificationModule = fx.Module("usecase/notification",
	fx.Provide(
		NewNotificationDispatcher,
		func(d *commands.NotificationDispatcherImpl) commands.NotificationDispatcher { return d },
		func(d *commands.NotificationDispatcherImpl) commands.NotificationDeliverer { return d },
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewReminderUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

// NewNotificationDispatcher waits for in-flight deliveries on shutdown, bounded by the stop timeout.
func NewNotificationDispatcher(lc fx.Lifecycle, uow shared.UnitOfWork, n shared.Notifier, clk clock.Clock, cfg config.Config) *commands.NotificationDispatcherImpl {
	d := commands.NewNotificationDispatcher(uow, n, clk, cfg)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return d.Drain(ctx)
		},
	})
	return d
}
