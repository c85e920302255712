package bootstrap

import (
	"travel-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// InfraModule is shared by the API server and the worker.
var InfraModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	NotifierModule,
	components.PersistenceModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	InfraModule,
	components.HandlerModule,
)
