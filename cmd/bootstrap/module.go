package bootstrap

import (
	"fieldbook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	EventsModule,
	CacheModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
