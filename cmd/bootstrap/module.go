package bootstrap

import (
	"tablebook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	LockModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
