package components

import (
	"tablebook/internal/handler"
	"tablebook/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewReservationHandler,
		api.NewLockHandler,
	),
	fx.Invoke(handler.NewRouter),
)
