package components

import (
	"tablebook/internal/domain/reservation"
	"tablebook/internal/lock"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(clock clock.Clock) *reservation.Services {
		return &reservation.Services{
			Clock: clock,
		}
	},
	func(m *lock.Manager) commands.SlotLocker {
		return m
	},
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)
