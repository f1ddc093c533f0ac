package components

import (
	"tablebook/internal/infra/db"
	"tablebook/internal/infra/readstore"
	"tablebook/internal/infra/uow"
	"tablebook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Restaurant
		fx.Annotate(
			readstore.NewRestaurantReadStore,
			fx.As(new(queries.RestaurantReader)),
		),
		// Tables
		fx.Annotate(
			readstore.NewTableReadStore,
			fx.As(new(queries.TableReader)),
		),
		// Schedule
		fx.Annotate(
			readstore.NewScheduleReadStore,
			fx.As(new(queries.ScheduleReader)),
		),
		// Reservations
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReader)),
		),
		queries.NewSnapshotLoader,
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork opens its own transactions and builds the write-side
		// repositories on top of them, so nothing else is provided here.
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
