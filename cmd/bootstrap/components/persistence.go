package components

import (
	"github.com/Arman-Arzoo/headout-backend/internal/infra/readstore"
	"github.com/Arman-Arzoo/headout-backend/internal/infra/uow"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork carrying the admission lock and retry semantics
		uow.NewPostgresUoW,
		// Read-side view store, pool-bound
		readstore.NewBookingViewStore,
	),
)
