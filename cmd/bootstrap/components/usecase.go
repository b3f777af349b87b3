package components

import (
	"github.com/Arman-Arzoo/headout-backend/internal/usecase/commands"
	"github.com/Arman-Arzoo/headout-backend/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		queries.NewBookingQueries,
		commands.NewBookingCommands,
	),
)
