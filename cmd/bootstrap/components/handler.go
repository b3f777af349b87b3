package components

import (
	"github.com/Arman-Arzoo/headout-backend/internal/handler"
	"github.com/Arman-Arzoo/headout-backend/internal/handler/api"
	"github.com/Arman-Arzoo/headout-backend/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
