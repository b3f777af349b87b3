package bootstrap

import (
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/config"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret)
}
