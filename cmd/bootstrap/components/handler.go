package components

import (
	"shareit/internal/handler"
	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		func(v usecase.TokenValidator, cfg config.Config) *middleware.AuthMiddleware {
			return middleware.NewAuthMiddleware(v, cfg.Auth)
		},
	),
	fx.Invoke(handler.NewRouter),
)
