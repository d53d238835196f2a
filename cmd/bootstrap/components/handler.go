package components

import (
	"context"
	"log/slog"

	"zaylux-store/internal/handler"
	"zaylux-store/internal/handler/api"
	"zaylux-store/internal/handler/middleware"
	"zaylux-store/internal/pkg/config"
	"zaylux-store/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewProductHandler,
		api.NewCouponHandler,
		api.NewOrderHandler,
		api.NewAdminAuthHandler,
		api.NewAdminOrderHandler,
		api.NewAdminCatalogHandler,
		api.NewAdminCustomerHandler,
		api.NewNotifyHandler,
		middleware.NewAuthMiddleware,
		middleware.NewRequestLogger,
	),
	fx.Invoke(
		handler.NewRouter,
		SeedAdmin,
	),
)

// SeedAdmin creates the configured console account on startup.
func SeedAdmin(lc fx.Lifecycle, cfg config.Config, auth commands.AuthCommands) {
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		slog.Info("admin seeding skipped: ADMIN_USERNAME or ADMIN_PASSWORD not set")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return auth.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
		},
	})
}
