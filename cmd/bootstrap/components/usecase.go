package components

import (
	"zaylux-store/internal/domain/order"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/config"
	"zaylux-store/internal/usecase"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.New,
	NewOrderSettings,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewOrderCommands,
		commands.NewCouponCommands,
		commands.NewProductCommands,
		commands.NewCustomerCommands,
		commands.NewNotifyCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
		queries.NewProductQueries,
		queries.NewCouponQueries,
		queries.NewCustomerQueries,
		queries.NewNotifyQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewOrderSettings(cfg config.Config) (commands.OrderSettings, error) {
	policy, err := order.ParsePolicy(cfg.Order.TransitionPolicy)
	if err != nil {
		return commands.OrderSettings{}, err
	}
	return commands.OrderSettings{
		PublicIDPrefix: cfg.Order.PublicIDPrefix,
		IdempotencyTTL: cfg.Order.IdempotencyTTL,
		Policy:         policy,
	}, nil
}
