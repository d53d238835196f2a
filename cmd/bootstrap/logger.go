package bootstrap

import (
	"log/slog"

	"zaylux-store/internal/pkg/config"
	"zaylux-store/internal/pkg/logger"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		func(l *logger.Logger) *slog.Logger {
			return l.Slog()
		},
	),
)

func NewLogger(cfg config.Config) *logger.Logger {
	return logger.New(cfg.Log)
}
