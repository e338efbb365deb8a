package observability

import (
	"go.uber.org/fx"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/config"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/observability/logger"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/observability/metrics"
)

var Module = fx.Module("observability",
	fx.Provide(
		provideLoggerConfig,
		logger.New,
		metrics.NewHTTPMetrics,
	),
)

func provideLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName:         cfg.AppName,
		Environment:         cfg.Environment,
		Version:             cfg.AppVersion,
		Level:               "info",
		Format:              "json",
		IncludeCaller:       true,
		IncludeStackOnError: !cfg.IsProduction(),
	}
}
