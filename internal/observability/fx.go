package observability

import (
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/internal/config"
	"github.com/invoicetradeai-create/bizzauto-project/internal/observability/logger"
	"github.com/invoicetradeai-create/bizzauto-project/internal/observability/metrics"
)

var Module = fx.Module("observability",
	fx.Provide(func(cfg *config.Config) logger.Config {
		format := "json"
		if !cfg.IsProduction() {
			format = "console"
		}
		return logger.Config{
			ServiceName: cfg.AppName,
			Environment: cfg.Env,
			Level:       "info",
			Format:      format,
		}
	}),
	fx.Provide(logger.New),
	metrics.Module,
)
