package ocr

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/invoicetradeai-create/bizzauto-project/internal/config"
)

var Module = fx.Module("ocr",
	fx.Provide(func(cfg *config.Config, log *zap.Logger) Oracle {
		return NewAzureOracle(cfg.AzureVisionEndpoint, cfg.AzureVisionKey, log)
	}),
)
