package supplier

import (
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/internal/supplier/service"
)

var Module = fx.Module("supplier.service",
	fx.Provide(service.New),
)
