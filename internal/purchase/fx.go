package purchase

import (
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/internal/purchase/service"
)

var Module = fx.Module("purchase.service",
	fx.Provide(service.New),
)
