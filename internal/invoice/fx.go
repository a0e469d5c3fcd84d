package invoice

import (
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/internal/invoice/repository"
	"github.com/invoicetradeai-create/bizzauto-project/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
