package product

import (
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/internal/product/repository"
	"github.com/invoicetradeai-create/bizzauto-project/internal/product/service"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
