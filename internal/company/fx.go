package company

import (
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/internal/company/repository"
	"github.com/invoicetradeai-create/bizzauto-project/internal/company/service"
)

var Module = fx.Module("company.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
