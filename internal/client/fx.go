package client

import (
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/internal/client/repository"
	"github.com/invoicetradeai-create/bizzauto-project/internal/client/service"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
