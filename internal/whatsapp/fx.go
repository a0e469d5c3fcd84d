package whatsapp

import (
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/internal/whatsapp/service"
	"github.com/invoicetradeai-create/bizzauto-project/internal/whatsapp/transport"
)

var Module = fx.Module("whatsapp.service",
	fx.Provide(service.New),
	fx.Provide(transport.NewSender),
)
