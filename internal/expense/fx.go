package expense

import (
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/internal/expense/service"
)

var Module = fx.Module("expense.service",
	fx.Provide(service.New),
)
