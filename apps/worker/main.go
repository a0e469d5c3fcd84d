package main

import (
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/internal/client"
	"github.com/invoicetradeai-create/bizzauto-project/internal/config"
	"github.com/invoicetradeai-create/bizzauto-project/internal/docpipe"
	"github.com/invoicetradeai-create/bizzauto-project/internal/invoice"
	"github.com/invoicetradeai-create/bizzauto-project/internal/jobs"
	"github.com/invoicetradeai-create/bizzauto-project/internal/migration"
	"github.com/invoicetradeai-create/bizzauto-project/internal/observability"
	"github.com/invoicetradeai-create/bizzauto-project/internal/ocr"
	"github.com/invoicetradeai-create/bizzauto-project/internal/product"
	"github.com/invoicetradeai-create/bizzauto-project/internal/redisconn"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db"
)

// The worker binary: drains the OCR queue and runs uploaded documents
// through the parsing pipeline. No HTTP surface beyond what the API
// binary serves.
func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		redisconn.Module,
		migration.Module,

		// Repositories the document pipeline persists through.
		client.Module,
		product.Module,
		invoice.Module,

		ocr.Module,
		docpipe.Module,
		jobs.Module,
		jobs.RunModule,
	)
	app.Run()
}
