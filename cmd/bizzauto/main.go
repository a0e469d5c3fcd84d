package main

import (
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/internal/config"
	"github.com/invoicetradeai-create/bizzauto-project/internal/migration"
	"github.com/invoicetradeai-create/bizzauto-project/internal/observability"
	"github.com/invoicetradeai-create/bizzauto-project/internal/redisconn"
	"github.com/invoicetradeai-create/bizzauto-project/internal/server"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db"
)

// The API binary: serves HTTP, enqueues uploaded documents and leaves
// OCR to the worker binary.
func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		redisconn.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}
