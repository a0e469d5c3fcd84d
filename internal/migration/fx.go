package migration

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/invoicetradeai-create/bizzauto-project/internal/client/domain"
	companydomain "github.com/invoicetradeai-create/bizzauto-project/internal/company/domain"
	"github.com/invoicetradeai-create/bizzauto-project/internal/docpipe"
	expensedomain "github.com/invoicetradeai-create/bizzauto-project/internal/expense/domain"
	invoicedomain "github.com/invoicetradeai-create/bizzauto-project/internal/invoice/domain"
	productdomain "github.com/invoicetradeai-create/bizzauto-project/internal/product/domain"
	purchasedomain "github.com/invoicetradeai-create/bizzauto-project/internal/purchase/domain"
	supplierdomain "github.com/invoicetradeai-create/bizzauto-project/internal/supplier/domain"
	wadomain "github.com/invoicetradeai-create/bizzauto-project/internal/whatsapp/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg db.Config, log *zap.Logger) error {
		if cfg.Type == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
			log.Info("database migrations applied")
			return nil
		}

		// sqlite is the zero-config local path; the schema comes from
		// the models so it stays in lockstep with the code.
		if err := conn.AutoMigrate(
			&companydomain.Company{},
			&clientdomain.Client{},
			&productdomain.Product{},
			&supplierdomain.Supplier{},
			&invoicedomain.Invoice{},
			&invoicedomain.InvoiceItem{},
			&purchasedomain.Purchase{},
			&purchasedomain.PurchaseItem{},
			&expensedomain.Expense{},
			&wadomain.Log{},
			&docpipe.UploadedDoc{},
			&docpipe.InventorySnapshot{},
			&docpipe.InventorySnapshotLine{},
		); err != nil {
			return err
		}
		log.Info("sqlite schema synced")
		return nil
	}),
)
