package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
)

type Repository interface {
	// Insert writes the header. When the invoice carries a SourceKey the
	// insert is idempotent; the boolean reports whether a row was written.
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) (bool, error)
	InsertItem(ctx context.Context, db *gorm.DB, item *InvoiceItem) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) (*Invoice, error)
	FindBySourceKey(ctx context.Context, db *gorm.DB, companyID uuid.UUID, sourceKey string) (*Invoice, error)
	ListItems(ctx context.Context, db *gorm.DB, companyID, invoiceID uuid.UUID) ([]InvoiceItem, error)
	List(ctx context.Context, db *gorm.DB, companyID uuid.UUID, filter ListInvoiceFilter, page pagination.Pagination) ([]*Invoice, error)
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	DeleteItems(ctx context.Context, db *gorm.DB, companyID, invoiceID uuid.UUID) error
	Delete(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) error
}
