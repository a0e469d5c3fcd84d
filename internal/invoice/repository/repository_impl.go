package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/invoice/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const invoiceColumns = `id, company_id, client_id, invoice_date, total_amount, payment_status, notes, source_key, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) (bool, error) {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if invoice.SourceKey != nil {
		query += ` ON CONFLICT (company_id, source_key) DO NOTHING`
	}

	result := db.WithContext(ctx).Exec(query,
		invoice.ID,
		invoice.CompanyID,
		invoice.ClientID,
		invoice.InvoiceDate,
		invoice.TotalAmount,
		invoice.PaymentStatus,
		invoice.Notes,
		invoice.SourceKey,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.InvoiceItem) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO invoice_items (id, company_id, invoice_id, product_id, description, quantity, price, total, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.CompanyID,
		item.InvoiceID,
		item.ProductID,
		item.Description,
		item.Quantity,
		item.Price,
		item.Total,
		item.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT `+invoiceColumns+` FROM invoices WHERE company_id = ? AND id = ?`,
		companyID,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == uuid.Nil {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) FindBySourceKey(ctx context.Context, db *gorm.DB, companyID uuid.UUID, sourceKey string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT `+invoiceColumns+` FROM invoices WHERE company_id = ? AND source_key = ? LIMIT 1`,
		companyID,
		sourceKey,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == uuid.Nil {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, companyID, invoiceID uuid.UUID) ([]domain.InvoiceItem, error) {
	var items []domain.InvoiceItem
	err := db.WithContext(ctx).Raw(
		`SELECT id, company_id, invoice_id, product_id, description, quantity, price, total, created_at
		 FROM invoice_items
		 WHERE company_id = ? AND invoice_id = ?
		 ORDER BY created_at ASC, id ASC`,
		companyID,
		invoiceID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, companyID uuid.UUID, filter domain.ListInvoiceFilter, page pagination.Pagination) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	stmt := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("company_id = ?", companyID)
	if filter.PaymentStatus != "" {
		stmt = stmt.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.ClientID != "" {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.DateFrom != nil {
		stmt = stmt.Where("invoice_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		stmt = stmt.Where("invoice_date <= ?", *filter.DateTo)
	}
	if cursor, err := pagination.DecodeCursor(page.PageToken); err == nil && cursor != nil && cursor.CreatedAt != "" {
		stmt = stmt.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Limit(page.PageSize + 1).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Exec(
		`UPDATE invoices
		 SET client_id = ?, invoice_date = ?, total_amount = ?, payment_status = ?, notes = ?, updated_at = ?
		 WHERE company_id = ? AND id = ?`,
		invoice.ClientID,
		invoice.InvoiceDate,
		invoice.TotalAmount,
		invoice.PaymentStatus,
		invoice.Notes,
		invoice.UpdatedAt,
		invoice.CompanyID,
		invoice.ID,
	).Error
}

func (r *repo) DeleteItems(ctx context.Context, db *gorm.DB, companyID, invoiceID uuid.UUID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM invoice_items WHERE company_id = ? AND invoice_id = ?`,
		companyID,
		invoiceID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) error {
	if err := r.DeleteItems(ctx, db, companyID, id); err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(
		`DELETE FROM invoices WHERE company_id = ? AND id = ?`,
		companyID,
		id,
	).Error
}
