package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/product/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const productColumns = `id, company_id, name, sku, category, purchase_price, sale_price, stock_quantity, low_stock_alert, unit, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (`+productColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.CompanyID,
		product.Name,
		product.SKU,
		product.Category,
		product.PurchasePrice,
		product.SalePrice,
		product.StockQuantity,
		product.LowStockAlert,
		product.Unit,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT `+productColumns+` FROM products WHERE company_id = ? AND id = ?`,
		companyID,
		id,
	).Scan(&product).Error
	if err != nil {
		return nil, err
	}
	if product.ID == uuid.Nil {
		return nil, nil
	}
	return &product, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, companyID uuid.UUID, name string) (*domain.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, nil
	}

	var product domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT `+productColumns+` FROM products
		 WHERE company_id = ?
		   AND (LOWER(name) = ? OR LOWER(name) LIKE ? OR ? LIKE '%' || LOWER(name) || '%')
		 ORDER BY CASE WHEN LOWER(name) = ? THEN 0 ELSE 1 END, LENGTH(name) DESC
		 LIMIT 1`,
		companyID,
		needle,
		"%"+needle+"%",
		needle,
		needle,
	).Scan(&product).Error
	if err != nil {
		return nil, err
	}
	if product.ID == uuid.Nil {
		return nil, nil
	}
	return &product, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, companyID uuid.UUID, filter domain.ListProductFilter, page pagination.Pagination) ([]*domain.Product, error) {
	var products []*domain.Product
	stmt := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("company_id = ?", companyID)
	if filter.Name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if cursor, err := pagination.DecodeCursor(page.PageToken); err == nil && cursor != nil && cursor.CreatedAt != "" {
		stmt = stmt.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Limit(page.PageSize + 1).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) ListLowStock(ctx context.Context, db *gorm.DB, companyID uuid.UUID) ([]*domain.Product, error) {
	var products []*domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT `+productColumns+` FROM products
		 WHERE company_id = ? AND low_stock_alert > 0 AND stock_quantity <= low_stock_alert
		 ORDER BY stock_quantity ASC`,
		companyID,
	).Scan(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET name = ?, sku = ?, category = ?, purchase_price = ?, sale_price = ?, low_stock_alert = ?, unit = ?, updated_at = ?
		 WHERE company_id = ? AND id = ?`,
		product.Name,
		product.SKU,
		product.Category,
		product.PurchasePrice,
		product.SalePrice,
		product.LowStockAlert,
		product.Unit,
		product.UpdatedAt,
		product.CompanyID,
		product.ID,
	).Error
}

func (r *repo) AdjustStock(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID, delta int) error {
	res := db.WithContext(ctx).Exec(
		`UPDATE products
		 SET stock_quantity = stock_quantity + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE company_id = ? AND id = ?`,
		delta,
		companyID,
		id,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) SetStock(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID, quantity int) error {
	res := db.WithContext(ctx).Exec(
		`UPDATE products
		 SET stock_quantity = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE company_id = ? AND id = ?`,
		quantity,
		companyID,
		id,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM products WHERE company_id = ? AND id = ?`,
		companyID,
		id,
	).Error
}
