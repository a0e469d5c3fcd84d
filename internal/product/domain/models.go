package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is the tenant-scoped catalog entry that OCR line items are
// matched against. StockQuantity is mutated by invoice creation and by
// inventory snapshots.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Name          string    `gorm:"not null" json:"name"`
	SKU           string    `gorm:"column:sku" json:"sku,omitempty"`
	Category      string    `json:"category,omitempty"`
	PurchasePrice float64   `json:"purchase_price"`
	SalePrice     float64   `json:"sale_price"`
	StockQuantity int       `gorm:"not null;default:0" json:"stock_quantity"`
	LowStockAlert int       `gorm:"not null;default:0" json:"low_stock_alert"`
	Unit          string    `json:"unit,omitempty"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
