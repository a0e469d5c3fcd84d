package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// Invoice is the persisted header. SourceKey is the caller-supplied
// idempotency token for OCR-created invoices; at most one invoice per
// (company, source key) pair can exist.
type Invoice struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoices_company_source" json:"company_id"`
	ClientID      *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	InvoiceDate   time.Time  `gorm:"not null" json:"invoice_date"`
	TotalAmount   float64    `gorm:"not null;default:0" json:"total_amount"`
	PaymentStatus string     `gorm:"not null;default:unpaid" json:"payment_status"`
	Notes         string     `json:"notes,omitempty"`
	SourceKey     *string    `gorm:"uniqueIndex:idx_invoices_company_source" json:"source_key,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []InvoiceItem `gorm:"-" json:"items,omitempty"`
}

// InvoiceItem rows are fully replaced on update, never patched.
type InvoiceItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	InvoiceID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Description string     `gorm:"not null" json:"description"`
	Quantity    int        `gorm:"not null;default:1" json:"quantity"`
	Price       float64    `gorm:"not null;default:0" json:"price"`
	Total       float64    `gorm:"not null;default:0" json:"total"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ItemsTotal sums item totals for the header invariant.
func ItemsTotal(items []InvoiceItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Total
	}
	return sum
}
