package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Purchase records stock bought from a supplier. Creating one increments
// the stock of every referenced product.
type Purchase struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	SupplierID    *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	PurchaseDate  time.Time  `gorm:"not null" json:"purchase_date"`
	TotalAmount   float64    `gorm:"not null;default:0" json:"total_amount"`
	PaymentStatus string     `gorm:"not null;default:unpaid" json:"payment_status"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []PurchaseItem `gorm:"-" json:"items,omitempty"`
}

type PurchaseItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	PurchaseID uuid.UUID  `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Quantity   int        `gorm:"not null;default:1" json:"quantity"`
	Price      float64    `gorm:"not null;default:0" json:"price"`
	Total      float64    `gorm:"not null;default:0" json:"total"`
	CreatedAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

type PurchaseItemInput struct {
	ProductID string
	Quantity  int
	Price     float64
}

type CreatePurchaseRequest struct {
	SupplierID   string
	PurchaseDate *time.Time
	Notes        string
	Items        []PurchaseItemInput
}

type Service interface {
	Create(context.Context, CreatePurchaseRequest) (Purchase, error)
	GetByID(ctx context.Context, id string) (Purchase, error)
	List(ctx context.Context) ([]Purchase, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidID      = errors.New("invalid_id")
	ErrEmptyItems     = errors.New("empty_items")
	ErrNotFound       = errors.New("not_found")
)
