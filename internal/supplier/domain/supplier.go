package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type CreateSupplierRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type UpdateSupplierRequest struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
}

type Service interface {
	Create(context.Context, CreateSupplierRequest) (Supplier, error)
	GetByID(ctx context.Context, id string) (Supplier, error)
	List(ctx context.Context) ([]Supplier, error)
	Update(context.Context, UpdateSupplierRequest) (Supplier, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
