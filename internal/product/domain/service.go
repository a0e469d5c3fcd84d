package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) (*Product, error)
	// FindByName matches case-insensitively, exact name first, then a
	// substring containment either way.
	FindByName(ctx context.Context, db *gorm.DB, companyID uuid.UUID, name string) (*Product, error)
	List(ctx context.Context, db *gorm.DB, companyID uuid.UUID, filter ListProductFilter, page pagination.Pagination) ([]*Product, error)
	ListLowStock(ctx context.Context, db *gorm.DB, companyID uuid.UUID) ([]*Product, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	// AdjustStock applies a signed delta to stock_quantity under row lock.
	AdjustStock(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID, delta int) error
	SetStock(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) error
}

type CreateProductRequest struct {
	Name          string
	SKU           string
	Category      string
	PurchasePrice float64
	SalePrice     float64
	StockQuantity int
	LowStockAlert int
	Unit          string
}

type UpdateProductRequest struct {
	ID            string
	Name          string
	SKU           string
	Category      string
	PurchasePrice *float64
	SalePrice     *float64
	LowStockAlert *int
	Unit          string
}

type UpdateStockRequest struct {
	ID       string
	Quantity int
}

type GetProductRequest struct {
	ID string
}

type DeleteProductRequest struct {
	ID string
}

type ListProductRequest struct {
	PageToken string
	PageSize  int
	Name      string
	Category  string
}

type ListProductFilter struct {
	Name     string
	Category string
}

type ListProductResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

type Service interface {
	Create(context.Context, CreateProductRequest) (Product, error)
	GetByID(context.Context, GetProductRequest) (Product, error)
	List(context.Context, ListProductRequest) (ListProductResponse, error)
	LowStock(context.Context) ([]Product, error)
	Update(context.Context, UpdateProductRequest) (Product, error)
	UpdateStock(context.Context, UpdateStockRequest) (Product, error)
	Delete(context.Context, DeleteProductRequest) error
}

var (
	ErrInvalidCompany  = errors.New("invalid_company")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrNotFound        = errors.New("not_found")
)
