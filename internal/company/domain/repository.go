package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, company *Company) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Company, error)
	List(ctx context.Context, db *gorm.DB, filter ListCompanyFilter, page pagination.Pagination) ([]*Company, error)
	Update(ctx context.Context, db *gorm.DB, company *Company) error
}
