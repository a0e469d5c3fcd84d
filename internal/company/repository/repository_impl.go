package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/company/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, company *domain.Company) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO companies (id, name, email, phone, address, currency, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		company.ID,
		company.Name,
		company.Email,
		company.Phone,
		company.Address,
		company.Currency,
		company.CreatedAt,
		company.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, phone, address, currency, created_at, updated_at
		 FROM companies WHERE id = ?`,
		id,
	).Scan(&company).Error
	if err != nil {
		return nil, err
	}
	if company.ID == uuid.Nil {
		return nil, nil
	}
	return &company, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCompanyFilter, page pagination.Pagination) ([]*domain.Company, error) {
	var companies []*domain.Company
	stmt := db.WithContext(ctx).Model(&domain.Company{})
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if cursor, err := pagination.DecodeCursor(page.PageToken); err == nil && cursor != nil && cursor.CreatedAt != "" {
		stmt = stmt.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Limit(page.PageSize + 1).
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, company *domain.Company) error {
	return db.WithContext(ctx).Exec(
		`UPDATE companies SET name = ?, email = ?, phone = ?, address = ?, currency = ?, updated_at = ?
		 WHERE id = ?`,
		company.Name,
		company.Email,
		company.Phone,
		company.Address,
		company.Currency,
		company.UpdatedAt,
		company.ID,
	).Error
}
