package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/client/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO clients (id, company_id, name, email, phone, address, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		client.ID,
		client.CompanyID,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.CreatedAt,
		client.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).Raw(
		`SELECT id, company_id, name, email, phone, address, created_at, updated_at
		 FROM clients WHERE company_id = ? AND id = ?`,
		companyID,
		id,
	).Scan(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == uuid.Nil {
		return nil, nil
	}
	return &client, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, companyID uuid.UUID, name string) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).Raw(
		`SELECT id, company_id, name, email, phone, address, created_at, updated_at
		 FROM clients WHERE company_id = ? AND LOWER(name) = ? LIMIT 1`,
		companyID,
		strings.ToLower(strings.TrimSpace(name)),
	).Scan(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == uuid.Nil {
		return nil, nil
	}
	return &client, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, companyID uuid.UUID, filter domain.ListClientFilter, page pagination.Pagination) ([]*domain.Client, error) {
	var clients []*domain.Client
	stmt := db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("company_id = ?", companyID)
	if filter.Name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if cursor, err := pagination.DecodeCursor(page.PageToken); err == nil && cursor != nil && cursor.CreatedAt != "" {
		stmt = stmt.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Limit(page.PageSize + 1).
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Exec(
		`UPDATE clients SET name = ?, email = ?, phone = ?, address = ?, updated_at = ?
		 WHERE company_id = ? AND id = ?`,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.UpdatedAt,
		client.CompanyID,
		client.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM clients WHERE company_id = ? AND id = ?`,
		companyID,
		id,
	).Error
}
