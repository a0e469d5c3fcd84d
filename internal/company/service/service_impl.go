package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/company/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("company.service"),
		repo: p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCompanyRequest) (domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Company{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	company := domain.Company{
		ID:        uuid.New(),
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Currency:  strings.ToUpper(strings.TrimSpace(req.Currency)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &company); err != nil {
		return domain.Company{}, err
	}
	return company, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCompanyRequest) (domain.Company, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Company{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Company{}, err
	}
	if item == nil {
		return domain.Company{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCompanyRequest) (domain.ListCompanyResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, domain.ListCompanyFilter{
		Name: strings.TrimSpace(req.Name),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListCompanyResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(company *domain.Company) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        company.ID.String(),
			CreatedAt: company.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	companies := make([]domain.Company, 0, len(items))
	for _, item := range items {
		companies = append(companies, *item)
	}

	return domain.ListCompanyResponse{
		PageInfo:  *pageInfo,
		Companies: companies,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCompanyRequest) (domain.Company, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Company{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Company{}, err
	}
	if item == nil {
		return domain.Company{}, domain.ErrNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		item.Name = name
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		item.Email = email
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		item.Phone = phone
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		item.Address = address
	}
	if currency := strings.TrimSpace(req.Currency); currency != "" {
		item.Currency = strings.ToUpper(currency)
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Company{}, err
	}
	return *item, nil
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}
