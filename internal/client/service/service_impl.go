package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/client/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"
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
		log:  p.Log.Named("client.service"),
		repo: p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Client{}, domain.ErrInvalidCompany
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetClientRequest) (domain.Client, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Client{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Client{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Client{}, err
	}
	if item == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListClientRequest) (domain.ListClientResponse, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.ListClientResponse{}, domain.ErrInvalidCompany
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, companyID, domain.ListClientFilter{
		Name: strings.TrimSpace(req.Name),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListClientResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(client *domain.Client) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        client.ID.String(),
			CreatedAt: client.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	clients := make([]domain.Client, 0, len(items))
	for _, item := range items {
		clients = append(clients, *item)
	}

	return domain.ListClientResponse{
		PageInfo: *pageInfo,
		Clients:  clients,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateClientRequest) (domain.Client, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Client{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Client{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Client{}, err
	}
	if item == nil {
		return domain.Client{}, domain.ErrNotFound
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
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Client{}, err
	}
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteClientRequest) error {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, companyID, id)
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}
