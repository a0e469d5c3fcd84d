package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/supplier/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/repository"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	log   *zap.Logger
	store repository.Repository[domain.Supplier]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("supplier.service"),
		store: repository.ProvideStore[domain.Supplier](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSupplierRequest) (domain.Supplier, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Supplier{}, domain.ErrInvalidCompany
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Supplier{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	supplier := domain.Supplier{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, &supplier); err != nil {
		return domain.Supplier{}, err
	}
	return supplier, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Supplier, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Supplier{}, domain.ErrInvalidCompany
	}

	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return domain.Supplier{}, domain.ErrInvalidID
	}

	item, err := s.store.FindOne(ctx, &domain.Supplier{ID: parsed, CompanyID: companyID})
	if err != nil {
		return domain.Supplier{}, err
	}
	if item == nil {
		return domain.Supplier{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Supplier, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return nil, domain.ErrInvalidCompany
	}

	items, err := s.store.Find(ctx, &domain.Supplier{CompanyID: companyID},
		repository.WithOrder("created_at desc"))
	if err != nil {
		return nil, err
	}

	suppliers := make([]domain.Supplier, 0, len(items))
	for _, item := range items {
		suppliers = append(suppliers, *item)
	}
	return suppliers, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSupplierRequest) (domain.Supplier, error) {
	current, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return domain.Supplier{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		current.Name = name
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		current.Email = email
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		current.Phone = phone
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		current.Address = address
	}
	current.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, current.ID.String(), &current); err != nil {
		return domain.Supplier{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, strings.TrimSpace(id))
}
