package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/product/domain"
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
		log:  p.Log.Named("product.service"),
		repo: p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Product{}, domain.ErrInvalidCompany
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}
	if req.StockQuantity < 0 {
		return domain.Product{}, domain.ErrInvalidQuantity
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:            uuid.New(),
		CompanyID:     companyID,
		Name:          name,
		SKU:           strings.TrimSpace(req.SKU),
		Category:      strings.TrimSpace(req.Category),
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		StockQuantity: req.StockQuantity,
		LowStockAlert: req.LowStockAlert,
		Unit:          strings.TrimSpace(req.Unit),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetProductRequest) (domain.Product, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Product{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Product{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Product{}, err
	}
	if item == nil {
		return domain.Product{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListProductRequest) (domain.ListProductResponse, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.ListProductResponse{}, domain.ErrInvalidCompany
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, companyID, domain.ListProductFilter{
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListProductResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(product *domain.Product) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        product.ID.String(),
			CreatedAt: product.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, *item)
	}

	return domain.ListProductResponse{
		PageInfo: *pageInfo,
		Products: products,
	}, nil
}

func (s *Service) LowStock(ctx context.Context) ([]domain.Product, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return nil, domain.ErrInvalidCompany
	}

	items, err := s.repo.ListLowStock(ctx, s.db, companyID)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, *item)
	}
	return products, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProductRequest) (domain.Product, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Product{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Product{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Product{}, err
	}
	if item == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		item.Name = name
	}
	if sku := strings.TrimSpace(req.SKU); sku != "" {
		item.SKU = sku
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		item.Category = category
	}
	if req.PurchasePrice != nil {
		item.PurchasePrice = *req.PurchasePrice
	}
	if req.SalePrice != nil {
		item.SalePrice = *req.SalePrice
	}
	if req.LowStockAlert != nil {
		item.LowStockAlert = *req.LowStockAlert
	}
	if unit := strings.TrimSpace(req.Unit); unit != "" {
		item.Unit = unit
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Product{}, err
	}
	return *item, nil
}

func (s *Service) UpdateStock(ctx context.Context, req domain.UpdateStockRequest) (domain.Product, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Product{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Product{}, err
	}
	if req.Quantity < 0 {
		return domain.Product{}, domain.ErrInvalidQuantity
	}

	if err := s.repo.SetStock(ctx, s.db, companyID, id, req.Quantity); err != nil {
		return domain.Product{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Product{}, err
	}
	if item == nil {
		return domain.Product{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteProductRequest) error {
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
