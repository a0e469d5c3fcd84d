package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	productdomain "github.com/invoicetradeai-create/bizzauto-project/internal/product/domain"
	"github.com/invoicetradeai-create/bizzauto-project/internal/purchase/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/repository"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/rls"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	ProductRepo productdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	store       repository.Repository[domain.Purchase]
	itemStore   repository.Repository[domain.PurchaseItem]
	productRepo productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("purchase.service"),
		store:       repository.ProvideStore[domain.Purchase](p.DB),
		itemStore:   repository.ProvideStore[domain.PurchaseItem](p.DB),
		productRepo: p.ProductRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePurchaseRequest) (domain.Purchase, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Purchase{}, domain.ErrInvalidCompany
	}
	if len(req.Items) == 0 {
		return domain.Purchase{}, domain.ErrEmptyItems
	}

	now := time.Now().UTC()
	purchaseDate := now
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	purchase := domain.Purchase{
		ID:            uuid.New(),
		CompanyID:     companyID,
		PurchaseDate:  purchaseDate,
		PaymentStatus: "unpaid",
		Notes:         strings.TrimSpace(req.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if supplierID := strings.TrimSpace(req.SupplierID); supplierID != "" {
		parsed, err := uuid.Parse(supplierID)
		if err != nil {
			return domain.Purchase{}, domain.ErrInvalidID
		}
		purchase.SupplierID = &parsed
	}

	items := make([]*domain.PurchaseItem, 0, len(req.Items))
	for _, in := range req.Items {
		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}
		item := &domain.PurchaseItem{
			ID:         uuid.New(),
			CompanyID:  companyID,
			PurchaseID: purchase.ID,
			Quantity:   qty,
			Price:      in.Price,
			Total:      in.Price * float64(qty),
			CreatedAt:  now,
		}
		if productID := strings.TrimSpace(in.ProductID); productID != "" {
			parsed, err := uuid.Parse(productID)
			if err != nil {
				return domain.Purchase{}, domain.ErrInvalidID
			}
			item.ProductID = &parsed
		}
		purchase.TotalAmount += item.Total
		items = append(items, item)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.WithCompany(tx, companyID); err != nil {
			return err
		}
		if err := s.store.WithTrx(tx).Create(ctx, &purchase); err != nil {
			return err
		}
		if err := s.itemStore.WithTrx(tx).BatchCreate(ctx, items); err != nil {
			return err
		}
		for _, item := range items {
			if item.ProductID == nil {
				continue
			}
			if err := s.productRepo.AdjustStock(ctx, tx, companyID, *item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Purchase{}, err
	}

	for _, item := range items {
		purchase.Items = append(purchase.Items, *item)
	}
	return purchase, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Purchase, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Purchase{}, domain.ErrInvalidCompany
	}

	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return domain.Purchase{}, domain.ErrInvalidID
	}

	purchase, err := s.store.FindOne(ctx, &domain.Purchase{ID: parsed, CompanyID: companyID})
	if err != nil {
		return domain.Purchase{}, err
	}
	if purchase == nil {
		return domain.Purchase{}, domain.ErrNotFound
	}

	items, err := s.itemStore.Find(ctx, &domain.PurchaseItem{CompanyID: companyID, PurchaseID: purchase.ID},
		repository.WithOrder("created_at asc"))
	if err != nil {
		return domain.Purchase{}, err
	}
	for _, item := range items {
		purchase.Items = append(purchase.Items, *item)
	}
	return *purchase, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Purchase, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return nil, domain.ErrInvalidCompany
	}

	items, err := s.store.Find(ctx, &domain.Purchase{CompanyID: companyID},
		repository.WithOrder("created_at desc"))
	if err != nil {
		return nil, err
	}

	purchases := make([]domain.Purchase, 0, len(items))
	for _, item := range items {
		purchases = append(purchases, *item)
	}
	return purchases, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.ErrInvalidCompany
	}

	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.WithCompany(tx, companyID); err != nil {
			return err
		}
		if err := s.itemStore.WithTrx(tx).DeleteWhere(ctx, "company_id = ? AND purchase_id = ?", companyID, parsed); err != nil {
			return err
		}
		return s.store.WithTrx(tx).DeleteWhere(ctx, "company_id = ? AND id = ?", companyID, parsed)
	})
}
