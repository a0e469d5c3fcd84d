package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/invoicetradeai-create/bizzauto-project/internal/client/domain"
	"github.com/invoicetradeai-create/bizzauto-project/internal/invoice/domain"
	productdomain "github.com/invoicetradeai-create/bizzauto-project/internal/product/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/rls"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Repo        domain.Repository
	ClientRepo  clientdomain.Repository
	ProductRepo productdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	repo        domain.Repository
	clientRepo  clientdomain.Repository
	productRepo productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("invoice.service"),
		repo:        p.Repo,
		clientRepo:  p.ClientRepo,
		productRepo: p.ProductRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Invoice{}, domain.ErrInvalidCompany
	}
	if len(req.Items) == 0 {
		return domain.Invoice{}, domain.ErrEmptyItems
	}

	clientID, err := uuid.Parse(strings.TrimSpace(req.ClientID))
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidClient
	}
	known, err := s.clientRepo.FindByID(ctx, s.db, companyID, clientID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if known == nil {
		return domain.Invoice{}, domain.ErrInvalidClient
	}

	status := strings.ToLower(strings.TrimSpace(req.PaymentStatus))
	if status == "" {
		status = domain.PaymentStatusUnpaid
	}
	if !domain.ValidPaymentStatus(status) {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	invoiceDate := now
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}

	invoice := domain.Invoice{
		ID:            uuid.New(),
		CompanyID:     companyID,
		ClientID:      &clientID,
		InvoiceDate:   invoiceDate,
		PaymentStatus: status,
		Notes:         strings.TrimSpace(req.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	items, err := s.buildItems(companyID, invoice.ID, req.Items, now)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice.TotalAmount = domain.ItemsTotal(items)
	invoice.Items = items

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.WithCompany(tx, companyID); err != nil {
			return err
		}
		if _, err := s.repo.Insert(ctx, tx, &invoice); err != nil {
			return err
		}
		for i := range items {
			if err := s.repo.InsertItem(ctx, tx, &items[i]); err != nil {
				return err
			}
			if items[i].ProductID != nil {
				if err := s.productRepo.AdjustStock(ctx, tx, companyID, *items[i].ProductID, -items[i].Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	return invoice, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInvoiceRequest) (domain.Invoice, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Invoice{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, companyID, invoice.ID)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice.Items = items
	return *invoice, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.ListInvoiceResponse{}, domain.ErrInvalidCompany
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, companyID, domain.ListInvoiceFilter{
		PaymentStatus: strings.ToLower(strings.TrimSpace(req.PaymentStatus)),
		ClientID:      strings.TrimSpace(req.ClientID),
		DateFrom:      req.DateFrom,
		DateTo:        req.DateTo,
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(invoice *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        invoice.ID.String(),
			CreatedAt: invoice.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		invoices = append(invoices, *item)
	}

	return domain.ListInvoiceResponse{
		PageInfo: *pageInfo,
		Invoices: invoices,
	}, nil
}

// Update patches header fields and, when req.Items is present, replaces
// every item row. Items are never partially patched.
func (s *Service) Update(ctx context.Context, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Invoice{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	if clientID := strings.TrimSpace(req.ClientID); clientID != "" {
		parsed, err := uuid.Parse(clientID)
		if err != nil {
			return domain.Invoice{}, domain.ErrInvalidClient
		}
		invoice.ClientID = &parsed
	}
	if req.InvoiceDate != nil {
		invoice.InvoiceDate = *req.InvoiceDate
	}
	if status := strings.ToLower(strings.TrimSpace(req.PaymentStatus)); status != "" {
		if !domain.ValidPaymentStatus(status) {
			return domain.Invoice{}, domain.ErrInvalidStatus
		}
		invoice.PaymentStatus = status
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		invoice.Notes = notes
	}
	invoice.UpdatedAt = time.Now().UTC()

	var items []domain.InvoiceItem
	if req.Items != nil {
		items, err = s.buildItems(companyID, invoice.ID, req.Items, invoice.UpdatedAt)
		if err != nil {
			return domain.Invoice{}, err
		}
		invoice.TotalAmount = domain.ItemsTotal(items)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.WithCompany(tx, companyID); err != nil {
			return err
		}
		if req.Items != nil {
			if err := s.repo.DeleteItems(ctx, tx, companyID, invoice.ID); err != nil {
				return err
			}
			for i := range items {
				if err := s.repo.InsertItem(ctx, tx, &items[i]); err != nil {
					return err
				}
			}
		}
		return s.repo.Update(ctx, tx, invoice)
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	if req.Items == nil {
		items, err = s.repo.ListItems(ctx, s.db, companyID, invoice.ID)
		if err != nil {
			return domain.Invoice{}, err
		}
	}
	invoice.Items = items
	return *invoice, nil
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteInvoiceRequest) error {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.WithCompany(tx, companyID); err != nil {
			return err
		}
		if err := s.repo.DeleteItems(ctx, tx, companyID, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, companyID, id)
	})
}

func (s *Service) buildItems(companyID, invoiceID uuid.UUID, inputs []domain.InvoiceItemInput, now time.Time) ([]domain.InvoiceItem, error) {
	items := make([]domain.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		desc := strings.TrimSpace(in.Description)
		if desc == "" {
			return nil, domain.ErrEmptyItems
		}
		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}

		item := domain.InvoiceItem{
			ID:          uuid.New(),
			CompanyID:   companyID,
			InvoiceID:   invoiceID,
			Description: desc,
			Quantity:    qty,
			Price:       in.Price,
			Total:       in.Price * float64(qty),
			CreatedAt:   now,
		}
		if productID := strings.TrimSpace(in.ProductID); productID != "" {
			parsed, err := uuid.Parse(productID)
			if err != nil {
				return nil, domain.ErrInvalidID
			}
			item.ProductID = &parsed
		}
		items = append(items, item)
	}
	return items, nil
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}
