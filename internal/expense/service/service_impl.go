package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/expense/domain"
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
	store repository.Repository[domain.Expense]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("expense.service"),
		store: repository.ProvideStore[domain.Expense](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateExpenseRequest) (domain.Expense, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Expense{}, domain.ErrInvalidCompany
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		return domain.Expense{}, domain.ErrInvalidCategory
	}
	if req.Amount <= 0 {
		return domain.Expense{}, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	expenseDate := now
	if req.ExpenseDate != nil {
		expenseDate = *req.ExpenseDate
	}

	expense := domain.Expense{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Category:    category,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, &expense); err != nil {
		return domain.Expense{}, err
	}
	return expense, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Expense, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Expense{}, domain.ErrInvalidCompany
	}

	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return domain.Expense{}, domain.ErrInvalidID
	}

	item, err := s.store.FindOne(ctx, &domain.Expense{ID: parsed, CompanyID: companyID})
	if err != nil {
		return domain.Expense{}, err
	}
	if item == nil {
		return domain.Expense{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Expense, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return nil, domain.ErrInvalidCompany
	}

	items, err := s.store.Find(ctx, &domain.Expense{CompanyID: companyID},
		repository.WithOrder("expense_date desc"))
	if err != nil {
		return nil, err
	}

	expenses := make([]domain.Expense, 0, len(items))
	for _, item := range items {
		expenses = append(expenses, *item)
	}
	return expenses, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateExpenseRequest) (domain.Expense, error) {
	current, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return domain.Expense{}, err
	}

	if category := strings.TrimSpace(req.Category); category != "" {
		current.Category = category
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		current.Description = description
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return domain.Expense{}, domain.ErrInvalidAmount
		}
		current.Amount = *req.Amount
	}
	if req.ExpenseDate != nil {
		current.ExpenseDate = *req.ExpenseDate
	}
	current.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, current.ID.String(), &current); err != nil {
		return domain.Expense{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, strings.TrimSpace(id))
}
