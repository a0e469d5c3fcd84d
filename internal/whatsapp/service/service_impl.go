package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/whatsapp/domain"
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
	store repository.Repository[domain.Log]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("whatsapp.service"),
		store: repository.ProvideStore[domain.Log](p.DB),
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordLogRequest) (domain.Log, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return domain.Log{}, domain.ErrInvalidCompany
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return domain.Log{}, domain.ErrInvalidPhone
	}
	if req.Direction != domain.DirectionInbound && req.Direction != domain.DirectionOutbound {
		return domain.Log{}, domain.ErrInvalidDirection
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return domain.Log{}, domain.ErrInvalidMessage
	}

	entry := domain.Log{
		ID:        uuid.New(),
		CompanyID: companyID,
		Phone:     phone,
		Direction: req.Direction,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, &entry); err != nil {
		return domain.Log{}, err
	}
	return entry, nil
}

func (s *Service) List(ctx context.Context, req domain.ListLogRequest) ([]domain.Log, error) {
	companyID, ok := tenantctx.CompanyID(ctx)
	if !ok {
		return nil, domain.ErrInvalidCompany
	}

	filter := &domain.Log{CompanyID: companyID}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		filter.Phone = phone
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}

	items, err := s.store.Find(ctx, filter,
		repository.WithOrder("created_at desc"),
		repository.WithLimit(limit))
	if err != nil {
		return nil, err
	}

	logs := make([]domain.Log, 0, len(items))
	for _, item := range items {
		logs = append(logs, *item)
	}
	return logs, nil
}
