package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/genai"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/config"
	productdomain "github.com/invoicetradeai-create/bizzauto-project/internal/product/domain"
	wadomain "github.com/invoicetradeai-create/bizzauto-project/internal/whatsapp/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"
)

var (
	ErrUnavailable    = errors.New("agent_unavailable")
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidMessage = errors.New("invalid_message")
)

const catalogContextLimit = 200

const systemInstruction = `You are a WhatsApp assistant for a small business.
Answer questions about products, prices and stock levels using only the
catalog below. If an item is not in the catalog, say so. Respond in short,
friendly text without markdown.`

// Service answers inbound WhatsApp messages about the product catalog.
type Service interface {
	// HandleMessage records the inbound message, generates a reply from
	// the catalog, sends it back to the same phone and records it.
	HandleMessage(ctx context.Context, phone, text string) (string, error)
}

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Cfg         *config.Config
	Sessions    *SessionStore
	ProductRepo productdomain.Repository
	Whatsapp    wadomain.Service
	Sender      wadomain.Sender
}

type service struct {
	db          *gorm.DB
	log         *zap.Logger
	model       string
	genai       *genai.Client
	sessions    *SessionStore
	productRepo productdomain.Repository
	whatsapp    wadomain.Service
	sender      wadomain.Sender
}

// New builds the agent. The generative client is created once here so
// handlers never construct one per message; when no API key is
// configured the agent stays up but refuses messages.
func New(p Params) (Service, error) {
	s := &service{
		db:          p.DB,
		log:         p.Log.Named("agent.service"),
		model:       p.Cfg.GeminiModel,
		sessions:    p.Sessions,
		productRepo: p.ProductRepo,
		whatsapp:    p.Whatsapp,
		sender:      p.Sender,
	}

	if p.Cfg.GeminiAPIKey == "" {
		s.log.Warn("GEMINI_API_KEY not set, whatsapp agent disabled")
		return s, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  p.Cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			APIVersion: "v1",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	s.genai = client
	return s, nil
}

func (s *service) HandleMessage(ctx context.Context, phone, text string) (string, error) {
	if _, ok := tenantctx.CompanyID(ctx); !ok {
		return "", ErrInvalidCompany
	}
	phone = strings.TrimSpace(phone)
	text = strings.TrimSpace(text)
	if phone == "" || text == "" {
		return "", ErrInvalidMessage
	}

	if _, err := s.whatsapp.Record(ctx, wadomain.RecordLogRequest{
		Phone:     phone,
		Direction: wadomain.DirectionInbound,
		Message:   text,
	}); err != nil {
		s.log.Warn("record inbound message", zap.Error(err))
	}

	reply, err := s.answer(ctx, phone, text)
	if err != nil {
		return "", err
	}

	if err := s.sender.SendText(ctx, phone, reply); err != nil {
		return "", fmt.Errorf("send reply: %w", err)
	}
	if _, err := s.whatsapp.Record(ctx, wadomain.RecordLogRequest{
		Phone:     phone,
		Direction: wadomain.DirectionOutbound,
		Message:   reply,
	}); err != nil {
		s.log.Warn("record outbound message", zap.Error(err))
	}
	return reply, nil
}

func (s *service) answer(ctx context.Context, phone, text string) (string, error) {
	if s.genai == nil {
		return "", ErrUnavailable
	}
	companyID, _ := tenantctx.CompanyID(ctx)

	catalog, err := s.catalogContext(ctx)
	if err != nil {
		return "", fmt.Errorf("load catalog: %w", err)
	}

	history, err := s.sessions.History(ctx, companyID, phone)
	if err != nil {
		s.log.Warn("load agent session", zap.Error(err))
		history = nil
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, &genai.Content{
			Role:  turn.Role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	contents = append(contents, &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: systemInstruction + "\n\nCatalog:\n" + catalog + "\n\nCustomer: " + text},
		},
	})

	resp, err := s.genai.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		s.log.Error("generate agent reply", zap.Error(err))
		return "", ErrUnavailable
	}
	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", ErrUnavailable
	}

	if err := s.sessions.Append(ctx, companyID, phone,
		Turn{Role: "user", Text: text},
		Turn{Role: "model", Text: reply},
	); err != nil {
		s.log.Warn("persist agent session", zap.Error(err))
	}
	return reply, nil
}

// catalogContext renders the tenant's products as one line per item so
// the model answers from real stock numbers rather than guesses.
func (s *service) catalogContext(ctx context.Context) (string, error) {
	companyID, _ := tenantctx.CompanyID(ctx)
	products, err := s.productRepo.List(ctx, s.db, companyID, productdomain.ListProductFilter{}, pagination.Pagination{
		PageSize: catalogContextLimit,
	})
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return "(catalog is empty)", nil
	}

	var b strings.Builder
	for _, p := range products {
		fmt.Fprintf(&b, "- %s: %d in stock, price %.2f", p.Name, p.StockQuantity, p.SalePrice)
		if p.LowStockAlert > 0 && p.StockQuantity <= p.LowStockAlert {
			b.WriteString(" (low stock)")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
