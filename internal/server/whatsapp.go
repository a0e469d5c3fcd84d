package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	companydomain "github.com/invoicetradeai-create/bizzauto-project/internal/company/domain"
	wadomain "github.com/invoicetradeai-create/bizzauto-project/internal/whatsapp/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"
)

func (s *Server) ListWhatsappLogs(c *gin.Context) {
	var query struct {
		Phone string `form:"phone"`
		Limit int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.whatsappSvc.List(c.Request.Context(), wadomain.ListLogRequest{
		Phone: strings.TrimSpace(query.Phone),
		Limit: query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SendWhatsappMessage(c *gin.Context) {
	var req struct {
		To   string `json:"to"`
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	phone := strings.TrimSpace(req.To)
	body := strings.TrimSpace(req.Body)
	if phone == "" || body == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.sender.SendText(ctx, phone, body); err != nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	entry, err := s.whatsappSvc.Record(ctx, wadomain.RecordLogRequest{
		Phone:     phone,
		Direction: wadomain.DirectionOutbound,
		Message:   body,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entry})
}

// VerifyWhatsappWebhook answers Meta's subscription handshake.
func (s *Server) VerifyWhatsappWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == s.cfg.WhatsappVerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}

	AbortWithError(c, ErrForbidden)
}

// Meta webhook payload, reduced to the fields we read.
type whatsappWebhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// ReceiveWhatsappWebhook hands inbound messages to the catalog agent.
// Meta retries on non-2xx, so handling failures are logged and absorbed.
func (s *Server) ReceiveWhatsappWebhook(c *gin.Context) {
	var payload whatsappWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()

	// The webhook carries no tenant identifier; messages land on the
	// first registered company. TODO: map the receiving phone number ID
	// to a company once multiple tenants share this deployment.
	companies, err := s.companySvc.List(ctx, companydomain.ListCompanyRequest{PageSize: 1})
	if err != nil || len(companies.Companies) == 0 {
		s.log.Warn("webhook received with no registered company", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "success"})
		return
	}
	ctx = tenantctx.WithCompanyID(ctx, companies.Companies[0].ID)

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				text := strings.TrimSpace(msg.Text.Body)
				if msg.From == "" || text == "" {
					continue
				}
				if _, err := s.agentSvc.HandleMessage(ctx, msg.From, text); err != nil {
					s.log.Warn("agent failed to handle inbound message",
						zap.String("phone", msg.From),
						zap.Error(err),
					)
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func isWhatsappValidationError(err error) bool {
	switch err {
	case wadomain.ErrInvalidCompany,
		wadomain.ErrInvalidPhone,
		wadomain.ErrInvalidDirection,
		wadomain.ErrInvalidMessage:
		return true
	default:
		return false
	}
}
