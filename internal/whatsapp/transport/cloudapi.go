// Package transport implements the outbound WhatsApp Cloud API call.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/invoicetradeai-create/bizzauto-project/internal/config"
	"github.com/invoicetradeai-create/bizzauto-project/internal/whatsapp/domain"
)

const graphBaseURL = "https://graph.facebook.com/v19.0"

type cloudAPI struct {
	httpClient *http.Client
	log        *zap.Logger
	token      string
	phoneID    string
}

func NewSender(cfg *config.Config, log *zap.Logger) domain.Sender {
	return &cloudAPI{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log.Named("whatsapp.transport"),
		token:      cfg.WhatsappToken,
		phoneID:    cfg.WhatsappPhoneID,
	}
}

type textPayload struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

func (c *cloudAPI) SendText(ctx context.Context, phone, message string) error {
	payload := textPayload{
		MessagingProduct: "whatsapp",
		To:               phone,
		Type:             "text",
	}
	payload.Text.Body = message

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", graphBaseURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		c.log.Warn("whatsapp send failed",
			zap.Int("status", resp.StatusCode),
			zap.String("phone", phone))
		return fmt.Errorf("whatsapp send: unexpected status %d", resp.StatusCode)
	}
	return nil
}
