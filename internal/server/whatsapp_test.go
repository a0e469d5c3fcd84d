package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/invoicetradeai-create/bizzauto-project/internal/config"
)

func newWebhookRouter(srv *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/webhook/whatsapp", srv.VerifyWhatsappWebhook)
	return router
}

func TestVerifyWhatsappWebhookEchoesChallenge(t *testing.T) {
	srv := &Server{cfg: &config.Config{WhatsappVerifyToken: "secret"}}
	router := newWebhookRouter(srv)

	req := httptest.NewRequest(http.MethodGet, "/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=secret&hub.challenge=12345", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Body.String() != "12345" {
		t.Fatalf("expected challenge echoed back, got %q", resp.Body.String())
	}
}

func TestVerifyWhatsappWebhookRejectsBadToken(t *testing.T) {
	srv := &Server{cfg: &config.Config{WhatsappVerifyToken: "secret"}}
	router := newWebhookRouter(srv)

	req := httptest.NewRequest(http.MethodGet, "/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestVerifyWhatsappWebhookRejectsEmptyToken(t *testing.T) {
	srv := &Server{cfg: &config.Config{WhatsappVerifyToken: ""}}
	router := newWebhookRouter(srv)

	req := httptest.NewRequest(http.MethodGet, "/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=&hub.challenge=12345", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}
