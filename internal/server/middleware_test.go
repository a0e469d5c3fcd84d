package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"
)

func newCompanyContextRouter(srv *Server, seen *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/protected", srv.CompanyContext(), func(c *gin.Context) {
		if id, ok := tenantctx.CompanyID(c.Request.Context()); ok {
			*seen = id
		}
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestCompanyContextMissingHeader(t *testing.T) {
	var seen uuid.UUID
	router := newCompanyContextRouter(&Server{}, &seen)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if seen != uuid.Nil {
		t.Fatal("expected handler not to run without a company header")
	}
}

func TestCompanyContextInvalidHeader(t *testing.T) {
	var seen uuid.UUID
	router := newCompanyContextRouter(&Server{}, &seen)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(companyIDHeader, "not-a-uuid")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCompanyContextValidHeader(t *testing.T) {
	var seen uuid.UUID
	router := newCompanyContextRouter(&Server{}, &seen)

	companyID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(companyIDHeader, companyID.String())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if seen != companyID {
		t.Fatalf("expected company %s in context, got %s", companyID, seen)
	}
}
