package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"
)

const companyIDHeader = "X-Company-ID"

// CompanyContext resolves the tenant from the X-Company-ID header and
// stores it in the request context. Every tenant-scoped route sits
// behind it; services refuse requests without a company in context.
func (s *Server) CompanyContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(companyIDHeader))
		if raw == "" {
			AbortWithError(c, newValidationError("company_id", "missing_company_id", "X-Company-ID header is required"))
			return
		}

		companyID, err := uuid.Parse(raw)
		if err != nil {
			AbortWithError(c, newValidationError("company_id", "invalid_company_id", "X-Company-ID must be a UUID"))
			return
		}

		ctx := tenantctx.WithCompanyID(c.Request.Context(), companyID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
