package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/invoicetradeai-create/bizzauto-project/internal/invoice/domain"
	"github.com/invoicetradeai-create/bizzauto-project/internal/providers/pdf"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"

	companydomain "github.com/invoicetradeai-create/bizzauto-project/internal/company/domain"
	clientdomain "github.com/invoicetradeai-create/bizzauto-project/internal/client/domain"
)

type invoiceItemRequest struct {
	ProductID   string  `json:"product_id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type invoiceRequest struct {
	ClientID      string               `json:"client_id"`
	InvoiceDate   *time.Time           `json:"invoice_date"`
	PaymentStatus string               `json:"payment_status"`
	Notes         string               `json:"notes"`
	Items         []invoiceItemRequest `json:"items"`
}

func toItemInputs(items []invoiceItemRequest) []invoicedomain.InvoiceItemInput {
	if items == nil {
		return nil
	}
	inputs := make([]invoicedomain.InvoiceItemInput, 0, len(items))
	for _, it := range items {
		inputs = append(inputs, invoicedomain.InvoiceItemInput{
			ProductID:   strings.TrimSpace(it.ProductID),
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return inputs
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		ClientID:      strings.TrimSpace(req.ClientID),
		InvoiceDate:   req.InvoiceDate,
		PaymentStatus: strings.TrimSpace(req.PaymentStatus),
		Notes:         strings.TrimSpace(req.Notes),
		Items:         toItemInputs(req.Items),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		PaymentStatus string `form:"payment_status"`
		ClientID      string `form:"client_id"`
		DateFrom      string `form:"date_from"`
		DateTo        string `form:"date_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	dateFrom, err := parseOptionalTime(query.DateFrom, false)
	if err != nil {
		AbortWithError(c, newValidationError("date_from", "invalid_date_from", "invalid date_from"))
		return
	}
	dateTo, err := parseOptionalTime(query.DateTo, true)
	if err != nil {
		AbortWithError(c, newValidationError("date_to", "invalid_date_to", "invalid date_to"))
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		PageToken:     query.PageToken,
		PageSize:      query.PageSize,
		PaymentStatus: strings.TrimSpace(query.PaymentStatus),
		ClientID:      strings.TrimSpace(query.ClientID),
		DateFrom:      dateFrom,
		DateTo:        dateTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), invoicedomain.GetInvoiceRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), invoicedomain.UpdateInvoiceRequest{
		ID:            strings.TrimSpace(c.Param("id")),
		ClientID:      strings.TrimSpace(req.ClientID),
		InvoiceDate:   req.InvoiceDate,
		PaymentStatus: strings.TrimSpace(req.PaymentStatus),
		Notes:         strings.TrimSpace(req.Notes),
		Items:         toItemInputs(req.Items),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	err := s.invoiceSvc.Delete(c.Request.Context(), invoicedomain.DeleteInvoiceRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

// RenderInvoice streams the invoice as a PDF.
func (s *Server) RenderInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	inv, err := s.invoiceSvc.GetByID(ctx, invoicedomain.GetInvoiceRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := pdf.InvoiceData{
		InvoiceNumber: inv.ID.String(),
		InvoiceDate:   inv.InvoiceDate.Format("2006-01-02"),
		PaymentStatus: inv.PaymentStatus,
		Notes:         inv.Notes,
		Total:         fmt.Sprintf("%.2f", inv.TotalAmount),
	}

	if companyID, ok := tenantctx.CompanyID(ctx); ok {
		if comp, err := s.companySvc.GetByID(ctx, companydomain.GetCompanyRequest{ID: companyID.String()}); err == nil {
			data.CompanyName = comp.Name
			data.CompanyAddress = comp.Address
			data.CompanyEmail = comp.Email
			data.CompanyPhone = comp.Phone
		}
	}
	if inv.ClientID != nil {
		if cl, err := s.clientSvc.GetByID(ctx, clientdomain.GetClientRequest{ID: inv.ClientID.String()}); err == nil {
			data.BillToName = cl.Name
			data.BillToAddress = cl.Address
			data.BillToEmail = cl.Email
		}
	}

	for _, it := range inv.Items {
		data.Items = append(data.Items, pdf.InvoiceItem{
			Description: it.Description,
			Qty:         it.Quantity,
			UnitPrice:   fmt.Sprintf("%.2f", it.Price),
			Amount:      fmt.Sprintf("%.2f", it.Total),
		})
	}

	reader, err := s.pdf.GenerateInvoice(ctx, data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", inv.ID))
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}

func isInvoiceValidationError(err error) bool {
	switch err {
	case invoicedomain.ErrInvalidCompany,
		invoicedomain.ErrInvalidClient,
		invoicedomain.ErrInvalidID,
		invoicedomain.ErrInvalidStatus,
		invoicedomain.ErrEmptyItems:
		return true
	default:
		return false
	}
}
