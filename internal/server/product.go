package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	productdomain "github.com/invoicetradeai-create/bizzauto-project/internal/product/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
)

type createProductRequest struct {
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	PurchasePrice float64 `json:"purchase_price"`
	SalePrice     float64 `json:"sale_price"`
	StockQuantity int     `json:"stock_quantity"`
	LowStockAlert int     `json:"low_stock_alert"`
	Unit          string  `json:"unit"`
}

type updateProductRequest struct {
	Name          string   `json:"name"`
	SKU           string   `json:"sku"`
	Category      string   `json:"category"`
	PurchasePrice *float64 `json:"purchase_price"`
	SalePrice     *float64 `json:"sale_price"`
	LowStockAlert *int     `json:"low_stock_alert"`
	Unit          string   `json:"unit"`
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateProductRequest{
		Name:          strings.TrimSpace(req.Name),
		SKU:           strings.TrimSpace(req.SKU),
		Category:      strings.TrimSpace(req.Category),
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		StockQuantity: req.StockQuantity,
		LowStockAlert: req.LowStockAlert,
		Unit:          strings.TrimSpace(req.Unit),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name     string `form:"name"`
		Category string `form:"category"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.List(c.Request.Context(), productdomain.ListProductRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Name:      strings.TrimSpace(query.Name),
		Category:  strings.TrimSpace(query.Category),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLowStockProducts(c *gin.Context) {
	resp, err := s.productSvc.LowStock(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProductByID(c *gin.Context) {
	resp, err := s.productSvc.GetByID(c.Request.Context(), productdomain.GetProductRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Update(c.Request.Context(), productdomain.UpdateProductRequest{
		ID:            strings.TrimSpace(c.Param("id")),
		Name:          strings.TrimSpace(req.Name),
		SKU:           strings.TrimSpace(req.SKU),
		Category:      strings.TrimSpace(req.Category),
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		LowStockAlert: req.LowStockAlert,
		Unit:          strings.TrimSpace(req.Unit),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProductStock(c *gin.Context) {
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.UpdateStock(c.Request.Context(), productdomain.UpdateStockRequest{
		ID:       strings.TrimSpace(c.Param("id")),
		Quantity: *req.Quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	err := s.productSvc.Delete(c.Request.Context(), productdomain.DeleteProductRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isProductValidationError(err error) bool {
	switch err {
	case productdomain.ErrInvalidCompany,
		productdomain.ErrInvalidName,
		productdomain.ErrInvalidID,
		productdomain.ErrInvalidQuantity:
		return true
	default:
		return false
	}
}
