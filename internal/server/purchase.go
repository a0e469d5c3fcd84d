package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	purchasedomain "github.com/invoicetradeai-create/bizzauto-project/internal/purchase/domain"
)

type purchaseItemRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type purchaseRequest struct {
	SupplierID   string                `json:"supplier_id"`
	PurchaseDate *time.Time            `json:"purchase_date"`
	Notes        string                `json:"notes"`
	Items        []purchaseItemRequest `json:"items"`
}

func (s *Server) CreatePurchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items := make([]purchasedomain.PurchaseItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, purchasedomain.PurchaseItemInput{
			ProductID: strings.TrimSpace(it.ProductID),
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	resp, err := s.purchaseSvc.Create(c.Request.Context(), purchasedomain.CreatePurchaseRequest{
		SupplierID:   strings.TrimSpace(req.SupplierID),
		PurchaseDate: req.PurchaseDate,
		Notes:        strings.TrimSpace(req.Notes),
		Items:        items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPurchases(c *gin.Context) {
	resp, err := s.purchaseSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPurchaseByID(c *gin.Context) {
	resp, err := s.purchaseSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePurchase(c *gin.Context) {
	if err := s.purchaseSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isPurchaseValidationError(err error) bool {
	switch err {
	case purchasedomain.ErrInvalidCompany,
		purchasedomain.ErrInvalidID,
		purchasedomain.ErrEmptyItems:
		return true
	default:
		return false
	}
}
