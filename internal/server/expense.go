package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	expensedomain "github.com/invoicetradeai-create/bizzauto-project/internal/expense/domain"
)

type createExpenseRequest struct {
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	ExpenseDate *time.Time `json:"expense_date"`
}

type updateExpenseRequest struct {
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Amount      *float64   `json:"amount"`
	ExpenseDate *time.Time `json:"expense_date"`
}

func (s *Server) CreateExpense(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.expenseSvc.Create(c.Request.Context(), expensedomain.CreateExpenseRequest{
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		ExpenseDate: req.ExpenseDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListExpenses(c *gin.Context) {
	resp, err := s.expenseSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetExpenseByID(c *gin.Context) {
	resp, err := s.expenseSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateExpense(c *gin.Context) {
	var req updateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.expenseSvc.Update(c.Request.Context(), expensedomain.UpdateExpenseRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		ExpenseDate: req.ExpenseDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteExpense(c *gin.Context) {
	if err := s.expenseSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isExpenseValidationError(err error) bool {
	switch err {
	case expensedomain.ErrInvalidCompany,
		expensedomain.ErrInvalidCategory,
		expensedomain.ErrInvalidAmount,
		expensedomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
