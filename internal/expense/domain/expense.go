package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Category    string    `gorm:"not null" json:"category"`
	Description string    `json:"description,omitempty"`
	Amount      float64   `gorm:"not null" json:"amount"`
	ExpenseDate time.Time `gorm:"not null" json:"expense_date"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type CreateExpenseRequest struct {
	Category    string
	Description string
	Amount      float64
	ExpenseDate *time.Time
}

type UpdateExpenseRequest struct {
	ID          string
	Category    string
	Description string
	Amount      *float64
	ExpenseDate *time.Time
}

type Service interface {
	Create(context.Context, CreateExpenseRequest) (Expense, error)
	GetByID(ctx context.Context, id string) (Expense, error)
	List(ctx context.Context) ([]Expense, error)
	Update(context.Context, UpdateExpenseRequest) (Expense, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidCompany  = errors.New("invalid_company")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
