package domain

import (
	"context"
	"errors"
	"time"

	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
)

type InvoiceItemInput struct {
	ProductID   string
	Description string
	Quantity    int
	Price       float64
}

type CreateInvoiceRequest struct {
	ClientID      string
	InvoiceDate   *time.Time
	PaymentStatus string
	Notes         string
	Items         []InvoiceItemInput
}

type UpdateInvoiceRequest struct {
	ID            string
	ClientID      string
	InvoiceDate   *time.Time
	PaymentStatus string
	Notes         string
	// Items, when present, replace the existing rows entirely.
	Items []InvoiceItemInput
}

type GetInvoiceRequest struct {
	ID string
}

type DeleteInvoiceRequest struct {
	ID string
}

type ListInvoiceRequest struct {
	PageToken     string
	PageSize      int
	PaymentStatus string
	ClientID      string
	DateFrom      *time.Time
	DateTo        *time.Time
}

type ListInvoiceFilter struct {
	PaymentStatus string
	ClientID      string
	DateFrom      *time.Time
	DateTo        *time.Time
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)
	GetByID(context.Context, GetInvoiceRequest) (Invoice, error)
	List(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
	Update(context.Context, UpdateInvoiceRequest) (Invoice, error)
	Delete(context.Context, DeleteInvoiceRequest) error
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidClient  = errors.New("invalid_client")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrEmptyItems     = errors.New("empty_items")
	ErrNotFound       = errors.New("not_found")
)

func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}
