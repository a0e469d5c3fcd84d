package domain

import (
	"context"
	"errors"

	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
)

type CreateCompanyRequest struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Currency string
}

type UpdateCompanyRequest struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Address  string
	Currency string
}

type GetCompanyRequest struct {
	ID string
}

type ListCompanyRequest struct {
	PageToken string
	PageSize  int
	Name      string
}

type ListCompanyFilter struct {
	Name string
}

type ListCompanyResponse struct {
	pagination.PageInfo
	Companies []Company `json:"companies"`
}

type Service interface {
	Create(context.Context, CreateCompanyRequest) (Company, error)
	GetByID(context.Context, GetCompanyRequest) (Company, error)
	List(context.Context, ListCompanyRequest) (ListCompanyResponse, error)
	Update(context.Context, UpdateCompanyRequest) (Company, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
