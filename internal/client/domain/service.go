package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/pkg/db/pagination"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, client *Client) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) (*Client, error)
	FindByName(ctx context.Context, db *gorm.DB, companyID uuid.UUID, name string) (*Client, error)
	List(ctx context.Context, db *gorm.DB, companyID uuid.UUID, filter ListClientFilter, page pagination.Pagination) ([]*Client, error)
	Update(ctx context.Context, db *gorm.DB, client *Client) error
	Delete(ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) error
}

type CreateClientRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type UpdateClientRequest struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
}

type GetClientRequest struct {
	ID string
}

type DeleteClientRequest struct {
	ID string
}

type ListClientRequest struct {
	PageToken string
	PageSize  int
	Name      string
}

type ListClientFilter struct {
	Name string
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

type Service interface {
	Create(context.Context, CreateClientRequest) (Client, error)
	GetByID(context.Context, GetClientRequest) (Client, error)
	List(context.Context, ListClientRequest) (ListClientResponse, error)
	Update(context.Context, UpdateClientRequest) (Client, error)
	Delete(context.Context, DeleteClientRequest) error
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
