package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Log is one WhatsApp message exchanged with a company's number.
type Log struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Phone     string    `gorm:"not null;index" json:"phone"`
	Direction string    `gorm:"not null" json:"direction"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Log) TableName() string { return "whatsapp_logs" }

type RecordLogRequest struct {
	Phone     string
	Direction string
	Message   string
}

type ListLogRequest struct {
	Phone string
	Limit int
}

type Service interface {
	Record(context.Context, RecordLogRequest) (Log, error)
	List(context.Context, ListLogRequest) ([]Log, error)
}

// Sender is the outbound message transport. The production implementation
// talks to the WhatsApp Cloud API; tests substitute a fake.
type Sender interface {
	SendText(ctx context.Context, phone, message string) error
}

var (
	ErrInvalidCompany   = errors.New("invalid_company")
	ErrInvalidPhone     = errors.New("invalid_phone")
	ErrInvalidDirection = errors.New("invalid_direction")
	ErrInvalidMessage   = errors.New("invalid_message")
)
