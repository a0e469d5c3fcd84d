package docpipe

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Upload lifecycle. PERSISTED and FAILED are terminal.
const (
	DocStatusReceived       = "RECEIVED"
	DocStatusTextRepaired   = "TEXT_REPAIRED"
	DocStatusClassified     = "CLASSIFIED"
	DocStatusItemsExtracted = "ITEMS_EXTRACTED"
	DocStatusReconciled     = "RECONCILED"
	DocStatusPersisted      = "PERSISTED"
	DocStatusFailed         = "FAILED"
)

// UploadedDoc tracks one uploaded file through the pipeline.
type UploadedDoc struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	FileName       string     `gorm:"not null" json:"file_name"`
	StoragePath    string     `gorm:"not null" json:"storage_path"`
	MimeType       string     `json:"mime_type,omitempty"`
	Status         string     `gorm:"not null;default:RECEIVED" json:"status"`
	FailureReason  string     `json:"failure_reason,omitempty"`
	// Warnings is the JSON array of non-fatal pipeline notes, kept so
	// the status endpoint can surface them after the job finishes.
	Warnings datatypes.JSON `json:"warnings,omitempty"`
	InvoiceID      *uuid.UUID `gorm:"type:uuid" json:"invoice_id,omitempty"`
	IdempotencyKey string     `gorm:"not null;index" json:"idempotency_key"`
	CreatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (UploadedDoc) TableName() string { return "uploaded_docs" }

// InventorySnapshot is the stock-report counterpart of an invoice. At most
// one snapshot per (company, source key) pair can exist.
type InventorySnapshot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_inventory_snapshots_company_source" json:"company_id"`
	SourceKey *string   `gorm:"uniqueIndex:idx_inventory_snapshots_company_source" json:"source_key,omitempty"`
	TakenAt   time.Time `gorm:"not null" json:"taken_at"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

type InventorySnapshotLine struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	SnapshotID uuid.UUID  `gorm:"type:uuid;not null;index" json:"snapshot_id"`
	ProductID  *uuid.UUID `gorm:"type:uuid" json:"product_id,omitempty"`
	Name       string     `gorm:"not null" json:"name"`
	Quantity   int        `gorm:"not null;default:0" json:"quantity"`
	CreatedAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
