// Package docpipe turns OCR text into persisted invoices or inventory
// snapshots. It is the single write path for documents recovered from
// uploads; retried deliveries are absorbed by the idempotency key.
package docpipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/invoicetradeai-create/bizzauto-project/internal/client/domain"
	invoicedomain "github.com/invoicetradeai-create/bizzauto-project/internal/invoice/domain"
	"github.com/invoicetradeai-create/bizzauto-project/internal/parsing"
	productdomain "github.com/invoicetradeai-create/bizzauto-project/internal/product/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/rls"
)

type Status string

const (
	StatusPersisted Status = "PERSISTED"
	StatusFailed    Status = "FAILED"
)

// ParseResult is what every caller of ParseAndPersist receives. There is
// no error return; failures are carried in Status and FailureReason.
type ParseResult struct {
	Status         Status     `json:"status"`
	InvoiceID      *uuid.UUID `json:"invoice_id,omitempty"`
	ItemsProcessed int        `json:"items_processed"`
	Warnings       []string   `json:"warnings,omitempty"`
	FailureReason  string     `json:"failure_reason,omitempty"`
}

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	InvoiceRepo invoicedomain.Repository
	ClientRepo  clientdomain.Repository
	ProductRepo productdomain.Repository
}

type Processor struct {
	db          *gorm.DB
	log         *zap.Logger
	extractor   *parsing.Extractor
	invoiceRepo invoicedomain.Repository
	clientRepo  clientdomain.Repository
	productRepo productdomain.Repository
}

func NewProcessor(p Params) *Processor {
	log := p.Log.Named("docpipe.processor")
	return &Processor{
		db:          p.DB,
		log:         log,
		extractor:   parsing.NewExtractor(log),
		invoiceRepo: p.InvoiceRepo,
		clientRepo:  p.ClientRepo,
		productRepo: p.ProductRepo,
	}
}

// ParseAndPersist runs the whole pipeline over already-extracted OCR text.
// The OCR call itself happens upstream; no external network call is made
// while the database transaction is open.
func (p *Processor) ParseAndPersist(ctx context.Context, rawText string, companyID uuid.UUID, idempotencyKey string) ParseResult {
	log := p.log.With(
		zap.String("company_id", companyID.String()),
		zap.String("idempotency_key", idempotencyKey),
	)

	parse := p.extractor.Parse(rawText)
	doc := parse.Document
	warnings := parse.Warnings
	log.Debug("document parsed",
		zap.String("format", string(doc.Format)),
		zap.Int("lines", len(parse.Lines)),
		zap.Int("items", len(doc.Items)))

	if len(doc.Items) == 1 && parsing.IsPlaceholderItem(doc.Items[0]) && doc.DeclaredTotal == 0 {
		return ParseResult{
			Status:         StatusFailed,
			ItemsProcessed: 1,
			Warnings:       warnings,
			FailureReason:  ErrNoItemsExtracted.Error(),
		}
	}

	if doc.Format == parsing.FormatInventoryReport {
		return p.persistSnapshot(ctx, log, companyID, idempotencyKey, doc, warnings)
	}
	return p.persistInvoice(ctx, log, companyID, idempotencyKey, parse, warnings)
}

func (p *Processor) persistInvoice(ctx context.Context, log *zap.Logger, companyID uuid.UUID, idempotencyKey string, parse parsing.Result, warnings []string) ParseResult {
	doc := parse.Document
	now := time.Now().UTC()

	var (
		invoiceID uuid.UUID
		conflict  bool
		matched   int
	)
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.WithCompany(tx, companyID); err != nil {
			return err
		}
		clientID, err := p.resolveClient(ctx, tx, companyID, parse.Lines)
		if err != nil {
			return err
		}
		if clientID == nil {
			return ErrClientUnresolved
		}

		matched, err = p.resolveItems(ctx, tx, companyID, doc.Items)
		if err != nil {
			return err
		}

		// Catalog prices may have filled in zero-price items; the total
		// invariant holds only against the recomputed item sum unless the
		// document declared its own.
		total := doc.DeclaredTotal
		if explicit, ok := parsing.ExtractDeclaredTotal(parse.Lines); !ok || explicit == 0 {
			total = parsing.ItemsTotal(doc.Items)
		}

		invoiceDate := now
		if doc.Date != nil {
			invoiceDate = *doc.Date
		}

		invoice := invoicedomain.Invoice{
			ID:            uuid.New(),
			CompanyID:     companyID,
			ClientID:      clientID,
			InvoiceDate:   invoiceDate,
			TotalAmount:   total,
			PaymentStatus: invoicedomain.PaymentStatusUnpaid,
			Notes:         "created from uploaded document",
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if idempotencyKey != "" {
			key := idempotencyKey
			invoice.SourceKey = &key
		}

		inserted, err := p.invoiceRepo.Insert(ctx, tx, &invoice)
		if err != nil {
			return err
		}
		if !inserted {
			existing, err := p.invoiceRepo.FindBySourceKey(ctx, tx, companyID, idempotencyKey)
			if err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("idempotent insert reported conflict but no invoice found for key %q", idempotencyKey)
			}
			invoiceID = existing.ID
			conflict = true
			return nil
		}
		invoiceID = invoice.ID

		for _, item := range doc.Items {
			row := invoicedomain.InvoiceItem{
				ID:          uuid.New(),
				CompanyID:   companyID,
				InvoiceID:   invoice.ID,
				ProductID:   item.MatchedProductID,
				Description: item.Name,
				Quantity:    item.Quantity,
				Price:       item.UnitPrice,
				Total:       item.LineTotal,
				CreatedAt:   now,
			}
			if err := p.invoiceRepo.InsertItem(ctx, tx, &row); err != nil {
				return err
			}
			if item.MatchedProductID != nil {
				if err := p.productRepo.AdjustStock(ctx, tx, companyID, *item.MatchedProductID, -item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrClientUnresolved) {
			log.Info("client unresolved, document left for manual linking")
			return ParseResult{
				Status:         StatusFailed,
				ItemsProcessed: len(doc.Items),
				Warnings:       warnings,
				FailureReason:  ErrClientUnresolved.Error(),
			}
		}
		log.Error("invoice persistence rolled back", zap.Error(err))
		return ParseResult{
			Status:         StatusFailed,
			ItemsProcessed: len(doc.Items),
			Warnings:       warnings,
			FailureReason:  err.Error(),
		}
	}

	if conflict {
		warnings = append(warnings, "document already persisted, returning existing invoice")
	}
	if unmatched := len(doc.Items) - matched; unmatched > 0 && !conflict {
		warnings = append(warnings, fmt.Sprintf("%d items unmatched to catalog", unmatched))
	}

	id := invoiceID
	return ParseResult{
		Status:         StatusPersisted,
		InvoiceID:      &id,
		ItemsProcessed: len(doc.Items),
		Warnings:       warnings,
	}
}

func (p *Processor) persistSnapshot(ctx context.Context, log *zap.Logger, companyID uuid.UUID, idempotencyKey string, doc parsing.Document, warnings []string) ParseResult {
	now := time.Now().UTC()
	takenAt := now
	if doc.Date != nil {
		takenAt = *doc.Date
	}

	var (
		conflict  bool
		unmatched int
	)
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.WithCompany(tx, companyID); err != nil {
			return err
		}
		snapshotID := uuid.New()

		query := `INSERT INTO inventory_snapshots (id, company_id, source_key, taken_at, created_at)
			 VALUES (?, ?, ?, ?, ?)`
		var sourceKey *string
		if idempotencyKey != "" {
			sourceKey = &idempotencyKey
			query += ` ON CONFLICT (company_id, source_key) DO NOTHING`
		}
		result := tx.WithContext(ctx).Exec(query, snapshotID, companyID, sourceKey, takenAt, now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			conflict = true
			return nil
		}

		for _, item := range doc.Items {
			product, err := p.productRepo.FindByName(ctx, tx, companyID, item.Name)
			if err != nil {
				return err
			}

			line := InventorySnapshotLine{
				ID:         uuid.New(),
				CompanyID:  companyID,
				SnapshotID: snapshotID,
				Name:       item.Name,
				Quantity:   item.Quantity,
				CreatedAt:  now,
			}
			if product != nil {
				id := product.ID
				line.ProductID = &id
				if err := p.productRepo.SetStock(ctx, tx, companyID, product.ID, item.Quantity); err != nil {
					return err
				}
			} else {
				unmatched++
			}

			err = tx.WithContext(ctx).Exec(
				`INSERT INTO inventory_snapshot_lines (id, company_id, snapshot_id, product_id, name, quantity, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				line.ID, line.CompanyID, line.SnapshotID, line.ProductID, line.Name, line.Quantity, line.CreatedAt,
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("snapshot persistence rolled back", zap.Error(err))
		return ParseResult{
			Status:         StatusFailed,
			ItemsProcessed: len(doc.Items),
			Warnings:       warnings,
			FailureReason:  err.Error(),
		}
	}

	if conflict {
		warnings = append(warnings, "snapshot already persisted for this document")
	}
	// An unmatched inventory line is reported but never fails the batch.
	if unmatched > 0 {
		warnings = append(warnings, fmt.Sprintf("%d inventory lines unmatched to catalog", unmatched))
	}

	return ParseResult{
		Status:         StatusPersisted,
		ItemsProcessed: len(doc.Items),
		Warnings:       warnings,
	}
}
