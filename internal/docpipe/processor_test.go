package docpipe

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/invoicetradeai-create/bizzauto-project/internal/client/domain"
	clientrepository "github.com/invoicetradeai-create/bizzauto-project/internal/client/repository"
	invoicedomain "github.com/invoicetradeai-create/bizzauto-project/internal/invoice/domain"
	invoicerepository "github.com/invoicetradeai-create/bizzauto-project/internal/invoice/repository"
	productdomain "github.com/invoicetradeai-create/bizzauto-project/internal/product/domain"
	productrepository "github.com/invoicetradeai-create/bizzauto-project/internal/product/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&clientdomain.Client{},
		&productdomain.Product{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&UploadedDoc{},
		&InventorySnapshot{},
		&InventorySnapshotLine{},
	)
	require.NoError(t, err)
	return db
}

func newTestProcessor(db *gorm.DB) *Processor {
	return NewProcessor(Params{
		DB:          db,
		Log:         zap.NewNop(),
		InvoiceRepo: invoicerepository.Provide(),
		ClientRepo:  clientrepository.Provide(),
		ProductRepo: productrepository.Provide(),
	})
}

func seedClient(t *testing.T, db *gorm.DB, companyID uuid.UUID, name string) clientdomain.Client {
	t.Helper()
	client := clientdomain.Client{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&client).Error)
	return client
}

func seedProduct(t *testing.T, db *gorm.DB, companyID uuid.UUID, name string, salePrice float64, stock int) productdomain.Product {
	t.Helper()
	product := productdomain.Product{
		ID:            uuid.New(),
		CompanyID:     companyID,
		Name:          name,
		SalePrice:     salePrice,
		StockQuantity: stock,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

const invoiceText = "Invoice Date: 03/05/2024\nBill To\nAcme Corp\nWidget A  2  10.00\nTotal $20.00"

func TestParseAndPersist_SimpleInvoice(t *testing.T) {
	db := newTestDB(t)
	p := newTestProcessor(db)
	companyID := uuid.New()
	client := seedClient(t, db, companyID, "Acme Corp")
	product := seedProduct(t, db, companyID, "Widget A", 10.00, 10)

	res := p.ParseAndPersist(context.Background(), invoiceText, companyID, "upload-1")

	assert.Equal(t, StatusPersisted, res.Status)
	require.NotNil(t, res.InvoiceID)
	assert.Equal(t, 1, res.ItemsProcessed)

	var invoice invoicedomain.Invoice
	require.NoError(t, db.First(&invoice, "id = ?", *res.InvoiceID).Error)
	assert.Equal(t, companyID, invoice.CompanyID)
	require.NotNil(t, invoice.ClientID)
	assert.Equal(t, client.ID, *invoice.ClientID)
	assert.InDelta(t, 20.00, invoice.TotalAmount, 0.001)
	assert.Equal(t, invoicedomain.PaymentStatusUnpaid, invoice.PaymentStatus)
	assert.Equal(t, time.March, invoice.InvoiceDate.Month())

	var items []invoicedomain.InvoiceItem
	require.NoError(t, db.Find(&items, "invoice_id = ?", invoice.ID).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget A", items[0].Description)
	assert.Equal(t, 2, items[0].Quantity)
	require.NotNil(t, items[0].ProductID)
	assert.Equal(t, product.ID, *items[0].ProductID)

	var got productdomain.Product
	require.NoError(t, db.First(&got, "id = ?", product.ID).Error)
	assert.Equal(t, 8, got.StockQuantity)
}

func TestParseAndPersist_Idempotent(t *testing.T) {
	db := newTestDB(t)
	p := newTestProcessor(db)
	companyID := uuid.New()
	seedClient(t, db, companyID, "Acme Corp")
	seedProduct(t, db, companyID, "Widget A", 10.00, 10)

	first := p.ParseAndPersist(context.Background(), invoiceText, companyID, "upload-1")
	second := p.ParseAndPersist(context.Background(), invoiceText, companyID, "upload-1")

	assert.Equal(t, StatusPersisted, first.Status)
	assert.Equal(t, StatusPersisted, second.Status)
	require.NotNil(t, first.InvoiceID)
	require.NotNil(t, second.InvoiceID)
	assert.Equal(t, *first.InvoiceID, *second.InvoiceID)
	assert.NotEmpty(t, second.Warnings)

	var count int64
	require.NoError(t, db.Model(&invoicedomain.Invoice{}).Where("company_id = ?", companyID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Stock was decremented exactly once.
	var got productdomain.Product
	require.NoError(t, db.First(&got, "company_id = ?", companyID).Error)
	assert.Equal(t, 8, got.StockQuantity)
}

func TestParseAndPersist_UnresolvedClient(t *testing.T) {
	db := newTestDB(t)
	p := newTestProcessor(db)
	companyID := uuid.New()
	// No client named Acme Corp exists for this company.

	res := p.ParseAndPersist(context.Background(), invoiceText, companyID, "upload-2")

	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, ErrClientUnresolved.Error(), res.FailureReason)

	var count int64
	require.NoError(t, db.Model(&invoicedomain.Invoice{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestParseAndPersist_UnmatchedItemsKept(t *testing.T) {
	db := newTestDB(t)
	p := newTestProcessor(db)
	companyID := uuid.New()
	seedClient(t, db, companyID, "Acme Corp")

	res := p.ParseAndPersist(context.Background(), invoiceText, companyID, "upload-3")

	assert.Equal(t, StatusPersisted, res.Status)
	assert.NotEmpty(t, res.Warnings)

	var items []invoicedomain.InvoiceItem
	require.NoError(t, db.Find(&items, "invoice_id = ?", *res.InvoiceID).Error)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].ProductID)
	assert.Equal(t, "Widget A", items[0].Description)
}

func TestParseAndPersist_CatalogPricePreferredWhenOcrPriceMissing(t *testing.T) {
	db := newTestDB(t)
	p := newTestProcessor(db)
	companyID := uuid.New()
	seedClient(t, db, companyID, "Acme Corp")
	seedProduct(t, db, companyID, "Blue Widget", 7.50, 5)

	// An inventory-style line inside an invoice: quantity but no price.
	// The fallback scan cannot price it; the catalog can.
	text := "Bill To\nAcme Corp\nBlue Widget, 4, 0.00\nJunk line"
	res := p.ParseAndPersist(context.Background(), text, companyID, "upload-4")

	assert.Equal(t, StatusPersisted, res.Status)

	var items []invoicedomain.InvoiceItem
	require.NoError(t, db.Find(&items, "invoice_id = ?", *res.InvoiceID).Error)
	require.Len(t, items, 1)
	assert.InDelta(t, 7.50, items[0].Price, 0.001)
	assert.InDelta(t, 30.00, items[0].Total, 0.001)
}

func TestParseAndPersist_InventorySnapshot(t *testing.T) {
	db := newTestDB(t)
	p := newTestProcessor(db)
	companyID := uuid.New()
	widget := seedProduct(t, db, companyID, "Blue Widget", 7.50, 1)

	text := "Item Code,Item Name,Quantity\nA100, Blue Widget, 12\nB200, Unknown Thing, 4"
	res := p.ParseAndPersist(context.Background(), text, companyID, "report-1")

	assert.Equal(t, StatusPersisted, res.Status)
	assert.Nil(t, res.InvoiceID)
	assert.Equal(t, 2, res.ItemsProcessed)
	assert.NotEmpty(t, res.Warnings)

	var got productdomain.Product
	require.NoError(t, db.First(&got, "id = ?", widget.ID).Error)
	assert.Equal(t, 12, got.StockQuantity)

	var lines []InventorySnapshotLine
	require.NoError(t, db.Find(&lines, "company_id = ?", companyID).Error)
	assert.Len(t, lines, 2)

	// Retry is absorbed without a second snapshot.
	res2 := p.ParseAndPersist(context.Background(), text, companyID, "report-1")
	assert.Equal(t, StatusPersisted, res2.Status)

	var count int64
	require.NoError(t, db.Model(&InventorySnapshot{}).Where("company_id = ?", companyID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestParseAndPersist_UnparsableDocument(t *testing.T) {
	db := newTestDB(t)
	p := newTestProcessor(db)
	companyID := uuid.New()

	res := p.ParseAndPersist(context.Background(), "Dear customer\nthank you for your business", companyID, "upload-5")

	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, ErrNoItemsExtracted.Error(), res.FailureReason)
	assert.Equal(t, 1, res.ItemsProcessed)
	assert.NotEmpty(t, res.Warnings)

	var count int64
	require.NoError(t, db.Model(&invoicedomain.Invoice{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
