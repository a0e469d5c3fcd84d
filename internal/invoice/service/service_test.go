package service

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
	"github.com/invoicetradeai-create/bizzauto-project/internal/invoice/domain"
	invoicerepository "github.com/invoicetradeai-create/bizzauto-project/internal/invoice/repository"
	productdomain "github.com/invoicetradeai-create/bizzauto-project/internal/product/domain"
	productrepository "github.com/invoicetradeai-create/bizzauto-project/internal/product/repository"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&clientdomain.Client{},
		&productdomain.Product{},
		&domain.Invoice{},
		&domain.InvoiceItem{},
	)
	require.NoError(t, err)
	return db
}

func newTestService(db *gorm.DB) domain.Service {
	return New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		Repo:        invoicerepository.Provide(),
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

func seedProduct(t *testing.T, db *gorm.DB, companyID uuid.UUID, name string, stock int) productdomain.Product {
	t.Helper()
	product := productdomain.Product{
		ID:            uuid.New(),
		CompanyID:     companyID,
		Name:          name,
		SalePrice:     5,
		StockQuantity: stock,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestCreateInvoiceDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	companyID := uuid.New()
	ctx := tenantctx.WithCompanyID(context.Background(), companyID)
	client := seedClient(t, db, companyID, "Acme Corp")
	product := seedProduct(t, db, companyID, "Widget", 10)

	inv, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientID: client.ID.String(),
		Items: []domain.InvoiceItemInput{
			{ProductID: product.ID.String(), Description: "Widget", Quantity: 2, Price: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, inv.TotalAmount)
	assert.Equal(t, domain.PaymentStatusUnpaid, inv.PaymentStatus)
	require.Len(t, inv.Items, 1)

	var got productdomain.Product
	require.NoError(t, db.First(&got, "id = ?", product.ID).Error)
	assert.Equal(t, 8, got.StockQuantity)
}

func TestCreateInvoiceUnknownClient(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	ctx := tenantctx.WithCompanyID(context.Background(), uuid.New())

	_, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientID: uuid.NewString(),
		Items: []domain.InvoiceItemInput{
			{Description: "Widget", Quantity: 1, Price: 5},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidClient)
}

func TestCreateInvoiceRequiresItems(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	companyID := uuid.New()
	ctx := tenantctx.WithCompanyID(context.Background(), companyID)
	client := seedClient(t, db, companyID, "Acme Corp")

	_, err := svc.Create(ctx, domain.CreateInvoiceRequest{ClientID: client.ID.String()})
	assert.ErrorIs(t, err, domain.ErrEmptyItems)
}

func TestUpdateInvoiceReplacesItems(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	companyID := uuid.New()
	ctx := tenantctx.WithCompanyID(context.Background(), companyID)
	client := seedClient(t, db, companyID, "Acme Corp")

	inv, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientID: client.ID.String(),
		Items: []domain.InvoiceItemInput{
			{Description: "Old item", Quantity: 1, Price: 10},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.UpdateInvoiceRequest{
		ID:            inv.ID.String(),
		PaymentStatus: domain.PaymentStatusPaid,
		Items: []domain.InvoiceItemInput{
			{Description: "New item A", Quantity: 2, Price: 3},
			{Description: "New item B", Quantity: 1, Price: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, 10.0, updated.TotalAmount)
	require.Len(t, updated.Items, 2)

	var count int64
	require.NoError(t, db.Model(&domain.InvoiceItem{}).Where("invoice_id = ?", inv.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUpdateInvoiceRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	companyID := uuid.New()
	ctx := tenantctx.WithCompanyID(context.Background(), companyID)
	client := seedClient(t, db, companyID, "Acme Corp")

	inv, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientID: client.ID.String(),
		Items: []domain.InvoiceItemInput{
			{Description: "Widget", Quantity: 1, Price: 5},
		},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, domain.UpdateInvoiceRequest{
		ID:            inv.ID.String(),
		PaymentStatus: "overdue",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestDeleteInvoiceRemovesItems(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	companyID := uuid.New()
	ctx := tenantctx.WithCompanyID(context.Background(), companyID)
	client := seedClient(t, db, companyID, "Acme Corp")

	inv, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientID: client.ID.String(),
		Items: []domain.InvoiceItemInput{
			{Description: "Widget", Quantity: 1, Price: 5},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, domain.DeleteInvoiceRequest{ID: inv.ID.String()}))

	_, err = svc.GetByID(ctx, domain.GetInvoiceRequest{ID: inv.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&domain.InvoiceItem{}).Where("invoice_id = ?", inv.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestInvoiceTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	companyID := uuid.New()
	ctx := tenantctx.WithCompanyID(context.Background(), companyID)
	client := seedClient(t, db, companyID, "Acme Corp")

	inv, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientID: client.ID.String(),
		Items: []domain.InvoiceItemInput{
			{Description: "Widget", Quantity: 1, Price: 5},
		},
	})
	require.NoError(t, err)

	otherCtx := tenantctx.WithCompanyID(context.Background(), uuid.New())
	_, err = svc.GetByID(otherCtx, domain.GetInvoiceRequest{ID: inv.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
