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

	productdomain "github.com/invoicetradeai-create/bizzauto-project/internal/product/domain"
	productrepository "github.com/invoicetradeai-create/bizzauto-project/internal/product/repository"
	"github.com/invoicetradeai-create/bizzauto-project/internal/purchase/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&productdomain.Product{},
		&domain.Purchase{},
		&domain.PurchaseItem{},
	)
	require.NoError(t, err)
	return db
}

func newTestService(db *gorm.DB) domain.Service {
	return New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		ProductRepo: productrepository.Provide(),
	})
}

func seedProduct(t *testing.T, db *gorm.DB, companyID uuid.UUID, stock int) productdomain.Product {
	t.Helper()
	product := productdomain.Product{
		ID:            uuid.New(),
		CompanyID:     companyID,
		Name:          "Widget",
		SalePrice:     5,
		StockQuantity: stock,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestCreatePurchaseIncrementsStock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	companyID := uuid.New()
	ctx := tenantctx.WithCompanyID(context.Background(), companyID)
	product := seedProduct(t, db, companyID, 3)

	purchase, err := svc.Create(ctx, domain.CreatePurchaseRequest{
		Items: []domain.PurchaseItemInput{
			{ProductID: product.ID.String(), Quantity: 4, Price: 2.5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, purchase.TotalAmount)
	require.Len(t, purchase.Items, 1)

	var got productdomain.Product
	require.NoError(t, db.First(&got, "id = ?", product.ID).Error)
	assert.Equal(t, 7, got.StockQuantity)
}

func TestCreatePurchaseRequiresItems(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	ctx := tenantctx.WithCompanyID(context.Background(), uuid.New())

	_, err := svc.Create(ctx, domain.CreatePurchaseRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyItems)
}

func TestCreatePurchaseWithoutProductLink(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	ctx := tenantctx.WithCompanyID(context.Background(), uuid.New())

	purchase, err := svc.Create(ctx, domain.CreatePurchaseRequest{
		Items: []domain.PurchaseItemInput{
			{Quantity: 2, Price: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 6.0, purchase.TotalAmount)
	assert.Nil(t, purchase.Items[0].ProductID)
}

func TestDeletePurchaseRemovesItems(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	companyID := uuid.New()
	ctx := tenantctx.WithCompanyID(context.Background(), companyID)

	purchase, err := svc.Create(ctx, domain.CreatePurchaseRequest{
		Items: []domain.PurchaseItemInput{
			{Quantity: 1, Price: 9},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, purchase.ID.String()))

	_, err = svc.GetByID(ctx, purchase.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&domain.PurchaseItem{}).Where("purchase_id = ?", purchase.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
