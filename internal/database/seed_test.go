package database

import (
	"context"
	"testing"
	"time"

	"shop-metrics/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type seedProductRepo struct {
	count    int
	nextID   int64
	products []*domain.Product
}

func (r *seedProductRepo) Create(ctx context.Context, product *domain.Product) error {
	r.nextID++
	product.ID = r.nextID
	r.products = append(r.products, product)
	return nil
}

func (r *seedProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	return r.products, nil
}

func (r *seedProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *seedProductRepo) Count(ctx context.Context) (int, error) {
	return r.count, nil
}

type seedSaleRepo struct {
	sales []*domain.Sale
}

func (r *seedSaleRepo) InsertBatch(ctx context.Context, sales []*domain.Sale) (int, error) {
	r.sales = append(r.sales, sales...)
	return len(sales), nil
}

func (r *seedSaleRepo) ListWithCostBetween(ctx context.Context, from, to time.Time) ([]*domain.SaleWithCost, error) {
	return nil, nil
}

func (r *seedSaleRepo) ListWithCost(ctx context.Context) ([]*domain.SaleWithCost, error) {
	return nil, nil
}

func TestSeed_SkipsWhenProductsExist(t *testing.T) {
	productRepo := &seedProductRepo{count: 3}
	saleRepo := &seedSaleRepo{}

	err := Seed(context.Background(), productRepo, saleRepo, zap.NewNop())
	require.NoError(t, err)

	assert.Empty(t, productRepo.products)
	assert.Empty(t, saleRepo.sales)
}

func TestSeed_InsertsDemoDataset(t *testing.T) {
	productRepo := &seedProductRepo{}
	saleRepo := &seedSaleRepo{}

	err := Seed(context.Background(), productRepo, saleRepo, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, productRepo.products, 2)
	assert.Equal(t, "SKU-001", productRepo.products[0].SKU)
	assert.Equal(t, "Wireless Mouse", productRepo.products[0].Title)
	assert.True(t, productRepo.products[0].CostPrice.Equal(decimal.RequireFromString("8.50")))
	assert.Equal(t, "SKU-002", productRepo.products[1].SKU)
	assert.True(t, productRepo.products[1].CostPrice.Equal(decimal.RequireFromString("2.10")))

	assert.Len(t, saleRepo.sales, 40)
}

func TestSeed_SalesReferenceSeededProducts(t *testing.T) {
	productRepo := &seedProductRepo{}
	saleRepo := &seedSaleRepo{}

	require.NoError(t, Seed(context.Background(), productRepo, saleRepo, zap.NewNop()))

	ids := map[int64]bool{}
	for _, s := range saleRepo.sales {
		ids[s.ProductID] = true
	}

	assert.Len(t, ids, 2, "both seeded products should have sales")
	for _, p := range productRepo.products {
		assert.True(t, ids[p.ID])
	}
}

func TestSeed_SalesFallWithinPriorTwoWeeks(t *testing.T) {
	productRepo := &seedProductRepo{}
	saleRepo := &seedSaleRepo{}

	before := time.Now().UTC()
	require.NoError(t, Seed(context.Background(), productRepo, saleRepo, zap.NewNop()))

	earliest := before.Truncate(24 * time.Hour).AddDate(0, 0, -14)

	for _, s := range saleRepo.sales {
		assert.False(t, s.SaleDate.Before(earliest), "sale date %v before window start %v", s.SaleDate, earliest)
		assert.True(t, s.SaleDate.Before(before.Add(time.Hour)), "sale date %v in the future", s.SaleDate)
		assert.GreaterOrEqual(t, s.Quantity, 1)
		assert.LessOrEqual(t, s.Quantity, 3)
	}
}

func TestSeed_IsDeterministic(t *testing.T) {
	first := &seedSaleRepo{}
	require.NoError(t, Seed(context.Background(), &seedProductRepo{}, first, zap.NewNop()))

	second := &seedSaleRepo{}
	require.NoError(t, Seed(context.Background(), &seedProductRepo{}, second, zap.NewNop()))

	require.Len(t, second.sales, len(first.sales))
	for i := range first.sales {
		assert.Equal(t, first.sales[i].ProductID, second.sales[i].ProductID)
		assert.Equal(t, first.sales[i].Quantity, second.sales[i].Quantity)
		assert.True(t, first.sales[i].UnitPrice.Equal(second.sales[i].UnitPrice))
	}
}
