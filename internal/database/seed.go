package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"shop-metrics/internal/domain"
	"shop-metrics/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// seedRandSource keeps the demo dataset reproducible across runs
const seedRandSource = 7

// Seed inserts a small demo dataset: two products and 40 sales spread
// over the previous 14 days. It is a no-op when any product already
// exists, so restarting the process never duplicates data.
func Seed(ctx context.Context, productRepo repository.ProductRepository, saleRepo repository.SaleRepository, logger *zap.Logger) error {
	count, err := productRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing products: %w", err)
	}
	if count > 0 {
		logger.Info("Seed skipped, products already exist", zap.Int("count", count))
		return nil
	}

	now := time.Now().UTC()

	p1 := &domain.Product{
		SKU:       "SKU-001",
		Title:     "Wireless Mouse",
		CostPrice: decimal.RequireFromString("8.50"),
		CreatedAt: now,
	}
	p2 := &domain.Product{
		SKU:       "SKU-002",
		Title:     "USB-C Cable",
		CostPrice: decimal.RequireFromString("2.10"),
		CreatedAt: now,
	}

	for _, p := range []*domain.Product{p1, p2} {
		if err := productRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.SKU, err)
		}
	}

	baseDate := now.Truncate(24 * time.Hour).AddDate(0, 0, -14)
	rnd := rand.New(rand.NewSource(seedRandSource))

	sales := make([]*domain.Sale, 0, 40)
	for i := 0; i < 40; i++ {
		prod := p1
		unitPrice := decimal.RequireFromString("16.99")
		fee := decimal.RequireFromString("1.20")
		shipping := decimal.RequireFromString("1.80")
		if i%2 == 1 {
			prod = p2
			unitPrice = decimal.RequireFromString("6.99")
			fee = decimal.RequireFromString("0.70")
			shipping = decimal.RequireFromString("0.90")
		}

		sales = append(sales, &domain.Sale{
			ProductID:      prod.ID,
			Quantity:       1 + rnd.Intn(3),
			UnitPrice:      unitPrice,
			MarketplaceFee: fee,
			ShippingCost:   shipping,
			SaleDate:       baseDate.AddDate(0, 0, rnd.Intn(14)).Add(time.Duration(rnd.Intn(23)) * time.Hour),
		})
	}

	inserted, err := saleRepo.InsertBatch(ctx, sales)
	if err != nil {
		return fmt.Errorf("failed to seed sales: %w", err)
	}

	logger.Info("Seed data inserted",
		zap.Int("products", 2),
		zap.Int("sales", inserted),
	)
	return nil
}
