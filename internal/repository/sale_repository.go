package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shop-metrics/internal/domain"
)

// SaleRepository defines the interface for sale data access
type SaleRepository interface {
	// InsertBatch inserts all sales in a single transaction. Either every
	// row is inserted or none are.
	InsertBatch(ctx context.Context, sales []*domain.Sale) (int, error)

	// ListWithCostBetween returns sales with from <= sale_date <= to joined
	// to their product. Sales without a matching product are dropped.
	ListWithCostBetween(ctx context.Context, from, to time.Time) ([]*domain.SaleWithCost, error)

	// ListWithCost returns every sale joined to its product, no date filter.
	ListWithCost(ctx context.Context) ([]*domain.SaleWithCost, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

// InsertBatch inserts the given sales atomically
func (r *saleRepository) InsertBatch(ctx context.Context, sales []*domain.Sale) (int, error) {
	if len(sales) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO sales (product_id, quantity, unit_price, marketplace_fee, shipping_cost, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, sale := range sales {
		_, err := stmt.ExecContext(
			ctx,
			sale.ProductID,
			sale.Quantity,
			sale.UnitPrice,
			sale.MarketplaceFee,
			sale.ShippingCost,
			sale.SaleDate,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert sale: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sales batch: %w", err)
	}

	return len(sales), nil
}

// ListWithCostBetween retrieves joined sale rows within the inclusive range
func (r *saleRepository) ListWithCostBetween(ctx context.Context, from, to time.Time) ([]*domain.SaleWithCost, error) {
	query := `
		SELECT p.id, p.title, s.quantity, s.unit_price, s.marketplace_fee, s.shipping_cost, p.cost_price, s.sale_date
		FROM sales s
		INNER JOIN products p ON p.id = s.product_id
		WHERE s.sale_date >= $1 AND s.sale_date <= $2
	`

	return r.queryJoined(ctx, query, from, to)
}

// ListWithCost retrieves every joined sale row
func (r *saleRepository) ListWithCost(ctx context.Context) ([]*domain.SaleWithCost, error) {
	query := `
		SELECT p.id, p.title, s.quantity, s.unit_price, s.marketplace_fee, s.shipping_cost, p.cost_price, s.sale_date
		FROM sales s
		INNER JOIN products p ON p.id = s.product_id
	`

	return r.queryJoined(ctx, query)
}

func (r *saleRepository) queryJoined(ctx context.Context, query string, args ...interface{}) ([]*domain.SaleWithCost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	results := []*domain.SaleWithCost{}
	for rows.Next() {
		row := &domain.SaleWithCost{}
		err := rows.Scan(
			&row.ProductID,
			&row.ProductTitle,
			&row.Quantity,
			&row.UnitPrice,
			&row.MarketplaceFee,
			&row.ShippingCost,
			&row.CostPrice,
			&row.SaleDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		results = append(results, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	return results, nil
}
