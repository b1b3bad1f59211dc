package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"shop-metrics/internal/domain"
	"shop-metrics/internal/repository"

	"github.com/shopspring/decimal"
)

// DefaultTopProductsLimit is used when the caller supplies no usable limit
const DefaultTopProductsLimit = 5

// Granularity is the time-bucket size for the profit-over-time report
type Granularity int

const (
	GranularityDaily Granularity = iota
	GranularityWeekly
)

// ParseGranularity resolves a granularity string, case-insensitive.
// Unrecognized values, including the empty string, fall back to daily so
// that new clients sending values this version does not know keep working.
func ParseGranularity(s string) Granularity {
	if strings.ToLower(s) == "weekly" {
		return GranularityWeekly
	}
	return GranularityDaily
}

// PeriodProfit is one bucket of the profit-over-time report
type PeriodProfit struct {
	Period string          `json:"period"`
	Profit decimal.Decimal `json:"profit"`
}

// TopProduct is one row of the top-products report
type TopProduct struct {
	ID     int64           `json:"id"`
	Title  string          `json:"title"`
	Profit decimal.Decimal `json:"profit"`
}

// MetricsService computes profit reports over sales joined to products
type MetricsService interface {
	ProfitByPeriod(ctx context.Context, from, to time.Time, granularity Granularity) ([]PeriodProfit, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}

type metricsService struct {
	saleRepo repository.SaleRepository
}

// NewMetricsService creates a new instance of MetricsService
func NewMetricsService(saleRepo repository.SaleRepository) MetricsService {
	return &metricsService{saleRepo: saleRepo}
}

// ProfitByPeriod sums gross profit per time bucket over sales in the
// inclusive [from, to] range. Buckets without sales are omitted and the
// result is ordered ascending by period label, which is chronological for
// both label encodings. An inverted range simply yields no rows.
func (s *metricsService) ProfitByPeriod(ctx context.Context, from, to time.Time, granularity Granularity) ([]PeriodProfit, error) {
	rows, err := s.saleRepo.ListWithCostBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales for profit report: %w", err)
	}

	buckets := make(map[string]decimal.Decimal)
	for _, row := range rows {
		key := bucketKey(row.SaleDate, granularity)
		buckets[key] = buckets[key].Add(grossProfit(row))
	}

	result := make([]PeriodProfit, 0, len(buckets))
	for period, profit := range buckets {
		result = append(result, PeriodProfit{Period: period, Profit: profit})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Period < result[j].Period
	})

	return result, nil
}

// TopProducts sums gross profit per product over all sales and returns the
// most profitable products first. Ties are broken by ascending product ID
// to keep the ordering deterministic. limit <= 0 means the default of 5.
func (s *metricsService) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = DefaultTopProductsLimit
	}

	rows, err := s.saleRepo.ListWithCost(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales for top products: %w", err)
	}

	totals := make(map[int64]*TopProduct)
	for _, row := range rows {
		entry, ok := totals[row.ProductID]
		if !ok {
			entry = &TopProduct{ID: row.ProductID, Title: row.ProductTitle}
			totals[row.ProductID] = entry
		}
		entry.Profit = entry.Profit.Add(grossProfit(row))
	}

	result := make([]TopProduct, 0, len(totals))
	for _, entry := range totals {
		result = append(result, *entry)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Profit.Equal(result[j].Profit) {
			return result[i].Profit.GreaterThan(result[j].Profit)
		}
		return result[i].ID < result[j].ID
	})

	if len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

// grossProfit is revenue minus cost of goods minus marketplace fee minus
// shipping cost for a single sale, computed in exact decimal arithmetic
func grossProfit(row *domain.SaleWithCost) decimal.Decimal {
	qty := decimal.NewFromInt(int64(row.Quantity))
	return row.UnitPrice.Mul(qty).
		Sub(row.CostPrice.Mul(qty)).
		Sub(row.MarketplaceFee).
		Sub(row.ShippingCost)
}

// bucketKey labels a sale timestamp under the given granularity. Daily
// buckets use the UTC calendar date; weekly buckets combine the ISO-8601
// week-year and week number as year*100+week, so e.g. week 5 of 2024 is
// "202405". Both encodings sort lexicographically in chronological order.
func bucketKey(t time.Time, granularity Granularity) string {
	if granularity == GranularityWeekly {
		year, week := t.UTC().ISOWeek()
		return strconv.Itoa(year*100 + week)
	}
	return t.UTC().Format("2006-01-02")
}
