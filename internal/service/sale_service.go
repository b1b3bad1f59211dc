package service

import (
	"context"
	"fmt"

	"shop-metrics/internal/domain"
	"shop-metrics/internal/repository"
)

// SaleService defines the business logic for sale imports
type SaleService interface {
	Import(ctx context.Context, sales []*domain.Sale) (int, error)
}

type saleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService creates a new instance of SaleService
func NewSaleService(saleRepo repository.SaleRepository) SaleService {
	return &saleService{saleRepo: saleRepo}
}

// Import persists a validated batch of sales atomically and returns the
// number of inserted rows
func (s *saleService) Import(ctx context.Context, sales []*domain.Sale) (int, error) {
	inserted, err := s.saleRepo.InsertBatch(ctx, sales)
	if err != nil {
		return 0, fmt.Errorf("failed to import sales: %w", err)
	}
	return inserted, nil
}
