package service

import (
	"context"
	"fmt"
	"time"

	"shop-metrics/internal/domain"
	"shop-metrics/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService defines the business logic for products
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, sku, title string, costPrice decimal.Decimal) (*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// List returns all registered products
func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Create registers a new product with a server-side creation timestamp
func (s *productService) Create(ctx context.Context, sku, title string, costPrice decimal.Decimal) (*domain.Product, error) {
	product := &domain.Product{
		SKU:       sku,
		Title:     title,
		CostPrice: costPrice,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if err == repository.ErrProductAlreadyExists {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
