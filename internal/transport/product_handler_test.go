package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shop-metrics/internal/domain"
	"shop-metrics/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProductService struct {
	products  []*domain.Product
	createErr error
	created   *domain.Product
}

func (m *mockProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return m.products, nil
}

func (m *mockProductService) Create(ctx context.Context, sku, title string, costPrice decimal.Decimal) (*domain.Product, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = &domain.Product{
		ID:        42,
		SKU:       sku,
		Title:     title,
		CostPrice: costPrice,
		CreatedAt: time.Now().UTC(),
	}
	return m.created, nil
}

// passThrough stands in for the auth middleware; token checks are covered
// in the middleware package
func passThrough(next http.Handler) http.Handler {
	return next
}

func setupProductRouter(svc *mockProductService) *chi.Mux {
	handler := NewProductHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	handler.RegisterRoutes(r, passThrough)
	return r
}

func postProduct(t *testing.T, router http.Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/products", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListProducts_ReturnsAll(t *testing.T) {
	svc := &mockProductService{
		products: []*domain.Product{
			{ID: 1, SKU: "SKU-001", Title: "Wireless Mouse", CostPrice: decimal.RequireFromString("8.50")},
			{ID: 2, SKU: "SKU-002", Title: "USB-C Cable", CostPrice: decimal.RequireFromString("2.10")},
		},
	}
	router := setupProductRouter(svc)

	req := httptest.NewRequest("GET", "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var products []*domain.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
	require.Len(t, products, 2)
	assert.Equal(t, "SKU-001", products[0].SKU)
	assert.Equal(t, "SKU-002", products[1].SKU)
}

func TestCreateProduct_Success(t *testing.T) {
	svc := &mockProductService{}
	router := setupProductRouter(svc)

	w := postProduct(t, router, ProductDto{
		SKU:       "SKU-003",
		Title:     "Laptop Stand",
		CostPrice: decimal.RequireFromString("12.40"),
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var product domain.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
	assert.Equal(t, int64(42), product.ID)
	assert.Equal(t, "SKU-003", product.SKU)
	assert.True(t, product.CostPrice.Equal(decimal.RequireFromString("12.40")))
}

func TestCreateProduct_ValidationFailure(t *testing.T) {
	svc := &mockProductService{}
	router := setupProductRouter(svc)

	w := postProduct(t, router, ProductDto{
		SKU:       "",
		Title:     "Laptop Stand",
		CostPrice: decimal.Zero,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.created, "service should not be called on invalid input")

	body := w.Body.String()
	assert.Contains(t, body, "sku")
	assert.Contains(t, body, "cost_price")
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	svc := &mockProductService{createErr: repository.ErrProductAlreadyExists}
	router := setupProductRouter(svc)

	w := postProduct(t, router, ProductDto{
		SKU:       "SKU-001",
		Title:     "Wireless Mouse",
		CostPrice: decimal.RequireFromString("8.50"),
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestCreateProduct_MalformedBody(t *testing.T) {
	router := setupProductRouter(&mockProductService{})

	req := httptest.NewRequest("POST", "/products", bytes.NewReader([]byte("[}")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
