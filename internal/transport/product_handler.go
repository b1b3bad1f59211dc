package transport

import (
	"encoding/json"
	"net/http"

	"shop-metrics/internal/middleware"
	"shop-metrics/internal/repository"
	"shop-metrics/internal/service"
	"shop-metrics/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductDto represents the product creation payload
type ProductDto struct {
	SKU       string          `json:"sku" validate:"required,max=64"`
	Title     string          `json:"title" validate:"required,max=200"`
	CostPrice decimal.Decimal `json:"cost_price" validate:"gte=0.01"`
}

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers the product routes. Listing is public, creation
// requires a bearer token.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
		})
	})
}

// List returns all registered products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Create registers a new product
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto ProductDto

	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.Debug("Product decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if problems := validation.Struct(dto); len(problems) > 0 {
		h.logger.Debug("Product validation failed", zap.Int("violations", len(problems)))
		middleware.RespondWithValidationProblems(w, problems)
		return
	}

	product, err := h.productService.Create(r.Context(), dto.SKU, dto.Title, dto.CostPrice)
	if err != nil {
		if err == repository.ErrProductAlreadyExists {
			middleware.RespondWithError(w, http.StatusConflict, "product with this SKU already exists")
			return
		}

		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("sku", product.SKU),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}
