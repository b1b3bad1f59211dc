package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"shop-metrics/internal/domain"
	"shop-metrics/internal/middleware"
	"shop-metrics/internal/service"
	"shop-metrics/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleDto represents one item of the sale import payload
type SaleDto struct {
	ProductID      int64           `json:"product_id" validate:"gte=1"`
	Quantity       int             `json:"quantity" validate:"gte=1,lte=1000000"`
	UnitPrice      decimal.Decimal `json:"unit_price" validate:"gte=0"`
	MarketplaceFee decimal.Decimal `json:"marketplace_fee" validate:"gte=0"`
	ShippingCost   decimal.Decimal `json:"shipping_cost" validate:"gte=0"`
	SaleDate       time.Time       `json:"sale_date"`
}

// ImportResponse reports how many sales were inserted
type ImportResponse struct {
	Inserted int `json:"inserted"`
}

// SaleHandler handles HTTP requests for sale imports
type SaleHandler struct {
	saleService service.SaleService
	logger      *zap.Logger
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService service.SaleService, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		logger:      logger,
	}
}

// RegisterRoutes registers the sale routes, all behind auth
func (h *SaleHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/sales", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/import", h.Import)
	})
}

// Import validates and persists a batch of sales. Every item is validated
// before anything is written; one bad item rejects the whole batch with a
// report covering every violation found.
func (h *SaleHandler) Import(w http.ResponseWriter, r *http.Request) {
	var dtos []SaleDto

	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		h.logger.Debug("Sale import decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	batchID := uuid.New().String()

	if problems := validation.Items(dtos); len(problems) > 0 {
		h.logger.Debug("Sale import validation failed",
			zap.String("batch_id", batchID),
			zap.Int("items", len(dtos)),
			zap.Int("violations", len(problems)),
		)
		middleware.RespondWithValidationProblems(w, problems)
		return
	}

	sales := make([]*domain.Sale, 0, len(dtos))
	for _, dto := range dtos {
		sales = append(sales, &domain.Sale{
			ProductID:      dto.ProductID,
			Quantity:       dto.Quantity,
			UnitPrice:      dto.UnitPrice,
			MarketplaceFee: dto.MarketplaceFee,
			ShippingCost:   dto.ShippingCost,
			SaleDate:       dto.SaleDate,
		})
	}

	inserted, err := h.saleService.Import(r.Context(), sales)
	if err != nil {
		h.logger.Error("Sale import failed",
			zap.String("batch_id", batchID),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to import sales")
		return
	}

	h.logger.Info("Sales imported",
		zap.String("batch_id", batchID),
		zap.Int("inserted", inserted),
	)
	middleware.RespondWithJSON(w, http.StatusOK, ImportResponse{Inserted: inserted})
}
