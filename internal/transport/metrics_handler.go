package transport

import (
	"net/http"
	"strconv"
	"time"

	"shop-metrics/internal/middleware"
	"shop-metrics/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MetricsHandler handles HTTP requests for the profit reports
type MetricsHandler struct {
	metricsService service.MetricsService
	logger         *zap.Logger
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(metricsService service.MetricsService, logger *zap.Logger) *MetricsHandler {
	return &MetricsHandler{
		metricsService: metricsService,
		logger:         logger,
	}
}

// RegisterRoutes registers the metrics routes, both public reads
func (h *MetricsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/metrics", func(r chi.Router) {
		r.Get("/profit", h.Profit)
		r.Get("/top-products", h.TopProducts)
	})
}

// Profit returns gross profit summed per time bucket. An inverted range
// is not an error; it just produces no rows.
func (h *MetricsHandler) Profit(w http.ResponseWriter, r *http.Request) {
	from, err := parseTimestamp(r.URL.Query().Get("from"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid 'from' timestamp")
		return
	}

	to, err := parseTimestamp(r.URL.Query().Get("to"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid 'to' timestamp")
		return
	}

	granularity := service.ParseGranularity(r.URL.Query().Get("granularity"))

	result, err := h.metricsService.ProfitByPeriod(r.Context(), from, to, granularity)
	if err != nil {
		h.logger.Error("Profit report failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute profit report")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// TopProducts returns the most profitable products. A missing or
// non-positive limit falls back to the default.
func (h *MetricsHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 0
	}

	result, err := h.metricsService.TopProducts(r.Context(), limit)
	if err != nil {
		h.logger.Error("Top products report failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute top products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// parseTimestamp accepts RFC3339 or a bare calendar date
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
