package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shop-metrics/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockMetricsService struct {
	periods []service.PeriodProfit
	top     []service.TopProduct

	gotFrom        time.Time
	gotTo          time.Time
	gotGranularity service.Granularity
	gotLimit       int
}

func (m *mockMetricsService) ProfitByPeriod(ctx context.Context, from, to time.Time, granularity service.Granularity) ([]service.PeriodProfit, error) {
	m.gotFrom = from
	m.gotTo = to
	m.gotGranularity = granularity
	return m.periods, nil
}

func (m *mockMetricsService) TopProducts(ctx context.Context, limit int) ([]service.TopProduct, error) {
	m.gotLimit = limit
	return m.top, nil
}

func setupMetricsRouter(svc *mockMetricsService) *chi.Mux {
	handler := NewMetricsHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestProfitEndpoint_ParsesRangeAndGranularity(t *testing.T) {
	svc := &mockMetricsService{
		periods: []service.PeriodProfit{
			{Period: "202419", Profit: decimal.RequireFromString("120.50")},
		},
	}
	router := setupMetricsRouter(svc)

	req := httptest.NewRequest("GET", "/metrics/profit?from=2024-05-01&to=2024-05-31&granularity=weekly", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.GranularityWeekly, svc.gotGranularity)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), svc.gotFrom)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), svc.gotTo)

	var periods []service.PeriodProfit
	require.NoError(t, json.NewDecoder(w.Body).Decode(&periods))
	require.Len(t, periods, 1)
	assert.Equal(t, "202419", periods[0].Period)
}

func TestProfitEndpoint_AcceptsRFC3339Timestamps(t *testing.T) {
	svc := &mockMetricsService{}
	router := setupMetricsRouter(svc)

	req := httptest.NewRequest("GET", "/metrics/profit?from=2024-05-01T08:30:00Z&to=2024-05-02T18:00:00Z", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.GranularityDaily, svc.gotGranularity)
	assert.Equal(t, 8, svc.gotFrom.Hour())
	assert.Equal(t, 30, svc.gotFrom.Minute())
}

func TestProfitEndpoint_RejectsUnparseableTimestamps(t *testing.T) {
	router := setupMetricsRouter(&mockMetricsService{})

	cases := []struct {
		name string
		url  string
	}{
		{"bad from", "/metrics/profit?from=not-a-date&to=2024-05-31"},
		{"bad to", "/metrics/profit?from=2024-05-01&to=yesterday"},
		{"missing from", "/metrics/profit?to=2024-05-31"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestProfitEndpoint_UnknownGranularityFallsBackToDaily(t *testing.T) {
	svc := &mockMetricsService{}
	router := setupMetricsRouter(svc)

	req := httptest.NewRequest("GET", "/metrics/profit?from=2024-05-01&to=2024-05-31&granularity=monthly", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.GranularityDaily, svc.gotGranularity)
}

func TestTopProductsEndpoint_PassesLimit(t *testing.T) {
	svc := &mockMetricsService{
		top: []service.TopProduct{
			{ID: 2, Title: "USB-C Cable", Profit: decimal.RequireFromString("310.00")},
			{ID: 1, Title: "Wireless Mouse", Profit: decimal.RequireFromString("95.25")},
		},
	}
	router := setupMetricsRouter(svc)

	req := httptest.NewRequest("GET", "/metrics/top-products?limit=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, svc.gotLimit)

	var top []service.TopProduct
	require.NoError(t, json.NewDecoder(w.Body).Decode(&top))
	require.Len(t, top, 2)
	assert.Equal(t, "USB-C Cable", top[0].Title)
}

func TestTopProductsEndpoint_MissingOrBadLimitDefersToService(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"missing limit", "/metrics/top-products"},
		{"non-numeric limit", "/metrics/top-products?limit=ten"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockMetricsService{}
			router := setupMetricsRouter(svc)

			req := httptest.NewRequest("GET", tc.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, 0, svc.gotLimit)
		})
	}
}
