package main

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"pazaryeri-kar/internal/apperrors"
	"pazaryeri-kar/internal/audit"
	"pazaryeri-kar/internal/events"
	"pazaryeri-kar/internal/metrics"
	"pazaryeri-kar/internal/platform"
	"pazaryeri-kar/internal/storage"
	"pazaryeri-kar/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	metrics.InitMetrics()

	broker := events.NewBroker()
	t.Cleanup(broker.Close)
	rec := audit.NewMemoryRecorder(10)
	s := store.New(storage.NewMemory(), broker, rec, "test")
	require.NoError(t, s.Load(context.Background(), platform.Trendyol))

	app := fiber.New(fiber.Config{ErrorHandler: apperrors.FiberErrorHandler})
	setupRoutes(app, s, broker, rec)
	return app
}

func TestRoutesRespond(t *testing.T) {
	app := newTestApp(t)

	for _, url := range []string{
		"/api/health",
		"/api/platform",
		"/api/products",
		"/api/orders",
		"/api/exchange-rate",
		"/api/analysis/orders",
		"/api/analysis/summary",
		"/api/analysis/cargo-tiers",
		"/api/analysis/top-products",
		"/api/analysis/stock-codes",
		"/api/analysis/dashboard",
		"/api/analysis/profit-loss",
		"/api/export/orders",
		"/api/audit-logs",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", url, nil))
		require.NoError(t, err, url)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, url)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Test(httptest.NewRequest("GET", "/api/platform", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "http_requests_total")
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/yok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
