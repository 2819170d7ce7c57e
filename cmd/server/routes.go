package main

import (
	"pazaryeri-kar/internal/audit"
	"pazaryeri-kar/internal/events"
	"pazaryeri-kar/internal/export"
	"pazaryeri-kar/internal/metrics"
	"pazaryeri-kar/internal/report"
	"pazaryeri-kar/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupRoutes(app *fiber.App, s *store.Store, broker *events.Broker, rec audit.Recorder) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Use(metrics.PrometheusMiddleware())

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "platform": s.Platform()})
	})

	// Platform
	api.Get("/platform", store.GetPlatformHandler(s))
	api.Post("/platform", store.SwitchPlatformHandler(s))
	api.Delete("/platform/data", store.ClearPlatformHandler(s))

	// Ürünler
	api.Post("/products/upload", store.UploadProductsHandler(s))
	api.Get("/products", store.ListProductsHandler(s))
	api.Put("/products", store.UpdateProductHandler(s))
	api.Delete("/products", store.DeleteProductHandler(s))

	// Sipariş satırları
	api.Post("/orders/upload", store.UploadOrdersHandler(s))
	api.Get("/orders", store.ListOrderLinesHandler(s))
	api.Put("/orders", store.UpdateOrderLineHandler(s))
	api.Delete("/orders", store.DeleteOrderLineHandler(s))

	// Dolar kuru
	api.Get("/exchange-rate", store.GetExchangeRateHandler(s))
	api.Put("/exchange-rate", store.SetExchangeRateHandler(s))

	// Analiz
	analysis := api.Group("/analysis")
	analysis.Get("/orders", report.OrdersHandler(s))
	analysis.Get("/summary", report.SummaryHandler(s))
	analysis.Get("/cargo-tiers", report.CargoTiersHandler(s))
	analysis.Get("/top-products", report.TopProductsHandler(s))
	analysis.Get("/stock-codes", report.StockCodesHandler(s))
	analysis.Get("/dashboard", report.DashboardHandler(s))
	analysis.Get("/profit-loss", report.ProfitLossHandler(s))

	// Dışa aktarım
	api.Get("/export/orders", export.OrdersHandler(s))
	api.Get("/export/lines", export.LinesHandler(s))
	api.Get("/export/all", export.AllHandler(s))

	api.Get("/audit-logs", audit.ListAuditLogsHandler(rec))
	api.Get("/events", events.StreamHandler(broker))
}
