package report

import (
	"pazaryeri-kar/internal/analysis"
	"pazaryeri-kar/internal/metrics"
	"pazaryeri-kar/internal/models"
	"pazaryeri-kar/internal/parse"
	"pazaryeri-kar/internal/platform"
	"pazaryeri-kar/internal/store"

	"github.com/gofiber/fiber/v2"
)

// ComputeOrders mağazanın anlık görüntüsünden siparişleri hesaplar
func ComputeOrders(s *store.Store) (platform.Platform, []models.Order) {
	snap := s.Snapshot()
	done := metrics.ObserveAggregation(string(snap.Platform))
	orders := analysis.Aggregate(snap.Platform, snap.OrderLines, snap.Products, snap.ExchangeRate)
	done()
	return snap.Platform, orders
}

// filtered filter ve stockCode sorgu parametrelerini uygular
func filtered(c *fiber.Ctx, s *store.Store) (platform.Platform, []models.Order, Filter, error) {
	f, err := ParseFilter(c.Query("filter"))
	if err != nil {
		return "", nil, "", err
	}
	p, orders := ComputeOrders(s)
	return p, Apply(orders, f, c.Query("stockCode")), f, nil
}

// GET /api/analysis/orders?filter=&stockCode=
func OrdersHandler(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, orders, _, err := filtered(c, s)
		if err != nil {
			return err
		}
		return c.JSON(orders)
	}
}

// GET /api/analysis/summary
func SummaryHandler(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, orders, _, err := filtered(c, s)
		if err != nil {
			return err
		}
		return c.JSON(AggregateTotals(orders))
	}
}

// GET /api/analysis/cargo-tiers
func CargoTiersHandler(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, orders, _, err := filtered(c, s)
		if err != nil {
			return err
		}
		return c.JSON(CargoTierDistribution(p, orders))
	}
}

// GET /api/analysis/top-products?n=10&filter=loss
func TopProductsHandler(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, orders, f, err := filtered(c, s)
		if err != nil {
			return err
		}
		return c.JSON(TopProductsByProfit(orders, c.QueryInt("n", DefaultTopN), f == FilterLoss))
	}
}

// GET /api/analysis/stock-codes
func StockCodesHandler(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, orders := ComputeOrders(s)
		return c.JSON(StockCodeOptions(orders))
	}
}

// GET /api/analysis/dashboard
func DashboardHandler(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(BuildDashboard(s.OrderLines()))
	}
}

// GET /api/analysis/profit-loss?extraCost=5&extraCostType=percentage
func ProfitLossHandler(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := ParseExtraCostType(c.Query("extraCostType"))
		if err != nil {
			return err
		}
		extra := ExtraCost{Type: t, Value: parse.Money(c.Query("extraCost"))}

		_, orders, _, err := filtered(c, s)
		if err != nil {
			return err
		}
		return c.JSON(ProfitLossStatement(orders, extra))
	}
}
