package analysis

import (
	"pazaryeri-kar/internal/fees"
	"pazaryeri-kar/internal/models"
	"pazaryeri-kar/internal/platform"
)

// UnknownOrder sipariş ve paket numarası olmayan satırların gruplandığı anahtar
const UnknownOrder = "UNKNOWN"

// GroupKey satırın ait olduğu siparişi belirler: sipariş no, yoksa paket no
func GroupKey(l models.OrderLine) string {
	if l.OrderNumber != "" {
		return l.OrderNumber
	}
	if l.PackageNumber != "" {
		return l.PackageNumber
	}
	return UnknownOrder
}

// Group satırları sipariş anahtarına göre gruplar. Grupların ve grup içi satırların sırası
// dosyadaki ilk görülme sırasıdır.
func Group(lines []models.OrderLine) ([]string, map[string][]models.OrderLine) {
	keys := make([]string, 0)
	groups := make(map[string][]models.OrderLine)
	for _, l := range lines {
		k := GroupKey(l)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], l)
	}
	return keys, groups
}

// IndexProducts stok kodu -> ürün. Aynı koddan birden fazla varsa ilki geçerlidir.
func IndexProducts(products []models.Product) map[string]models.Product {
	idx := make(map[string]models.Product, len(products))
	for _, p := range products {
		if p.StockCode == "" {
			continue
		}
		if _, ok := idx[p.StockCode]; !ok {
			idx[p.StockCode] = p
		}
	}
	return idx
}

// Aggregate sipariş satırlarını siparişlere toplar, ürünlerle eşler ve kar/zarar hesaplar.
// Saf fonksiyondur: aynı girdiyle her çağrıda aynı sonucu üretir.
func Aggregate(p platform.Platform, lines []models.OrderLine, products []models.Product, exchangeRate float64) []models.Order {
	schedule := p.Schedule()
	idx := IndexProducts(products)
	keys, groups := Group(lines)

	orders := make([]models.Order, 0, len(keys))
	for _, k := range keys {
		orders = append(orders, buildOrder(schedule, k, groups[k], idx, exchangeRate))
	}
	return orders
}

func buildOrder(s platform.Schedule, orderNumber string, lines []models.OrderLine, idx map[string]models.Product, rate float64) models.Order {
	o := models.Order{
		OrderNumber:     orderNumber,
		Lines:           make([]models.LineResult, 0, len(lines)),
		AllLinesMatched: true,
	}

	for _, l := range lines {
		o.TotalRevenue += l.Revenue
	}

	o.ShippingFee = fees.Shipping(s, o.TotalRevenue)
	o.ServiceFee = fees.Service(s)
	o.HasTriggerProduct = fees.HasTrigger(s, lines)
	o.ConsumableFee = fees.Consumable(s, o.HasTriggerProduct)

	for _, l := range lines {
		lr := models.LineResult{Line: l}

		var product *models.Product
		if l.StockCode != "" {
			if prod, ok := idx[l.StockCode]; ok {
				product = &prod
			}
		}

		if product != nil {
			lr.Product = product
			lr.Matched = true
			lr.UnitCostLocal = product.UnitCostUSD * rate
			lr.Cost = lr.UnitCostLocal * float64(l.Quantity)
		} else {
			o.AllLinesMatched = false
		}
		lr.Commission = fees.Commission(s, l, product)

		o.TotalProductCost += lr.Cost
		o.TotalCommission += lr.Commission
		o.TotalQuantity += l.Quantity
		o.Lines = append(o.Lines, lr)
	}

	o.WithholdingTax = fees.Withholding(s, o.TotalRevenue)
	o.TotalCost = o.TotalProductCost + o.TotalCommission + o.ShippingFee + o.ServiceFee + o.ConsumableFee + o.WithholdingTax
	o.NetProfit = o.TotalRevenue - o.TotalCost
	o.MarginPercent = Margin(o.NetProfit, o.TotalRevenue)
	return o
}

// Margin net karın ciroya oranı (yüzde). Ciro sıfır veya negatifse 0.
func Margin(netProfit, revenue float64) float64 {
	if revenue > 0 {
		return (netProfit / revenue) * 100
	}
	return 0
}
