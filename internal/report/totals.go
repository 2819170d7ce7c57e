package report

import (
	"pazaryeri-kar/internal/analysis"
	"pazaryeri-kar/internal/models"
)

// Totals siparişlerin genel özeti
type Totals struct {
	TotalOrders        int `json:"totalOrders"`
	ProfitableOrders   int `json:"profitableOrders"`   // netProfit > 0
	UnprofitableOrders int `json:"unprofitableOrders"` // netProfit <= 0
	MatchedOrders      int `json:"matchedOrders"`
	TotalQuantity      int `json:"totalQuantity"`

	TotalRevenue     float64 `json:"totalRevenue"`
	TotalProductCost float64 `json:"totalProductCost"`
	TotalCommission  float64 `json:"totalCommission"`
	TotalShipping    float64 `json:"totalShipping"`
	TotalService     float64 `json:"totalService"`
	TotalConsumable  float64 `json:"totalConsumable"`
	TotalWithholding float64 `json:"totalWithholding"`
	TotalCost        float64 `json:"totalCost"`
	NetProfit        float64 `json:"netProfit"`

	MarginPercent     float64 `json:"marginPercent"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

func AggregateTotals(orders []models.Order) Totals {
	var t Totals
	for _, o := range orders {
		t.TotalOrders++
		t.TotalRevenue += o.TotalRevenue
		t.TotalProductCost += o.TotalProductCost
		t.TotalCommission += o.TotalCommission
		t.TotalShipping += o.ShippingFee
		t.TotalService += o.ServiceFee
		t.TotalConsumable += o.ConsumableFee
		t.TotalWithholding += o.WithholdingTax
		t.TotalCost += o.TotalCost
		t.NetProfit += o.NetProfit
		t.TotalQuantity += o.TotalQuantity

		if o.NetProfit > 0 {
			t.ProfitableOrders++
		} else {
			t.UnprofitableOrders++
		}
		if o.AllLinesMatched {
			t.MatchedOrders++
		}
	}

	t.MarginPercent = analysis.Margin(t.NetProfit, t.TotalRevenue)
	if t.TotalOrders > 0 {
		t.AverageOrderValue = t.TotalRevenue / float64(t.TotalOrders)
	}
	return t
}
