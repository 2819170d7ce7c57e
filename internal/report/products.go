package report

import (
	"sort"

	"pazaryeri-kar/internal/models"
	"pazaryeri-kar/internal/parse"
)

const DefaultTopN = 10

// ProductProfit stok kodu bazında siparişlerden payına düşen kar
type ProductProfit struct {
	StockCode     string  `json:"stockCode"`
	ProductName   string  `json:"productName"`
	TotalProfit   float64 `json:"totalProfit"`
	TotalRevenue  float64 `json:"totalRevenue"`
	OrderCount    int     `json:"orderCount"`
	AverageProfit float64 `json:"averageProfit"`
}

// TopProductsByProfit her siparişin net karını satırlara ciro payı oranında dağıtır ve stok kodu
// bazında toplar. Sadece eşleşen satırlar sayılır. lossFirst ise en çok zarar eden önce gelir.
func TopProductsByProfit(orders []models.Order, n int, lossFirst bool) []ProductProfit {
	if n <= 0 {
		n = DefaultTopN
	}

	stats := make(map[string]*ProductProfit)
	order := make([]string, 0)

	for _, o := range orders {
		for _, lr := range o.Lines {
			code := lr.Line.StockCode
			if code == "" || !lr.Matched {
				continue
			}

			st, ok := stats[code]
			if !ok {
				name := lr.Line.ProductName
				if name == "" && lr.Product != nil {
					name = lr.Product.Name
				}
				if name == "" {
					name = parse.Unknown
				}
				st = &ProductProfit{StockCode: code, ProductName: name}
				stats[code] = st
				order = append(order, code)
			}

			share := 0.0
			if o.TotalRevenue != 0 {
				share = lr.Line.Revenue / o.TotalRevenue
			}
			st.TotalProfit += o.NetProfit * share
			st.TotalRevenue += lr.Line.Revenue
			st.OrderCount++
		}
	}

	res := make([]ProductProfit, 0, len(order))
	for _, code := range order {
		st := stats[code]
		if st.OrderCount > 0 {
			st.AverageProfit = st.TotalProfit / float64(st.OrderCount)
		}
		res = append(res, *st)
	}

	sort.SliceStable(res, func(i, j int) bool {
		if lossFirst {
			return res[i].TotalProfit < res[j].TotalProfit
		}
		return res[i].TotalProfit > res[j].TotalProfit
	})

	if len(res) > n {
		res = res[:n]
	}
	return res
}
