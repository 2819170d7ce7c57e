package report

import (
	"sort"

	"pazaryeri-kar/internal/analysis"
	"pazaryeri-kar/internal/apperrors"
	"pazaryeri-kar/internal/models"
	"pazaryeri-kar/internal/parse"
)

const topBrands = 10

type ExtraCostType string

const (
	ExtraCostPercentage ExtraCostType = "percentage"
	ExtraCostFlat       ExtraCostType = "flat"
)

// ExtraCost kullanıcının eklediği ek maliyet: cironun yüzdesi veya sabit tutar
type ExtraCost struct {
	Type  ExtraCostType `json:"type"`
	Value float64       `json:"value"`
}

func ParseExtraCostType(s string) (ExtraCostType, error) {
	switch ExtraCostType(s) {
	case "", ExtraCostPercentage:
		return ExtraCostPercentage, nil
	case ExtraCostFlat:
		return ExtraCostFlat, nil
	}
	return "", apperrors.Detail(apperrors.ErrInvalidInput, "bilinmeyen ek maliyet tipi: %q", s)
}

// Amount ciroya göre ek maliyet tutarı, değer sıfır veya negatifse 0
func (e ExtraCost) Amount(revenue float64) float64 {
	if e.Value <= 0 {
		return 0
	}
	if e.Type == ExtraCostFlat {
		return e.Value
	}
	return revenue * e.Value / 100
}

type BrandRow struct {
	Brand          string  `json:"brand"`
	Revenue        float64 `json:"revenue"`
	Quantity       int     `json:"quantity"`
	LineCount      int     `json:"lineCount"` // markaya düşen satır sayısı
	AverageRevenue float64 `json:"averageRevenue"`
}

type MonthRow struct {
	Month      string  `json:"month"` // YYYY-MM
	Revenue    float64 `json:"revenue"`
	NetProfit  float64 `json:"netProfit"`
	OrderCount int     `json:"orderCount"`
}

// Statement kar/zarar tablosu
type Statement struct {
	Totals            Totals     `json:"totals"`
	ExtraCost         float64    `json:"extraCost"`
	AdjustedNetProfit float64    `json:"adjustedNetProfit"`
	AdjustedMargin    float64    `json:"adjustedMargin"`
	AverageProfit     float64    `json:"averageProfit"`
	Brands            []BrandRow `json:"brands"`
	Months            []MonthRow `json:"months"`
}

func ProfitLossStatement(orders []models.Order, extra ExtraCost) Statement {
	st := Statement{Totals: AggregateTotals(orders)}

	st.ExtraCost = extra.Amount(st.Totals.TotalRevenue)
	st.AdjustedNetProfit = st.Totals.NetProfit - st.ExtraCost
	st.AdjustedMargin = analysis.Margin(st.AdjustedNetProfit, st.Totals.TotalRevenue)
	if st.Totals.TotalOrders > 0 {
		st.AverageProfit = st.AdjustedNetProfit / float64(st.Totals.TotalOrders)
	}

	st.Brands = brandBreakdown(orders)
	st.Months = monthBreakdown(orders)
	return st
}

func brandBreakdown(orders []models.Order) []BrandRow {
	rows := make(map[string]*BrandRow)
	order := make([]string, 0)

	for _, o := range orders {
		for _, lr := range o.Lines {
			brand := lineBrand(lr)
			row, ok := rows[brand]
			if !ok {
				row = &BrandRow{Brand: brand}
				rows[brand] = row
				order = append(order, brand)
			}
			row.Revenue += lr.Line.Revenue
			row.Quantity += lr.Line.Quantity
			row.LineCount++
		}
	}

	res := make([]BrandRow, 0, len(order))
	for _, b := range order {
		row := rows[b]
		if row.LineCount > 0 {
			row.AverageRevenue = row.Revenue / float64(row.LineCount)
		}
		res = append(res, *row)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Revenue > res[j].Revenue
	})
	if len(res) > topBrands {
		res = res[:topBrands]
	}
	return res
}

// lineBrand önce eşleşen ürünün markası, sonra satırdaki marka
func lineBrand(lr models.LineResult) string {
	if lr.Product != nil && lr.Product.Brand != "" {
		return lr.Product.Brand
	}
	if lr.Line.Brand != "" {
		return lr.Line.Brand
	}
	return parse.Unknown
}

func monthBreakdown(orders []models.Order) []MonthRow {
	rows := make(map[string]*MonthRow)
	for _, o := range orders {
		month := orderMonth(o)
		row, ok := rows[month]
		if !ok {
			row = &MonthRow{Month: month}
			rows[month] = row
		}
		row.Revenue += o.TotalRevenue
		row.NetProfit += o.NetProfit
		row.OrderCount++
	}

	res := make([]MonthRow, 0, len(rows))
	for _, r := range rows {
		res = append(res, *r)
	}
	// "Bilinmeyen" rakamla başlayan ay anahtarlarından sonra gelir
	sort.Slice(res, func(i, j int) bool {
		return res[i].Month < res[j].Month
	})
	return res
}

// orderMonth siparişin ilk tarihli satırından ayı bulur
func orderMonth(o models.Order) string {
	for _, lr := range o.Lines {
		if m := parse.Month(lr.Line.OrderDate); m != "" {
			return m
		}
	}
	return parse.Unknown
}
