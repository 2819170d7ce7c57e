package export

import (
	"math"

	"pazaryeri-kar/internal/models"
)

// Table dışa aktarılacak düz satırlar. Hücreler string, int veya float64 olabilir.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

var OrderColumns = []string{
	"Sipariş No", "Toplam Gelir", "Toplam Maliyet", "Kargo Ücreti", "Hizmet Bedeli",
	"Sarf Bedeli Toplam", "Stopaj", "Komisyon", "Net Kar", "Kar Marjı (%)",
	"Toplam Adet", "Ürün Türü Sayısı", "Tüm Ürünler Eşleşti",
}

var LineColumns = []string{
	"Sipariş No", "Stok Kodu", "Ürün Adı", "Adet", "Birim Gelir", "Birim Maliyet",
	"Sipariş Sarf Bedeli", "Magicbox/Cam Sipariş", "Komisyon", "Ürün Eşleşti",
}

const notAvailable = "N/A"

// OrderTable sipariş başına bir satır
func OrderTable(orders []models.Order) Table {
	t := Table{Name: "Sipariş Bazlı", Columns: OrderColumns, Rows: make([][]any, 0, len(orders))}
	for _, o := range orders {
		t.Rows = append(t.Rows, []any{
			o.OrderNumber,
			money(o.TotalRevenue),
			money(o.TotalProductCost),
			money(o.ShippingFee),
			money(o.ServiceFee),
			money(o.ConsumableFee),
			money(o.WithholdingTax),
			money(o.TotalCommission),
			money(o.NetProfit),
			money(o.MarginPercent),
			o.TotalQuantity,
			len(o.Lines),
			yesNo(o.AllLinesMatched),
		})
	}
	return t
}

// LineTable sipariş satırı başına bir satır
func LineTable(orders []models.Order) Table {
	t := Table{Name: "Ürün Bazlı", Columns: LineColumns}
	for _, o := range orders {
		for _, lr := range o.Lines {
			t.Rows = append(t.Rows, []any{
				o.OrderNumber,
				orNA(lr.Line.StockCode),
				orNA(lr.Line.ProductName),
				lr.Line.Quantity,
				money(lr.Line.Revenue),
				money(unitCost(lr)),
				money(o.ConsumableFee),
				yesNo(o.HasTriggerProduct),
				money(lr.Commission),
				yesNo(lr.Matched),
			})
		}
	}
	return t
}

func unitCost(lr models.LineResult) float64 {
	if lr.Line.Quantity == 0 {
		return 0
	}
	return lr.Cost / float64(lr.Line.Quantity)
}

// money iki ondalığa yuvarlar
func money(v float64) float64 {
	return math.Round(v*100) / 100
}

func yesNo(b bool) string {
	if b {
		return "Evet"
	}
	return "Hayır"
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
