package store

import (
	"strings"

	"pazaryeri-kar/internal/models"
)

// LineKeyStrategy bir sipariş satırından eşleştirme anahtarı çıkarır. ok=false ise strateji bu satıra uygulanamaz.
type LineKeyStrategy struct {
	Name string
	Key  func(l models.OrderLine) (key string, ok bool)
}

// LineKeyStrategies sipariş satırı düzenleme/silme için öncelik sırası.
// Hedef satırda dolu olan ve en az bir kayıtla eşleşen ilk strateji kullanılır.
var LineKeyStrategies = []LineKeyStrategy{
	{Name: "barkod", Key: func(l models.OrderLine) (string, bool) {
		b := strings.TrimSpace(l.Barcode)
		return b, b != ""
	}},
	{Name: "siparis+kalem", Key: func(l models.OrderLine) (string, bool) {
		return pair(l.OrderNumber, l.ItemNumber)
	}},
	{Name: "siparis+urun", Key: func(l models.OrderLine) (string, bool) {
		return pair(l.OrderNumber, l.ProductName)
	}},
	{Name: "siparis+paket", Key: func(l models.OrderLine) (string, bool) {
		return pair(l.OrderNumber, l.PackageNumber)
	}},
}

func pair(a, b string) (string, bool) {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return "", false
	}
	return a + "\x00" + b, true
}

// MatchLines hedefle eşleşen satırların indekslerini ve kullanılan stratejinin adını döndürür
func MatchLines(lines []models.OrderLine, target models.OrderLine) ([]int, string) {
	for _, st := range LineKeyStrategies {
		want, ok := st.Key(target)
		if !ok {
			continue
		}
		var idx []int
		for i, l := range lines {
			if got, ok := st.Key(l); ok && got == want {
				idx = append(idx, i)
			}
		}
		if len(idx) > 0 {
			return idx, st.Name
		}
	}
	return nil, ""
}

// MatchProducts stok koduna göre eşleştirir; birden fazla ürün aynı kodu taşıyorsa ürün adı da aranır
func MatchProducts(products []models.Product, target models.Product) []int {
	code := strings.TrimSpace(target.StockCode)
	if code == "" {
		return nil
	}

	var idx []int
	for i, p := range products {
		if p.StockCode == code {
			idx = append(idx, i)
		}
	}
	if len(idx) <= 1 || target.Name == "" {
		return idx
	}

	var narrowed []int
	for _, i := range idx {
		if products[i].Name == target.Name {
			narrowed = append(narrowed, i)
		}
	}
	return narrowed
}
