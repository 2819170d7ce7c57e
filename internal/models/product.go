package models

// Product pazaryeri kataloğundaki bir ürün. Stok kodu siparişlerle eşleşme anahtarıdır.
type Product struct {
	StockCode      string  `json:"stockCode"`
	Name           string  `json:"name"`
	UnitCostUSD    float64 `json:"unitCostUSD"`    // Dolar cinsinden tedarik maliyeti
	CommissionRate float64 `json:"commissionRate"` // Yüzde (0-100)

	// Sadece gösterim amaçlı alanlar
	Brand         string  `json:"brand,omitempty"`
	Category      string  `json:"category,omitempty"`
	StockQuantity int     `json:"stockQuantity,omitempty"`
	ListPrice     float64 `json:"listPrice,omitempty"`
	Barcode       string  `json:"barcode,omitempty"`
	SKU           string  `json:"sku,omitempty"`

	// Eşlemesi olmayan kaynak kolonlar (olduğu gibi saklanır)
	Extra map[string]string `json:"extra,omitempty"`
}
