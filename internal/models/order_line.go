package models

// OrderLine sipariş dosyasındaki tek satır
type OrderLine struct {
	OrderNumber   string  `json:"orderNumber"`
	PackageNumber string  `json:"packageNumber,omitempty"`
	ItemNumber    string  `json:"itemNumber,omitempty"` // Kalem numarası (Hepsiburada)
	Barcode       string  `json:"barcode,omitempty"`
	StockCode     string  `json:"stockCode"`
	ProductName   string  `json:"productName,omitempty"`
	Quantity      int     `json:"quantity"`
	Revenue       float64 `json:"revenue"` // Faturalanacak tutar

	// Platforma göre biri dolu gelir: hazır komisyon tutarı veya oran (yüzde)
	CommissionAmount float64 `json:"commissionAmount,omitempty"`
	CommissionRate   float64 `json:"commissionRate,omitempty"`

	City         string `json:"city,omitempty"`
	CargoCompany string `json:"cargoCompany,omitempty"`
	Status       string `json:"status,omitempty"`
	CustomerType string `json:"customerType,omitempty"`
	Category     string `json:"category,omitempty"`
	Customer     string `json:"customer,omitempty"`
	Brand        string `json:"brand,omitempty"`
	OrderDate    string `json:"orderDate,omitempty"` // YYYY-MM-DD (çözülemezse ham değer)

	Extra map[string]string `json:"extra,omitempty"`
}
