package models

// LineResult bir sipariş satırının ürünle eşleşme ve maliyet sonucu
type LineResult struct {
	Line          OrderLine `json:"line"`
	Product       *Product  `json:"product,omitempty"`
	Matched       bool      `json:"matched"`
	UnitCostLocal float64   `json:"unitCostLocal"` // Dolar fiyatı × kur
	Cost          float64   `json:"cost"`          // UnitCostLocal × adet
	Commission    float64   `json:"commission"`
}

// Order aynı sipariş numarasına sahip satırların hesaplanmış hali. Saklanmaz, her seferinde yeniden üretilir.
type Order struct {
	OrderNumber string       `json:"orderNumber"`
	Lines       []LineResult `json:"lines"`

	TotalRevenue     float64 `json:"totalRevenue"`
	TotalProductCost float64 `json:"totalProductCost"`
	TotalCommission  float64 `json:"totalCommission"`
	ShippingFee      float64 `json:"shippingFee"`
	ServiceFee       float64 `json:"serviceFee"`
	ConsumableFee    float64 `json:"consumableFee"`
	WithholdingTax   float64 `json:"withholdingTax"`
	TotalCost        float64 `json:"totalCost"`
	NetProfit        float64 `json:"netProfit"`
	MarginPercent    float64 `json:"marginPercent"`

	TotalQuantity     int  `json:"totalQuantity"`
	HasTriggerProduct bool `json:"hasTriggerProduct"` // Magicbox/cam içeren satır var mı
	AllLinesMatched   bool `json:"allLinesMatched"`
}
