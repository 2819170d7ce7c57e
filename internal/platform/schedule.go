package platform

import "math"

// Tier kargo baremi. Tutar Below değerinden küçükse Fee uygulanır.
type Tier struct {
	Below float64
	Fee   float64
	Label string
}

type CommissionModel int

const (
	// Satırda hazır komisyon tutarı gelir (Hepsiburada)
	CommissionFromAmount CommissionModel = iota
	// Satırdaki oran, yoksa ürünün oranı ciroyla çarpılır (Trendyol)
	CommissionFromRate
)

// Schedule platforma özel sabit ücret tablosu
type Schedule struct {
	ShippingTiers []Tier // Son barem Below=+Inf

	ServiceFee float64 // Sipariş başına sabit hizmet bedeli

	ConsumableFee        float64
	ConsumableTriggerFee float64
	ConsumableTriggers   []string // Küçük harfle aranır

	WithholdingDivisor float64
	WithholdingRate    float64

	Commission CommissionModel

	DefaultExchangeRate float64
}

func (p Platform) Schedule() Schedule {
	s := Schedule{
		ConsumableFee:        7.5,
		ConsumableTriggerFee: 10.0,
		ConsumableTriggers:   []string{"magicbox", "cam"},
		WithholdingDivisor:   1.2,
		WithholdingRate:      0.01,
	}

	if p == Hepsiburada {
		s.ShippingTiers = []Tier{
			{Below: 150, Fee: 38.4, Label: "0-149.99₺ (38.4₺ kargo)"},
			{Below: 300, Fee: 62.4, Label: "150-299.99₺ (62.4₺ kargo)"},
			{Below: math.Inf(1), Fee: 74.4, Label: "300₺+ (74.4₺ kargo)"},
		}
		s.ServiceFee = 0
		s.Commission = CommissionFromAmount
		s.DefaultExchangeRate = 42.0
		return s
	}

	s.ShippingTiers = []Tier{
		{Below: 149.99, Fee: 32.49, Label: "0-149.99₺ (32.49₺ kargo)"},
		{Below: 299.99, Fee: 62.00, Label: "150-299.99₺ (62₺ kargo)"},
		{Below: math.Inf(1), Fee: 75.00, Label: "300₺+ (75₺ kargo)"},
	}
	s.ServiceFee = 8.38
	s.Commission = CommissionFromRate
	s.DefaultExchangeRate = 30.0
	return s
}

// TierIndex tutarın düştüğü baremin sırası
func (s Schedule) TierIndex(amount float64) int {
	for i, t := range s.ShippingTiers {
		if amount < t.Below {
			return i
		}
	}
	return len(s.ShippingTiers) - 1
}
