package report

import (
	"math"

	"pazaryeri-kar/internal/models"
	"pazaryeri-kar/internal/platform"
)

// TierBucket kargo baremine düşen sipariş sayısı
type TierBucket struct {
	Label   string   `json:"label"`
	Fee     float64  `json:"fee"`
	Below   *float64 `json:"below,omitempty"` // Son baremde nil
	Count   int      `json:"count"`
	Revenue float64  `json:"revenue"`
}

// CargoTierDistribution siparişleri ücret motorunun kullandığı barem sınırlarına göre dağıtır
func CargoTierDistribution(p platform.Platform, orders []models.Order) []TierBucket {
	s := p.Schedule()

	buckets := make([]TierBucket, len(s.ShippingTiers))
	for i, t := range s.ShippingTiers {
		buckets[i] = TierBucket{Label: t.Label, Fee: t.Fee}
		if !math.IsInf(t.Below, 1) {
			below := t.Below
			buckets[i].Below = &below
		}
	}

	for _, o := range orders {
		i := s.TierIndex(o.TotalRevenue)
		buckets[i].Count++
		buckets[i].Revenue += o.TotalRevenue
	}
	return buckets
}
