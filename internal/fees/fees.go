package fees

import (
	"strings"

	"pazaryeri-kar/internal/models"
	"pazaryeri-kar/internal/platform"
)

// Shipping sipariş toplamına göre kargo baremini uygular. Karşılaştırmalar "küçüktür" ile yapılır.
func Shipping(s platform.Schedule, orderRevenue float64) float64 {
	if len(s.ShippingTiers) == 0 {
		return 0
	}
	return s.ShippingTiers[s.TierIndex(orderRevenue)].Fee
}

// Service sipariş başına sabit hizmet bedeli
func Service(s platform.Schedule) float64 {
	return s.ServiceFee
}

// HasTrigger satırlardan herhangi birinin stok kodu veya ürün adı tetikleyici kelime içeriyor mu
func HasTrigger(s platform.Schedule, lines []models.OrderLine) bool {
	for _, l := range lines {
		code := strings.ToLower(l.StockCode)
		name := strings.ToLower(l.ProductName)
		for _, trigger := range s.ConsumableTriggers {
			if strings.Contains(code, trigger) || strings.Contains(name, trigger) {
				return true
			}
		}
	}
	return false
}

// Consumable sipariş seviyesinde sarf bedeli, tek tetikleyici satır tüm siparişi yükseltir
func Consumable(s platform.Schedule, hasTrigger bool) float64 {
	if hasTrigger {
		return s.ConsumableTriggerFee
	}
	return s.ConsumableFee
}

// Withholding stopaj: (tutar / 1.2) * 0.01
func Withholding(s platform.Schedule, orderRevenue float64) float64 {
	if s.WithholdingDivisor == 0 {
		return 0
	}
	return (orderRevenue / s.WithholdingDivisor) * s.WithholdingRate
}

// Commission satırın komisyon tutarını platform modeline göre çözer.
// Oran modelinde satırda oran yoksa eşleşen ürünün oranı kullanılır, product nil olabilir.
func Commission(s platform.Schedule, line models.OrderLine, product *models.Product) float64 {
	if s.Commission == platform.CommissionFromAmount {
		return line.CommissionAmount
	}

	rate := line.CommissionRate
	if rate == 0 && product != nil {
		rate = product.CommissionRate
	}
	return line.Revenue * (rate / 100)
}
