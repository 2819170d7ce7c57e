package platform

import (
	"errors"
	"testing"

	"pazaryeri-kar/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse(" Trendyol ")
	require.NoError(t, err)
	assert.Equal(t, Trendyol, p)

	p, err = Parse("HEPSIBURADA")
	require.NoError(t, err)
	assert.Equal(t, Hepsiburada, p)

	_, err = Parse("n11")
	assert.True(t, errors.Is(err, apperrors.ErrUnknownPlatform))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, Keys{Products: "tr_urunler", OrderLines: "tr_siparisler", ExchangeRate: "tr_dolar_kuru"}, Trendyol.Keys())
	assert.Equal(t, Keys{Products: "hb_urunler", OrderLines: "hb_siparisler", ExchangeRate: "hb_dolar_kuru"}, Hepsiburada.Keys())
	assert.Equal(t, Hepsiburada, Trendyol.Other())
	assert.Equal(t, Trendyol, Hepsiburada.Other())
}

func TestScheduleTierIndex(t *testing.T) {
	tr := Trendyol.Schedule()
	assert.Equal(t, 0, tr.TierIndex(0))
	assert.Equal(t, 0, tr.TierIndex(149.98))
	assert.Equal(t, 1, tr.TierIndex(149.99))
	assert.Equal(t, 1, tr.TierIndex(299.98))
	assert.Equal(t, 2, tr.TierIndex(299.99))
	assert.Equal(t, 2, tr.TierIndex(10000))

	hb := Hepsiburada.Schedule()
	assert.Equal(t, 0, hb.TierIndex(149.99))
	assert.Equal(t, 1, hb.TierIndex(150))
	assert.Equal(t, 2, hb.TierIndex(300))

	assert.Equal(t, 8.38, tr.ServiceFee)
	assert.Equal(t, 0.0, hb.ServiceFee)
	assert.Equal(t, CommissionFromRate, tr.Commission)
	assert.Equal(t, CommissionFromAmount, hb.Commission)
	assert.Equal(t, 30.0, tr.DefaultExchangeRate)
	assert.Equal(t, 42.0, hb.DefaultExchangeRate)
}

func TestScheduleIsFreshCopy(t *testing.T) {
	s := Trendyol.Schedule()
	s.ShippingTiers[0].Fee = 999

	assert.Equal(t, 32.49, Trendyol.Schedule().ShippingTiers[0].Fee)
}

func TestAdapterTrendyol(t *testing.T) {
	a := NewAdapter(Trendyol)

	p := a.Product(map[string]string{
		"Tedarikçi Stok Kodu": "X1",
		"Ürün Adı":            "Kupa Bardak",
		"Dolar Fiyatı":        "2,5",
		"Komisyon Oranı":      "%18",
		"Marka":               "Evim",
		"Ürün Stok Adedi":     "12",
		"Partner ID":          "998",
	})
	assert.Equal(t, "X1", p.StockCode)
	assert.Equal(t, 2.5, p.UnitCostUSD)
	assert.Equal(t, 18.0, p.CommissionRate)
	assert.Equal(t, 12, p.StockQuantity)
	assert.Equal(t, map[string]string{"Partner ID": "998"}, p.Extra)

	l := a.OrderLine(map[string]string{
		"Sipariş Numarası":    "",
		"Paket No":            "3,1E+9",
		"Stok Kodu":           "X1",
		"Adet":                "",
		"Faturalanacak Tutar": "299,99",
		"Komisyon Oranı":      "15",
		"İl":                  "İSTANBUL",
		"Sipariş Tarihi":      "5.3.2024 10:15",
	})
	assert.Equal(t, "", l.OrderNumber)
	assert.Equal(t, "3100000000", l.PackageNumber)
	assert.Equal(t, 1, l.Quantity)
	assert.Equal(t, 299.99, l.Revenue)
	assert.Equal(t, 15.0, l.CommissionRate)
	assert.Equal(t, 0.0, l.CommissionAmount)
	assert.Equal(t, "İSTANBUL", l.City)
	assert.Equal(t, "2024-03-05", l.OrderDate)
	assert.Nil(t, l.Extra)
}

func TestAdapterHepsiburada(t *testing.T) {
	a := NewAdapter(Hepsiburada)

	lines := a.OrderLines([]map[string]string{{
		"Sipariş Numarası":                "HB-1",
		"Paket Numarası":                  "P-1",
		"Kalem Numarası":                  "K-7",
		"Barkod":                          "8,68E+12",
		"Satıcı Stok Kodu":                "MAGICBOX-2",
		"Ürün Adı":                        "Magic Box",
		"Adet":                            "2",
		"Faturalandırılacak Satış Fiyatı": "450,00",
		"Komisyon Tutarı (KDV Dahil)":     "54,9",
		"Şehir":                           "ankara",
		"Paket Durumu":                    "Teslim Edildi",
		"Müşteri Tipi":                    "Bireysel",
	}})
	require.Len(t, lines, 1)
	l := lines[0]
	assert.Equal(t, "HB-1", l.OrderNumber)
	assert.Equal(t, "K-7", l.ItemNumber)
	assert.Equal(t, "8680000000000", l.Barcode)
	assert.Equal(t, "MAGICBOX-2", l.StockCode)
	assert.Equal(t, 2, l.Quantity)
	assert.Equal(t, 450.0, l.Revenue)
	assert.Equal(t, 54.9, l.CommissionAmount)
	assert.Equal(t, "Teslim Edildi", l.Status)
	assert.Equal(t, "Bireysel", l.CustomerType)

	p := a.Product(map[string]string{"Satıcı Stok Kodu": "MAGICBOX-2", "SKU": "HBV0001", "Ana Kategori": "Ev"})
	assert.Equal(t, "HBV0001", p.SKU)
	assert.Equal(t, "Ev", p.Category)
}
