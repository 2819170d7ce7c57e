package platform

import (
	"strings"

	"pazaryeri-kar/internal/apperrors"
)

type Platform string

const (
	Trendyol    Platform = "trendyol"
	Hepsiburada Platform = "hepsiburada"
)

// ActiveKey aktif platformun saklandığı anahtar (önekli değildir)
const ActiveKey = "aktif_platform"

// Eski sürümden kalan öneksiz Trendyol anahtarları
var LegacyKeys = []string{"urunler", "siparisler"}

// LegacyRateKey eski sürümde Trendyol kurunun tutulduğu anahtar
const LegacyRateKey = "dolarKuru"

func All() []Platform {
	return []Platform{Trendyol, Hepsiburada}
}

// Parse platform adını çözer, büyük/küçük harf duyarsız
func Parse(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case Trendyol:
		return Trendyol, nil
	case Hepsiburada:
		return Hepsiburada, nil
	}
	return "", apperrors.Detail(apperrors.ErrUnknownPlatform, "%q", s)
}

func (p Platform) Valid() bool {
	return p == Trendyol || p == Hepsiburada
}

// Prefix depolama anahtarlarının platform öneki
func (p Platform) Prefix() string {
	if p == Hepsiburada {
		return "hb_"
	}
	return "tr_"
}

func (p Platform) Other() Platform {
	if p == Hepsiburada {
		return Trendyol
	}
	return Hepsiburada
}

func (p Platform) DisplayName() string {
	if p == Hepsiburada {
		return "Hepsiburada"
	}
	return "Trendyol"
}

// Keys platformun kalıcı anahtarları
type Keys struct {
	Products     string
	OrderLines   string
	ExchangeRate string
}

func (p Platform) Keys() Keys {
	prefix := p.Prefix()
	return Keys{
		Products:     prefix + "urunler",
		OrderLines:   prefix + "siparisler",
		ExchangeRate: prefix + "dolar_kuru",
	}
}
