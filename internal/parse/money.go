package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// maxSafeInteger float64'ün kayıpsız temsil edebildiği en büyük tam sayı (2^53 - 1)
const maxSafeInteger = 1<<53 - 1

var (
	scientificRe    = regexp.MustCompile(`(?i)^\d+([,.]?\d*)?E[+-]?\d+$`)
	leadingNumberRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingIntRe    = regexp.MustCompile(`^[+-]?\d+`)
)

// Money hücre değerini tutara çevirir. Virgül ve nokta ondalık ayırıcı olarak kabul edilir,
// "1.234,56" gibi binlik ayırıcılı Türkçe yazım da çözülür. "TL", "₺" ve "%" ekleri atılır.
// Çözülemeyen değerler 0 döner.
func Money(raw string) float64 {
	s := cleanNumber(raw)
	if s == "" {
		return 0
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return finite(v)
	}

	// "12.5 adet" gibi değerlerde baştaki sayıyı al
	if m := leadingNumberRe.FindString(s); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return finite(v)
		}
	}
	return 0
}

// Identifier barkod, sipariş ve paket numarası gibi sayısal görünen kimlikleri temizler.
// Excel'in bilimsel gösterime çevirdiği değerler ("8,68E+12") tam sayı metnine döndürülür.
// Güvenli tam sayı sınırını aşan değerler yuvarlanmış basamak dizisi olarak kalır.
func Identifier(raw string) string {
	s := strings.TrimSpace(raw)
	if !scientificRe.MatchString(s) {
		return s
	}

	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	if v > maxSafeInteger {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatInt(int64(math.Round(v)), 10)
}

// Quantity adet değerini çözer. Boş, geçersiz veya 1'den küçük değerler 1 kabul edilir.
func Quantity(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 1
	}
	m := leadingIntRe.FindString(s)
	if m == "" {
		return 1
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Rate kullanıcı girişi olan dolar kurunu katı kurallarla çözer.
// Sayı olmayan, sıfır veya negatif değerlerde ok=false döner.
func Rate(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

func cleanNumber(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "TL")
	s = strings.ReplaceAll(s, "₺", "")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, " ", "")

	// Hem nokta hem virgül varsa ve virgül sondaysa nokta binlik ayırıcıdır
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	if lastDot >= 0 && lastComma > lastDot {
		s = strings.ReplaceAll(s, ".", "")
	}
	return strings.ReplaceAll(s, ",", ".")
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
