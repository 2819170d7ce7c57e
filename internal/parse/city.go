package parse

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Unknown boş şehir, kargo ve durum değerleri için kullanılan etiket
const Unknown = "Bilinmeyen"

// NormalizeCityName şehir adını Türkçe kurallarla küçültüp her kelimenin ilk harfini büyütür.
// "İSTANBUL" -> "İstanbul", "ığdır" -> "Iğdır". Boş değerler "Bilinmeyen" olur.
func NormalizeCityName(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return Unknown
	}

	// Caser durum taşıyabildiği için her çağrıda yenisi oluşturulur
	lower := cases.Lower(language.Turkish).String(raw)
	upper := cases.Upper(language.Turkish)

	words := strings.Split(lower, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = upper.String(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
