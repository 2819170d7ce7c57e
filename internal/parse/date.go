package parse

import (
	"strings"
	"time"
)

// TurkishDate "D.M.YYYY" veya "D.M.YYYY H:MM" biçimindeki tarihi "YYYY-MM-DD" yapar.
// Biçim tanınmazsa girdi olduğu gibi döner.
func TurkishDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw
	}

	datePart := strings.Fields(s)[0]
	parts := strings.Split(datePart, ".")
	if len(parts) != 3 {
		return raw
	}
	day, month, year := parts[0], parts[1], parts[2]
	if len(year) != 4 || len(day) == 0 || len(day) > 2 || len(month) == 0 || len(month) > 2 {
		return raw
	}
	if !isDigits(day) || !isDigits(month) || !isDigits(year) {
		return raw
	}

	return year + "-" + pad2(month) + "-" + pad2(day)
}

// Month ISO tarihten "YYYY-MM" anahtarını çıkarır, tarih çözülemezse boş döner
func Month(isoDate string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(isoDate))
	if err != nil {
		return ""
	}
	return t.Format("2006-01")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
