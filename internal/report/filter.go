package report

import (
	"sort"
	"strings"

	"pazaryeri-kar/internal/apperrors"
	"pazaryeri-kar/internal/models"
)

type Filter string

const (
	FilterAll        Filter = "all"
	FilterProfitable Filter = "profitable"
	FilterLoss       Filter = "loss"
	FilterMatched    Filter = "matched"
	FilterUnmatched  Filter = "unmatched"
)

// ParseFilter boş değeri "all" kabul eder
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterProfitable, FilterLoss, FilterMatched, FilterUnmatched:
		return f, nil
	}
	return "", apperrors.Detail(apperrors.ErrInvalidInput, "bilinmeyen filtre: %q", s)
}

// Apply siparişleri filtreye ve (boş değilse) stok koduna göre süzer.
// "loss" sadece netProfit < 0 olanları alır, sıfır kar ne karlı ne zararlı sayılır.
func Apply(orders []models.Order, f Filter, stockCode string) []models.Order {
	res := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		switch f {
		case FilterProfitable:
			if o.NetProfit <= 0 {
				continue
			}
		case FilterLoss:
			if o.NetProfit >= 0 {
				continue
			}
		case FilterMatched:
			if !o.AllLinesMatched {
				continue
			}
		case FilterUnmatched:
			if o.AllLinesMatched {
				continue
			}
		}

		if stockCode != "" && !hasStockCode(o, stockCode) {
			continue
		}
		res = append(res, o)
	}
	return res
}

func hasStockCode(o models.Order, code string) bool {
	for _, lr := range o.Lines {
		if lr.Line.StockCode == code {
			return true
		}
	}
	return false
}

// StockCodeOptions siparişlerdeki farklı stok kodları, sıralı
func StockCodeOptions(orders []models.Order) []string {
	seen := make(map[string]bool)
	res := make([]string, 0)
	for _, o := range orders {
		for _, lr := range o.Lines {
			c := lr.Line.StockCode
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			res = append(res, c)
		}
	}
	sort.Strings(res)
	return res
}
