package report

import (
	"sort"
	"strings"

	"pazaryeri-kar/internal/models"
	"pazaryeri-kar/internal/parse"
)

const (
	topCategories = 5
	topCities     = 10
	otherCategory = "Diğer"
)

type Count struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Dashboard sipariş satırlarının dağılımları
type Dashboard struct {
	TotalLines     int     `json:"totalLines"`
	Categories     []Count `json:"categories"` // İlk 5 + "Diğer"
	Cities         []Count `json:"cities"`     // İlk 10
	CargoCompanies []Count `json:"cargoCompanies"`
	Statuses       []Count `json:"statuses"`
}

func BuildDashboard(lines []models.OrderLine) Dashboard {
	categories := newCounter()
	cities := newCounter()
	cargo := newCounter()
	statuses := newCounter()

	for _, l := range lines {
		categories.add(orDefault(l.Category, otherCategory))
		cities.add(parse.NormalizeCityName(l.City))
		cargo.add(orDefault(l.CargoCompany, parse.Unknown))
		statuses.add(orDefault(l.Status, parse.Unknown))
	}

	return Dashboard{
		TotalLines:     len(lines),
		Categories:     topWithOther(categories.sorted(), topCategories),
		Cities:         top(cities.sorted(), topCities),
		CargoCompanies: cargo.sorted(),
		Statuses:       statuses.sorted(),
	}
}

// counter ilk görülme sırasını koruyarak sayar
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

// sorted çoktan aza, eşitlikte ilk görülme sırası
func (c *counter) sorted() []Count {
	res := make([]Count, 0, len(c.order))
	for _, name := range c.order {
		res = append(res, Count{Name: name, Value: c.counts[name]})
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Value > res[j].Value
	})
	return res
}

func top(counts []Count, n int) []Count {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}

func topWithOther(counts []Count, n int) []Count {
	if len(counts) <= n {
		return counts
	}
	res := append([]Count(nil), counts[:n]...)
	other := 0
	for _, c := range counts[n:] {
		other += c.Value
	}
	return append(res, Count{Name: otherCategory, Value: other})
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
