// Package sku derives per-SKU revenue, return and margin rankings from
// an order table, plus single-SKU drill-downs.
package sku

import (
	"math"
	"sort"
	"strings"

	"retrix/pkg/contracts/domain"
)

// Display truncation lengths for SKU identifiers.
const (
	shortSKULen = 15
	longSKULen  = 30
)

// Defaults applied when the source table cannot supply the figure:
// margin when no return_cost column exists, return rate when no
// order_status column exists.
const (
	defaultProfitMargin = 35.0
	defaultReturnRate   = 5.0
)

// Stat holds the derived ranking figures for one SKU.
type Stat struct {
	SKU          string  `json:"sku"`  // truncated short form
	Name         string  `json:"name"` // truncated long form
	Category     string  `json:"category"`
	Orders       int     `json:"orders"`
	Revenue      float64 `json:"revenue"`
	ReturnCost   float64 `json:"return_cost"`
	ProfitMargin float64 `json:"profit_margin"`
	ReturnCount  int     `json:"return_count"`
	ReturnRate   float64 `json:"return_rate"`
}

// Detail is the drill-down result for a single SKU.
type Detail struct {
	SKU         string  `json:"sku"`
	TotalOrders int     `json:"total_orders"`
	Revenue     float64 `json:"revenue"`
	Returns     int     `json:"returns"`
	ReturnRate  float64 `json:"return_rate"`
}

type accumulator struct {
	orders     int
	revenue    float64
	returnCost float64
	returns    int
}

// Rank groups the table by SKU description and returns the top ten
// SKUs by revenue, descending, ties broken by first appearance.
// Without a sku_description column the result is empty.
func Rank(t *domain.Table) []Stat {
	if !t.Has(domain.ColSKU) {
		return []Stat{}
	}

	hasCost := t.Has(domain.ColReturnCost)
	hasStatus := t.Has(domain.ColOrderStatus)

	accs := make(map[string]*accumulator)
	var order []string
	for _, row := range t.Rows {
		if row.SKU == "" {
			continue
		}
		acc := accs[row.SKU]
		if acc == nil {
			acc = &accumulator{}
			accs[row.SKU] = acc
			order = append(order, row.SKU)
		}
		acc.orders++
		if !domain.IsMissing(row.OrderPrice) {
			acc.revenue += row.OrderPrice
		}
		if hasCost && !domain.IsMissing(row.ReturnCost) {
			acc.returnCost += row.ReturnCost
		}
		if hasStatus && row.OrderStatus == domain.StatusReturned {
			acc.returns++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return accs[order[i]].revenue > accs[order[j]].revenue
	})
	if len(order) > 10 {
		order = order[:10]
	}

	stats := make([]Stat, 0, len(order))
	for _, id := range order {
		acc := accs[id]
		stat := Stat{
			SKU:        truncate(id, shortSKULen),
			Name:       truncate(id, longSKULen),
			Category:   keywordCategory(id),
			Orders:     acc.orders,
			Revenue:    round2(acc.revenue),
			ReturnCost: acc.returnCost,
		}

		if hasCost {
			if acc.revenue > 0 {
				stat.ProfitMargin = round1((acc.revenue - acc.returnCost) / acc.revenue * 100)
			}
		} else {
			stat.ProfitMargin = defaultProfitMargin
		}

		if hasStatus {
			stat.ReturnCount = acc.returns
			if acc.orders > 0 {
				stat.ReturnRate = round1(float64(acc.returns) / float64(acc.orders) * 100)
			}
		} else {
			stat.ReturnRate = defaultReturnRate
		}

		stats = append(stats, stat)
	}
	return stats
}

// DetailFor computes the drill-down metrics for one SKU. An absent
// column or no matching rows yields an all-zero detail, never an error.
func DetailFor(t *domain.Table, sku string) Detail {
	d := Detail{SKU: truncate(sku, longSKULen)}
	if !t.Has(domain.ColSKU) {
		return d
	}

	for _, row := range t.Rows {
		if row.SKU != sku {
			continue
		}
		d.TotalOrders++
		if !domain.IsMissing(row.OrderPrice) {
			d.Revenue += row.OrderPrice
		}
		if row.OrderStatus == domain.StatusReturned {
			d.Returns++
		}
	}
	if d.TotalOrders > 0 {
		d.ReturnRate = round2(float64(d.Returns) / float64(d.TotalOrders) * 100)
	}
	return d
}

// CountDistinct returns the number of distinct SKUs in the table.
func CountDistinct(t *domain.Table) int {
	if !t.Has(domain.ColSKU) {
		return 0
	}
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		if row.SKU != "" {
			seen[row.SKU] = struct{}{}
		}
	}
	return len(seen)
}

// keywordCategory buckets a SKU description into a coarse category by
// keyword, mirroring how the dashboard labels the ranking table.
func keywordCategory(sku string) string {
	lower := strings.ToLower(sku)
	switch {
	case strings.Contains(lower, "electronic"):
		return "Electronics"
	case strings.Contains(lower, "cable"), strings.Contains(lower, "headphone"):
		return "Accessories"
	default:
		return "General"
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
