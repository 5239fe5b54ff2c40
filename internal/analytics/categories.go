package analytics

import (
	"fmt"
	"math"
	"sort"

	"retrix/pkg/contracts/domain"
)

// catalogueCategories maps known marketplace catalogue ids to their
// category names. Ids outside the table get a synthesized
// "Category <id>" label.
var catalogueCategories = map[int64]string{
	362950628: "Men's Kurtas",
	685582861: "Women's Sarees",
	334760738: "Men's Shirts",
	868820204: "Women's Dresses",
	969119330: "Kids Wear",
	266944844: "Accessories",
	485451171: "Footwear",
	675770529: "Bags",
	774996843: "Jewelry",
	149203558: "Watches",
	586845604: "Electronics",
	386665249: "Home Decor",
	362863730: "Beauty Products",
	924970419: "Sports Gear",
	171069472: "Kitchenware",
	636045484: "Furniture",
	364814270: "Toys",
	726563708: "Books",
	197613238: "Food Items",
}

// CategoryName resolves a catalogue id to its display category.
func CategoryName(catalogueID int64) string {
	if name, ok := catalogueCategories[catalogueID]; ok {
		return name
	}
	return fmt.Sprintf("Category %d", catalogueID)
}

// categoryAccumulator collects per-category figures in one pass.
type categoryAccumulator struct {
	revenue    float64
	orders     int
	returns    int
	returnCost float64
}

// deriveCategories groups the table by category and materializes the
// stat list, ordered by category name. The category comes from the
// category column when present, else from the catalogue id lookup;
// with neither column the analysis is skipped entirely.
func deriveCategories(t *domain.Table) []CategoryStat {
	categoryOf, ok := categoryKeyFunc(t)
	if !ok || t.Len() == 0 {
		return nil
	}

	accs := make(map[string]*categoryAccumulator)
	for _, row := range t.Rows {
		name, ok := categoryOf(row)
		if !ok {
			continue
		}
		acc := accs[name]
		if acc == nil {
			acc = &categoryAccumulator{}
			accs[name] = acc
		}
		acc.orders++
		if !domain.IsMissing(row.OrderPrice) {
			acc.revenue += row.OrderPrice
		}
		if !domain.IsMissing(row.ReturnCost) {
			acc.returnCost += row.ReturnCost
		}
		if row.OrderStatus == domain.StatusReturned {
			acc.returns++
		}
	}
	if len(accs) == 0 {
		return nil
	}

	names := make([]string, 0, len(accs))
	var maxRevenue float64
	for name, acc := range accs {
		names = append(names, name)
		if acc.revenue > maxRevenue {
			maxRevenue = acc.revenue
		}
	}
	sort.Strings(names)

	stats := make([]CategoryStat, 0, len(names))
	for _, name := range names {
		acc := accs[name]
		stat := CategoryStat{
			Name:       name,
			Revenue:    acc.revenue,
			Orders:     acc.orders,
			Returns:    acc.returns,
			ReturnCost: acc.returnCost,
		}
		if acc.revenue > 0 {
			stat.ProfitMargin = (acc.revenue - acc.returnCost) / acc.revenue * 100
		}
		if acc.orders > 0 {
			stat.ReturnRate = round2(float64(acc.returns) / float64(acc.orders) * 100)
			stat.AvgOrderValue = round2(acc.revenue / float64(acc.orders))
		}
		stat.PerformanceScore = performanceScore(stat, maxRevenue)
		stats = append(stats, stat)
	}
	return stats
}

// performanceScore blends relative revenue share (30%), inverse return
// rate (40%) and profit margin capped to [0, 50] (30%), rounded to the
// nearest integer.
func performanceScore(stat CategoryStat, maxRevenue float64) float64 {
	var revenueTerm float64
	if maxRevenue > 0 {
		revenueTerm = stat.Revenue / maxRevenue * 30
	}
	marginTerm := clip(stat.ProfitMargin, 0, 50) / 50 * 30
	return math.Round(revenueTerm + (100-stat.ReturnRate)*0.4 + marginTerm)
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// categoryKeyFunc picks the grouping key source for the table.
func categoryKeyFunc(t *domain.Table) (func(domain.OrderRecord) (string, bool), bool) {
	switch {
	case t.Has(domain.ColCategory):
		return func(r domain.OrderRecord) (string, bool) {
			return r.Category, r.Category != ""
		}, true
	case t.Has(domain.ColCatalogueID):
		return func(r domain.OrderRecord) (string, bool) {
			if domain.IsMissing(r.CatalogueID) {
				return "", false
			}
			return CategoryName(int64(r.CatalogueID)), true
		}, true
	default:
		return nil, false
	}
}

// topByRevenue returns the n highest-revenue categories, descending.
func topByRevenue(stats []CategoryStat, n int) []CategoryStat {
	top := make([]CategoryStat, len(stats))
	copy(top, stats)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Revenue > top[j].Revenue })
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// topByOrderCount returns the n categories with the most orders.
func topByOrderCount(stats []CategoryStat, n int) []CategoryStat {
	top := make([]CategoryStat, len(stats))
	copy(top, stats)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Orders > top[j].Orders })
	if len(top) > n {
		top = top[:n]
	}
	return top
}
