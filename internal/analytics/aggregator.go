package analytics

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"retrix/pkg/contracts/domain"
)

// Aggregate computes the single-table dashboard metric bundle. It
// never fails: a nil or empty table, missing columns, or unparseable
// cells all degrade field by field to zero/empty defaults.
func Aggregate(t *domain.Table) *MetricsBundle {
	b := emptyBundle()
	if t == nil {
		return b
	}

	b.TotalOrders = t.Len()
	if t.Has(domain.ColOrderStatus) {
		for _, row := range t.Rows {
			if row.OrderStatus == domain.StatusReturned {
				b.TotalReturns++
			}
		}
	}
	if b.TotalOrders > 0 {
		b.ReturnPercent = round2(float64(b.TotalReturns) / float64(b.TotalOrders) * 100)
	}

	if t.Has(domain.ColOrderPrice) {
		b.NetSales = sumColumn(t.Rows, func(r domain.OrderRecord) float64 { return r.OrderPrice })
	}
	if t.Has(domain.ColReturnCost) {
		b.ReturnCost = sumColumn(t.Rows, func(r domain.OrderRecord) float64 { return r.ReturnCost })
	}
	b.NetProfit = b.NetSales - b.ReturnCost

	if t.Has(domain.ColOrderDate) {
		b.ChartDates, b.ChartDisplayDates, b.ChartAmounts, b.ChartOrderCounts = dailySales(t.Rows)
	}

	if t.Has(domain.ColOrderStatus) && t.Has(domain.ColReturnReason) {
		b.PieLabels, b.PieValues = returnReasons(t.Rows)
	}

	if t.Has(domain.ColCatalogueID) && t.Has(domain.ColOrderStatus) {
		b.CatalogueLabels, b.CatalogueValues = topReturnedBy(t.Rows, func(r domain.OrderRecord) (string, bool) {
			if domain.IsMissing(r.CatalogueID) {
				return "", false
			}
			return strconv.FormatInt(int64(r.CatalogueID), 10), true
		})
	}

	if t.Has(domain.ColSKU) && t.Has(domain.ColOrderStatus) {
		b.SKULabels, b.SKUValues = topReturnedBy(t.Rows, func(r domain.OrderRecord) (string, bool) {
			return r.SKU, r.SKU != ""
		})
	}

	if cats := deriveCategories(t); len(cats) > 0 {
		b.Categories = cats
		b.TopCategories = topByRevenue(cats, 5)
		b.TopByOrders = topByOrderCount(cats, 5)
		b.Insights = generateInsights(cats, b.TopCategories)
	}

	return b
}

// dailySales groups rows by the raw order_date string and returns the
// parallel chart arrays, keys in ascending string order. Labels carry
// an ordinal day suffix derived from the first dash-delimited token.
func dailySales(rows []domain.OrderRecord) (dates, labels []string, amounts []float64, counts []int) {
	type dayAgg struct {
		amount float64
		count  int
	}
	byDate := make(map[string]*dayAgg)
	for _, row := range rows {
		if row.OrderDate == "" {
			continue
		}
		agg := byDate[row.OrderDate]
		if agg == nil {
			agg = &dayAgg{}
			byDate[row.OrderDate] = agg
		}
		if !domain.IsMissing(row.OrderPrice) {
			agg.amount += row.OrderPrice
		}
		agg.count++
	}

	dates = make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	labels = make([]string, 0, len(dates))
	amounts = make([]float64, 0, len(dates))
	counts = make([]int, 0, len(dates))
	for _, date := range dates {
		labels = append(labels, displayDay(date))
		amounts = append(amounts, byDate[date].amount)
		counts = append(counts, byDate[date].count)
	}
	return dates, labels, amounts, counts
}

// displayDay turns "2-01-2024" into "2nd". Dates without a leading
// numeric day token are shown verbatim.
func displayDay(date string) string {
	if !strings.Contains(date, "-") {
		return date
	}
	day, err := strconv.Atoi(strings.SplitN(date, "-", 2)[0])
	if err != nil {
		return date
	}
	return formatDay(day)
}

// formatDay appends the English ordinal suffix to a day of month.
func formatDay(day int) string {
	if day >= 11 && day <= 13 {
		return fmt.Sprintf("%dth", day)
	}
	switch day % 10 {
	case 1:
		return fmt.Sprintf("%dst", day)
	case 2:
		return fmt.Sprintf("%dnd", day)
	case 3:
		return fmt.Sprintf("%drd", day)
	default:
		return fmt.Sprintf("%dth", day)
	}
}

// returnReasons counts return reasons over returned rows, ordered by
// descending count with first-seen order breaking ties.
func returnReasons(rows []domain.OrderRecord) ([]string, []int) {
	counts := make(map[string]int)
	var order []string
	for _, row := range rows {
		if row.OrderStatus != domain.StatusReturned || row.ReturnReason == "" {
			continue
		}
		if _, seen := counts[row.ReturnReason]; !seen {
			order = append(order, row.ReturnReason)
		}
		counts[row.ReturnReason]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	labels := make([]string, 0, len(order))
	values := make([]int, 0, len(order))
	for _, reason := range order {
		labels = append(labels, reason)
		values = append(values, counts[reason])
	}
	return labels, values
}

// topReturnedBy counts returned rows per key and returns the top 5,
// descending by count, ties broken by first appearance in the input.
func topReturnedBy(rows []domain.OrderRecord, key func(domain.OrderRecord) (string, bool)) ([]string, []int) {
	counts := make(map[string]int)
	var order []string
	for _, row := range rows {
		if row.OrderStatus != domain.StatusReturned {
			continue
		}
		k, ok := key(row)
		if !ok {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 5 {
		order = order[:5]
	}

	labels := make([]string, 0, len(order))
	values := make([]int, 0, len(order))
	for _, k := range order {
		labels = append(labels, k)
		values = append(values, counts[k])
	}
	return labels, values
}

// sumColumn totals a numeric column, skipping missing cells.
func sumColumn(rows []domain.OrderRecord, get func(domain.OrderRecord) float64) float64 {
	var total float64
	for _, row := range rows {
		if v := get(row); !domain.IsMissing(v) {
			total += v
		}
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
