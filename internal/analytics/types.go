package analytics

// MetricsBundle is the complete dashboard result for one order table.
// It is the sole contract object handed to callers: every field is
// populated, falling back to zero values and empty slices when the
// source data cannot supply it, so the dashboard always has something
// to render.
type MetricsBundle struct {
	TotalOrders   int     `json:"total_orders"`
	TotalReturns  int     `json:"total_returns"`
	ReturnPercent float64 `json:"return_percent"`
	NetSales      float64 `json:"net_sales"`
	ReturnCost    float64 `json:"return_cost"`
	NetProfit     float64 `json:"net_profit"`

	// Daily sales time series, keyed by the raw order_date string.
	ChartDates        []string  `json:"chart_dates"`
	ChartDisplayDates []string  `json:"chart_display_dates"`
	ChartAmounts      []float64 `json:"chart_amounts"`
	ChartOrderCounts  []int     `json:"chart_order_counts"`

	// Return-reason breakdown over returned orders.
	PieLabels []string `json:"pie_labels"`
	PieValues []int    `json:"pie_values"`

	// Top-5 catalogues and SKUs by return count.
	CatalogueLabels []string `json:"catalogue_labels"`
	CatalogueValues []int    `json:"catalogue_values"`
	SKULabels       []string `json:"sku_labels"`
	SKUValues       []int    `json:"sku_values"`

	Categories    []CategoryStat `json:"categories"`
	TopCategories []CategoryStat `json:"top_categories"`
	TopByOrders   []CategoryStat `json:"top_by_orders"`
	Insights      Insights       `json:"insights"`
}

// CategoryStat holds derived performance figures for one category.
// Computed fresh on every aggregation call, never persisted.
type CategoryStat struct {
	Name             string  `json:"name"`
	Revenue          float64 `json:"revenue"`
	Orders           int     `json:"orders"`
	Returns          int     `json:"returns"`
	ReturnCost       float64 `json:"return_cost"`
	ProfitMargin     float64 `json:"profit_margin"`
	ReturnRate       float64 `json:"return_rate"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	PerformanceScore float64 `json:"performance_score"`
}

// Insights carries the qualitative messages derived from category
// stats, grouped by severity, plus the standing action items.
type Insights struct {
	Warnings        []string     `json:"warnings"`
	Dangers         []string     `json:"dangers"`
	Successes       []string     `json:"successes"`
	Recommendations []string     `json:"recommendations"`
	Actions         []ActionItem `json:"actions"`
}

// ActionItem is one standing recommendation shown on the category page.
type ActionItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func emptyInsights() Insights {
	return Insights{
		Warnings:        []string{},
		Dangers:         []string{},
		Successes:       []string{},
		Recommendations: []string{},
		Actions:         []ActionItem{},
	}
}

// EmptyBundle returns the degrade-to-empty default used when no order
// data is available.
func EmptyBundle() *MetricsBundle {
	return emptyBundle()
}

// emptyBundle is the degrade-to-empty default: all numerics zero, all
// slices empty (never nil, so JSON renders arrays rather than nulls).
func emptyBundle() *MetricsBundle {
	return &MetricsBundle{
		ChartDates:        []string{},
		ChartDisplayDates: []string{},
		ChartAmounts:      []float64{},
		ChartOrderCounts:  []int{},
		PieLabels:         []string{},
		PieValues:         []int{},
		CatalogueLabels:   []string{},
		CatalogueValues:   []int{},
		SKULabels:         []string{},
		SKUValues:         []int{},
		Categories:        []CategoryStat{},
		TopCategories:     []CategoryStat{},
		TopByOrders:       []CategoryStat{},
		Insights:          emptyInsights(),
	}
}
