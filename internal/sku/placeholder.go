package sku

// PlaceholderKPIs are dashboard figures the order-export schema cannot
// back: inventory, delivery, marketing and forecast numbers. They are
// fixed illustrative constants kept apart from the computed stats so a
// future data source can replace them without touching the ranking
// logic.
type PlaceholderKPIs struct {
	GrossMargin         float64 `json:"gross_margin"`
	StockoutSKUs        int     `json:"stockout_skus"`
	InventoryValue      float64 `json:"inventory_value"`
	DeadStockValue      float64 `json:"dead_stock_value"`
	AvgInventoryDays    float64 `json:"avg_inventory_days"`
	InventoryTurnover   float64 `json:"inventory_turnover"`
	TotalProfit         float64 `json:"total_profit"`
	AvgProfitMargin     float64 `json:"avg_profit_margin"`
	LossMakingSKUs      int     `json:"loss_making_skus"`
	ConversionRate      float64 `json:"conversion_rate"`
	AvgRating           float64 `json:"avg_rating"`
	RepeatPurchaseRate  float64 `json:"repeat_purchase_rate"`
	CartAbandonmentRate float64 `json:"cart_abandonment_rate"`
	AvgDeliveryDays     float64 `json:"avg_delivery_days"`
	DeliverySuccessRate float64 `json:"delivery_success_rate"`
	TotalRefunds        int     `json:"total_refunds"`
	RefundAmount        float64 `json:"refund_amount"`
	AdSpend             float64 `json:"ad_spend"`
	ROI                 float64 `json:"roi"`
	PromoSalesPct       float64 `json:"promo_sales_pct"`
	ForecastedSales     float64 `json:"forecasted_sales"`
	HighRiskSKUs        int     `json:"high_risk_skus"`
	HighGrowthSKUs      int     `json:"high_growth_skus"`
	SeasonalityIndex    float64 `json:"seasonality_index"`
}

// Placeholders returns the illustrative KPI block shown alongside the
// computed SKU metrics.
func Placeholders() PlaceholderKPIs {
	return PlaceholderKPIs{
		GrossMargin:         35.5,
		StockoutSKUs:        3,
		InventoryValue:      85000,
		DeadStockValue:      12000,
		AvgInventoryDays:    45,
		InventoryTurnover:   8.2,
		TotalProfit:         45000,
		AvgProfitMargin:     32.5,
		LossMakingSKUs:      5,
		ConversionRate:      10.4,
		AvgRating:           4.5,
		RepeatPurchaseRate:  28.5,
		CartAbandonmentRate: 68,
		AvgDeliveryDays:     3.2,
		DeliverySuccessRate: 96.5,
		TotalRefunds:        145,
		RefundAmount:        8500,
		AdSpend:             12000,
		ROI:                 3.2,
		PromoSalesPct:       35,
		ForecastedSales:     38000,
		HighRiskSKUs:        8,
		HighGrowthSKUs:      12,
		SeasonalityIndex:    1.15,
	}
}
