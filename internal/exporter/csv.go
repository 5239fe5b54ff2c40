// Package exporter renders analytics results as downloadable CSV.
// Output carries a UTF-8 BOM so Excel opens the files cleanly, and all
// monetary figures are fixed to two decimals.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"retrix/internal/analytics"
	"retrix/internal/sku"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// WriteSKURanking streams the SKU ranking table as CSV.
func WriteSKURanking(w io.Writer, stats []sku.Stat) error {
	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"sku", "name", "category", "orders", "revenue", "return_cost", "profit_margin", "return_count", "return_rate"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, s := range stats {
		record := []string{
			s.SKU,
			s.Name,
			s.Category,
			formatInt(s.Orders),
			formatFloat(s.Revenue),
			formatFloat(s.ReturnCost),
			formatFloat(s.ProfitMargin),
			formatInt(s.ReturnCount),
			formatFloat(s.ReturnRate),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDailySales streams the dashboard daily sales series as CSV.
func WriteDailySales(w io.Writer, b *analytics.MetricsBundle) error {
	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "display_date", "amount", "order_count"}); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, date := range b.ChartDates {
		record := []string{
			date,
			b.ChartDisplayDates[i],
			formatFloat(b.ChartAmounts[i]),
			formatInt(b.ChartOrderCounts[i]),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
