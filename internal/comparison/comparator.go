// Package comparison merges order tables from multiple uploads and
// computes month-over-month delta metrics between two periods.
package comparison

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"retrix/pkg/contracts/domain"
)

// orderDateLayout accepts DD-MM-YYYY with or without zero padding.
const orderDateLayout = "2-1-2006"

// ErrNoData reports that neither selected period matched any rows.
// A single empty period is valid and rendered as all zeros.
var ErrNoData = errors.New("no order data in either selected period")

// Period is a (month, year) selection window.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Label renders the period as "January 2024".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month), p.Year)
}

// PeriodMetrics is the independent metric block for one period.
type PeriodMetrics struct {
	MonthYear      string          `json:"month_year"`
	TotalOrders    int             `json:"total_orders"`
	TotalQuantity  int             `json:"total_quantity"`
	TotalRevenue   float64         `json:"total_revenue"`
	AvgOrderValue  float64         `json:"avg_order_value"`
	DeliveredCount int             `json:"delivered_count"`
	CancelledCount int             `json:"cancelled_count"`
	ReturnedCount  int             `json:"returned_count"`
	ReturnCost     float64         `json:"return_cost"`
	ReturnRate     float64         `json:"return_rate"`
	DailyRevenue   map[int]float64 `json:"daily_revenue"`
	ReturnReasons  map[string]int  `json:"return_reasons"`
	HasData        bool            `json:"has_data"`
}

// Delta holds the signed differences and percentage changes between
// the two periods, with period one as the baseline.
type Delta struct {
	RevenueChange    float64 `json:"revenue_change"`
	RevenueChangePct float64 `json:"revenue_change_pct"`
	OrdersChange     int     `json:"orders_change"`
	OrdersChangePct  float64 `json:"orders_change_pct"`
	ReturnRateChange float64 `json:"return_rate_change"`
	AOVChange        float64 `json:"aov_change"`
	AOVChangePct     float64 `json:"aov_change_pct"`
}

// Result is the full two-period comparison.
type Result struct {
	Month1     PeriodMetrics `json:"month1"`
	Month2     PeriodMetrics `json:"month2"`
	Comparison Delta         `json:"comparison"`
}

// Compare concatenates the tables, drops rows whose order_date does
// not parse as DD-MM-YYYY, partitions the remainder into the two
// selected periods and computes the delta block. Selecting the same
// period twice is the caller's validation problem, not ours.
func Compare(tables []*domain.Table, p1, p2 Period) (*Result, error) {
	merged := domain.Merge(tables...)

	var rows1, rows2 []dated
	for _, row := range merged.Rows {
		d, err := time.Parse(orderDateLayout, row.OrderDate)
		if err != nil {
			continue
		}
		switch {
		case d.Year() == p1.Year && int(d.Month()) == p1.Month:
			rows1 = append(rows1, dated{row, d.Day()})
		case d.Year() == p2.Year && int(d.Month()) == p2.Month:
			rows2 = append(rows2, dated{row, d.Day()})
		}
	}

	m1 := periodMetrics(p1, rows1, merged)
	m2 := periodMetrics(p2, rows2, merged)
	if !m1.HasData && !m2.HasData {
		return nil, ErrNoData
	}

	return &Result{
		Month1:     m1,
		Month2:     m2,
		Comparison: deltas(m1, m2),
	}, nil
}

type dated struct {
	domain.OrderRecord
	day int
}

func periodMetrics(p Period, rows []dated, merged *domain.Table) PeriodMetrics {
	m := PeriodMetrics{
		MonthYear:     p.Label(),
		DailyRevenue:  make(map[int]float64),
		ReturnReasons: make(map[string]int),
	}
	if len(rows) == 0 {
		return m
	}
	m.HasData = true
	m.TotalOrders = len(rows)

	var quantity float64
	for _, row := range rows {
		if !domain.IsMissing(row.Quantity) {
			quantity += row.Quantity
		}
		if !domain.IsMissing(row.OrderPrice) {
			m.TotalRevenue += row.OrderPrice
			m.DailyRevenue[row.day] += row.OrderPrice
		} else if _, ok := m.DailyRevenue[row.day]; !ok {
			m.DailyRevenue[row.day] = 0
		}

		switch row.OrderStatus {
		case domain.StatusDelivered:
			m.DeliveredCount++
		case domain.StatusCancelled:
			m.CancelledCount++
		case domain.StatusReturned:
			m.ReturnedCount++
			if row.ReturnReason != "" {
				m.ReturnReasons[row.ReturnReason]++
			}
		}

		if merged.Has(domain.ColReturnCost) && !domain.IsMissing(row.ReturnCost) {
			m.ReturnCost += row.ReturnCost
		}
	}

	m.TotalQuantity = int(math.Round(quantity))
	m.AvgOrderValue = m.TotalRevenue / float64(m.TotalOrders)
	m.ReturnRate = round2(float64(m.ReturnedCount) / float64(m.TotalOrders) * 100)
	return m
}

// deltas computes the comparison block. Percentage changes use period
// one as the denominator and collapse to 0 when it is 0.
func deltas(m1, m2 PeriodMetrics) Delta {
	d := Delta{
		RevenueChange:    m2.TotalRevenue - m1.TotalRevenue,
		OrdersChange:     m2.TotalOrders - m1.TotalOrders,
		ReturnRateChange: m2.ReturnRate - m1.ReturnRate,
		AOVChange:        m2.AvgOrderValue - m1.AvgOrderValue,
	}
	if m1.TotalRevenue > 0 {
		d.RevenueChangePct = round2(d.RevenueChange / m1.TotalRevenue * 100)
	}
	if m1.TotalOrders > 0 {
		d.OrdersChangePct = round2(float64(d.OrdersChange) / float64(m1.TotalOrders) * 100)
	}
	if m1.AvgOrderValue > 0 {
		d.AOVChangePct = round2(d.AOVChange / m1.AvgOrderValue * 100)
	}
	return d
}

// Years returns the distinct years seen across all tables' parseable
// order dates, ascending. It drives the comparison period picker.
func Years(tables []*domain.Table) []int {
	seen := make(map[int]struct{})
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, row := range t.Rows {
			if d, err := time.Parse(orderDateLayout, row.OrderDate); err == nil {
				seen[d.Year()] = struct{}{}
			}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
