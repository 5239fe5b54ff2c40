package sku

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retrix/pkg/contracts/domain"
)

func rankingTable() *domain.Table {
	return &domain.Table{
		Present: map[string]bool{
			domain.ColSKU:         true,
			domain.ColOrderPrice:  true,
			domain.ColOrderStatus: true,
			domain.ColReturnCost:  true,
		},
		Rows: []domain.OrderRecord{
			{SKU: "KURTA", OrderPrice: 100, OrderStatus: domain.StatusDelivered, ReturnCost: domain.Missing()},
			{SKU: "KURTA", OrderPrice: 200, OrderStatus: domain.StatusReturned, ReturnCost: 50},
			{SKU: "SAREE", OrderPrice: 120, OrderStatus: domain.StatusDelivered, ReturnCost: domain.Missing()},
			{SKU: "", OrderPrice: 999, OrderStatus: domain.StatusDelivered, ReturnCost: domain.Missing()},
		},
	}
}

func TestRank(t *testing.T) {
	stats := Rank(rankingTable())
	require.Len(t, stats, 2)

	kurta := stats[0]
	assert.Equal(t, "KURTA", kurta.SKU)
	assert.Equal(t, 2, kurta.Orders)
	assert.Equal(t, 300.0, kurta.Revenue)
	assert.Equal(t, 50.0, kurta.ReturnCost)
	assert.Equal(t, 83.3, kurta.ProfitMargin) // (300-50)/300
	assert.Equal(t, 1, kurta.ReturnCount)
	assert.Equal(t, 50.0, kurta.ReturnRate)

	saree := stats[1]
	assert.Equal(t, "SAREE", saree.SKU)
	assert.Equal(t, 120.0, saree.Revenue)
	assert.Equal(t, 100.0, saree.ProfitMargin)
	assert.Equal(t, 0.0, saree.ReturnRate)
}

func TestRank_DefaultsWithoutColumns(t *testing.T) {
	table := &domain.Table{
		Present: map[string]bool{
			domain.ColSKU:        true,
			domain.ColOrderPrice: true,
		},
		Rows: []domain.OrderRecord{
			{SKU: "A", OrderPrice: 10, ReturnCost: domain.Missing()},
		},
	}

	stats := Rank(table)
	require.Len(t, stats, 1)
	assert.Equal(t, 35.0, stats[0].ProfitMargin)
	assert.Equal(t, 5.0, stats[0].ReturnRate)
	assert.Equal(t, 0, stats[0].ReturnCount)
}

func TestRank_NoSKUColumn(t *testing.T) {
	table := &domain.Table{Present: map[string]bool{domain.ColOrderPrice: true}}
	stats := Rank(table)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
}

func TestRank_CapsAtTen(t *testing.T) {
	table := &domain.Table{
		Present: map[string]bool{
			domain.ColSKU:        true,
			domain.ColOrderPrice: true,
		},
	}
	for i := 0; i < 12; i++ {
		table.Rows = append(table.Rows, domain.OrderRecord{
			SKU:        fmt.Sprintf("SKU-%02d", i),
			OrderPrice: float64(i * 10),
			ReturnCost: domain.Missing(),
		})
	}

	stats := Rank(table)
	require.Len(t, stats, 10)
	assert.Equal(t, "SKU-11", stats[0].SKU)
	assert.Equal(t, 110.0, stats[0].Revenue)
	// lowest two revenues fall off the list
	for _, s := range stats {
		assert.NotEqual(t, "SKU-00", s.SKU)
		assert.NotEqual(t, "SKU-01", s.SKU)
	}
}

func TestRank_TruncatesLongSKUs(t *testing.T) {
	long := "VERY-LONG-SKU-DESCRIPTION-THAT-KEEPS-GOING-AND-GOING"
	table := &domain.Table{
		Present: map[string]bool{domain.ColSKU: true, domain.ColOrderPrice: true},
		Rows:    []domain.OrderRecord{{SKU: long, OrderPrice: 10, ReturnCost: domain.Missing()}},
	}

	stats := Rank(table)
	require.Len(t, stats, 1)
	assert.Equal(t, long[:15]+"...", stats[0].SKU)
	assert.Equal(t, long[:30]+"...", stats[0].Name)
}

func TestDetailFor(t *testing.T) {
	table := rankingTable()

	d := DetailFor(table, "KURTA")
	assert.Equal(t, "KURTA", d.SKU)
	assert.Equal(t, 2, d.TotalOrders)
	assert.Equal(t, 300.0, d.Revenue)
	assert.Equal(t, 1, d.Returns)
	assert.Equal(t, 50.0, d.ReturnRate)
}

func TestDetailFor_UnknownSKU(t *testing.T) {
	d := DetailFor(rankingTable(), "NOPE")
	assert.Equal(t, "NOPE", d.SKU)
	assert.Equal(t, 0, d.TotalOrders)
	assert.Equal(t, 0.0, d.Revenue)
	assert.Equal(t, 0.0, d.ReturnRate)
}

func TestDetailFor_NoSKUColumn(t *testing.T) {
	table := &domain.Table{Present: map[string]bool{}}
	d := DetailFor(table, "ANY")
	assert.Equal(t, 0, d.TotalOrders)
}

func TestCountDistinct(t *testing.T) {
	assert.Equal(t, 2, CountDistinct(rankingTable()))
	assert.Equal(t, 0, CountDistinct(&domain.Table{Present: map[string]bool{}}))
}

func TestKeywordCategory(t *testing.T) {
	assert.Equal(t, "Electronics", keywordCategory("Electronic Gadget"))
	assert.Equal(t, "Accessories", keywordCategory("USB cable 2m"))
	assert.Equal(t, "Accessories", keywordCategory("Wireless Headphones"))
	assert.Equal(t, "General", keywordCategory("KURTA-RED-M"))
}
