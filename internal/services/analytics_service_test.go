package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retrix/internal/comparison"
	"retrix/internal/files"
)

const ordersCSV = `order_id,order_date,order_price,order_status,return_cost,return_reason,catalogue_id,sku_description,quantity
1,01-03-2024,100.00,delivered,0,,362950628,KURTA-RED-M,2
2,02-03-2024,250.50,returned,40.00,Size issue,362950628,KURTA-RED-M,1
3,02-03-2024,80.00,delivered,0,,326599508,SAREE-BLUE,1
4,15-04-2024,120.00,delivered,0,,326599508,SAREE-BLUE,3
`

func newTestService(t *testing.T, csvByName map[string]string) *AnalyticsService {
	t.Helper()
	dir := t.TempDir()

	modTime := time.Now().Add(-time.Duration(len(csvByName)) * time.Minute)
	for name, content := range csvByName {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		require.NoError(t, os.Chtimes(path, modTime, modTime))
		modTime = modTime.Add(time.Minute)
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewAnalyticsService(files.NewDiscovery(dir), logger, nil)
}

func TestListUploads(t *testing.T) {
	svc := newTestService(t, map[string]string{"march.csv": ordersCSV})

	uploads, err := svc.ListUploads(context.Background())
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, "march.csv", uploads[0].Name)
	assert.Greater(t, uploads[0].Size, int64(0))
}

func TestDashboard(t *testing.T) {
	svc := newTestService(t, map[string]string{"march.csv": ordersCSV})

	result, err := svc.Dashboard(context.Background(), "march.csv")
	require.NoError(t, err)

	assert.Equal(t, "march.csv", result.File)
	assert.Equal(t, 4, result.Metrics.TotalOrders)
	assert.Equal(t, 1, result.Metrics.TotalReturns)
	assert.InDelta(t, 550.50, result.Metrics.NetSales, 0.001)
}

func TestDashboard_DefaultsToNewestUpload(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"old.csv": ordersCSV,
		"new.csv": ordersCSV,
	})

	result, err := svc.Dashboard(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "new.csv", result.File)
}

func TestDashboard_NoUploads(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Dashboard(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoUploads)
}

func TestDashboard_UnknownFile(t *testing.T) {
	svc := newTestService(t, map[string]string{"march.csv": ordersCSV})

	_, err := svc.Dashboard(context.Background(), "ghost.csv")
	assert.ErrorIs(t, err, ErrUploadNotFound)
}

func TestDashboard_UnparseableFileDegradesToEmpty(t *testing.T) {
	// unclosed quote makes the whole file unreadable
	svc := newTestService(t, map[string]string{"broken.csv": "order_id,order_date\n\"oops,01-03-2024\n"})

	result, err := svc.Dashboard(context.Background(), "broken.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Metrics.TotalOrders)
	assert.NotNil(t, result.Metrics.ChartDates)
	assert.Empty(t, result.Metrics.ChartDates)
}

func TestSKUAnalysis(t *testing.T) {
	svc := newTestService(t, map[string]string{"march.csv": ordersCSV})

	result, err := svc.SKUAnalysis(context.Background(), "march.csv")
	require.NoError(t, err)

	require.Len(t, result.Stats, 2)
	assert.Equal(t, "KURTA-RED-M", result.Stats[0].SKU)

	assert.InDelta(t, 550.50, result.Summary.TotalRevenue, 0.001)
	assert.InDelta(t, 7, result.Summary.TotalUnitsSold, 0.001)
	assert.Equal(t, 2, result.Summary.TotalSKUs)
	assert.InDelta(t, 137.625, result.Summary.AvgOrderValue, 0.001)
}

func TestSKUDetail(t *testing.T) {
	svc := newTestService(t, map[string]string{"march.csv": ordersCSV})

	detail, err := svc.SKUDetail(context.Background(), "march.csv", "SAREE-BLUE")
	require.NoError(t, err)
	assert.Equal(t, "SAREE-BLUE", detail.SKU)
	assert.Equal(t, 2, detail.TotalOrders)
	assert.InDelta(t, 200.00, detail.Revenue, 0.001)

	missing, err := svc.SKUDetail(context.Background(), "march.csv", "NOPE")
	require.NoError(t, err)
	assert.Equal(t, 0, missing.TotalOrders)
}

func TestComparePeriods(t *testing.T) {
	svc := newTestService(t, map[string]string{"orders.csv": ordersCSV})

	result, err := svc.ComparePeriods(context.Background(),
		comparison.Period{Month: 3, Year: 2024},
		comparison.Period{Month: 4, Year: 2024})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Month1.TotalOrders)
	assert.Equal(t, 1, result.Month2.TotalOrders)
}

func TestComparePeriods_SamePeriod(t *testing.T) {
	svc := newTestService(t, map[string]string{"orders.csv": ordersCSV})

	p := comparison.Period{Month: 3, Year: 2024}
	_, err := svc.ComparePeriods(context.Background(), p, p)
	assert.ErrorIs(t, err, ErrSamePeriod)
}

func TestComparePeriods_NoData(t *testing.T) {
	svc := newTestService(t, map[string]string{"orders.csv": ordersCSV})

	_, err := svc.ComparePeriods(context.Background(),
		comparison.Period{Month: 1, Year: 2019},
		comparison.Period{Month: 2, Year: 2019})
	assert.ErrorIs(t, err, comparison.ErrNoData)
}

func TestComparePeriods_NoUploads(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.ComparePeriods(context.Background(),
		comparison.Period{Month: 3, Year: 2024},
		comparison.Period{Month: 4, Year: 2024})
	assert.ErrorIs(t, err, ErrNoUploads)
}

func TestAvailableYears(t *testing.T) {
	svc := newTestService(t, map[string]string{"orders.csv": ordersCSV})

	years, err := svc.AvailableYears(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2024}, years)
}
