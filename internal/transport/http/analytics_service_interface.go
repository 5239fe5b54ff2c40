package http

import (
	"context"

	"retrix/internal/comparison"
	"retrix/internal/services"
	"retrix/internal/sku"
)

// AnalyticsService is the service surface the handlers depend on.
// Defined here so handler tests can substitute a fake.
type AnalyticsService interface {
	ListUploads(ctx context.Context) ([]services.UploadInfo, error)
	Dashboard(ctx context.Context, fileName string) (*services.DashboardResult, error)
	SKUAnalysis(ctx context.Context, fileName string) (*services.SKUAnalysisResult, error)
	SKUDetail(ctx context.Context, fileName, skuCode string) (sku.Detail, error)
	ComparePeriods(ctx context.Context, p1, p2 comparison.Period) (*comparison.Result, error)
	AvailableYears(ctx context.Context) ([]int, error)
}
