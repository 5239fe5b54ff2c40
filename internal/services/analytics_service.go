package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"retrix/internal/analytics"
	"retrix/internal/comparison"
	"retrix/internal/files"
	"retrix/internal/infrastructure"
	"retrix/internal/orders"
	"retrix/internal/sku"
	"retrix/pkg/contracts/domain"
)

// loadConcurrency bounds parallel file parsing in comparison queries.
const loadConcurrency = 4

// AnalyticsService computes dashboard, SKU and comparison results from
// seller order exports on disk. It holds no state between calls; every
// query re-reads the source files.
type AnalyticsService struct {
	discovery *files.Discovery
	logger    *slog.Logger
	metrics   *infrastructure.BusinessMetrics
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(discovery *files.Discovery, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		discovery: discovery,
		logger:    logger,
		metrics:   metrics,
	}
}

// UploadInfo describes one order export available for analysis.
type UploadInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// DashboardResult pairs a metrics bundle with the file it came from.
type DashboardResult struct {
	File    string                   `json:"file"`
	Metrics *analytics.MetricsBundle `json:"metrics"`
}

// SKUSummary holds the headline figures for the SKU analysis page.
type SKUSummary struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalUnitsSold float64 `json:"total_units_sold"`
	TotalSKUs      int     `json:"total_skus"`
	AvgOrderValue  float64 `json:"avg_order_value"`
}

// SKUAnalysisResult is the full SKU page payload for one export.
type SKUAnalysisResult struct {
	File     string             `json:"file"`
	Stats    []sku.Stat         `json:"stats"`
	Summary  SKUSummary         `json:"summary"`
	Extended sku.PlaceholderKPIs `json:"extended"`
}

// ListUploads returns the exports available for analysis, newest first.
func (s *AnalyticsService) ListUploads(ctx context.Context) ([]UploadInfo, error) {
	uploads, err := s.discovery.ListUploads()
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}

	infos := make([]UploadInfo, 0, len(uploads))
	for _, u := range uploads {
		infos = append(infos, UploadInfo{
			Name:       u.Name,
			Size:       u.Size,
			UploadedAt: u.ModTime,
		})
	}
	return infos, nil
}

// Dashboard computes the metrics bundle for the named export, or the
// newest one when fileName is empty. A file that exists but cannot be
// parsed degrades to an empty bundle rather than failing the request.
func (s *AnalyticsService) Dashboard(ctx context.Context, fileName string) (*DashboardResult, error) {
	info, err := s.resolveUpload(fileName)
	if err != nil {
		return nil, err
	}

	table, err := s.loadTable(ctx, info)
	if err != nil {
		var parseErr *orders.ParseError
		if errors.As(err, &parseErr) {
			s.logger.WarnContext(ctx, "order export unreadable, serving empty dashboard",
				slog.String("file", info.Name),
				slog.String("error", err.Error()))
			return &DashboardResult{File: info.Name, Metrics: analytics.EmptyBundle()}, nil
		}
		return nil, err
	}

	start := time.Now()
	bundle := analytics.Aggregate(table)
	infrastructure.RecordBundleComputation(ctx, s.metrics, time.Since(start))

	return &DashboardResult{File: info.Name, Metrics: bundle}, nil
}

// SKUAnalysis computes the SKU ranking and summary for the named
// export, or the newest one when fileName is empty.
func (s *AnalyticsService) SKUAnalysis(ctx context.Context, fileName string) (*SKUAnalysisResult, error) {
	info, err := s.resolveUpload(fileName)
	if err != nil {
		return nil, err
	}

	table, err := s.loadTable(ctx, info)
	if err != nil {
		var parseErr *orders.ParseError
		if errors.As(err, &parseErr) {
			s.logger.WarnContext(ctx, "order export unreadable, serving empty SKU analysis",
				slog.String("file", info.Name),
				slog.String("error", err.Error()))
			return &SKUAnalysisResult{
				File:     info.Name,
				Stats:    []sku.Stat{},
				Extended: sku.Placeholders(),
			}, nil
		}
		return nil, err
	}

	stats := sku.Rank(table)

	var totalRevenue, totalUnits float64
	for _, r := range table.Rows {
		if !domain.IsMissing(r.OrderPrice) {
			totalRevenue += r.OrderPrice
		}
		if table.Has(domain.ColQuantity) && !domain.IsMissing(r.Quantity) {
			totalUnits += r.Quantity
		}
	}

	summary := SKUSummary{
		TotalRevenue:   totalRevenue,
		TotalUnitsSold: totalUnits,
		TotalSKUs:      sku.CountDistinct(table),
	}
	if n := table.Len(); n > 0 {
		summary.AvgOrderValue = totalRevenue / float64(n)
	}

	return &SKUAnalysisResult{
		File:     info.Name,
		Stats:    stats,
		Summary:  summary,
		Extended: sku.Placeholders(),
	}, nil
}

// SKUDetail returns the per-SKU drill-down for the named export. A SKU
// absent from the table yields an all-zero detail, mirroring the
// dashboard's degrade-to-empty behaviour.
func (s *AnalyticsService) SKUDetail(ctx context.Context, fileName, skuCode string) (sku.Detail, error) {
	info, err := s.resolveUpload(fileName)
	if err != nil {
		return sku.Detail{}, err
	}

	table, err := s.loadTable(ctx, info)
	if err != nil {
		return sku.Detail{}, err
	}

	return sku.DetailFor(table, skuCode), nil
}

// ComparePeriods loads every export and compares order activity across
// the two requested months.
func (s *AnalyticsService) ComparePeriods(ctx context.Context, p1, p2 comparison.Period) (*comparison.Result, error) {
	if p1 == p2 {
		return nil, ErrSamePeriod
	}

	tables, err := s.loadAllTables(ctx)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, ErrNoUploads
	}

	start := time.Now()
	result, err := comparison.Compare(tables, p1, p2)
	if err != nil {
		return nil, err
	}
	infrastructure.RecordComparison(ctx, s.metrics, time.Since(start))

	return result, nil
}

// AvailableYears returns the distinct order years across all exports.
func (s *AnalyticsService) AvailableYears(ctx context.Context) ([]int, error) {
	tables, err := s.loadAllTables(ctx)
	if err != nil {
		return nil, err
	}
	return comparison.Years(tables), nil
}

// resolveUpload maps a user-supplied name to a file, defaulting to the
// newest export.
func (s *AnalyticsService) resolveUpload(fileName string) (files.FileInfo, error) {
	if fileName == "" {
		info, ok, err := s.discovery.Latest()
		if err != nil {
			return files.FileInfo{}, err
		}
		if !ok {
			return files.FileInfo{}, ErrNoUploads
		}
		return info, nil
	}

	info, err := s.discovery.Resolve(fileName)
	if err != nil {
		return files.FileInfo{}, fmt.Errorf("%w: %s", ErrUploadNotFound, fileName)
	}
	return info, nil
}

func (s *AnalyticsService) loadTable(ctx context.Context, info files.FileInfo) (*domain.Table, error) {
	start := time.Now()
	table, err := orders.LoadFile(info.Path)
	infrastructure.RecordTableLoad(ctx, s.metrics, info.Name, tableLen(table), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// loadAllTables parses every export concurrently. Files that fail to
// parse are skipped with a warning so one bad upload cannot poison a
// comparison across months.
func (s *AnalyticsService) loadAllTables(ctx context.Context) ([]*domain.Table, error) {
	uploads, err := s.discovery.ListUploads()
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		tables []*domain.Table
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)

	for _, u := range uploads {
		u := u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			table, err := s.loadTable(gctx, u)
			if err != nil {
				s.logger.WarnContext(gctx, "skipping unreadable order export",
					slog.String("file", u.Name),
					slog.String("error", err.Error()))
				return nil
			}

			mu.Lock()
			tables = append(tables, table)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func tableLen(t *domain.Table) int {
	if t == nil {
		return 0
	}
	return t.Len()
}
