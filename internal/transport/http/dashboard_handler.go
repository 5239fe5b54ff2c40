package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"retrix/internal/analytics"
	apierrors "retrix/internal/errors"
	"retrix/internal/exporter"
	"retrix/internal/services"
)

// DashboardHandler serves the upload list and dashboard metrics.
type DashboardHandler struct {
	service      AnalyticsService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service AnalyticsService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "dashboard")),
		errorHandler: apierrors.NewErrorHandler(logger, false),
	}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/uploads", h.ListUploads)
	r.Get("/dashboard", h.GetDashboard)
	r.Get("/dashboard/export", h.ExportDailySales)
}

// ExportDailySales handles GET /api/dashboard/export, streaming the
// daily sales series as CSV.
func (h *DashboardHandler) ExportDailySales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fileName := r.URL.Query().Get("file")

	result, err := h.service.Dashboard(ctx, fileName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUploads):
			result = &services.DashboardResult{Metrics: analytics.EmptyBundle()}
		case errors.Is(err, services.ErrUploadNotFound):
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadNotFound)
			return
		default:
			h.logger.ErrorContext(ctx, "dashboard export failed",
				slog.String("file", fileName),
				slog.String("error", err.Error()))
			h.errorHandler.HandleError(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="daily_sales.csv"`)
	if err := exporter.WriteDailySales(w, result.Metrics); err != nil {
		h.logger.ErrorContext(ctx, "daily sales csv write failed", slog.String("error", err.Error()))
	}
}

// ListUploads handles GET /api/uploads
func (h *DashboardHandler) ListUploads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	uploads, err := h.service.ListUploads(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list uploads",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.FileSystemError("upload listing", err))
		return
	}

	if uploads == nil {
		uploads = []services.UploadInfo{}
	}
	render.JSON(w, r, map[string]interface{}{"uploads": uploads})
}

// GetDashboard handles GET /api/dashboard?file=
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fileName := r.URL.Query().Get("file")

	result, err := h.service.Dashboard(ctx, fileName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUploads):
			// the dashboard always renders, with or without data
			render.JSON(w, r, &services.DashboardResult{Metrics: analytics.EmptyBundle()})
		case errors.Is(err, services.ErrUploadNotFound):
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadNotFound)
		default:
			h.logger.ErrorContext(ctx, "dashboard computation failed",
				slog.String("file", fileName),
				slog.String("error", err.Error()))
			h.errorHandler.HandleError(w, r, err)
		}
		return
	}

	render.JSON(w, r, result)
}
