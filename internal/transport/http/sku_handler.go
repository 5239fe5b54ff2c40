package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "retrix/internal/errors"
	"retrix/internal/exporter"
	"retrix/internal/services"
	"retrix/internal/sku"
)

// SKUHandler serves the SKU ranking and drill-down endpoints.
type SKUHandler struct {
	service      AnalyticsService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewSKUHandler creates a new SKU handler
func NewSKUHandler(service AnalyticsService, logger *slog.Logger) *SKUHandler {
	return &SKUHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "sku")),
		errorHandler: apierrors.NewErrorHandler(logger, false),
	}
}

// RegisterRoutes registers the SKU routes
func (h *SKUHandler) RegisterRoutes(r chi.Router) {
	r.Route("/sku", func(r chi.Router) {
		r.Get("/", h.GetAnalysis)
		r.Get("/detail", h.GetDetail)
		r.Get("/export", h.Export)
	})
}

// Export handles GET /api/sku/export, streaming the ranking as CSV.
func (h *SKUHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fileName := r.URL.Query().Get("file")

	result, err := h.service.SKUAnalysis(ctx, fileName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUploads):
			result = &services.SKUAnalysisResult{Stats: []sku.Stat{}}
		case errors.Is(err, services.ErrUploadNotFound):
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadNotFound)
			return
		default:
			h.logger.ErrorContext(ctx, "sku export failed",
				slog.String("file", fileName),
				slog.String("error", err.Error()))
			h.errorHandler.HandleError(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sku_ranking.csv"`)
	if err := exporter.WriteSKURanking(w, result.Stats); err != nil {
		h.logger.ErrorContext(ctx, "sku csv write failed", slog.String("error", err.Error()))
	}
}

// GetAnalysis handles GET /api/sku?file=
func (h *SKUHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fileName := r.URL.Query().Get("file")

	result, err := h.service.SKUAnalysis(ctx, fileName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUploads):
			render.JSON(w, r, &services.SKUAnalysisResult{
				Stats:    []sku.Stat{},
				Extended: sku.Placeholders(),
			})
		case errors.Is(err, services.ErrUploadNotFound):
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadNotFound)
		default:
			h.logger.ErrorContext(ctx, "sku analysis failed",
				slog.String("file", fileName),
				slog.String("error", err.Error()))
			h.errorHandler.HandleError(w, r, err)
		}
		return
	}

	render.JSON(w, r, result)
}

// GetDetail handles GET /api/sku/detail?file=&sku=
func (h *SKUHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fileName := r.URL.Query().Get("file")
	skuCode := r.URL.Query().Get("sku")

	if skuCode == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("sku", "sku parameter is required"))
		return
	}

	detail, err := h.service.SKUDetail(ctx, fileName, skuCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUploads):
			render.JSON(w, r, sku.Detail{SKU: skuCode})
		case errors.Is(err, services.ErrUploadNotFound):
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadNotFound)
		default:
			h.logger.ErrorContext(ctx, "sku detail failed",
				slog.String("file", fileName),
				slog.String("sku", skuCode),
				slog.String("error", err.Error()))
			h.errorHandler.HandleError(w, r, err)
		}
		return
	}

	render.JSON(w, r, detail)
}
