package http

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"retrix/internal/comparison"
	apierrors "retrix/internal/errors"
	"retrix/internal/services"
)

// comparisonRequest carries the two-period selection from query
// parameters.
type comparisonRequest struct {
	Month1 int `json:"month1" validate:"required,min=1,max=12"`
	Year1  int `json:"year1" validate:"required,min=2000,max=2100"`
	Month2 int `json:"month2" validate:"required,min=1,max=12"`
	Year2  int `json:"year2" validate:"required,min=2000,max=2100"`
}

// ComparisonHandler serves the two-period comparison endpoints.
type ComparisonHandler struct {
	service      AnalyticsService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(service AnalyticsService, logger *slog.Logger) *ComparisonHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ComparisonHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "comparison")),
		errorHandler: apierrors.NewErrorHandler(logger, false),
		validate:     v,
	}
}

// RegisterRoutes registers the comparison routes
func (h *ComparisonHandler) RegisterRoutes(r chi.Router) {
	r.Route("/comparison", func(r chi.Router) {
		r.Get("/", h.Compare)
		r.Get("/years", h.Years)
	})
}

// Compare handles GET /api/comparison?month1=&year1=&month2=&year2=
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.parseRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	p1 := comparison.Period{Month: req.Month1, Year: req.Year1}
	p2 := comparison.Period{Month: req.Month2, Year: req.Year2}

	result, err := h.service.ComparePeriods(ctx, p1, p2)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSamePeriod):
			h.errorHandler.HandleError(w, r,
				apierrors.ErrValidation("month2", "the two periods must differ"))
		case errors.Is(err, comparison.ErrNoData), errors.Is(err, services.ErrNoUploads):
			h.errorHandler.HandleError(w, r, apierrors.ErrNoComparisonData)
		default:
			h.logger.ErrorContext(ctx, "comparison failed",
				slog.String("period1", p1.Label()),
				slog.String("period2", p2.Label()),
				slog.String("error", err.Error()))
			h.errorHandler.HandleError(w, r, err)
		}
		return
	}

	render.JSON(w, r, result)
}

// Years handles GET /api/comparison/years
func (h *ComparisonHandler) Years(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	years, err := h.service.AvailableYears(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "year listing failed",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if years == nil {
		years = []int{}
	}
	render.JSON(w, r, map[string]interface{}{"years": years})
}

// parseRequest reads the four query integers and validates them as a
// unit so the client sees every bad field at once.
func (h *ComparisonHandler) parseRequest(r *http.Request) (*comparisonRequest, error) {
	q := r.URL.Query()

	var req comparisonRequest
	var badFields []apierrors.ValidationError
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"month1", &req.Month1},
		{"year1", &req.Year1},
		{"month2", &req.Month2},
		{"year2", &req.Year2},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue // caught by required validation below
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			badFields = append(badFields, apierrors.ValidationError{
				Field:   p.name,
				Message: "must be an integer",
			})
			continue
		}
		*p.dst = v
	}
	if len(badFields) > 0 {
		return nil, apierrors.NewValidationErrors(badFields)
	}

	if err := h.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]apierrors.ValidationError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, apierrors.ValidationError{
					Field:   fe.Field(),
					Message: validationMessage(fe),
				})
			}
			return nil, apierrors.NewValidationErrors(fields)
		}
		return nil, apierrors.InvalidRequestWithError(err)
	}

	return &req, nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
