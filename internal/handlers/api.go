package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"ecommerce-dashboard/internal/config"
	"ecommerce-dashboard/internal/errors"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/observability"
	"ecommerce-dashboard/internal/services"
)

const (
	cacheControl = "public, max-age=300"
	version      = "1.0.0"
)

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
	topN      int
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger, dashboard config.DashboardConfig) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
		topN:      dashboard.TopN,
	}
}

// rangeFrom reads ?start= and ?end=, writing a 400 response on failure.
func (h *APIHandlers) rangeFrom(w http.ResponseWriter, r *http.Request) (models.DateRange, bool) {
	q := r.URL.Query()
	rng, err := h.analytics.ResolveRange(q.Get("start"), q.Get("end"))
	if err != nil {
		errors.WriteError(w, h.logger, errors.InvalidRange(err), observability.GetRequestID(r.Context()))
		return models.DateRange{}, false
	}
	return rng, true
}

func (h *APIHandlers) write(w http.ResponseWriter, r *http.Request, data any) {
	headers := map[string]string{"Cache-Control": cacheControl}
	if err := errors.WriteSuccessWithHeaders(w, data, headers); err != nil {
		observability.LoggerFrom(r.Context(), h.logger).Error("encode response", "error", err)
	}
}

func (h *APIHandlers) HandleRange(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.analytics.Span())
}

func (h *APIHandlers) HandleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.rangeFrom(w, r)
	if !ok {
		return
	}
	h.write(w, r, h.analytics.MonthlyTrend(rng))
}

func (h *APIHandlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.rangeFrom(w, r)
	if !ok {
		return
	}
	h.write(w, r, h.analytics.CategoryPerformance(rng))
}

func (h *APIHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.rangeFrom(w, r)
	if !ok {
		return
	}
	h.write(w, r, h.analytics.StatusCensus(rng))
}

func (h *APIHandlers) HandleRFM(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.rangeFrom(w, r)
	if !ok {
		return
	}
	h.write(w, r, h.analytics.CustomerRFM(rng))
}

func (h *APIHandlers) HandleRatings(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.rangeFrom(w, r)
	if !ok {
		return
	}
	h.write(w, r, h.analytics.RatingCensus(rng))
}

type reportResponse struct {
	*services.Report
	Highlights services.Highlights `json:"highlights"`
}

func (h *APIHandlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.rangeFrom(w, r)
	if !ok {
		return
	}

	rep, err := h.analytics.Report(r.Context(), rng)
	if err != nil {
		errors.WriteError(w, h.logger, errors.InternalWrap(err, "Failed to compute report"), observability.GetRequestID(r.Context()))
		return
	}

	h.write(w, r, reportResponse{Report: rep, Highlights: services.Highlight(rep, h.topN)})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   version,
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
