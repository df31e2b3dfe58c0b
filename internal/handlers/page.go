package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ecommerce-dashboard/internal/config"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/observability"
	"ecommerce-dashboard/internal/services"
	"ecommerce-dashboard/internal/ui/templates"
)

const (
	renderTimeout  = 10 * time.Second
	dashboardTitle = "Alle E-Commerce Dashboard"
)

type PageHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
	topN      int
}

func NewPageHandlers(analytics *services.Analytics, logger *slog.Logger, dashboard config.DashboardConfig) *PageHandlers {
	return &PageHandlers{analytics: analytics, logger: logger, topN: dashboard.TopN}
}

// HandleDashboard serves the page shell with the date pickers preset to the
// full dataset span.
func (h *PageHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	span := h.analytics.Span()
	props := templates.DashboardProps{
		Title:   dashboardTitle,
		MinDate: span.Start.Format(models.DateLayout),
		MaxDate: span.End.Format(models.DateLayout),
		TopN:    h.topN,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheControl)
	if err := templates.Dashboard(props).Render(ctx, w); err != nil {
		observability.LoggerFrom(ctx, h.logger).Error("render dashboard", "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}
