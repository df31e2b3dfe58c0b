package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"ecommerce-dashboard/internal/config"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/observability"
	"ecommerce-dashboard/internal/services"
)

// Datastar sends GET request signals as JSON in this query parameter.
const signalsQueryKey = "datastar"

// rangeSignals mirrors the date pickers bound on the dashboard page.
type rangeSignals struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
	dashboard config.DashboardConfig
	format    formatter
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger, dashboard config.DashboardConfig) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
		dashboard: dashboard,
		format:    formatter{currency: dashboard.CurrencySymbol},
	}
}

// readRange takes the range from Datastar signals when the request carries
// them and from start/end query parameters otherwise.
func (h *SSEHandlers) readRange(r *http.Request) (models.DateRange, error) {
	var sig rangeSignals
	if r.URL.Query().Has(signalsQueryKey) {
		if err := datastar.ReadSignals(r, &sig); err != nil {
			return models.DateRange{}, fmt.Errorf("%w: %v", services.ErrInvalidRange, err)
		}
	} else {
		sig.StartDate = r.URL.Query().Get("start")
		sig.EndDate = r.URL.Query().Get("end")
	}
	return h.analytics.ResolveRange(sig.StartDate, sig.EndDate)
}

// stream resolves the range and computes the report, reporting range errors
// back to the page instead of failing the stream.
func (h *SSEHandlers) stream(w http.ResponseWriter, r *http.Request) (*datastar.ServerSentEventGenerator, *services.Report, services.Highlights, bool) {
	sse := datastar.NewSSE(w, r)
	logger := observability.LoggerFrom(r.Context(), h.logger)

	rng, err := h.readRange(r)
	if err != nil {
		logger.Warn("invalid range", "error", err)
		h.patch(sse, logger, "rangeError", err.Error())
		return sse, nil, services.Highlights{}, false
	}

	rep, err := h.analytics.Report(r.Context(), rng)
	if err != nil {
		logger.Error("compute report", "error", err)
		return sse, nil, services.Highlights{}, false
	}

	h.patch(sse, logger, "rangeError", "")
	return sse, rep, services.Highlight(rep, h.dashboard.TopN), true
}

func (h *SSEHandlers) patch(sse *datastar.ServerSentEventGenerator, logger *slog.Logger, name string, data any) {
	html, err := renderPanel(name, data)
	if err != nil {
		logger.Error("render panel", "panel", name, "error", err)
		return
	}
	if err := sse.PatchElements(html); err != nil {
		logger.Debug("patch elements", "panel", name, "error", err)
	}
}

func (h *SSEHandlers) signals(sse *datastar.ServerSentEventGenerator, logger *slog.Logger, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("marshal chart signals", "error", err)
		return
	}
	if err := sse.PatchSignals(data); err != nil {
		logger.Debug("patch signals", "error", err)
	}
}

func (h *SSEHandlers) view(rep *services.Report, hl services.Highlights) panelView {
	return newPanelView(rep, hl, h.format, h.dashboard.TableRows)
}

func monthlySignal(rep *services.Report) map[string]any {
	return map[string]any{"_monthlyData": monthlyPoints(rep.Monthly)}
}

func categoriesSignal(hl services.Highlights) map[string]any {
	return map[string]any{"_categoriesData": map[string]any{
		"best":  hl.BestCategories,
		"worst": hl.WorstCategories,
	}}
}

func statusSignal(hl services.Highlights) map[string]any {
	return map[string]any{"_statusData": map[string]any{
		"delivered": hl.Delivered,
		"others":    hl.OtherStatuses,
	}}
}

func rfmSignal(hl services.Highlights) map[string]any {
	return map[string]any{"_rfmData": map[string]any{
		"recency":   customerPoints(hl.TopRecency),
		"frequency": customerPoints(hl.TopFrequency),
		"monetary":  customerPoints(hl.TopMonetary),
	}}
}

func ratingsSignal(hl services.Highlights) map[string]any {
	return map[string]any{"_ratingsData": hl.RatingsByCount}
}

func (h *SSEHandlers) HandleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	sse, rep, hl, ok := h.stream(w, r)
	if !ok {
		return
	}
	logger := observability.LoggerFrom(r.Context(), h.logger)
	v := h.view(rep, hl)
	h.patch(sse, logger, "summary", v)
	h.patch(sse, logger, "monthly", v)
	h.signals(sse, logger, monthlySignal(rep))
}

func (h *SSEHandlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	sse, rep, hl, ok := h.stream(w, r)
	if !ok {
		return
	}
	logger := observability.LoggerFrom(r.Context(), h.logger)
	h.patch(sse, logger, "categories", h.view(rep, hl))
	h.signals(sse, logger, categoriesSignal(hl))
}

func (h *SSEHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	sse, rep, hl, ok := h.stream(w, r)
	if !ok {
		return
	}
	logger := observability.LoggerFrom(r.Context(), h.logger)
	h.patch(sse, logger, "status", h.view(rep, hl))
	h.signals(sse, logger, statusSignal(hl))
}

func (h *SSEHandlers) HandleRFM(w http.ResponseWriter, r *http.Request) {
	sse, rep, hl, ok := h.stream(w, r)
	if !ok {
		return
	}
	logger := observability.LoggerFrom(r.Context(), h.logger)
	h.patch(sse, logger, "rfm", h.view(rep, hl))
	h.signals(sse, logger, rfmSignal(hl))
}

func (h *SSEHandlers) HandleRatings(w http.ResponseWriter, r *http.Request) {
	sse, rep, hl, ok := h.stream(w, r)
	if !ok {
		return
	}
	logger := observability.LoggerFrom(r.Context(), h.logger)
	h.patch(sse, logger, "ratings", h.view(rep, hl))
	h.signals(sse, logger, ratingsSignal(hl))
}

// HandleDashboard re-renders every panel for the signalled range and sends
// all chart data in a single signal patch.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sse, rep, hl, ok := h.stream(w, r)
	if !ok {
		return
	}
	logger := observability.LoggerFrom(r.Context(), h.logger)
	v := h.view(rep, hl)

	for _, panel := range []string{"summary", "monthly", "categories", "status", "rfm", "ratings"} {
		h.patch(sse, logger, panel, v)
	}

	all := make(map[string]any)
	for _, part := range []map[string]any{
		monthlySignal(rep),
		categoriesSignal(hl),
		statusSignal(hl),
		rfmSignal(hl),
		ratingsSignal(hl),
	} {
		maps.Copy(all, part)
	}
	h.signals(sse, logger, all)
}
