package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/services"
)

func signalsURL(path, signals string) string {
	return path + "?" + signalsQueryKey + "=" + url.QueryEscape(signals)
}

func TestNewSSEHandlers(t *testing.T) {
	analytics := createTestAnalytics()
	logger := testLogger()

	handlers := NewSSEHandlers(analytics, logger, testDashboard)

	if handlers == nil {
		t.Fatal("NewSSEHandlers() returned nil")
	}
	if handlers.analytics != analytics {
		t.Error("NewSSEHandlers() should set analytics field")
	}
	if handlers.logger != logger {
		t.Error("NewSSEHandlers() should set logger field")
	}
	if handlers.format.currency != "$" {
		t.Errorf("currency = %q, want $", handlers.format.currency)
	}
}

func TestSSEHandlers_HeaderConsistency(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger(), testDashboard)

	endpoints := map[string]http.HandlerFunc{
		"/sse/dashboard":     handlers.HandleDashboard,
		"/sse/monthly-trend": handlers.HandleMonthlyTrend,
		"/sse/categories":    handlers.HandleCategories,
		"/sse/status":        handlers.HandleStatus,
		"/sse/rfm":           handlers.HandleRFM,
		"/sse/ratings":       handlers.HandleRatings,
	}

	for path, handler := range endpoints {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
				t.Errorf("expected content-type to contain 'text/event-stream', got %q", ct)
			}
			if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
				t.Errorf("expected cache-control 'no-cache', got %q", cc)
			}

			body := w.Body.String()
			if !strings.Contains(body, "event:") || !strings.Contains(body, "data:") {
				t.Error("response should contain SSE event format")
			}
		})
	}
}

func TestSSEHandlers_SignalKeys(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger(), testDashboard)

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		signalKey string
		elementID string
	}{
		{"monthly trend", handlers.HandleMonthlyTrend, "_monthlyData", "monthly-content"},
		{"categories", handlers.HandleCategories, "_categoriesData", "categories-content"},
		{"status", handlers.HandleStatus, "_statusData", "status-content"},
		{"rfm", handlers.HandleRFM, "_rfmData", "rfm-content"},
		{"ratings", handlers.HandleRatings, "_ratingsData", "ratings-content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/sse", nil)
			w := httptest.NewRecorder()

			tt.handler(w, req)

			body := w.Body.String()
			if !strings.Contains(body, tt.signalKey) {
				t.Errorf("response should contain %q signal", tt.signalKey)
			}
			if !strings.Contains(body, tt.elementID) {
				t.Errorf("response should patch #%s", tt.elementID)
			}
			if !strings.Contains(body, "range-error") {
				t.Error("a valid range should clear the range error element")
			}
		})
	}
}

func TestSSEHandlers_HandleDashboard(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger(), testDashboard)

	req := httptest.NewRequest(http.MethodGet, signalsURL("/sse/dashboard", `{"startDate":"2024-01-01","endDate":"2024-12-31"}`), nil)
	w := httptest.NewRecorder()

	handlers.HandleDashboard(w, req)

	body := w.Body.String()
	for _, signal := range []string{"_monthlyData", "_categoriesData", "_statusData", "_rfmData", "_ratingsData"} {
		if !strings.Contains(body, signal) {
			t.Errorf("dashboard stream should contain %q", signal)
		}
	}
	for _, id := range []string{"summary-content", "monthly-content", "categories-content", "status-content", "rfm-content", "ratings-content"} {
		if !strings.Contains(body, id) {
			t.Errorf("dashboard stream should patch #%s", id)
		}
	}
	if !strings.Contains(body, "<table") {
		t.Error("dashboard stream should contain rendered tables")
	}
	if !strings.Contains(body, "$35.00") {
		t.Error("summary should show total revenue formatted as currency")
	}
}

func TestSSEHandlers_SignalsNarrowRange(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger(), testDashboard)

	req := httptest.NewRequest(http.MethodGet, signalsURL("/sse/categories", `{"startDate":"2024-02-15","endDate":"2024-02-29"}`), nil)
	w := httptest.NewRecorder()

	handlers.HandleCategories(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "books") {
		t.Error("February window should contain books")
	}
	if strings.Contains(body, "toys") {
		t.Error("toys were only sold outside the selected window")
	}
}

func TestSSEHandlers_InvalidRange(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger(), testDashboard)

	tests := []struct {
		name string
		path string
	}{
		{"start after end", signalsURL("/sse/dashboard", `{"startDate":"2024-02-10","endDate":"2024-02-01"}`)},
		{"malformed signals", signalsURL("/sse/dashboard", `{"startDate":`)},
		{"query parameters", "/sse/dashboard?start=2024-03-01&end=2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			handlers.HandleDashboard(w, req)

			body := w.Body.String()
			if !strings.Contains(body, "range-error") {
				t.Error("invalid range should be reported in #range-error")
			}
			if !strings.Contains(body, "invalid date range") {
				t.Error("range error should describe the problem")
			}
			if strings.Contains(body, "_monthlyData") {
				t.Error("no chart data should be sent for an invalid range")
			}
		})
	}
}

func TestRenderPanel(t *testing.T) {
	one := 1
	rep := &services.Report{
		Range:       models.DateRange{},
		RecordCount: 1,
		Monthly: []models.MonthlyBucket{
			{Label: "2024-01", OrderCount: 1200, Revenue: decimal.RequireFromString("1234567.891")},
		},
		Categories: []models.CategorySummary{{Category: "toys", Quantity: 3}},
		Statuses:   []models.StatusSummary{{Status: "delivered", CustomerCount: 1}},
		Customers:  []models.CustomerRFM{{CustomerCode: "<script>", Recency: &one, Frequency: 1, Monetary: decimal.NewFromInt(2)}},
		Ratings:    []models.RatingSummary{{ReviewScore: 5, CustomerCount: 1}},
	}
	rep.Summary = services.Summarize(rep.Monthly, rep.Customers)
	v := newPanelView(rep, services.Highlight(rep, 5), formatter{currency: "$"}, 50)

	tests := []struct {
		panel string
		want  []string
	}{
		{"monthly", []string{"<table", "2024-01", "1,200", "$1,234,567.89"}},
		{"categories", []string{"Best Performing Product", "Worst Performing Product", "toys"}},
		{"status", []string{"delivered"}},
		{"rfm", []string{"&lt;script&gt;", "By Frequency"}},
		{"ratings", []string{"<td>5</td>"}},
		{"summary", []string{"Total orders", "Total Revenue"}},
	}

	for _, tt := range tests {
		t.Run(tt.panel, func(t *testing.T) {
			html, err := renderPanel(tt.panel, v)
			if err != nil {
				t.Fatalf("renderPanel(%q) failed: %v", tt.panel, err)
			}
			for _, content := range tt.want {
				if !strings.Contains(html, content) {
					t.Errorf("expected %q in %s panel, got %s", content, tt.panel, html)
				}
			}
		})
	}
}

func TestRenderPanel_Empty(t *testing.T) {
	rep := &services.Report{}
	v := newPanelView(rep, services.Highlight(rep, 5), formatter{currency: "$"}, 50)

	for _, panel := range []string{"monthly", "categories", "status", "rfm", "ratings"} {
		html, err := renderPanel(panel, v)
		if err != nil {
			t.Fatalf("renderPanel(%q) failed: %v", panel, err)
		}
		if !strings.Contains(html, `class="empty"`) {
			t.Errorf("%s panel should render an empty state, got %s", panel, html)
		}
	}
}

func TestFormatter(t *testing.T) {
	f := formatter{currency: "$"}
	days := 1234

	tests := []struct {
		got  string
		want string
	}{
		{f.money(decimal.RequireFromString("1234.5")), "$1,234.50"},
		{f.count(1234567), "1,234,567"},
		{f.average(2.26), "2.3"},
		{f.optionalAverage(nil), notAvailable},
		{f.recency(nil), notAvailable},
		{f.recency(&days), "1,234"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
