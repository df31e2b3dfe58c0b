package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ecommerce-dashboard/internal/config"
	"ecommerce-dashboard/internal/middleware"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/services"
	"ecommerce-dashboard/internal/store"
)

// Test helper to create analytics with test data
func newTestAnalytics() *services.Analytics {
	approved := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	score := 4
	testData := []models.Transaction{
		{
			OrderID:         "O1",
			CustomerID:      "U1",
			CustomerCode:    "C1",
			PurchasedAt:     time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			ApprovedAt:      &approved,
			Status:          "delivered",
			PaymentValue:    decimal.RequireFromString("120.50"),
			Quantity:        2,
			ProductCategory: "electronics",
			ReviewScore:     &score,
		},
		{
			OrderID:         "O2",
			CustomerID:      "U2",
			CustomerCode:    "C2",
			PurchasedAt:     time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC),
			Status:          "canceled",
			PaymentValue:    decimal.RequireFromString("15"),
			Quantity:        1,
			ProductCategory: "garden",
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewAnalytics(store.New(testData), logger)
}

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			EnableRateLimit:   true,
			EnableCompression: true,
			RateLimitRPS:      1000,
			RateLimitBurst:    1000,
			AllowedOrigins:    []string{"http://localhost:8501"},
		},
		Dashboard: config.DashboardConfig{TopN: 5, TableRows: 50, CurrencySymbol: "$"},
	}
}

func newTestHandler(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h, err := newHandler(newTestAnalytics(), logger, cfg, middleware.NewRateLimiter(cfg.Security))
	if err != nil {
		t.Fatalf("newHandler() error: %v", err)
	}
	return h
}

// Integration tests for HTTP routes
func TestServer_Routes(t *testing.T) {
	srv := newTestHandler(t, testConfig())

	tests := []struct {
		path           string
		expectedStatus int
		contentType    string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/api/range", http.StatusOK, "application/json"},
		{"/api/monthly-trend", http.StatusOK, "application/json"},
		{"/api/categories", http.StatusOK, "application/json"},
		{"/api/status", http.StatusOK, "application/json"},
		{"/api/rfm", http.StatusOK, "application/json"},
		{"/api/ratings", http.StatusOK, "application/json"},
		{"/api/report", http.StatusOK, "application/json"},
		{"/api/report?start=2024-03-01&end=2024-01-01", http.StatusBadRequest, "application/json"},
		{"/health", http.StatusOK, "application/json"},
		{"/admin/stats", http.StatusOK, "application/json"},
		{"/missing", http.StatusNotFound, "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", tt.path, nil)

			srv.ServeHTTP(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			ct := w.Header().Get("Content-Type")
			if !strings.Contains(ct, tt.contentType) {
				t.Errorf("content-type = %q, want %q", ct, tt.contentType)
			}

			if w.Header().Get("X-Request-ID") == "" {
				t.Error("every response should carry a request id")
			}
			if w.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("security headers should be applied")
			}

			// Validate JSON responses
			if tt.contentType == "application/json" {
				var result any
				if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
					t.Errorf("invalid json: %v", err)
				}
			}
		})
	}
}

// Test JSON API responses
func TestServer_JSONResponse(t *testing.T) {
	srv := newTestHandler(t, testConfig())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/categories", nil)
	srv.ServeHTTP(w, r)

	var response map[string]any
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}

	if success, ok := response["success"].(bool); !ok || !success {
		t.Error("expected success=true in response")
	}

	data, ok := response["data"].([]any)
	if !ok {
		t.Fatalf("expected data array in response")
	}
	if len(data) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(data))
	}

	item, ok := data[0].(map[string]any)
	if !ok {
		t.Fatal("invalid category structure")
	}
	if name, _ := item["category"].(string); name != "electronics" {
		t.Errorf("top category = %q, want electronics", name)
	}
	if qty, _ := item["quantity"].(float64); qty != 2 {
		t.Errorf("quantity = %v, want 2", qty)
	}
}

// Test Server-Sent Events routes
func TestServer_SSERoutes(t *testing.T) {
	srv := newTestHandler(t, testConfig())

	sseRoutes := []string{
		"/sse/dashboard",
		"/sse/monthly-trend",
		"/sse/categories",
		"/sse/status",
		"/sse/rfm",
		"/sse/ratings",
	}

	for _, route := range sseRoutes {
		t.Run(route, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", route, nil)
			r.Header.Set("Accept-Encoding", "gzip")

			srv.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}

			// Check for SSE headers
			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
				t.Errorf("content-type = %q, should contain 'text/event-stream'", ct)
			}
			if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
				t.Errorf("cache-control = %q, want 'no-cache'", cc)
			}
			if ce := w.Header().Get("Content-Encoding"); ce != "" {
				t.Errorf("event streams must not be compressed, got %q", ce)
			}
		})
	}
}

func TestServer_Compression(t *testing.T) {
	srv := newTestHandler(t, testConfig())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/report", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ce := w.Header().Get("Content-Encoding"); ce != "gzip" {
		t.Errorf("content-encoding = %q, want gzip", ce)
	}
}

// Test health endpoint
func TestServer_HandleHealth(t *testing.T) {
	srv := newTestHandler(t, testConfig())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]any
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode health JSON: %v", err)
	}

	if success, ok := response["success"].(bool); !ok || !success {
		t.Error("expected success=true in response")
	}

	healthData, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected health data in response")
	}

	if status, ok := healthData["status"].(string); !ok || status != "healthy" {
		t.Errorf("health status = %v, want 'healthy'", healthData["status"])
	}

	if _, ok := healthData["timestamp"]; !ok {
		t.Error("health response should include timestamp")
	}
}

// Test error handling for invalid methods
func TestServer_ErrorHandling(t *testing.T) {
	srv := newTestHandler(t, testConfig())

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"POST", "/api/monthly-trend", http.StatusMethodNotAllowed},
		{"PUT", "/", http.StatusMethodNotAllowed},
		{"DELETE", "/health", http.StatusMethodNotAllowed},
		{"PATCH", "/api/rfm", http.StatusMethodNotAllowed},
		{"POST", "/sse/dashboard", http.StatusMethodNotAllowed},
		{"OPTIONS", "/api/report", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, tt.path, nil)

			srv.ServeHTTP(w, r)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimitRPS = 1
	cfg.Security.RateLimitBurst = 2
	srv := newTestHandler(t, cfg)

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/health", nil)
		srv.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want %d", codes[2], http.StatusTooManyRequests)
	}
}

func TestServer_CORS(t *testing.T) {
	srv := newTestHandler(t, testConfig())

	tests := []struct {
		origin string
		want   string
	}{
		{"http://localhost:8501", "http://localhost:8501"},
		{"http://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", "/health", nil)
			r.Header.Set("Origin", tt.origin)
			srv.ServeHTTP(w, r)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("allow-origin = %q, want %q", got, tt.want)
			}
		})
	}
}

// Test dashboard template rendering
func TestDashboardTemplate(t *testing.T) {
	srv := newTestHandler(t, testConfig())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	if !strings.Contains(body, "Alle E-Commerce Dashboard") {
		t.Error("dashboard should contain title")
	}

	// The date pickers are bounded by the dataset span.
	for _, date := range []string{"2024-01-15", "2024-03-02"} {
		if !strings.Contains(body, date) {
			t.Errorf("dashboard should preset date %s", date)
		}
	}

	// Check for key dashboard components
	expectedComponents := []string{
		"Monthly Orders",
		"Best &amp; Worst Performing Product",
		"Best Customer Based on RFM Parameters",
		"Order Status by far",
		"Rating",
		"/sse/dashboard",
	}

	for _, component := range expectedComponents {
		if !strings.Contains(body, component) {
			t.Errorf("dashboard should contain '%s'", component)
		}
	}
}
