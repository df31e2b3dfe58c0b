package server

import (
	"log/slog"
	"net/http"

	"ecommerce-dashboard/internal/config"
	"ecommerce-dashboard/internal/handlers"
	"ecommerce-dashboard/internal/middleware"
	"ecommerce-dashboard/internal/services"
)

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	apiHandlers  *handlers.APIHandlers
	sseHandlers  *handlers.SSEHandlers
	pageHandlers *handlers.PageHandlers
	compress     middleware.Middleware
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, cfg *config.Config) (*Server, error) {
	compress, err := middleware.Compression(cfg.Security.EnableCompression)
	if err != nil {
		return nil, err
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		apiHandlers:  handlers.NewAPIHandlers(analytics, logger, cfg.Dashboard),
		sseHandlers:  handlers.NewSSEHandlers(analytics, logger, cfg.Dashboard),
		pageHandlers: handlers.NewPageHandlers(analytics, logger, cfg.Dashboard),
		compress:     compress,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /{$}", s.pageHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.api("GET /api/range", s.apiHandlers.HandleRange)
	s.api("GET /api/monthly-trend", s.apiHandlers.HandleMonthlyTrend)
	s.api("GET /api/categories", s.apiHandlers.HandleCategories)
	s.api("GET /api/status", s.apiHandlers.HandleStatus)
	s.api("GET /api/rfm", s.apiHandlers.HandleRFM)
	s.api("GET /api/ratings", s.apiHandlers.HandleRatings)
	s.api("GET /api/report", s.apiHandlers.HandleReport)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/dashboard", s.sseHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /sse/monthly-trend", s.sseHandlers.HandleMonthlyTrend)
	s.mux.HandleFunc("GET /sse/categories", s.sseHandlers.HandleCategories)
	s.mux.HandleFunc("GET /sse/status", s.sseHandlers.HandleStatus)
	s.mux.HandleFunc("GET /sse/rfm", s.sseHandlers.HandleRFM)
	s.mux.HandleFunc("GET /sse/ratings", s.sseHandlers.HandleRatings)
}

func (s *Server) api(pattern string, h http.HandlerFunc) {
	s.mux.Handle(pattern, s.compress(h))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
