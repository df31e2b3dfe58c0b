package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"ecommerce-dashboard/internal/config"
	"ecommerce-dashboard/internal/middleware"
	"ecommerce-dashboard/internal/observability"
	"ecommerce-dashboard/internal/server"
	"ecommerce-dashboard/internal/services"
	"ecommerce-dashboard/internal/store"
)

const limiterSweepInterval = time.Minute

func newHandler(analytics *services.Analytics, logger *slog.Logger, cfg *config.Config, limiter *middleware.RateLimiter) (http.Handler, error) {
	srv, err := server.NewServer(analytics, logger, cfg)
	if err != nil {
		return nil, err
	}

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(limiter, logger),
	)
	return chain(srv), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"addr", cfg.Address(),
		"csv_file", cfg.Dataset.CSVFile,
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Dataset.LoadTimeout)
	start := time.Now()
	records, err := store.LoadFile(ctx, cfg.Dataset.CSVFile, store.LoadOptions{
		CacheDir: cfg.Dataset.CacheDir,
		Logger:   logger,
	})
	cancel()
	if err != nil {
		logger.Error("failed to load dataset", "error", err, "csv_file", cfg.Dataset.CSVFile)
		os.Exit(1)
	}

	stats := records.Stats()
	logger.Info("dataset loaded",
		"duration", time.Since(start),
		"records", stats.RecordCount,
		"orders", stats.Orders,
		"customers", stats.Customers,
		"first_day", stats.FirstDay,
		"last_day", stats.LastDay,
	)

	analytics := services.NewAnalytics(records, logger)

	limiter := middleware.NewRateLimiter(cfg.Security)
	stopSweep := make(chan struct{})
	go limiter.Run(limiterSweepInterval, stopSweep)

	handler, err := newHandler(analytics, logger, cfg, limiter)
	if err != nil {
		logger.Error("failed to build handler", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg.Server.ShutdownTimeout)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		close(stopSweep)
		logger.Info("rate limiter stopped", "tracked_clients", limiter.Len())
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
